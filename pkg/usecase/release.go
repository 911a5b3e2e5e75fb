package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/brewtap/pkg/domain/interfaces"
	"github.com/m-mizutani/brewtap/pkg/domain/model"
	"github.com/m-mizutani/brewtap/pkg/domain/types"
)

const (
	// DefaultArchiveBaseURL is where release source archives are served from
	DefaultArchiveBaseURL = "https://github.com"

	// ArchiveFileName is the local file the source archive is written to
	ArchiveFileName = "tar_archive.tar.gz"
)

type releaseUseCase struct {
	githubClient interfaces.GitHubClient
	checksumUC   interfaces.ChecksumUseCase
	publishUC    interfaces.PublishUseCase
}

// NewRelease creates a new instance of ReleaseUseCase
func NewRelease(
	githubClient interfaces.GitHubClient,
	checksumUC interfaces.ChecksumUseCase,
	publishUC interfaces.PublishUseCase,
) interfaces.ReleaseUseCase {
	return &releaseUseCase{
		githubClient: githubClient,
		checksumUC:   checksumUC,
		publishUC:    publishUC,
	}
}

// ArchiveURL returns the source tarball URL of a tagged version
func ArchiveURL(baseURL, owner, repo, version string) string {
	if baseURL == "" {
		baseURL = DefaultArchiveBaseURL
	}
	return fmt.Sprintf("%s/%s/%s/archive/%s.tar.gz", strings.TrimSuffix(baseURL, "/"), owner, repo, version)
}

// FormulaOutputPath returns where the rendered formula is written before it is moved into the tap
func FormulaOutputPath(workDir, repo string) string {
	return filepath.Join(workDir, "new_"+FormulaFileName(repo))
}

// Release runs fetch, checksum, render and publish strictly in sequence.
// Any error aborts the run; there is no partial success.
func (uc *releaseUseCase) Release(ctx context.Context, input *model.ReleaseInput) (*model.ReleaseResult, error) {
	logger := ctxlog.From(ctx)

	logger.Info("Starting release",
		"owner", input.Owner,
		"repo", input.Repo,
		"tap", input.Tap,
		"dry_run", input.DryRun,
	)

	repository, err := uc.githubClient.GetRepository(ctx, input.Owner, input.Repo)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch repository metadata")
	}

	release, err := uc.githubClient.GetLatestRelease(ctx, input.Owner, input.Repo)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch latest release")
	}

	version := release.Version()
	if version == "" {
		return nil, goerr.New("latest release has neither a name nor a tag",
			goerr.T(types.ErrTagNetwork),
			goerr.V("owner", input.Owner),
			goerr.V("repo", input.Repo),
		)
	}

	logger.Info("Found latest release", "version", version, "tag_name", release.TagName)

	tarURL := ArchiveURL(input.ArchiveBaseURL, input.Owner, input.Repo, version)
	archive, err := uc.githubClient.DownloadArchive(ctx, tarURL, filepath.Join(input.WorkDir, ArchiveFileName))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to download source archive", goerr.V("version", version))
	}

	logger.Info("Downloaded source archive",
		"url", archive.URL,
		"path", archive.Path,
		"size_bytes", archive.Size,
	)

	checksum, err := uc.checksumUC.ComputeChecksum(ctx, archive.Path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to checksum source archive")
	}

	rc := &model.ReleaseContext{
		Owner:         input.Owner,
		RepoName:      input.Repo,
		Version:       version,
		Description:   repository.Description,
		License:       repository.License,
		TarURL:        tarURL,
		Checksum:      checksum,
		InstallScript: input.InstallScript,
		TestScript:    input.TestScript,
	}

	if UnsafeDescription(rc.Description) {
		logger.Warn("Repository description contains characters that are not escaped in the formula",
			"description", rc.Description,
		)
	}
	if rc.License == "" {
		logger.Warn("Repository has no detected license, formula license will be empty")
	}

	formula, err := RenderFormula(rc)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to render formula")
	}

	formulaPath := FormulaOutputPath(input.WorkDir, input.Repo)
	if err := os.WriteFile(formulaPath, []byte(formula.Text), 0644); err != nil { // #nosec G306 -- formula is public
		return nil, goerr.Wrap(err, "failed to write formula", goerr.V("path", formulaPath))
	}

	logger.Info("Rendered formula", "class", formula.ClassName, "path", formulaPath)

	result := &model.ReleaseResult{
		Version:     version,
		Formula:     formula,
		FormulaPath: formulaPath,
	}

	if input.DryRun {
		logger.Info("Dry run, skipping publish", "path", formulaPath)
		return result, nil
	}

	if err := uc.publishUC.Publish(ctx, &model.PublishInput{
		Owner:         input.Owner,
		OwnerEmail:    input.OwnerEmail,
		Repo:          input.Repo,
		Version:       version,
		Tap:           input.Tap,
		TapURL:        TapURL(input.Token, input.Owner, input.Tap),
		Token:         input.Token,
		FormulaFolder: input.FormulaFolder,
		FormulaPath:   formulaPath,
		WorkDir:       input.WorkDir,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to publish formula")
	}

	result.Published = true
	return result, nil
}
