package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/brewtap/pkg/cli/config"
	"github.com/m-mizutani/brewtap/pkg/domain/model"
	"github.com/m-mizutani/brewtap/pkg/domain/types"
	"github.com/m-mizutani/brewtap/pkg/infra/command"
	githubinfra "github.com/m-mizutani/brewtap/pkg/infra/github"
	"github.com/m-mizutani/brewtap/pkg/usecase"
)

// releaseConfig gathers every config section a release run reads
type releaseConfig struct {
	github  config.GitHub
	project config.Project
	tap     config.Tap
	runtime config.Runtime
}

func (rc *releaseConfig) flags() []cli.Flag {
	var flags []cli.Flag
	flags = append(flags, rc.github.Flags()...)
	flags = append(flags, rc.project.Flags()...)
	flags = append(flags, rc.tap.Flags()...)
	flags = append(flags, rc.runtime.Flags()...)
	return flags
}

// validate loads script files and reports every missing required value at once
func (rc *releaseConfig) validate(requireTap bool) error {
	if err := rc.project.LoadScripts(); err != nil {
		return err
	}

	var missing []string
	missing = append(missing, rc.github.Missing()...)
	missing = append(missing, rc.project.Missing()...)
	if requireTap {
		missing = append(missing, rc.tap.Missing()...)
	}

	if len(missing) > 0 {
		return goerr.New("missing required configuration",
			goerr.T(types.ErrTagConfiguration),
			goerr.V("missing", missing),
		)
	}

	if _, err := usecase.DescriptionLimit(rc.project.Repo); err != nil {
		return err
	}
	return nil
}

func (rc *releaseConfig) input(dryRun bool) *model.ReleaseInput {
	return &model.ReleaseInput{
		Owner:          rc.project.Owner,
		OwnerEmail:     rc.project.OwnerEmail,
		Repo:           rc.project.Repo,
		Tap:            rc.tap.Name,
		FormulaFolder:  rc.tap.FormulaFolder,
		Token:          rc.github.Token,
		InstallScript:  rc.project.Install,
		TestScript:     rc.project.Test,
		WorkDir:        rc.runtime.WorkDir,
		ArchiveBaseURL: rc.github.ArchiveBaseURL,
		DryRun:         dryRun,
	}
}

// execute validates configuration, wires components and runs the release
func (rc *releaseConfig) execute(ctx context.Context, g *globals, dryRun bool) (*model.ReleaseResult, error) {
	if err := rc.validate(!dryRun); err != nil {
		return nil, err
	}

	ctx, _, err := g.newLogger(ctx, rc.github.Token)
	if err != nil {
		return nil, err
	}

	githubClient, err := githubinfra.NewClient(rc.github.Token, githubinfra.WithBaseURL(rc.github.APIURL))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub client")
	}

	runner := command.NewRunner()
	releaseUC := usecase.NewRelease(
		githubClient,
		usecase.NewChecksum(runner, rc.runtime.CommandTimeout),
		usecase.NewPublish(runner, rc.runtime.CommandTimeout),
	)

	return releaseUC.Release(ctx, rc.input(dryRun))
}

func cmdRelease(g *globals) *cli.Command {
	var cfg releaseConfig

	return &cli.Command{
		Name:    "release",
		Aliases: []string{"r"},
		Usage:   "Render the formula for the latest release and push it to the tap",
		Flags:   cfg.flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			result, err := cfg.execute(ctx, g, cfg.runtime.DryRun)
			if err != nil {
				return err
			}

			if !result.Published {
				fmt.Fprintf(c.Root().Writer, "Rendered %s of %s to %s (dry run)\n",
					result.Version, cfg.project.Repo, result.FormulaPath)
				return nil
			}

			_, err = color.New(color.FgGreen).Fprintf(c.Root().Writer, "Successfully released %s of %s to %s!\n",
				result.Version, cfg.project.Repo, cfg.tap.Name)
			return err
		},
	}
}
