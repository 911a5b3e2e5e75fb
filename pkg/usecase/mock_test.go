package usecase_test

import (
	"context"
	"errors"
	"os"
	"slices"
	"strings"

	"github.com/m-mizutani/brewtap/pkg/domain/model"
)

// MockCommandRunner records every command and answers from a handler
type MockCommandRunner struct {
	runFunc func(ctx context.Context, cmd model.Command) (*model.CommandResult, error)
	calls   []model.Command
}

func (m *MockCommandRunner) Run(ctx context.Context, cmd model.Command) (*model.CommandResult, error) {
	m.calls = append(m.calls, cmd)
	if m.runFunc != nil {
		return m.runFunc(ctx, cmd)
	}
	return &model.CommandResult{}, nil
}

// argv returns each recorded call as a single space-joined string
func (m *MockCommandRunner) argv() []string {
	var out []string
	for _, c := range m.calls {
		out = append(out, strings.Join(append([]string{c.Name}, c.Args...), " "))
	}
	return out
}

// MockGitHubClient is a mock implementation of GitHubClient
type MockGitHubClient struct {
	repo       *model.Repository
	release    *model.Release
	archive    []byte
	repoErr    error
	releaseErr error
	archiveErr error

	downloadedURLs []string
}

func (m *MockGitHubClient) GetRepository(ctx context.Context, owner, repo string) (*model.Repository, error) {
	if m.repoErr != nil {
		return nil, m.repoErr
	}
	if m.repo == nil {
		return nil, errors.New("mock not configured")
	}
	return m.repo, nil
}

func (m *MockGitHubClient) GetLatestRelease(ctx context.Context, owner, repo string) (*model.Release, error) {
	if m.releaseErr != nil {
		return nil, m.releaseErr
	}
	if m.release == nil {
		return nil, errors.New("mock not configured")
	}
	return m.release, nil
}

func (m *MockGitHubClient) DownloadArchive(ctx context.Context, archiveURL, dst string) (*model.Archive, error) {
	m.downloadedURLs = append(m.downloadedURLs, archiveURL)
	if m.archiveErr != nil {
		return nil, m.archiveErr
	}
	if err := os.WriteFile(dst, m.archive, 0600); err != nil {
		return nil, err
	}
	return &model.Archive{URL: archiveURL, Path: dst, Size: int64(len(m.archive))}, nil
}

func containsCall(calls []string, prefix string) bool {
	return slices.ContainsFunc(calls, func(c string) bool {
		return strings.HasPrefix(c, prefix)
	})
}
