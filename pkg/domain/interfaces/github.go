package interfaces

import (
	"context"

	"github.com/m-mizutani/brewtap/pkg/domain/model"
)

// GitHubClient defines the read operations needed from GitHub to build a formula
type GitHubClient interface {
	// GetRepository fetches repository metadata (description, license)
	GetRepository(ctx context.Context, owner, repo string) (*model.Repository, error)

	// GetLatestRelease fetches the latest published release
	GetLatestRelease(ctx context.Context, owner, repo string) (*model.Release, error)

	// DownloadArchive streams the archive at archiveURL into the file at dst
	DownloadArchive(ctx context.Context, archiveURL, dst string) (*model.Archive, error)
}
