package interfaces

import (
	"context"

	"github.com/m-mizutani/brewtap/pkg/domain/model"
)

// ReleaseUseCase defines the end-to-end formula release
type ReleaseUseCase interface {
	// Release fetches the latest release, renders its formula and publishes it to the tap
	Release(ctx context.Context, input *model.ReleaseInput) (*model.ReleaseResult, error)
}

// ChecksumUseCase computes archive digests
type ChecksumUseCase interface {
	// ComputeChecksum returns the hex SHA-256 digest of the file at path
	ComputeChecksum(ctx context.Context, path string) (string, error)
}

// PublishUseCase pushes a rendered formula to a tap repository
type PublishUseCase interface {
	// Publish clones the tap, replaces the formula and pushes a commit
	Publish(ctx context.Context, input *model.PublishInput) error
}
