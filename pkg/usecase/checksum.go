package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/brewtap/pkg/domain/interfaces"
	"github.com/m-mizutani/brewtap/pkg/domain/model"
	"github.com/m-mizutani/brewtap/pkg/domain/types"
)

type checksumUseCase struct {
	runner  interfaces.CommandRunner
	timeout time.Duration
}

// NewChecksum creates a ChecksumUseCase that hashes files with `shasum -a 256`
func NewChecksum(runner interfaces.CommandRunner, timeout time.Duration) interfaces.ChecksumUseCase {
	return &checksumUseCase{
		runner:  runner,
		timeout: timeout,
	}
}

// ComputeChecksum returns the SHA-256 hex digest of the file at path. The
// digest is the first whitespace-delimited token of the tool output.
func (uc *checksumUseCase) ComputeChecksum(ctx context.Context, path string) (string, error) {
	logger := ctxlog.From(ctx)

	result, err := uc.runner.Run(ctx, model.Command{
		Name:    "shasum",
		Args:    []string{"-a", "256", path},
		Timeout: uc.timeout,
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to compute checksum",
			goerr.T(types.ErrTagChecksum),
			goerr.V("path", path),
		)
	}

	fields := strings.Fields(result.Stdout)
	if len(fields) < 1 {
		return "", goerr.New("checksum output is empty",
			goerr.T(types.ErrTagChecksum),
			goerr.V("path", path),
			goerr.V("stdout", result.Stdout),
		)
	}

	logger.Debug("Computed checksum", "path", path, "sha256", fields[0])
	return fields[0], nil
}
