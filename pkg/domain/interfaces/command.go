package interfaces

import (
	"context"

	"github.com/m-mizutani/brewtap/pkg/domain/model"
)

// CommandRunner executes external programs with a bounded timeout
type CommandRunner interface {
	// Run executes cmd and returns its captured output. A timeout is tagged
	// types.ErrTagTimeout and a non-zero exit types.ErrTagProcess.
	Run(ctx context.Context, cmd model.Command) (*model.CommandResult, error)
}
