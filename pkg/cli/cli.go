package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/brewtap/pkg/cli/config"
	"github.com/m-mizutani/brewtap/pkg/domain/types"
)

// globals are flags shared by every subcommand
type globals struct {
	logger config.Logger
	sentry config.Sentry
	runID  string

	// current is the most recently built logger; later builds mask more secrets
	current *slog.Logger
}

// newLogger builds the run logger, masking the given secrets, and stores it in ctx
func (g *globals) newLogger(ctx context.Context, secrets ...string) (context.Context, *slog.Logger, error) {
	logger, err := g.logger.Configure(secrets...)
	if err != nil {
		return ctx, nil, err
	}
	logger = logger.With("run_id", g.runID)

	g.current = logger
	slog.SetDefault(logger)
	return ctxlog.With(ctx, logger), logger, nil
}

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	return run(ctx, os.Stdout, args)
}

// run is Run with confirmation output and log lines sent to w
func run(ctx context.Context, w io.Writer, args []string) error {
	g := &globals{
		runID:  uuid.NewString(),
		logger: config.Logger{Output: w},
	}

	app := &cli.Command{
		Name:    "brewtap",
		Usage:   "Publish a Homebrew formula for the latest GitHub release",
		Version: types.Version,
		Writer:  w,
		Flags:   append(g.logger.Flags(), g.sentry.Flags()...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			ctx, _, err := g.newLogger(ctx)
			if err != nil {
				return nil, err
			}

			if err := g.sentry.Configure(); err != nil {
				return nil, err
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdRelease(g),
			cmdRender(g),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		logger := g.current
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed",
			slog.Any("error", err),
			slog.String("kind", types.ErrorKind(err)),
		)
		g.sentry.Capture(err)
		return err
	}

	return nil
}
