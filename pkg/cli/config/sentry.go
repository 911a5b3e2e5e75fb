package config

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/brewtap/pkg/domain/types"
)

const sentryFlushTimeout = 2 * time.Second

// Sentry holds optional error reporting configuration
type Sentry struct {
	DSN string
	Env string

	enabled bool
}

// Flags returns CLI flags for Sentry configuration
func (c *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN; fatal errors are reported when set",
			Destination: &c.DSN,
			Sources:     cli.EnvVars("BREWTAP_SENTRY_DSN"),
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment",
			Destination: &c.Env,
			Sources:     cli.EnvVars("BREWTAP_SENTRY_ENV"),
		},
	}
}

// Configure initializes the Sentry client. It is a no-op without a DSN.
func (c *Sentry) Configure() error {
	if c.DSN == "" {
		return nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         c.DSN,
		Environment: c.Env,
		Release:     "brewtap@" + types.Version,
	}); err != nil {
		return goerr.Wrap(err, "failed to initialize sentry", goerr.T(types.ErrTagConfiguration))
	}

	c.enabled = true
	return nil
}

// Capture reports err to Sentry and waits for delivery
func (c *Sentry) Capture(err error) {
	if !c.enabled || err == nil {
		return
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("error_kind", types.ErrorKind(err))
		sentry.CaptureException(err)
	})
	sentry.Flush(sentryFlushTimeout)
}
