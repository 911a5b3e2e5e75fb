package config

import (
	"time"

	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/brewtap/pkg/domain/model"
)

// Runtime holds execution settings of a run
type Runtime struct {
	WorkDir        string
	CommandTimeout time.Duration
	DryRun         bool
}

// Flags returns CLI flags for runtime configuration
func (c *Runtime) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "work-dir",
			Usage:       "Directory for the downloaded archive, rendered formula and tap clone",
			Value:       ".",
			Destination: &c.WorkDir,
			Sources:     cli.EnvVars("BREWTAP_WORK_DIR"),
		},
		&cli.DurationFlag{
			Name:        "command-timeout",
			Usage:       "Timeout of each external command",
			Value:       model.DefaultCommandTimeout,
			Destination: &c.CommandTimeout,
			Sources:     cli.EnvVars("BREWTAP_COMMAND_TIMEOUT"),
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Render the formula without publishing it",
			Destination: &c.DryRun,
			Sources:     cli.EnvVars("BREWTAP_DRY_RUN"),
		},
	}
}
