package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func cmdRender(g *globals) *cli.Command {
	var cfg releaseConfig

	return &cli.Command{
		Name:  "render",
		Usage: "Render the formula for the latest release without publishing it",
		Flags: cfg.flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			result, err := cfg.execute(ctx, g, true)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.Root().Writer, "Rendered %s of %s to %s\n",
				result.Version, cfg.project.Repo, result.FormulaPath)
			return nil
		},
	}
}
