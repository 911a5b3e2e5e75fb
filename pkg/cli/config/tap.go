package config

import "github.com/urfave/cli/v3"

// Tap holds configuration of the Homebrew tap repository
type Tap struct {
	Name          string
	FormulaFolder string
}

// Flags returns CLI flags for tap configuration
func (c *Tap) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "homebrew-tap",
			Usage:       "Tap repository name, e.g. homebrew-formulas",
			Destination: &c.Name,
			Sources:     cli.EnvVars("INPUT_HOMEBREW_TAP", "BREWTAP_HOMEBREW_TAP"),
		},
		&cli.StringFlag{
			Name:        "homebrew-formula-folder",
			Usage:       "Folder inside the tap that holds formulas",
			Destination: &c.FormulaFolder,
			Sources:     cli.EnvVars("INPUT_HOMEBREW_FORMULA_FOLDER", "BREWTAP_HOMEBREW_FORMULA_FOLDER"),
		},
	}
}

// Missing returns the names of required flags that are not set
func (c *Tap) Missing() []string {
	var missing []string
	if c.Name == "" {
		missing = append(missing, "homebrew-tap")
	}
	if c.FormulaFolder == "" {
		missing = append(missing, "homebrew-formula-folder")
	}
	return missing
}
