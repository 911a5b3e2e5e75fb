package config

import (
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/brewtap/pkg/domain/types"
)

// DefaultOwnerEmail is the commit email used when none is given
const DefaultOwnerEmail = "homebrew-releaser@example.com"

// Project holds configuration of the repository being released
type Project struct {
	Owner      string
	OwnerEmail string
	Repo       string
	Install    string
	Test       string
	ScriptFile string
}

// scriptFile is the TOML layout of --script-file
type scriptFile struct {
	Install string `toml:"install"`
	Test    string `toml:"test"`
}

// Flags returns CLI flags for project configuration
func (c *Project) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "owner",
			Usage:       "Owner of the repository and the tap",
			Destination: &c.Owner,
			Sources:     cli.EnvVars("INPUT_OWNER", "BREWTAP_OWNER"),
		},
		&cli.StringFlag{
			Name:        "owner-email",
			Usage:       "Email used for the formula commit",
			Value:       DefaultOwnerEmail,
			Destination: &c.OwnerEmail,
			Sources:     cli.EnvVars("INPUT_OWNER_EMAIL", "BREWTAP_OWNER_EMAIL"),
		},
		&cli.StringFlag{
			Name:        "repo",
			Usage:       "Repository to build the formula for",
			Destination: &c.Repo,
			Sources:     cli.EnvVars("INPUT_REPO", "BREWTAP_REPO"),
		},
		&cli.StringFlag{
			Name:        "install",
			Usage:       "Body of the formula install block",
			Destination: &c.Install,
			Sources:     cli.EnvVars("INPUT_INSTALL", "BREWTAP_INSTALL"),
		},
		&cli.StringFlag{
			Name:        "test",
			Usage:       "Body of the formula test block (optional)",
			Destination: &c.Test,
			Sources:     cli.EnvVars("INPUT_TEST", "BREWTAP_TEST"),
		},
		&cli.StringFlag{
			Name:        "script-file",
			Usage:       "TOML file with install and test scripts; flags take precedence",
			Destination: &c.ScriptFile,
			Sources:     cli.EnvVars("BREWTAP_SCRIPT_FILE"),
		},
	}
}

// LoadScripts fills Install and Test from ScriptFile when they are not set
func (c *Project) LoadScripts() error {
	if c.ScriptFile == "" {
		return nil
	}

	data, err := os.ReadFile(c.ScriptFile) // #nosec G304 -- path is operator supplied
	if err != nil {
		return goerr.Wrap(err, "failed to read script file",
			goerr.T(types.ErrTagConfiguration),
			goerr.V("path", c.ScriptFile),
		)
	}

	var scripts scriptFile
	if err := toml.Unmarshal(data, &scripts); err != nil {
		return goerr.Wrap(err, "failed to parse script file",
			goerr.T(types.ErrTagConfiguration),
			goerr.V("path", c.ScriptFile),
		)
	}

	if c.Install == "" {
		c.Install = scripts.Install
	}
	if c.Test == "" {
		c.Test = scripts.Test
	}
	return nil
}

// Missing returns the names of required flags that are not set
func (c *Project) Missing() []string {
	var missing []string
	if c.Owner == "" {
		missing = append(missing, "owner")
	}
	if c.OwnerEmail == "" {
		missing = append(missing, "owner-email")
	}
	if c.Repo == "" {
		missing = append(missing, "repo")
	}
	if strings.TrimSpace(c.Install) == "" {
		missing = append(missing, "install")
	}
	return missing
}
