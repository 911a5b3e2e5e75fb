package config

import "github.com/urfave/cli/v3"

// GitHub holds GitHub API configuration
type GitHub struct {
	Token          string
	APIURL         string
	ArchiveBaseURL string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token with push access to the tap repository",
			Destination: &c.Token,
			Sources:     cli.EnvVars("INPUT_GITHUB_TOKEN", "BREWTAP_GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub REST API base URL",
			Value:       "https://api.github.com/",
			Destination: &c.APIURL,
			Sources:     cli.EnvVars("BREWTAP_GITHUB_API_URL"),
		},
		&cli.StringFlag{
			Name:        "github-archive-url",
			Usage:       "Base URL release source archives are downloaded from",
			Value:       "https://github.com",
			Destination: &c.ArchiveBaseURL,
			Sources:     cli.EnvVars("BREWTAP_GITHUB_ARCHIVE_URL"),
		},
	}
}

// Missing returns the names of required flags that are not set
func (c *GitHub) Missing() []string {
	var missing []string
	if c.Token == "" {
		missing = append(missing, "github-token")
	}
	return missing
}
