package github

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/brewtap/pkg/domain/interfaces"
	"github.com/m-mizutani/brewtap/pkg/domain/model"
	"github.com/m-mizutani/brewtap/pkg/domain/types"
)

const (
	// AcceptHeader is sent with every request, API and archive download alike
	AcceptHeader = "application/vnd.github.v3+json"

	// UserAgent identifies the releaser to GitHub
	UserAgent = "Homebrew Releaser"
)

// config holds internal client configuration
type config struct {
	baseURL    string
	httpClient *http.Client
}

// Option is a functional option for client configuration
type Option func(*config)

// WithBaseURL overrides the REST API endpoint (GitHub Enterprise, tests)
func WithBaseURL(baseURL string) Option {
	return func(c *config) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *config) {
		c.httpClient = httpClient
	}
}

type client struct {
	githubClient *github.Client
}

// NewClient creates a new GitHub client authenticated with a personal access token
func NewClient(token string, opts ...Option) (interfaces.GitHubClient, error) {
	cfg := &config{
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	githubClient := github.NewClient(cfg.httpClient)
	if token != "" {
		githubClient = githubClient.WithAuthToken(token)
	}
	githubClient.UserAgent = UserAgent

	if cfg.baseURL != "" {
		baseURL := cfg.baseURL
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid GitHub API URL",
				goerr.T(types.ErrTagConfiguration),
				goerr.V("url", cfg.baseURL),
			)
		}
		githubClient.BaseURL = u
	}

	return &client{
		githubClient: githubClient,
	}, nil
}

// GetRepository fetches repository metadata
func (c *client) GetRepository(ctx context.Context, owner, repo string) (*model.Repository, error) {
	r, _, err := c.githubClient.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get repository",
			goerr.T(types.ErrTagNetwork),
			goerr.V("owner", owner),
			goerr.V("repo", repo),
		)
	}

	// Use Get*() helpers, description and license are both nullable
	return &model.Repository{
		Owner:       owner,
		Name:        r.GetName(),
		Description: r.GetDescription(),
		License:     r.GetLicense().GetSPDXID(),
	}, nil
}

// GetLatestRelease fetches the latest published (non-draft, non-prerelease) release
func (c *client) GetLatestRelease(ctx context.Context, owner, repo string) (*model.Release, error) {
	release, _, err := c.githubClient.Repositories.GetLatestRelease(ctx, owner, repo)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get latest release",
			goerr.T(types.ErrTagNetwork),
			goerr.V("owner", owner),
			goerr.V("repo", repo),
		)
	}

	return &model.Release{
		Name:    release.GetName(),
		TagName: release.GetTagName(),
	}, nil
}

// DownloadArchive streams the archive at archiveURL into dst. A failure mid-stream
// leaves a partial file behind.
func (c *client) DownloadArchive(ctx context.Context, archiveURL, dst string) (*model.Archive, error) {
	logger := ctxlog.From(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, archiveURL, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create download request",
			goerr.T(types.ErrTagNetwork),
			goerr.V("url", archiveURL),
		)
	}
	req.Header.Set("Accept", AcceptHeader)
	req.Header.Set("User-Agent", UserAgent)

	// Use the same client transport for authentication
	resp, err := c.githubClient.Client().Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to download archive",
			goerr.T(types.ErrTagNetwork),
			goerr.V("url", archiveURL),
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("unexpected status code for archive download",
			goerr.T(types.ErrTagNetwork),
			goerr.V("url", archiveURL),
			goerr.V("status", resp.StatusCode),
		)
	}

	f, err := os.Create(dst) // #nosec G304 -- dst is derived from the configured work directory
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create archive file", goerr.V("path", dst))
	}
	defer f.Close()

	size, err := io.Copy(f, resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to write archive",
			goerr.T(types.ErrTagNetwork),
			goerr.V("url", archiveURL),
			goerr.V("path", dst),
			goerr.V("written", size),
		)
	}

	if err := f.Close(); err != nil {
		return nil, goerr.Wrap(err, "failed to close archive file", goerr.V("path", dst))
	}

	logger.Debug("Downloaded archive", "url", archiveURL, "path", dst, "size_bytes", size)

	return &model.Archive{
		URL:  archiveURL,
		Path: dst,
		Size: size,
	}, nil
}
