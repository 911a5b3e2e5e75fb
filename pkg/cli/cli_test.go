package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/brewtap/pkg/cli/config"
	"github.com/m-mizutani/brewtap/pkg/domain/types"
)

func newGitHubServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/demo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"demo","description":"A tiny tool","license":{"spdx_id":"MIT"}}`))
	})
	mux.HandleFunc("/repos/octocat/demo/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"v1.2.0","tag_name":"v1.2.0"}`))
	})
	mux.HandleFunc("/octocat/demo/archive/v1.2.0.tar.gz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("fake tar content"))
	})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRun_MissingConfigurationFailsBeforeNetwork(t *testing.T) {
	var hits atomic.Int32
	server := newGitHubServer(t, &hits)

	var out bytes.Buffer
	err := run(context.Background(), &out, []string{
		"brewtap", "release",
		"--github-api-url", server.URL,
		"--github-archive-url", server.URL,
		"--owner", "octocat",
		"--repo", "demo",
		"--work-dir", t.TempDir(),
	})
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagConfiguration))
	gt.Equal(t, hits.Load(), int32(0))

	missing, ok := goerr.Unwrap(err).Values()["missing"].([]string)
	gt.True(t, ok)
	gt.Equal(t, missing, []string{"github-token", "install", "homebrew-tap", "homebrew-formula-folder"})
}

func TestRun_InvalidInputsFailBeforeNetwork(t *testing.T) {
	tests := []struct {
		name    string
		repo    string
		install string
	}{
		{
			name:    "repository name leaves no room for a description",
			repo:    strings.Repeat("a", 79),
			install: "bin.install 'demo'",
		},
		{
			name:    "whitespace-only install script",
			repo:    "demo",
			install: "  \n\t",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			server := newGitHubServer(t, &hits)

			var out bytes.Buffer
			err := run(context.Background(), &out, []string{
				"brewtap", "render",
				"--github-token", "test-token",
				"--github-api-url", server.URL,
				"--github-archive-url", server.URL,
				"--owner", "octocat",
				"--repo", tt.repo,
				"--install", tt.install,
				"--work-dir", t.TempDir(),
			})
			gt.Error(t, err)
			gt.True(t, goerr.HasTag(err, types.ErrTagConfiguration))
			gt.Equal(t, hits.Load(), int32(0))
		})
	}
}

func TestGlobals_BoundaryLoggerMasksToken(t *testing.T) {
	var buf bytes.Buffer
	g := &globals{
		runID:  "run-1",
		logger: config.Logger{Level: "info", JSON: true, Output: &buf},
	}

	ctx, _, err := g.newLogger(context.Background())
	gt.NoError(t, err)
	_, _, err = g.newLogger(ctx, "ghp_secret")
	gt.NoError(t, err)

	g.current.Error("CLI execution failed", "error", "push to https://ghp_secret@github.com/o/t.git failed")
	gt.String(t, buf.String()).Contains("CLI execution failed")
	gt.String(t, buf.String()).NotContains("ghp_secret")
}

func TestRun_InvalidLogLevel(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), &out, []string{"brewtap", "--log-level", "loud", "render"})
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagConfiguration))
}

func TestRun_Render(t *testing.T) {
	if _, err := exec.LookPath("shasum"); err != nil {
		t.Skip("shasum is not installed")
	}

	var hits atomic.Int32
	server := newGitHubServer(t, &hits)
	workDir := t.TempDir()

	var out bytes.Buffer
	err := run(context.Background(), &out, []string{
		"brewtap", "render",
		"--github-token", "test-token",
		"--github-api-url", server.URL,
		"--github-archive-url", server.URL,
		"--owner", "octocat",
		"--repo", "demo",
		"--install", "bin.install 'demo'",
		"--work-dir", workDir,
	})
	gt.NoError(t, err)
	gt.Equal(t, hits.Load(), int32(3))
	gt.String(t, out.String()).Contains("Rendered v1.2.0 of demo")

	formula, err := os.ReadFile(filepath.Join(workDir, "new_demo.rb"))
	gt.NoError(t, err)
	gt.String(t, string(formula)).Contains("class Demo < Formula")
	gt.String(t, string(formula)).Contains(`desc "A tiny tool"`)
	gt.String(t, string(formula)).Contains(`url "` + server.URL + `/octocat/demo/archive/v1.2.0.tar.gz"`)

	_, err = os.Stat(filepath.Join(workDir, "tar_archive.tar.gz"))
	gt.NoError(t, err)
}
