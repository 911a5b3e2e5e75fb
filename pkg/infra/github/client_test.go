package github_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/brewtap/pkg/domain/types"
	githubinfra "github.com/m-mizutani/brewtap/pkg/infra/github"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/owner/demo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"demo","description":"A tiny tool","license":{"spdx_id":"MIT"}}`))
	})
	mux.HandleFunc("/repos/owner/demo/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"v1.2.0","tag_name":"v1.2.0"}`))
	})
	mux.HandleFunc("/repos/owner/bare", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"bare","description":null,"license":null}`))
	})
	mux.HandleFunc("/owner/demo/archive/v1.2.0.tar.gz", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != githubinfra.AcceptHeader {
			w.WriteHeader(http.StatusNotAcceptable)
			return
		}
		w.Header().Set("Content-Type", "application/gzip")
		_, _ = w.Write([]byte("fake tar content"))
	})
	mux.HandleFunc("/fail", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestClient_GetRepository(t *testing.T) {
	server := newTestServer(t)
	client, err := githubinfra.NewClient("test-token", githubinfra.WithBaseURL(server.URL))
	gt.NoError(t, err)

	t.Run("metadata is mapped", func(t *testing.T) {
		repo, err := client.GetRepository(context.Background(), "owner", "demo")
		gt.NoError(t, err)
		gt.Equal(t, repo.Owner, "owner")
		gt.Equal(t, repo.Name, "demo")
		gt.Equal(t, repo.Description, "A tiny tool")
		gt.Equal(t, repo.License, "MIT")
	})

	t.Run("null description and license", func(t *testing.T) {
		repo, err := client.GetRepository(context.Background(), "owner", "bare")
		gt.NoError(t, err)
		gt.Equal(t, repo.Description, "")
		gt.Equal(t, repo.License, "")
	})

	t.Run("not found is a network error", func(t *testing.T) {
		_, err := client.GetRepository(context.Background(), "owner", "missing")
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, types.ErrTagNetwork))
	})
}

func TestClient_GetLatestRelease(t *testing.T) {
	server := newTestServer(t)
	client, err := githubinfra.NewClient("", githubinfra.WithBaseURL(server.URL+"/"))
	gt.NoError(t, err)

	release, err := client.GetLatestRelease(context.Background(), "owner", "demo")
	gt.NoError(t, err)
	gt.Equal(t, release.Name, "v1.2.0")
	gt.Equal(t, release.Version(), "v1.2.0")
}

func TestClient_DownloadArchive(t *testing.T) {
	server := newTestServer(t)
	client, err := githubinfra.NewClient("test-token", githubinfra.WithBaseURL(server.URL))
	gt.NoError(t, err)

	t.Run("streams to disk", func(t *testing.T) {
		dst := filepath.Join(t.TempDir(), "tar_archive.tar.gz")
		archive, err := client.DownloadArchive(context.Background(), server.URL+"/owner/demo/archive/v1.2.0.tar.gz", dst)
		gt.NoError(t, err)
		gt.Equal(t, archive.Path, dst)
		gt.Equal(t, archive.Size, int64(len("fake tar content")))

		content, err := os.ReadFile(dst)
		gt.NoError(t, err)
		gt.Equal(t, string(content), "fake tar content")
	})

	t.Run("server error is a network error", func(t *testing.T) {
		dst := filepath.Join(t.TempDir(), "tar_archive.tar.gz")
		_, err := client.DownloadArchive(context.Background(), server.URL+"/fail", dst)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, types.ErrTagNetwork))
	})

	t.Run("unreachable host is a network error", func(t *testing.T) {
		dst := filepath.Join(t.TempDir(), "tar_archive.tar.gz")
		_, err := client.DownloadArchive(context.Background(), "http://127.0.0.1:1/archive.tar.gz", dst)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, types.ErrTagNetwork))
	})
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	_, err := githubinfra.NewClient("token", githubinfra.WithBaseURL("://bad"))
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagConfiguration))
}
