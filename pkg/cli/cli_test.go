package cli_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/artifetch/pkg/cli"
	"github.com/m-mizutani/artifetch/pkg/domain/types"
)

func createTestZip(t *testing.T, name, content string) []byte {
	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)

	writer, err := zipWriter.Create(name)
	gt.NoError(t, err)
	_, err = writer.Write([]byte(content))
	gt.NoError(t, err)
	gt.NoError(t, zipWriter.Close())

	return buf.Bytes()
}

// newGitHubServer serves a run with three artifacts, one of them an .app bundle
func newGitHubServer(t *testing.T, calls *atomic.Int32) *httptest.Server {
	blobs := map[string][]byte{
		"/blobs/1": createTestZip(t, "prontus.AppImage", "linux build"),
		"/blobs/3": createTestZip(t, "prontus.msi", "windows build"),
	}

	var server *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/arihant2math/prontus/actions/runs/777/artifacts", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"total_count": 3,
			"artifacts": []map[string]any{
				{"id": 1, "name": "prontus-linux"},
				{"id": 2, "name": "prontus-macos.app"},
				{"id": 3, "name": "prontus-windows"},
			},
		})
	})
	mux.HandleFunc("/repos/arihant2math/prontus/actions/artifacts/", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		switch r.URL.Path {
		case "/repos/arihant2math/prontus/actions/artifacts/1/zip":
			w.Header().Set("Location", server.URL+"/blobs/1?sig=x")
		case "/repos/arihant2math/prontus/actions/artifacts/3/zip":
			w.Header().Set("Location", server.URL+"/blobs/3?sig=x")
		default:
			t.Errorf("unexpected artifact request: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusFound)
	})
	mux.HandleFunc("/blobs/", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		data, ok := blobs[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write(data)
	})

	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestRun_Fetch(t *testing.T) {
	var calls atomic.Int32
	server := newGitHubServer(t, &calls)

	root := t.TempDir()
	inputDir := filepath.Join(root, "dist")
	outputDir := filepath.Join(root, "extracted")

	t.Setenv("GITHUB_TOKEN", "test-token")
	err := cli.Run(context.Background(), []string{
		"artifetch", "--log-level", "debug",
		"fetch",
		"--github-api-url", server.URL,
		"--input-dir", inputDir,
		"--output-dir", outputDir,
		"--run-id", "777",
	})
	gt.NoError(t, err)

	inputs, err := os.ReadDir(inputDir)
	gt.NoError(t, err)
	gt.Array(t, inputs).Length(2)

	outputs, err := os.ReadDir(outputDir)
	gt.NoError(t, err)
	gt.Array(t, outputs).Length(2)

	got, err := os.ReadFile(filepath.Join(outputDir, "prontus.msi"))
	gt.NoError(t, err)
	gt.Value(t, string(got)).Equal("windows build")
}

func TestRun_Fetch_PositionalRunID(t *testing.T) {
	var calls atomic.Int32
	server := newGitHubServer(t, &calls)
	root := t.TempDir()

	t.Setenv("GITHUB_TOKEN", "test-token")
	err := cli.Run(context.Background(), []string{
		"artifetch", "fetch",
		"--github-api-url", server.URL,
		"--input-dir", filepath.Join(root, "dist"),
		"--output-dir", filepath.Join(root, "extracted"),
		"777",
	})
	gt.NoError(t, err)

	outputs, err := os.ReadDir(filepath.Join(root, "extracted"))
	gt.NoError(t, err)
	gt.Array(t, outputs).Length(2)
}

func TestRun_Fetch_MissingToken(t *testing.T) {
	var calls atomic.Int32
	server := newGitHubServer(t, &calls)
	root := t.TempDir()

	t.Setenv("GITHUB_TOKEN", "")
	err := cli.Run(context.Background(), []string{
		"artifetch", "fetch",
		"--github-api-url", server.URL,
		"--input-dir", filepath.Join(root, "dist"),
		"--output-dir", filepath.Join(root, "extracted"),
		"--run-id", "777",
	})
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrMissingCredential))
	gt.Value(t, calls.Load()).Equal(int32(0))
}

func TestRun_List(t *testing.T) {
	var calls atomic.Int32
	server := newGitHubServer(t, &calls)

	t.Setenv("GITHUB_TOKEN", "test-token")
	err := cli.Run(context.Background(), []string{
		"artifetch", "list",
		"--github-api-url", server.URL,
		"--run-id", "777",
	})
	gt.NoError(t, err)

	// Only the list endpoint is called
	gt.Value(t, calls.Load()).Equal(int32(1))
}

func TestRun_Extract(t *testing.T) {
	root := t.TempDir()
	inputDir := filepath.Join(root, "dist")
	outputDir := filepath.Join(root, "extracted")

	gt.NoError(t, os.MkdirAll(inputDir, 0755))
	gt.NoError(t, os.WriteFile(filepath.Join(inputDir, "linux.zip"), createTestZip(t, "prontus.AppImage", "linux build"), 0644))

	// Stale output from an earlier run is removed
	gt.NoError(t, os.MkdirAll(outputDir, 0755))
	gt.NoError(t, os.WriteFile(filepath.Join(outputDir, "stale"), []byte("old"), 0644))

	err := cli.Run(context.Background(), []string{
		"artifetch", "extract",
		"--input-dir", inputDir,
		"--output-dir", outputDir,
	})
	gt.NoError(t, err)

	outputs, err := os.ReadDir(outputDir)
	gt.NoError(t, err)
	gt.Array(t, outputs).Length(1)
	gt.Value(t, outputs[0].Name()).Equal("prontus.AppImage")

	// The input directory is left untouched
	inputs, err := os.ReadDir(inputDir)
	gt.NoError(t, err)
	gt.Array(t, inputs).Length(1)
}

func TestRun_InvalidLogLevel(t *testing.T) {
	err := cli.Run(context.Background(), []string{
		"artifetch", "--log-level", "verbose", "extract",
		"--input-dir", t.TempDir(),
		"--output-dir", t.TempDir(),
	})
	gt.Error(t, err)
}
