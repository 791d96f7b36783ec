package usecase_test

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
)

// zipEntry is one file of a test archive
type zipEntry struct {
	Name    string
	Content string
	Mode    os.FileMode // zero keeps the writer default
}

// createTestZip creates an in-memory ZIP archive for testing
func createTestZip(t *testing.T, entries ...zipEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)

	for _, entry := range entries {
		header := &zip.FileHeader{Name: entry.Name, Method: zip.Deflate}
		if entry.Mode != 0 {
			header.SetMode(entry.Mode)
		}
		writer, err := zipWriter.CreateHeader(header)
		gt.NoError(t, err)

		_, err = writer.Write([]byte(entry.Content))
		gt.NoError(t, err)
	}

	gt.NoError(t, zipWriter.Close())
	return buf.Bytes()
}

func writeTestZip(t *testing.T, dir, name string, entries ...zipEntry) string {
	t.Helper()

	path := filepath.Join(dir, name)
	gt.NoError(t, os.WriteFile(path, createTestZip(t, entries...), 0644))
	return path
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	gt.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
