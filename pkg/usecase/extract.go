package usecase

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/m-mizutani/artifetch/pkg/domain/model"
	"github.com/m-mizutani/artifetch/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

const archiveExt = ".zip"

type extractUseCase struct{}

// NewExtract creates a new instance of ExtractUseCase
func NewExtract() *extractUseCase {
	return &extractUseCase{}
}

// ExtractAll extracts every .zip file of inputDir into outputDir. All archives
// share outputDir, so an entry overwrites a same-named entry of an earlier
// archive. The first broken archive stops the whole extraction.
func (uc *extractUseCase) ExtractAll(ctx context.Context, inputDir, outputDir string) ([]*model.ExtractResult, error) {
	logger := ctxlog.From(ctx)

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read input directory", goerr.V("dir", inputDir))
	}

	var results []*model.ExtractResult
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.HasSuffix(entry.Name(), archiveExt) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, goerr.Wrap(err, "extraction interrupted")
		}

		archive := filepath.Join(inputDir, entry.Name())
		result, err := uc.extractZip(archive, outputDir)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to extract archive", goerr.V("archive", archive))
		}

		logger.Info("Extracted archive",
			"archive", archive,
			"output_dir", outputDir,
			"file_count", len(result.Files),
			"size", humanize.Bytes(uint64(result.Size)),
		)
		results = append(results, result)
	}

	return results, nil
}

// extractZip extracts all entries of one archive into destDir
func (uc *extractUseCase) extractZip(archive, destDir string) (*model.ExtractResult, error) {
	zipReader, err := zip.OpenReader(archive)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open zip")
	}
	defer zipReader.Close()

	result := &model.ExtractResult{Archive: archive}
	for _, file := range zipReader.File {
		destPath, err := uc.extractFile(file, destDir)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to extract file", goerr.V("entry", file.Name))
		}
		if destPath == "" {
			continue
		}

		result.Files = append(result.Files, destPath)
		result.Size += int64(file.UncompressedSize64)
	}

	return result, nil
}

// extractFile writes a single entry under destDir and returns its path. Directory entries return "".
func (uc *extractUseCase) extractFile(file *zip.File, destDir string) (string, error) {
	// Security check: prevent path traversal attacks
	destPath := filepath.Join(destDir, filepath.FromSlash(file.Name))
	if file.FileInfo().IsDir() && destPath == filepath.Clean(destDir) {
		// "./" entry, destDir itself already exists
		return "", nil
	}
	if !strings.HasPrefix(destPath, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", goerr.Wrap(types.ErrInvalidEntryName, "entry escapes output directory",
			goerr.V("dest", destPath),
		)
	}

	if file.FileInfo().IsDir() {
		if err := os.MkdirAll(destPath, 0755); err != nil {
			return "", goerr.Wrap(err, "failed to create directory", goerr.V("dir", destPath))
		}
		return "", nil
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return "", goerr.Wrap(err, "failed to create parent directories", goerr.V("dir", filepath.Dir(destPath)))
	}

	rc, err := file.Open()
	if err != nil {
		return "", goerr.Wrap(err, "failed to open file in zip")
	}
	defer rc.Close()

	mode := file.Mode().Perm()
	if mode == 0 {
		mode = 0644
	}

	// A read-only file left by an earlier archive can not be truncated, replace it instead
	if err := os.Remove(destPath); err != nil && !os.IsNotExist(err) {
		return "", goerr.Wrap(err, "failed to remove existing file", goerr.V("path", destPath))
	}

	destFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create destination file", goerr.V("path", destPath))
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, rc); err != nil {
		return "", goerr.Wrap(err, "failed to copy file content", goerr.V("path", destPath))
	}

	return destPath, destFile.Close()
}
