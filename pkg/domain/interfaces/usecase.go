package interfaces

import (
	"context"

	"github.com/m-mizutani/artifetch/pkg/domain/model"
)

// WorkspaceUseCase prepares the working directories
type WorkspaceUseCase interface {
	// Prepare removes and recreates each directory empty
	Prepare(ctx context.Context, dirs ...string) error
}

// ExtractUseCase extracts downloaded archives
type ExtractUseCase interface {
	// ExtractAll extracts every .zip file in inputDir into outputDir
	ExtractAll(ctx context.Context, inputDir, outputDir string) ([]*model.ExtractResult, error)
}

// FetchUseCase lists and downloads run artifacts
type FetchUseCase interface {
	// List returns the artifacts of a run split into kept and skipped
	List(ctx context.Context, runID model.RunID) (kept, skipped []*model.Artifact, err error)

	// Download writes one artifact to <inputDir>/<name>.zip
	Download(ctx context.Context, inputDir string, artifact *model.Artifact) (*model.DownloadResult, error)

	// Run executes the whole networked pipeline for a run
	Run(ctx context.Context, ws model.Workspace, runID model.RunID) (*model.FetchResult, error)
}
