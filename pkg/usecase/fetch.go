package usecase

import (
	"context"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/m-mizutani/artifetch/pkg/domain/interfaces"
	"github.com/m-mizutani/artifetch/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// FetchOption is a functional option for the fetch use case
type FetchOption func(*fetchUseCase)

// WithRepository sets the repository whose runs are fetched
func WithRepository(repo model.Repository) FetchOption {
	return func(uc *fetchUseCase) {
		uc.repo = repo
	}
}

// WithFilter sets the exclusion filter
func WithFilter(filter model.Filter) FetchOption {
	return func(uc *fetchUseCase) {
		uc.filter = filter
	}
}

type fetchUseCase struct {
	githubClient interfaces.GitHubClient
	workspaceUC  interfaces.WorkspaceUseCase
	extractUC    interfaces.ExtractUseCase

	repo   model.Repository
	filter model.Filter
}

// NewFetch creates a new instance of FetchUseCase
func NewFetch(
	githubClient interfaces.GitHubClient,
	workspaceUC interfaces.WorkspaceUseCase,
	extractUC interfaces.ExtractUseCase,
	opts ...FetchOption,
) interfaces.FetchUseCase {
	uc := &fetchUseCase{
		githubClient: githubClient,
		workspaceUC:  workspaceUC,
		extractUC:    extractUC,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// List returns the artifacts of the run, split by the exclusion filter
func (uc *fetchUseCase) List(ctx context.Context, runID model.RunID) ([]*model.Artifact, []*model.Artifact, error) {
	logger := ctxlog.From(ctx)

	artifacts, err := uc.githubClient.ListRunArtifacts(ctx, uc.repo, runID)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to list artifacts",
			goerr.V("repo", uc.repo.String()),
			goerr.V("run_id", runID),
		)
	}

	kept, skipped := uc.filter.Split(artifacts)
	for _, a := range skipped {
		logger.Info("Skipping artifact", "name", a.Name, "id", a.ID)
	}

	logger.Info("Listed artifacts",
		"repo", uc.repo.String(),
		"run_id", runID,
		"total", len(artifacts),
		"kept", len(kept),
		"skipped", len(skipped),
	)

	return kept, skipped, nil
}

// Download resolves the signed URL of the artifact and streams it to <inputDir>/<name>.zip
func (uc *fetchUseCase) Download(ctx context.Context, inputDir string, artifact *model.Artifact) (*model.DownloadResult, error) {
	logger := ctxlog.From(ctx)

	if err := artifact.Validate(); err != nil {
		return nil, err
	}
	if artifact.Expired {
		logger.Warn("Artifact is marked as expired, download will likely fail",
			"name", artifact.Name,
			"id", artifact.ID,
		)
	}

	logger.Debug("Resolving artifact download URL", "name", artifact.Name, "archive_url", artifact.DownloadURL)
	downloadURL, err := uc.githubClient.ArtifactDownloadURL(ctx, uc.repo, artifact.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve download URL", goerr.V("name", artifact.Name))
	}

	path := filepath.Join(inputDir, artifact.FileName())
	logger.Info("Downloading artifact", "name", artifact.Name, "path", path)

	// Partially written files are left in place, the next run wipes the directory
	file, err := os.Create(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create artifact file", goerr.V("path", path))
	}
	defer file.Close()

	size, err := uc.githubClient.DownloadFile(ctx, downloadURL, file)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to download artifact",
			goerr.V("name", artifact.Name),
			goerr.V("path", path),
		)
	}
	if err := file.Close(); err != nil {
		return nil, goerr.Wrap(err, "failed to close artifact file", goerr.V("path", path))
	}

	logger.Info("Downloaded artifact",
		"name", artifact.Name,
		"path", path,
		"size", humanize.Bytes(uint64(size)),
	)

	return &model.DownloadResult{
		Artifact: artifact,
		Path:     path,
		Size:     size,
	}, nil
}

// Run prepares the workspace, downloads the kept artifacts of the run and extracts them
func (uc *fetchUseCase) Run(ctx context.Context, ws model.Workspace, runID model.RunID) (*model.FetchResult, error) {
	if err := uc.workspaceUC.Prepare(ctx, ws.InputDir, ws.OutputDir); err != nil {
		return nil, goerr.Wrap(err, "failed to prepare workspace")
	}

	kept, skipped, err := uc.List(ctx, runID)
	if err != nil {
		return nil, err
	}

	result := &model.FetchResult{Skipped: skipped}
	for _, artifact := range kept {
		downloaded, err := uc.Download(ctx, ws.InputDir, artifact)
		if err != nil {
			return nil, err
		}
		result.Downloaded = append(result.Downloaded, downloaded)
	}

	extracted, err := uc.extractUC.ExtractAll(ctx, ws.InputDir, ws.OutputDir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to extract artifacts")
	}
	result.Extracted = extracted

	return result, nil
}
