package usecase

import (
	"context"
	"os"

	"github.com/m-mizutani/artifetch/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

type workspaceUseCase struct{}

// NewWorkspace creates a new instance of WorkspaceUseCase
func NewWorkspace() *workspaceUseCase {
	return &workspaceUseCase{}
}

// Prepare deletes each directory recursively if present and recreates it empty
func (uc *workspaceUseCase) Prepare(ctx context.Context, dirs ...string) error {
	logger := ctxlog.From(ctx)

	for _, dir := range dirs {
		if dir == "" {
			return goerr.Wrap(types.ErrEmptyPath, "refusing to prepare workspace")
		}

		if err := os.RemoveAll(dir); err != nil {
			return goerr.Wrap(err, "failed to remove directory", goerr.V("dir", dir))
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return goerr.Wrap(err, "failed to create directory", goerr.V("dir", dir))
		}

		logger.Debug("Prepared directory", "dir", dir)
	}

	return nil
}
