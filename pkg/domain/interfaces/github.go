package interfaces

import (
	"context"
	"io"
	"net/url"

	"github.com/m-mizutani/artifetch/pkg/domain/model"
)

// GitHubClient defines operations for interacting with GitHub API
type GitHubClient interface {
	// ListRunArtifacts lists all artifacts attached to a workflow run, in API order
	ListRunArtifacts(ctx context.Context, repo model.Repository, runID model.RunID) ([]*model.Artifact, error)

	// ArtifactDownloadURL resolves the signed download URL of an artifact from the redirect Location
	ArtifactDownloadURL(ctx context.Context, repo model.Repository, artifactID int64) (*url.URL, error)

	// DownloadFile streams the content at url into w and returns the number of bytes written
	DownloadFile(ctx context.Context, url *url.URL, w io.Writer) (int64, error)
}
