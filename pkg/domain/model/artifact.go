package model

import (
	"path/filepath"
	"strings"

	"github.com/m-mizutani/artifetch/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// RunID identifies one workflow run whose artifacts are fetched
type RunID int64

// Repository represents a GitHub repository
type Repository struct {
	Owner string
	Name  string
}

// String returns "owner/name"
func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}

// Artifact represents a build artifact attached to a workflow run
type Artifact struct {
	ID          int64
	Name        string
	SizeInBytes int64
	Expired     bool
	DownloadURL string // archive_download_url, answers with a redirect
}

// FileName returns the local file name of the downloaded archive
func (a *Artifact) FileName() string {
	return a.Name + ".zip"
}

// Validate checks that the artifact name can be used as a plain file name
func (a *Artifact) Validate() error {
	if a.Name == "" || a.Name == "." || a.Name == ".." ||
		strings.ContainsAny(a.Name, `/\`) || filepath.Base(a.Name) != a.Name {
		return goerr.Wrap(types.ErrInvalidArtifactName, "artifact name can not be used as file name",
			goerr.V("id", a.ID),
			goerr.V("name", a.Name),
		)
	}
	return nil
}

// Filter decides which artifacts are skipped
type Filter struct {
	Excludes []string // substring markers, e.g. ".app"
}

// IsExcluded reports whether the name contains one of the exclusion markers
func (f Filter) IsExcluded(name string) bool {
	for _, marker := range f.Excludes {
		if marker != "" && strings.Contains(name, marker) {
			return true
		}
	}
	return false
}

// Split partitions artifacts into kept and skipped, preserving order
func (f Filter) Split(artifacts []*Artifact) (kept, skipped []*Artifact) {
	for _, a := range artifacts {
		if f.IsExcluded(a.Name) {
			skipped = append(skipped, a)
		} else {
			kept = append(kept, a)
		}
	}
	return kept, skipped
}
