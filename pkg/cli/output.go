package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/m-mizutani/artifetch/pkg/domain/model"
)

var (
	skipColor = color.New(color.FgYellow)
	keepColor = color.New(color.FgGreen)
)

func printArtifacts(w io.Writer, kept, skipped []*model.Artifact) {
	for _, a := range kept {
		keepColor.Fprintf(w, "  keep  ")
		fmt.Fprintf(w, "%-40s id=%d size=%s\n", a.Name, a.ID, humanize.Bytes(uint64(a.SizeInBytes)))
	}
	for _, a := range skipped {
		skipColor.Fprintf(w, "  skip  ")
		fmt.Fprintf(w, "%-40s id=%d\n", a.Name, a.ID)
	}
}

func printExtracted(w io.Writer, results []*model.ExtractResult) {
	for _, r := range results {
		for _, f := range r.Files {
			fmt.Fprintf(w, "%s -> %s\n", r.Archive, f)
		}
	}
}

func printFetchResult(w io.Writer, result *model.FetchResult) {
	kept := make([]*model.Artifact, 0, len(result.Downloaded))
	for _, d := range result.Downloaded {
		kept = append(kept, d.Artifact)
	}
	printArtifacts(w, kept, result.Skipped)
	printExtracted(w, result.Extracted)
}
