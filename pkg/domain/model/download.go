package model

// DownloadResult represents one artifact written to the input directory
type DownloadResult struct {
	Artifact *Artifact
	Path     string // Path of the written .zip file
	Size     int64  // Bytes written
}

// ExtractResult represents the result of extracting one archive
type ExtractResult struct {
	Archive string   // Path to the source archive
	Files   []string // List of extracted files, in output directory
	Size    int64    // Total size in bytes
}

// FetchResult summarizes a networked run
type FetchResult struct {
	Downloaded []*DownloadResult
	Skipped    []*Artifact
	Extracted  []*ExtractResult
}
