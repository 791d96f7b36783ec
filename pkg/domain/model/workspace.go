package model

// Workspace is the pair of local directories used by one run
type Workspace struct {
	InputDir  string // downloaded .zip files
	OutputDir string // extracted contents, flat
}
