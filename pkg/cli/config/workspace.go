package config

import (
	"github.com/m-mizutani/artifetch/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// Workspace holds the working directory configuration
type Workspace struct {
	InputDir  string
	OutputDir string
}

// Flags returns CLI flags for workspace configuration
func (c *Workspace) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "input-dir",
			Aliases:     []string{"i"},
			Usage:       "Directory holding downloaded .zip files",
			Value:       "dist",
			Destination: &c.InputDir,
			Sources:     cli.EnvVars("ARTIFETCH_INPUT_DIR"),
		},
		&cli.StringFlag{
			Name:        "output-dir",
			Aliases:     []string{"o"},
			Usage:       "Directory receiving extracted files",
			Value:       "extracted",
			Destination: &c.OutputDir,
			Sources:     cli.EnvVars("ARTIFETCH_OUTPUT_DIR"),
		},
	}
}

// Workspace returns the configured directory pair
func (c *Workspace) Workspace() model.Workspace {
	return model.Workspace{
		InputDir:  c.InputDir,
		OutputDir: c.OutputDir,
	}
}
