package config

import (
	"github.com/m-mizutani/artifetch/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// Filter holds artifact filter configuration
type Filter struct {
	Excludes []string
}

// Flags returns CLI flags for filter configuration
func (c *Filter) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "exclude",
			Aliases:     []string{"x"},
			Usage:       "Skip artifacts whose name contains this marker, can be repeated",
			Value:       []string{".app"},
			Destination: &c.Excludes,
			Sources:     cli.EnvVars("ARTIFETCH_EXCLUDE"),
		},
	}
}

// Filter returns the configured filter
func (c *Filter) Filter() model.Filter {
	return model.Filter{Excludes: c.Excludes}
}
