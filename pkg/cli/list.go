package cli

import (
	"context"

	"github.com/m-mizutani/artifetch/pkg/cli/config"
	"github.com/m-mizutani/artifetch/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdList() *cli.Command {
	var (
		githubCfg config.GitHub
		filterCfg config.Filter
		runID     int64
	)

	flags := append(githubCfg.Flags(), filterCfg.Flags()...)
	flags = append(flags, runIDFlag(&runID))

	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List the artifacts of a run without downloading",
		ArgsUsage: "[RUN_ID]",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			client, err := githubCfg.NewClient()
			if err != nil {
				return err
			}

			id, err := resolveRunID(c, runID)
			if err != nil {
				return err
			}

			// List does not touch the workspace
			fetchUC := usecase.NewFetch(client, nil, nil,
				usecase.WithRepository(githubCfg.Repository()),
				usecase.WithFilter(filterCfg.Filter()),
			)

			kept, skipped, err := fetchUC.List(ctx, id)
			if err != nil {
				return err
			}

			printArtifacts(c.Root().Writer, kept, skipped)
			return nil
		},
	}
}
