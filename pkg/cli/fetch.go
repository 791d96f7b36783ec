package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/artifetch/pkg/cli/config"
	"github.com/m-mizutani/artifetch/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdFetch() *cli.Command {
	var (
		githubCfg    config.GitHub
		workspaceCfg config.Workspace
		filterCfg    config.Filter
		runID        int64
	)

	flags := append(githubCfg.Flags(), workspaceCfg.Flags()...)
	flags = append(flags, filterCfg.Flags()...)
	flags = append(flags, runIDFlag(&runID))

	return &cli.Command{
		Name:      "fetch",
		Aliases:   []string{"f"},
		Usage:     "Download the artifacts of a run and extract them",
		ArgsUsage: "[RUN_ID]",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			// Credential is checked before anything touches the network
			client, err := githubCfg.NewClient()
			if err != nil {
				return err
			}

			id, err := resolveRunID(c, runID)
			if err != nil {
				return err
			}

			logger.Debug("Starting fetch",
				slog.Any("github", githubCfg),
				slog.Any("workspace", workspaceCfg),
				slog.Any("excludes", filterCfg.Excludes),
				slog.Int64("run_id", int64(id)),
			)

			fetchUC := usecase.NewFetch(client, usecase.NewWorkspace(), usecase.NewExtract(),
				usecase.WithRepository(githubCfg.Repository()),
				usecase.WithFilter(filterCfg.Filter()),
			)

			result, err := fetchUC.Run(ctx, workspaceCfg.Workspace(), id)
			if err != nil {
				return goerr.Wrap(err, "failed to fetch artifacts", goerr.V("run_id", id))
			}

			printFetchResult(c.Root().Writer, result)
			logger.Info("Fetch complete",
				"downloaded", len(result.Downloaded),
				"skipped", len(result.Skipped),
				"extracted", len(result.Extracted),
				"output_dir", workspaceCfg.OutputDir,
			)
			return nil
		},
	}
}
