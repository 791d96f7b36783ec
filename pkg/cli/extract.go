package cli

import (
	"context"

	"github.com/m-mizutani/artifetch/pkg/cli/config"
	"github.com/m-mizutani/artifetch/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdExtract() *cli.Command {
	var workspaceCfg config.Workspace

	return &cli.Command{
		Name:    "extract",
		Aliases: []string{"x"},
		Usage:   "Extract .zip files already in the input directory",
		Flags:   workspaceCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			// The input directory is filled by hand in this mode, only the output is reset
			if err := usecase.NewWorkspace().Prepare(ctx, workspaceCfg.OutputDir); err != nil {
				return goerr.Wrap(err, "failed to prepare output directory")
			}

			results, err := usecase.NewExtract().ExtractAll(ctx, workspaceCfg.InputDir, workspaceCfg.OutputDir)
			if err != nil {
				return err
			}

			printExtracted(c.Root().Writer, results)
			logger.Info("Extraction complete",
				"archives", len(results),
				"output_dir", workspaceCfg.OutputDir,
			)
			return nil
		},
	}
}
