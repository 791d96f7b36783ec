package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/artifetch/pkg/cli/config"
	"github.com/m-mizutani/artifetch/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	// .env is optional, values already in the environment win
	_ = godotenv.Load()

	var loggerCfg config.Logger
	var logger *slog.Logger

	app := &cli.Command{
		Name:    "artifetch",
		Usage:   "Download and extract GitHub Actions artifacts of a workflow run",
		Version: types.Version,
		Flags:   loggerCfg.Flags(),
		Writer:  os.Stdout,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdFetch(),
			cmdList(),
			cmdExtract(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}
