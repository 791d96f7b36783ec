package cli

import (
	"os"
	"strconv"
	"strings"

	"github.com/m-mizutani/artifetch/pkg/domain/model"
	"github.com/m-mizutani/artifetch/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"
)

func runIDFlag(dst *int64) cli.Flag {
	return &cli.Int64Flag{
		Name:        "run-id",
		Aliases:     []string{"r"},
		Usage:       "Workflow run ID, prompted for when omitted on a terminal",
		Destination: dst,
		Sources:     cli.EnvVars("ARTIFETCH_RUN_ID"),
	}
}

func parseRunID(s string) (model.RunID, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, goerr.Wrap(types.ErrInvalidRunID, "run ID must be an integer", goerr.V("input", s))
	}
	if id <= 0 {
		return 0, goerr.Wrap(types.ErrInvalidRunID, "run ID must be positive", goerr.V("input", s))
	}
	return model.RunID(id), nil
}

// resolveRunID takes the run ID from the flag, then the first argument, then an interactive prompt
func resolveRunID(c *cli.Command, flagValue int64) (model.RunID, error) {
	if flagValue != 0 {
		return parseRunID(strconv.FormatInt(flagValue, 10))
	}
	if arg := c.Args().First(); arg != "" {
		return parseRunID(arg)
	}

	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return 0, goerr.Wrap(types.ErrInvalidRunID, "run ID is required, use --run-id")
	}

	prompt := promptui.Prompt{
		Label: "Run ID",
		Validate: func(input string) error {
			_, err := parseRunID(input)
			return err
		},
	}
	input, err := prompt.Run()
	if err != nil {
		return 0, goerr.Wrap(err, "failed to read run ID")
	}

	return parseRunID(input)
}
