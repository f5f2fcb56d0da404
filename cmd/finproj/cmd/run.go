package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/finkit/finproj/internal/config"
	"github.com/finkit/finproj/internal/logging"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run [scenario-file]",
		Short: "Run every scenario of a YAML or JSON batch file",
		Long: `Run a batch of named scenarios. The file's rules section replaces the
configured calculation rules; unset rules take the built-in defaults.

Example:
  finproj run scenarios.yaml --format xlsx --output-dir reports`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			batch, err := parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			logging.Info("running scenario batch", zap.String("file", args[0]), zap.Int("scenarios", len(batch.Scenarios)))

			report, err := opts.engine(batch.Rules).RunScenarios(cmd.Context(), batch.Scenarios)
			if err != nil {
				return err
			}
			return opts.emit(cmd, report)
		},
	}
}

func newExampleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "example [file]",
		Short: "Write an example scenario file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "example_scenarios.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			parser := config.NewInputParser()
			if err := config.SaveConfiguration(parser.CreateExampleConfiguration(), path); err != nil {
				return fmt.Errorf("failed to write example: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example scenarios written to %s\n", path)
			return nil
		},
	}
}
