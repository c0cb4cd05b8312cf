package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loomcraft/vbed"
	"github.com/loomcraft/vbed/internal/compiler"
	"github.com/loomcraft/vbed/pkg/runner"
)

// validateCmd dry-runs a pattern and reports every rejection instead
// of stopping at the first one.
var validateCmd = &cobra.Command{
	Use:   "validate <pattern.yaml>",
	Short: "Check a pattern for machine violations",
	Long:  `Parses a pattern file and dry-runs it, reporting every operation the machine would reject.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		failures, err := validatePattern(cmd.Context(), args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			os.Exit(1)
		}
		if len(failures) > 0 {
			for _, f := range failures {
				fmt.Printf("op %d (%s): %v\n", f.Index, f.Op, f.Err)
			}
			fmt.Printf("%d operations rejected\n", len(failures))
			os.Exit(1)
		}
		fmt.Println("Pattern is valid!")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validatePattern(ctx context.Context, path string) ([]runner.Failure, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	pattern, err := compiler.NewParser().Parse(src)
	if err != nil {
		return nil, err
	}

	sim, err := vbed.New(pattern.Config)
	if err != nil {
		return nil, err
	}

	r := runner.New(runner.WithContinueOnError())
	report, err := r.Run(ctx, sim.Machine(), pattern.Ops)
	if err != nil {
		return nil, err
	}
	return report.Failures, nil
}
