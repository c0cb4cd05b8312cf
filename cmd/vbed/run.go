package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loomcraft/vbed"
	"github.com/loomcraft/vbed/internal/presentation/tui"
)

// runCmd executes a pattern file against a fresh machine.
var runCmd = &cobra.Command{
	Use:   "run <pattern.yaml>",
	Short: "Execute a knitting pattern",
	Long:  `Parses a YAML pattern file and executes its operations against a fresh machine, printing the resulting bed state.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runPattern(cmd, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("save", "", "Save the final machine state under this session ID")
	runCmd.Flags().Bool("quiet", false, "Suppress the bed view")
}

func runPattern(cmd *cobra.Command, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	logger := newLogger(cmd)
	opts := []vbed.Option{vbed.WithLogger(logger)}

	sessionID, _ := cmd.Flags().GetString("save")
	if sessionID != "" {
		store, err := newStore(cmd)
		if err != nil {
			return err
		}
		opts = append(opts, vbed.WithStore(store))
	}

	sim, report, err := vbed.RunPattern(cmd.Context(), src, opts...)
	if err != nil {
		return err
	}

	fmt.Printf("executed %d operations over %d passes\n", report.Executed, report.Passes)

	quiet, _ := cmd.Flags().GetBool("quiet")
	if !quiet {
		renderer := tui.NewPlainRenderer()
		if tui.IsInteractive(os.Stdout) {
			renderer = tui.NewRenderer()
		}
		fmt.Print(renderer.RenderBeds(sim.Machine()))
	}

	if sessionID != "" {
		if err := sim.SaveSnapshot(cmd.Context(), sessionID); err != nil {
			return err
		}
		fmt.Printf("saved session %q\n", sessionID)
	}
	return nil
}
