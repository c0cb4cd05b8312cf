package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loomcraft/vbed"
	"github.com/loomcraft/vbed/internal/presentation/tui"
	"github.com/loomcraft/vbed/pkg/machine"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage saved machine sessions",
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved sessions",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := newStore(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		sessions, err := store.List(cmd.Context())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(sessions) == 0 {
			fmt.Println("no saved sessions")
			return
		}
		for _, id := range sessions {
			fmt.Println(id)
		}
	},
}

var sessionShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Render the bed state of a saved session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := showSession(cmd, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a saved session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := newStore(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := store.Delete(cmd.Context(), args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("deleted session %q\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionDeleteCmd)
}

func showSession(cmd *cobra.Command, sessionID string) error {
	store, err := newStore(cmd)
	if err != nil {
		return err
	}

	// The initial config is irrelevant: LoadSnapshot replaces the
	// machine with the stored one.
	sim, err := vbed.New(machine.DefaultConfig(), vbed.WithStore(store), vbed.WithLogger(newLogger(cmd)))
	if err != nil {
		return err
	}
	if err := sim.LoadSnapshot(cmd.Context(), sessionID); err != nil {
		return err
	}

	renderer := tui.NewPlainRenderer()
	if tui.IsInteractive(os.Stdout) {
		renderer = tui.NewRenderer()
	}
	fmt.Print(renderer.RenderBeds(sim.Machine()))
	return nil
}
