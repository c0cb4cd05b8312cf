package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/loomcraft/vbed"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of vbed",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vbed version %s\n", strings.TrimSpace(vbed.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
