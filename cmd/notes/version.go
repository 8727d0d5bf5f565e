package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/notes"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of notes",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "notes version %s\n", strings.TrimSpace(notes.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
