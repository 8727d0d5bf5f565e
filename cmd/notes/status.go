package main

import (
	"github.com/aretw0/notes/pkg/render"
	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the note store",
	Long:  `Print the store file, format, note count and related state as JSON.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		svc, err := openStore(true)
		if err != nil {
			return err
		}
		// Load once so the repository reports a note count.
		if _, err := svc.ListAll(cmd.Context()); err != nil {
			return err
		}

		return render.JSON(cmd.OutOrStdout(), svc.State())
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
