package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/aretw0/notes/pkg/core"
	"github.com/aretw0/notes/pkg/render"
	"github.com/spf13/cobra"
)

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a note by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil || id < 0 {
			return fmt.Errorf("invalid note id %q: must be a non-negative integer", args[0])
		}
		cmd.SilenceUsage = true

		svc, err := openStore(false)
		if err != nil {
			return err
		}

		removed, err := svc.Remove(cmd.Context(), id)
		if errors.Is(err, core.ErrNotFound) {
			return render.Removed(cmd.OutOrStdout(), id, false)
		}
		if err != nil {
			return err
		}
		return render.Removed(cmd.OutOrStdout(), removed, true)
	},
}

// cleanCmd represents the clean command
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove all notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		svc, err := openStore(false)
		if err != nil {
			return err
		}
		if err := svc.RemoveAll(cmd.Context()); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "All notes removed.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(cleanCmd)
}
