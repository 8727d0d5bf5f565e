package main

import (
	"strings"

	"github.com/aretw0/notes/pkg/render"
	"github.com/spf13/cobra"
)

var (
	newTags string
)

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:   "new <note>",
	Short: "Create a new note",
	Long: `Create a new note with the given content.
Tags are passed as one space separated string: notes new "Buy milk" -t "home shopping".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		svc, err := openStore(false)
		if err != nil {
			return err
		}

		note, err := svc.Create(cmd.Context(), args[0], strings.Fields(newTags))
		if err != nil {
			return err
		}

		return render.Created(cmd.OutOrStdout(), note)
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringVarP(&newTags, "tags", "t", "", "Space separated tags")
}
