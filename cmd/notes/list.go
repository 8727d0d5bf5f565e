package main

import (
	"github.com/aretw0/notes/pkg/core"
	"github.com/aretw0/notes/pkg/render"
	"github.com/spf13/cobra"
)

var (
	listTag  string
	listJSON bool
)

// allCmd represents the all command
var allCmd = &cobra.Command{
	Use:   "all",
	Short: "List all notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		svc, err := openStore(false)
		if err != nil {
			return err
		}

		list, err := svc.ListAll(cmd.Context())
		if err != nil {
			return err
		}
		return printNotes(cmd, list)
	},
}

// findCmd represents the find command
var findCmd = &cobra.Command{
	Use:   "find <filter>",
	Short: "Find notes whose content contains filter",
	Long: `Find notes whose content contains the given text.
The match is case sensitive; an empty filter matches every note.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		svc, err := openStore(false)
		if err != nil {
			return err
		}

		list, err := svc.Find(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printNotes(cmd, list)
	},
}

// printNotes applies --tag and writes the list in the selected format.
func printNotes(cmd *cobra.Command, list []core.Note) error {
	if listTag != "" {
		filtered, err := core.FilterTags(list, listTag)
		if err != nil {
			return err
		}
		list = filtered
	}

	if listJSON {
		return render.JSON(cmd.OutOrStdout(), list)
	}
	return render.Notes(cmd.OutOrStdout(), list)
}

func init() {
	for _, c := range []*cobra.Command{allCmd, findCmd} {
		rootCmd.AddCommand(c)
		c.Flags().StringVar(&listTag, "tag", "", "Only notes with a tag matching this glob (e.g. work/**)")
		c.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	}
}
