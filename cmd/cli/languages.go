package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sevigo/wizpro/internal/core"
	"github.com/sevigo/wizpro/internal/editor"
)

var outputJSON bool

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the languages the editor and reviewer support",
	RunE: func(cmd *cobra.Command, _ []string) error {
		langs := core.Languages()

		if outputJSON {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(langs)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEXTENSION\tTEMPLATE LINES")
		for _, l := range langs {
			fmt.Fprintf(w, "%s\t%s\t.%s\t%d\n", l.ID, l.Name, l.Extension, strings.Count(editor.Template(l.ID), "\n")+1)
		}
		return w.Flush()
	},
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	languagesCmd.Flags().BoolVar(&outputJSON, "json", false, "Output languages as JSON")
	rootCmd.AddCommand(languagesCmd)
}
