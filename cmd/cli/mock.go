package main

import (
	"github.com/spf13/cobra"

	"github.com/sevigo/wizpro/internal/mockreview"
	"github.com/sevigo/wizpro/internal/render"
)

var mockCmd = &cobra.Command{
	Use:   "mock [file]",
	Short: "Print the offline heuristic review of a file without contacting the backend",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, code, err := readSource(cmd, args)
		if err != nil {
			return err
		}
		lang, err := resolveLanguage(name)
		if err != nil {
			return err
		}

		reviewer, err := mockreview.New()
		if err != nil {
			return err
		}
		log.Debug("running offline review", "file", name, "language", lang)
		printReview(render.Parse(reviewer.Markdown(code, lang)))
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	addOutputFlags(mockCmd)
	rootCmd.AddCommand(mockCmd)
}
