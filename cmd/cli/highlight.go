package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sevigo/wizpro/internal/highlight"
)

var highlightStyle string

var highlightCmd = &cobra.Command{
	Use:   "highlight [file]",
	Short: "Print a file with syntax highlighting",
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

		registry := highlight.NewRegistry(log)
		h, err := highlight.NewChroma(highlight.LexerName(lang), highlightStyle, highlight.DefaultFormatter)
		if err != nil {
			log.Warn("no highlighter for language, printing plain text", "language", lang, "error", err)
		} else {
			registry.Register(lang, h)
		}

		fmt.Fprintln(cmd.OutOrStdout(), registry.Highlight(code, lang))
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	highlightCmd.Flags().StringVarP(&highlightStyle, "style", "s", highlight.DefaultStyle, "Chroma style name")
	rootCmd.AddCommand(highlightCmd)
}
