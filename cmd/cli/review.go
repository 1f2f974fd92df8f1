package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sevigo/wizpro/internal/client"
	"github.com/sevigo/wizpro/internal/core"
	"github.com/sevigo/wizpro/internal/mockreview"
	"github.com/sevigo/wizpro/internal/render"
)

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	infoColor    = color.New(color.FgWhite)
	dimColor     = color.New(color.FgHiBlack)
	boldColor    = color.New(color.Bold)
)

var (
	showPanels bool
	showRaw    bool
	wrapWidth  int
)

var reviewCmd = &cobra.Command{
	Use:   "review [file]",
	Short: "Request an AI review of a file",
	Long: `Send a file (or standard input) to the review backend and print the review.

The language is taken from --language or the file extension. When the backend
is unreachable an offline heuristic review is printed instead.

Examples:
  wizpro review main.go
  cat app.js | wizpro review --language javascript
  wizpro review --backend http://localhost:3000/ai --panels handler.py`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReview,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	addOutputFlags(reviewCmd)
	rootCmd.AddCommand(reviewCmd)
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&showPanels, "panels", false, "Print the issue and suggestion panels instead of the formatted markdown")
	cmd.Flags().BoolVar(&showRaw, "raw", false, "Print the review markdown unformatted")
	cmd.Flags().IntVarP(&wrapWidth, "width", "w", 100, "Wrap width of the formatted review")
}

func runReview(cmd *cobra.Command, args []string) error {
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
	c, err := client.New(client.Config{BackendURL: clientCfg.BackendURL, Timeout: clientCfg.Timeout}, reviewer, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	titleColor.Println("WiZpro code review")
	dimColor.Printf("   %s (%s) -> %s\n\n", name, lang, c.Endpoint())

	start := time.Now()
	outcome, err := c.SubmitReview(ctx, code, lang)
	if err != nil {
		var serr *client.ServerError
		if errors.As(err, &serr) {
			return fmt.Errorf("the review backend answered %d: %s", serr.Status, serr.Message)
		}
		return err
	}

	if outcome.Notice != "" {
		warnColor.Println(outcome.Notice)
		fmt.Println()
	}
	printReview(outcome.Review)
	if verbose {
		dimColor.Printf("\nTotal time: %s (%s)\n", time.Since(start).Round(time.Millisecond), outcome.Source)
	}
	return nil
}

func printReview(review core.Review) {
	switch {
	case showRaw:
		fmt.Print(review.Markdown)
	case showPanels:
		printPanels(review)
	default:
		fmt.Print(render.Markdown(review.Markdown, wrapWidth, clientCfg.Style))
	}
}

func printPanels(review core.Review) {
	separator := strings.Repeat("=", 60)
	thinSeparator := strings.Repeat("-", 60)

	titleColor.Println(separator)
	if review.Score != nil {
		titleColor.Printf("REVIEW  score %d/100\n", *review.Score)
	} else {
		titleColor.Println("REVIEW")
	}
	titleColor.Println(separator)
	if review.Summary != "" {
		fmt.Println()
		infoColor.Println(review.Summary)
	}

	if len(review.Issues) == 0 {
		fmt.Println()
		successColor.Println("No issues found!")
	} else {
		fmt.Println()
		warnColor.Println(thinSeparator)
		warnColor.Printf("ISSUES (%d)\n", len(review.Issues))
		warnColor.Println(thinSeparator)
		for _, issue := range review.Issues {
			printSeverityBadge(issue.Severity)
			if issue.Line > 0 {
				boldColor.Printf(" line %d", issue.Line)
			}
			infoColor.Printf("  %s\n", issue.Message)
		}
	}

	printList("POSITIVE ASPECTS", review.Positives, successColor)
	if review.Structure != "" {
		fmt.Println()
		dimColor.Println("CODE STRUCTURE")
		infoColor.Println(review.Structure)
	}
	printList("SUGGESTIONS", review.Suggestions, titleColor)
	fmt.Println()
}

func printList(title string, items []string, c *color.Color) {
	if len(items) == 0 {
		return
	}
	fmt.Println()
	c.Printf("%s (%d)\n", title, len(items))
	for _, item := range items {
		infoColor.Printf("  - %s\n", item)
	}
}

func printSeverityBadge(severity core.Severity) {
	label := strings.ToUpper(string(severity))
	switch severity {
	case core.SeverityHigh:
		color.New(color.BgHiRed, color.FgWhite).Printf(" %s ", label)
	case core.SeverityMedium:
		color.New(color.BgYellow, color.FgBlack).Printf(" %s ", label)
	case core.SeverityLow:
		color.New(color.BgGreen, color.FgWhite).Printf(" %s ", label)
	default:
		color.New(color.BgWhite, color.FgBlack).Printf(" %s ", label)
	}
}
