package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dooblpls/json-gpo/pkg/admx/ast"
	"github.com/dooblpls/json-gpo/pkg/admx/collector"
	"github.com/dooblpls/json-gpo/pkg/admx/hierarchy"
	"github.com/dooblpls/json-gpo/pkg/telemetry/logging"
)

var lintFlags struct {
	source   string
	strict   bool
	format   string
	maxDepth int
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check a policy template tree without writing output",
	Long: `Check a policy template tree for structural problems.

The lint command collects every definition file and resolves the category
and policy graph, reporting the same warnings a conversion run would:
missing identifiers, duplicate definitions, unresolved references, and
structural ambiguities. No output files are written.

Examples:
  # Report problems in a tree
  json-gpo lint --source ./PolicyDefinitions

  # Fail on any warning (for CI)
  json-gpo lint --source ./PolicyDefinitions --strict

  # JSON output for tooling
  json-gpo lint --source ./PolicyDefinitions --format json`,
	RunE: runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.source, "source", "s", "", "source tree with definition files")
	lintCmd.Flags().BoolVar(&lintFlags.strict, "strict", false, "exit non-zero on any warning")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
	lintCmd.Flags().IntVar(&lintFlags.maxDepth, "max-depth", 0, "maximum category nesting depth")

	_ = lintCmd.MarkFlagRequired("source")
}

// lintReport is the machine-readable lint result.
type lintReport struct {
	Files      int           `json:"files"`
	Categories int           `json:"categories"`
	Policies   int           `json:"policies"`
	Warnings   []lintWarning `json:"warnings,omitempty"`
}

type lintWarning struct {
	Type    string `json:"type"`
	File    string `json:"file,omitempty"`
	Message string `json:"message"`
}

func runLint(cmd *cobra.Command, args []string) error {
	logger := logging.Discard()
	if verbose {
		var err error
		logger, err = logging.New(logging.Config{Level: "debug", Format: "text"})
		if err != nil {
			return err
		}
	}

	arena := ast.NewArena()
	found, err := collector.New(arena, logger).CollectDir(lintFlags.source)
	if err != nil {
		return fmt.Errorf("scanning source root: %w", err)
	}
	if found == 0 {
		return fmt.Errorf("no policy definition files found under %s", lintFlags.source)
	}

	resolver := hierarchy.New(arena, logger)
	if lintFlags.maxDepth > 0 {
		resolver.WithMaxDepth(lintFlags.maxDepth)
	}
	resolver.Resolve()

	report := lintReport{
		Files:      found,
		Categories: len(arena.Categories),
		Policies:   len(arena.Policies),
	}
	for _, w := range arena.Report.Warnings {
		report.Warnings = append(report.Warnings, lintWarning{
			Type:    string(w.Type),
			File:    w.File,
			Message: w.Message,
		})
	}

	out := cmd.OutOrStdout()
	switch lintFlags.format {
	case "json":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	case "text":
		fmt.Fprintf(out, "Checked %d definition file(s): %d categories, %d policies\n",
			report.Files, report.Categories, report.Policies)
		if len(report.Warnings) == 0 {
			fmt.Fprintln(out, "No warnings.")
		} else {
			fmt.Fprintf(out, "%d warning(s):\n", len(report.Warnings))
			for _, w := range report.Warnings {
				if w.File != "" {
					fmt.Fprintf(out, "  [%s] %s (%s)\n", w.Type, w.Message, w.File)
				} else {
					fmt.Fprintf(out, "  [%s] %s\n", w.Type, w.Message)
				}
			}
		}
	default:
		return fmt.Errorf("unsupported format: %s", lintFlags.format)
	}

	if lintFlags.strict && len(report.Warnings) > 0 {
		return fmt.Errorf("lint failed: %d warning(s)", len(report.Warnings))
	}
	return nil
}
