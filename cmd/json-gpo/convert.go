package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dooblpls/json-gpo/pkg/adml"
	"github.com/dooblpls/json-gpo/pkg/admx/ast"
	"github.com/dooblpls/json-gpo/pkg/admx/collector"
	admxerrors "github.com/dooblpls/json-gpo/pkg/admx/errors"
	"github.com/dooblpls/json-gpo/pkg/admx/hierarchy"
	"github.com/dooblpls/json-gpo/pkg/admx/parser"
	"github.com/dooblpls/json-gpo/pkg/config"
	"github.com/dooblpls/json-gpo/pkg/output"
	"github.com/dooblpls/json-gpo/pkg/projector"
	"github.com/dooblpls/json-gpo/pkg/telemetry/logging"
	"github.com/dooblpls/json-gpo/pkg/telemetry/metrics"
)

var convertFlags struct {
	source   string
	out      string
	langs    []string
	maxDepth int
	sqlite   bool
	sqliteDB string
	logLevel string
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a policy template tree to JSON",
	Long: `Convert a policy template tree into one JSON document per language.

The source tree is scanned recursively for definition files (*.admx), the
category and policy graph is resolved once, and each requested language is
projected using the resource files (*.adml) found in its language
subdirectories. Languages without resource files are skipped with a warning.

Examples:
  # Convert for English and German
  json-gpo convert --source ./PolicyDefinitions --out ./out --lang en-US --lang de-DE

  # Also mirror everything into a SQLite database
  json-gpo convert --source ./PolicyDefinitions --out ./out --sqlite

  # Drive a run from a config file, overriding the output directory
  json-gpo convert --config run.yaml --out /tmp/out`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertFlags.source, "source", "s", "", "source tree with definition files")
	convertCmd.Flags().StringVarP(&convertFlags.out, "out", "o", "", "output directory")
	convertCmd.Flags().StringArrayVarP(&convertFlags.langs, "lang", "l", nil, "language tag to project (repeatable)")
	convertCmd.Flags().IntVar(&convertFlags.maxDepth, "max-depth", 0, "maximum category nesting depth")
	convertCmd.Flags().BoolVar(&convertFlags.sqlite, "sqlite", false, "also write a SQLite database")
	convertCmd.Flags().StringVar(&convertFlags.sqliteDB, "sqlite-db", "", "SQLite database path")
	convertCmd.Flags().StringVar(&convertFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := buildRunConfig()
	if err != nil {
		return err
	}
	return runConversion(cmd.Context(), cfg, cmd.OutOrStdout())
}

// buildRunConfig loads the config file when one was given and layers the
// command-line flags on top. Flags always win over file and environment.
func buildRunConfig() (*config.Config, error) {
	var cfg *config.Config
	if cfgFile != "" {
		loaded, err := config.LoadConfigWithEnvOverrides(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	if convertFlags.source != "" {
		cfg.Source.Root = convertFlags.source
	}
	if convertFlags.out != "" {
		cfg.Output.Dir = convertFlags.out
	}
	if len(convertFlags.langs) > 0 {
		cfg.Source.Languages = convertFlags.langs
	}
	if convertFlags.maxDepth > 0 {
		cfg.Limits.MaxDepth = convertFlags.maxDepth
	}
	if convertFlags.sqlite {
		cfg.Output.SQLite.Enabled = true
	}
	if convertFlags.sqliteDB != "" {
		cfg.Output.SQLite.Path = convertFlags.sqliteDB
	}
	if convertFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = convertFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runConversion executes one full conversion run against the given
// configuration, writing the end-of-run summary to out.
func runConversion(ctx context.Context, cfg *config.Config, out io.Writer) error {
	logger, err := logging.New(logging.Config{
		Level:  cfg.Telemetry.Logging.Level,
		Format: cfg.Telemetry.Logging.Format,
	})
	if err != nil {
		return err
	}

	runID := uuid.New().String()
	log := logger.With("run_id", runID)
	mc := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	started := time.Now()

	log.Info("conversion started",
		"source", cfg.Source.Root,
		"languages", cfg.Source.Languages,
		"output", cfg.Output.Dir)

	// Collect every definition file into the run arena.
	arena := ast.NewArena()
	stage := time.Now()
	col := collector.New(arena, log).
		WithParser(parser.NewParser().WithMaxFileSize(cfg.Source.MaxFileSize))
	found, err := col.CollectDir(cfg.Source.Root)
	if err != nil {
		return fmt.Errorf("scanning source root: %w", err)
	}
	if found == 0 {
		return fmt.Errorf("no policy definition files found under %s", cfg.Source.Root)
	}
	mc.ObserveStage("collect", time.Since(stage))

	skipped := len(arena.Report.ByType(admxerrors.WarningSourceFileError))
	if skipped > found {
		skipped = found
	}
	mc.RecordFiles("parsed", found-skipped)
	mc.RecordFiles("skipped", skipped)
	mc.RecordDefinitions("supported_on", len(arena.SupportedOn))
	mc.RecordDefinitions("category", len(arena.Categories))
	mc.RecordDefinitions("policy", len(arena.Policies))

	// Resolve the category/policy graph once; every language shares it.
	stage = time.Now()
	hierarchy.New(arena, log).WithMaxDepth(cfg.Limits.MaxDepth).Resolve()
	mc.ObserveStage("link", time.Since(stage))
	mc.SetGraphSize(len(arena.Categories), len(arena.Policies))

	loader := adml.NewLoader(arena, log).WithMaxFileSize(cfg.Source.MaxFileSize)
	proj := projector.New(arena, log)
	jsonWriter := output.NewJSONWriter(cfg.Output.Dir, arena.Report, log).
		WithMaxDepth(cfg.Limits.MaxDepth)

	var dbWriter *output.SQLiteWriter
	if cfg.Output.SQLite.Enabled {
		if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		dbWriter, err = output.NewSQLiteWriterWithConfig(output.SQLiteWriterConfig{
			DBPath:      cfg.Output.SQLite.Path,
			BusyTimeout: cfg.Output.SQLite.BusyTimeout,
		})
		if err != nil {
			return fmt.Errorf("opening sqlite sink: %w", err)
		}
		defer dbWriter.Close()
	}

	projected := 0
	for _, lang := range cfg.Source.Languages {
		stage = time.Now()
		res, ok := loader.LoadLanguage(cfg.Source.Root, lang)
		if !ok {
			continue
		}
		set := proj.Project(res)
		mc.ObserveStage("project", time.Since(stage))

		stage = time.Now()
		path, err := jsonWriter.Write(set)
		if err != nil {
			return fmt.Errorf("writing %s: %w", lang, err)
		}
		if dbWriter != nil {
			if err := dbWriter.WriteSet(ctx, set); err != nil {
				return fmt.Errorf("writing %s to sqlite: %w", lang, err)
			}
		}
		mc.ObserveStage("write", time.Since(stage))
		mc.RecordLanguage()
		projected++

		log.Info("language written", "language", lang, "path", path)
	}

	for warnType, count := range arena.Report.CountsByType() {
		mc.RecordWarnings(string(warnType), count)
	}

	printSummary(out, cfg, arena, found, skipped, projected, time.Since(started))
	log.Info("conversion finished",
		"languages", projected,
		"warnings", arena.Report.Count(),
		"elapsed", time.Since(started))
	return nil
}

// printSummary writes the human-readable end-of-run report.
func printSummary(out io.Writer, cfg *config.Config, arena *ast.Arena, found, skipped, projected int, elapsed time.Duration) {
	fmt.Fprintf(out, "Converted %d definition file(s) (%d skipped) in %s\n",
		found, skipped, elapsed.Round(time.Millisecond))
	fmt.Fprintf(out, "  categories: %d  policies: %d  supported-on: %d\n",
		len(arena.Categories), len(arena.Policies), len(arena.SupportedOn))
	fmt.Fprintf(out, "  languages written: %d of %d requested\n",
		projected, len(cfg.Source.Languages))

	if !arena.Report.HasWarnings() {
		fmt.Fprintln(out, "  warnings: none")
		return
	}

	counts := arena.Report.CountsByType()
	types := make([]string, 0, len(counts))
	for warnType := range counts {
		types = append(types, string(warnType))
	}
	sort.Strings(types)

	fmt.Fprintf(out, "  warnings: %d\n", arena.Report.Count())
	for _, warnType := range types {
		fmt.Fprintf(out, "    %-28s %d\n", warnType, counts[admxerrors.WarningType(warnType)])
	}
}
