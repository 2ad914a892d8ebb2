package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/boolean-maybe/tagfilter/catalog"
	"github.com/boolean-maybe/tagfilter/config"
	"github.com/boolean-maybe/tagfilter/internal/report"
	"github.com/boolean-maybe/tagfilter/selection"
	"github.com/boolean-maybe/tagfilter/tagexpr"
)

// Process exit codes
const (
	ExitOK            = 0
	ExitError         = 1 // configuration or catalog could not be read
	ExitUsage         = 2 // bad flags or a malformed --tags clause
	ExitLimitExceeded = 3 // selection succeeded but a tag limit was exceeded
)

// markdownWidth is the word wrap applied to rendered markdown reports
const markdownWidth = 100

// Run executes one tagfilter invocation and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	// Phase 1: Flags
	flagSet := config.NewFlagSet()
	flagSet.SetOutput(stderr)
	flagSet.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: %s [flags] [catalog.yaml]\n\n", config.AppName)
		flagSet.PrintDefaults()
	}
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return ExitOK
		}
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return ExitUsage
	}

	if showVersion, _ := flagSet.GetBool("version"); showVersion {
		_, _ = fmt.Fprintf(stdout, "%s version %s\ncommit: %s\nbuilt: %s\n",
			config.AppName, config.Version, config.GitCommit, config.BuildDate)
		return ExitOK
	}

	if flagSet.NArg() > 1 {
		_, _ = fmt.Fprintln(stderr, "error: expected at most one catalog argument")
		return ExitUsage
	}

	// Phase 2: Configuration and logging
	if err := config.InitPaths(); err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return ExitError
	}
	cfg, err := LoadConfig(flagSet)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return ExitError
	}
	InitLogging(cfg, stderr)

	runID := config.GenerateRunID()
	logger := slog.With("run_id", runID)

	// Phase 3: Filter compilation
	filter, err := tagexpr.New(cfg.Filter.Tags)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error: invalid --tags:", err)
		return ExitUsage
	}
	logger.Debug("compiled tag filter", "clauses", len(cfg.Filter.Tags), "filter", filter.String())

	// Phase 4: Catalog
	if cfg.Catalog.Path == "" {
		_, _ = fmt.Fprintln(stderr, "error: no catalog given (pass a path or set catalog.path)")
		return ExitUsage
	}
	items, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return ExitError
	}

	// Phase 5: Selection and report
	result := selection.Run(items, filter)

	opts := report.Options{Format: cfg.Output.Format, RunID: runID}
	if cfg.Output.Format == config.FormatMarkdown && report.IsTerminal(stdout) {
		opts.Markdown = newMarkdownRenderer()
	}
	if err := report.Render(stdout, result, opts); err != nil {
		logger.Error("failed to write report", "error", err)
		return ExitError
	}

	if !result.OK() {
		for _, v := range result.Violations {
			logger.Warn("tag limit exceeded", "tag", v.Tag, "limit", v.Limit, "count", v.Count)
		}
		return ExitLimitExceeded
	}
	return ExitOK
}

// newMarkdownRenderer tries glamour first and falls back to raw markdown
func newMarkdownRenderer() report.MarkdownRenderer {
	glamourRenderer, err := report.NewGlamourRenderer(config.GetEffectiveTheme(), markdownWidth)
	if err != nil {
		slog.Debug("glamour renderer unavailable, writing raw markdown", "error", err)
		return report.FallbackRenderer{}
	}
	return glamourRenderer
}
