// Package report renders a selection result for humans and machines.
package report

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/boolean-maybe/tagfilter/config"
	"github.com/boolean-maybe/tagfilter/selection"
)

// Options controls how a result is written
type Options struct {
	Format   string           // config.FormatPlain, config.FormatYAML or config.FormatMarkdown
	RunID    string           // included in every format
	Markdown MarkdownRenderer // applied to markdown output; nil writes raw markdown
}

// yamlReport is the document written for the yaml format
type yamlReport struct {
	Run              string `yaml:"run"`
	selection.Result `yaml:",inline"`
}

// Render writes result to w in the requested format
func Render(w io.Writer, result *selection.Result, opts Options) error {
	switch opts.Format {
	case config.FormatPlain, "":
		return renderPlain(w, result, opts.RunID)
	case config.FormatYAML:
		return renderYAML(w, result, opts.RunID)
	case config.FormatMarkdown:
		return renderMarkdown(w, result, opts)
	default:
		return fmt.Errorf("unknown report format: %s", opts.Format)
	}
}

func renderPlain(w io.Writer, result *selection.Result, runID string) error {
	var sb strings.Builder
	total := len(result.Matched) + result.Skipped

	fmt.Fprintf(&sb, "run %s\n", runID)
	fmt.Fprintf(&sb, "filter: %s\n", result.Filter)
	fmt.Fprintf(&sb, "selected %d of %d items\n", len(result.Matched), total)
	for _, item := range result.Matched {
		fmt.Fprintf(&sb, "  %s", item.Name)
		if len(item.Tags) > 0 {
			fmt.Fprintf(&sb, "  [%s]", strings.Join(item.Tags, " "))
		}
		if loc := item.Location(); loc != "" {
			fmt.Fprintf(&sb, "  %s", loc)
		}
		sb.WriteByte('\n')
	}
	for _, v := range result.Violations {
		fmt.Fprintf(&sb, "limit exceeded: %s used %d times, limit %d (%s)\n",
			v.Tag, v.Count, v.Limit, strings.Join(v.Items, ", "))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func renderYAML(w io.Writer, result *selection.Result, runID string) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlReport{Run: runID, Result: *result}); err != nil {
		return fmt.Errorf("encoding yaml report: %w", err)
	}
	return enc.Close()
}

func renderMarkdown(w io.Writer, result *selection.Result, opts Options) error {
	md := Markdown(result, opts.RunID)

	out := md
	if opts.Markdown != nil {
		rendered, err := opts.Markdown.Render(md)
		if err != nil {
			// raw markdown is still readable
			slog.Warn("failed to render markdown report", "error", err)
		} else {
			out = rendered
		}
	}

	_, err := io.WriteString(w, out)
	return err
}

// Markdown builds the markdown form of a report
func Markdown(result *selection.Result, runID string) string {
	var sb strings.Builder
	total := len(result.Matched) + result.Skipped

	fmt.Fprintf(&sb, "# Tag selection `%s`\n\n", runID)
	fmt.Fprintf(&sb, "**Filter:** `%s`\n\n", result.Filter)
	fmt.Fprintf(&sb, "Selected **%d** of **%d** items.\n\n", len(result.Matched), total)

	if len(result.Matched) > 0 {
		sb.WriteString("| Item | Tags | Location |\n")
		sb.WriteString("|---|---|---|\n")
		for _, item := range result.Matched {
			tags := make([]string, len(item.Tags))
			for i, tag := range item.Tags {
				tags[i] = codeSpan(tag)
			}
			fmt.Fprintf(&sb, "| %s | %s | %s |\n",
				escapeCell(item.Name), strings.Join(tags, " "), escapeCell(item.Location()))
		}
		sb.WriteByte('\n')
	}

	if len(result.Limits) > 0 {
		violated := make(map[string]bool, len(result.Violations))
		for _, v := range result.Violations {
			violated[v.Tag] = true
		}

		tags := make([]string, 0, len(result.Limits))
		for tag := range result.Limits {
			tags = append(tags, tag)
		}
		sort.Strings(tags)

		sb.WriteString("## Limits\n\n")
		sb.WriteString("| Tag | Limit | Count | Status |\n")
		sb.WriteString("|---|---|---|---|\n")
		for _, tag := range tags {
			status := "ok"
			if violated[tag] {
				status = "**exceeded**"
			}
			fmt.Fprintf(&sb, "| `%s` | %d | %d | %s |\n", tag, result.Limits[tag], result.Counts[tag], status)
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// codeSpan wraps s in a markdown code span safe for a table cell. A tag
// containing a backtick gets a double backtick delimiter.
func codeSpan(s string) string {
	s = escapeCell(s)
	if strings.Contains(s, "`") {
		return "`` " + s + " ``"
	}
	return "`" + s + "`"
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
