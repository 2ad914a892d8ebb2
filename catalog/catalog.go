// Package catalog loads the tagged test items a filter is applied to.
package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/boolean-maybe/tagfilter/tagexpr"
)

// Item is one selectable test item (a scenario, a test case) and its tags
type Item struct {
	Name string   `yaml:"name"`
	Tags []string `yaml:"tags,omitempty"`
	File string   `yaml:"file,omitempty"`
	Line int      `yaml:"line,omitempty"`
}

// TagSet returns the item's tags in the form the evaluator consumes
func (i Item) TagSet() tagexpr.TagSet {
	return tagexpr.NewTagSet(i.Tags...)
}

// Location renders file:line when known, otherwise the empty string
func (i Item) Location() string {
	switch {
	case i.File == "":
		return ""
	case i.Line > 0:
		return fmt.Sprintf("%s:%d", i.File, i.Line)
	default:
		return i.File
	}
}

// catalogFile represents the YAML structure of a catalog file
type catalogFile struct {
	Items []Item `yaml:"items"`
}

// Parse parses catalog YAML data. Tags are trimmed and blank tags dropped;
// an item without a name is an error.
func Parse(data []byte) ([]Item, error) {
	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}

	items := make([]Item, 0, len(cf.Items))
	for i, item := range cf.Items {
		item.Name = strings.TrimSpace(item.Name)
		if item.Name == "" {
			return nil, fmt.Errorf("item #%d has no name", i+1)
		}
		item.Tags = normalizeTags(item.Tags)
		items = append(items, item)
	}
	return items, nil
}

// LoadFile reads and parses a catalog file
func LoadFile(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	items, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	slog.Debug("loaded catalog", "path", path, "items", len(items))
	return items, nil
}

func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := tags[:0]
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
