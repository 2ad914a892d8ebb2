package config

// Viper configuration loader: reads tagfilter.yaml from the project, the user
// config directory or the current directory

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all application configuration loaded from tagfilter.yaml
type Config struct {
	// Logging configuration
	Logging struct {
		Level string `mapstructure:"level"` // "debug", "info", "warn", "error"
	} `mapstructure:"logging"`

	// Filter configuration: one entry per clause, as given with repeated --tags
	Filter struct {
		Tags []string `mapstructure:"tags"`
	} `mapstructure:"filter"`

	// Catalog configuration
	Catalog struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"catalog"`

	// Output configuration
	Output struct {
		Format string `mapstructure:"format"` // "plain", "yaml", "markdown"
		Theme  string `mapstructure:"theme"`  // "dark", "light", "auto"
	} `mapstructure:"output"`
}

// Output formats
const (
	FormatPlain    = "plain"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
)

var validFormats = []string{FormatPlain, FormatYAML, FormatMarkdown}

// clauseSeparator splits clauses supplied as a single string (environment
// variables). ',' already separates terms inside a clause.
const clauseSeparator = ";"

// NewFlagSet returns the command line flags understood by tagfilter
func NewFlagSet() *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(AppName, pflag.ContinueOnError)
	flagSet.SortFlags = false

	flagSet.StringArrayP("tags", "t", nil, "Tag clause, e.g. '@fast,@smoke' or '~@wip' (repeatable, clauses are ANDed)")
	flagSet.StringP("catalog", "c", "", "Path to the catalog of tagged items")
	flagSet.StringP("format", "f", "", "Output format (plain, yaml, markdown)")
	flagSet.String("config", "", "Path to a config file (overrides the search paths)")
	flagSet.String("log-level", "", "Log level (debug, info, warn, error)")
	flagSet.BoolP("version", "v", false, "Print version information and exit")

	return flagSet
}

// LoadConfig loads configuration from tagfilter.yaml
// Priority order (first found wins): project config → user config → current directory
// Environment variables (TAGFILTER_*) and flags from flagSet override file values.
// If tagfilter.yaml doesn't exist, it uses default values.
func LoadConfig(flagSet *pflag.FlagSet) (*Config, error) {
	// Reset viper to clear any previous configuration
	viper.Reset()

	viper.SetConfigName(AppName)

	explicitFile := ""
	if flagSet != nil {
		explicitFile, _ = flagSet.GetString("config")
	}
	if explicitFile != "" {
		viper.SetConfigFile(explicitFile)
		viper.SetConfigType("yaml")
	} else {
		// without a config type viper only matches tagfilter.<ext>, never the binary
		for _, dir := range GetConfigSearchPaths() {
			viper.AddConfigPath(dir)
		}
	}

	// Set default values
	setDefaults()

	// Read the config file (if it exists)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && explicitFile == "" {
			slog.Debug("no tagfilter.yaml found, using defaults",
				"project", GetProjectConfigFile(), "user", GetConfigFile())
		} else {
			slog.Error("error reading config file", "error", err)
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		slog.Debug("loaded configuration", "file", viper.ConfigFileUsed())
	}

	// Allow environment variables to override config file
	viper.SetEnvPrefix("TAGFILTER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if flagSet != nil {
		if err := bindFlags(flagSet); err != nil {
			slog.Warn("failed to bind command line flags", "error", err)
		}
	}

	// Unmarshal config into struct
	cfg := &Config{}
	decodeHook := viper.DecodeHook(mapstructure.StringToSliceHookFunc(clauseSeparator))
	if err := viper.Unmarshal(cfg, decodeHook); err != nil {
		slog.Error("failed to unmarshal config", "error", err)
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// --tags is applied verbatim: each occurrence is one clause, commas included
	if flagSet != nil && flagSet.Changed("tags") {
		tags, err := flagSet.GetStringArray("tags")
		if err != nil {
			return nil, fmt.Errorf("read --tags: %w", err)
		}
		cfg.Filter.Tags = tags
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Logging defaults
	viper.SetDefault("logging.level", "error")

	// Filter defaults: no clauses matches every item
	viper.SetDefault("filter.tags", []string{})

	// Catalog defaults
	viper.SetDefault("catalog.path", "")

	// Output defaults
	viper.SetDefault("output.format", FormatPlain)
	viper.SetDefault("output.theme", "auto")
}

// bindFlags binds supported command line flags to viper so they can override config values.
func bindFlags(flagSet *pflag.FlagSet) error {
	bindings := map[string]string{
		"logging.level": "log-level",
		"catalog.path":  "catalog",
		"output.format": "format",
	}
	for key, name := range bindings {
		flag := flagSet.Lookup(name)
		if flag == nil {
			continue
		}
		if err := viper.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if !slices.Contains(validFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format %q (want one of %s)", c.Output.Format, strings.Join(validFormats, ", "))
	}
	if _, ok := ParseLogLevel(c.Logging.Level); !ok {
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}
	return nil
}

// GetTheme returns the output theme setting
func GetTheme() string {
	theme := viper.GetString("output.theme")
	if theme == "" {
		return "auto"
	}
	return theme
}

// GetEffectiveTheme resolves "auto" to actual theme based on terminal detection
func GetEffectiveTheme() string {
	theme := GetTheme()
	if theme != "auto" {
		return theme
	}
	// Detect via COLORFGBG env var (format: "fg;bg")
	if colorfgbg := os.Getenv("COLORFGBG"); colorfgbg != "" {
		parts := strings.Split(colorfgbg, ";")
		if len(parts) >= 2 {
			// 0-7 = dark colors, 8+ = light colors
			if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil && bg >= 8 {
				return "light"
			}
		}
	}
	return "dark" // default fallback
}
