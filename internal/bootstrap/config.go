package bootstrap

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/boolean-maybe/tagfilter/config"
)

// LoadConfig loads the application configuration.
// A positional catalog argument overrides catalog.path.
// Returns an error if configuration loading fails.
func LoadConfig(flagSet *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.LoadConfig(flagSet)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	if flagSet.NArg() == 1 {
		cfg.Catalog.Path = flagSet.Arg(0)
	}
	return cfg, nil
}
