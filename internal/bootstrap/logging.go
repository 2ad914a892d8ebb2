package bootstrap

import (
	"io"
	"log/slog"

	"github.com/boolean-maybe/tagfilter/config"
)

// InitLogging installs the default slog logger at the configured level.
// Output goes to w so stdout stays reserved for the report.
func InitLogging(cfg *config.Config, w io.Writer) slog.Level {
	level, _ := config.ParseLogLevel(cfg.Logging.Level)
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return level
}
