package observability

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs the global console logger for the named tool.
func InitLogger(app string, cfg Config) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    cfg.NoColor,
	}
	zerolog.SetGlobalLevel(cfg.Level)
	ctx := zerolog.New(output).With().Str("app", app)
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	log.Logger = ctx.Logger()
	return log.Logger
}
