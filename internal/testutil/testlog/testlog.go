package testlog

import (
	"testing"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/noddictl/internal/observability"
)

func Start(t *testing.T) {
	t.Helper()
	observability.ConfigureTests()
	log.Info().Str("test", t.Name()).Msg("start")
}
