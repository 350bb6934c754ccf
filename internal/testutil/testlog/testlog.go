package testlog

import (
	"testing"

	"github.com/danmuck/bitsctl/internal/logging"
	"github.com/rs/zerolog/log"
)

// Start configures test logging and records the running test name.
func Start(t *testing.T) {
	t.Helper()
	logging.ConfigureTests()
	log.Debug().Str("test", t.Name()).Msg("start")
}
