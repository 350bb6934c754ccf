package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/danmuck/bitsctl/internal/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestInitLoggerTagsApp(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	log.Logger = logging.New(logging.Config{Level: zerolog.InfoLevel, NoColor: true, Out: &buf})
	logger := InitLogger("bitsctl")
	logger.Info().Msg("ready")

	if !strings.Contains(buf.String(), "app=bitsctl") {
		t.Fatalf("missing app field: %q", buf.String())
	}
}
