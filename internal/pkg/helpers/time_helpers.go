package helpers

import (
	"strings"
	"time"

	"github.com/yigit/invigilate/internal/pkg/logger"
)

// ParseDuration parses raw as a time.Duration. Blank, malformed and
// non-positive values fall back to def.
func ParseDuration(raw string, def time.Duration) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		logger.Warn().Err(err).Str("value", raw).Dur("default", def).Msg("Invalid duration, using default")
		return def
	}
	return d
}
