package monitoring

import (
	"github.com/rs/zerolog/log"
)

// Alert logs an alert-level event for the operator channel. Wiring this to
// a real pager is deployment-specific.
func Alert(message string, labels map[string]string) {
	log.Error().
		Str("alert", message).
		Fields(labels).
		Msg("ALERT: backend issue detected")
}
