// Package notification defines the outbound message port used by the
// scheduling service. Actual delivery transport (email, SMS, push) lives
// behind the Sender interface and is out of scope for this service.
package notification

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Sender dispatches a message to a patient's portal identity.
type Sender interface {
	Send(ctx context.Context, recipient uuid.UUID, message string) error
}

// LogSender writes notifications to the structured log instead of an
// external gateway. Used in dev and as the default wiring.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, recipient uuid.UUID, message string) error {
	s.log.Info().
		Str("recipient", recipient.String()).
		Str("message", message).
		Msg("notification dispatched")
	return nil
}
