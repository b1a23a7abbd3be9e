package chat

import (
	"context"
	"strings"

	"utrippin_backend/platform/apperr"
	"utrippin_backend/platform/logger"
)

const fallbackReply = "I can help you plan your trip: tell me a destination " +
	"and travel dates and I will suggest hotels. Booking happens through the " +
	"search, prebook and book steps on the site."

// Service answers travel questions. A failed or disabled model still yields
// a canned reply, mirroring how the booking flow degrades.
type Service struct {
	gen Generator
	log *logger.Logger
}

func NewService(gen Generator, log *logger.Logger) *Service {
	return &Service{gen: gen, log: log}
}

// Reply answers one user message. History is prepended so the model sees the
// running conversation.
func (s *Service) Reply(ctx context.Context, message string, history []Message) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", apperr.Validation("message is required")
	}
	if s.gen == nil {
		return fallbackReply, nil
	}

	reply, err := s.gen.Generate(ctx, buildPrompt(message, history))
	if err != nil {
		s.log.ProviderFallback("chat", err)
		return fallbackReply, nil
	}
	return reply, nil
}

func buildPrompt(message string, history []Message) string {
	var sb strings.Builder
	for _, m := range history {
		sb.WriteString(m.Role)
		sb.WriteString(": ")
		sb.WriteString(m.Content)
		sb.WriteString("\n")
	}
	sb.WriteString("user: ")
	sb.WriteString(message)
	return sb.String()
}
