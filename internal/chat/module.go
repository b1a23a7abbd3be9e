package chat

import (
	"context"

	apphttp "utrippin_backend/internal/http"
	"utrippin_backend/platform/config"
	"utrippin_backend/platform/logger"
)

// Module represents the chat domain module.
type Module struct {
	handler *Handler
}

// NewModule wires the assistant. Without an API key the module still serves
// canned replies.
func NewModule(ctx context.Context, cfg config.ChatConfig, log *logger.Logger) *Module {
	var gen Generator
	if cfg.IsChatEnabled() {
		client, err := NewGeminiClient(ctx, cfg.GetGeminiAPIKey())
		if err != nil {
			log.Error("gemini client init failed, serving canned replies", "error", err)
		} else {
			gen = client
		}
	}
	svc := NewService(gen, log)
	return &Module{handler: NewHandler(svc)}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "chat"
}

// RegisterRoutes registers the chat route under /api/v1/chat.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/chat/itinerary", m.handler.Chat)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
