package chat

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"utrippin_backend/platform/httpkit"
)

// Message is one turn of the running conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the inbound question.
type ChatRequest struct {
	Message string    `json:"message"`
	History []Message `json:"history"`
}

// ChatResponse is the assistant's answer.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// Handler exposes the assistant over HTTP.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Chat handles POST /api/v1/chat
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}

	reply, err := h.svc.Reply(c.Request.Context(), req.Message, req.History)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, ChatResponse{Reply: reply})
}
