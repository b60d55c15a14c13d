package handlers

import (
	"bufio"
	"errors"
	"io"
	"log"

	"growthpot/internal/core/services"
	"growthpot/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ChatHandler handles the assistant chat endpoint
type ChatHandler struct {
	chatService *services.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// ChatRequest represents chat request body
type ChatRequest struct {
	Messages []services.ChatMessage `json:"messages"`
}

// Stream handles the assistant chat as a server-sent event stream
// @Summary Chat with assistant
// @Description Stream an assistant reply as SSE delta chunks
// @Tags Chat
// @Accept json
// @Produce text/event-stream
// @Security BearerAuth
// @Param body body ChatRequest true "Conversation so far"
// @Success 200 {string} string "SSE stream"
// @Failure 429 {object} response.Response
// @Router /chat [post]
func (h *ChatHandler) Stream(c *fiber.Ctx) error {
	if _, ok := c.Locals("userID").(uint); !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if len(req.Messages) == 0 {
		return response.BadRequest(c, "Messages are required")
	}

	stream, err := h.chatService.Stream(c.Context(), req.Messages)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrChatRateLimited):
			return response.Error(c, fiber.StatusTooManyRequests, "Rate limit exceeded, please try again later")
		case errors.Is(err, services.ErrChatNoCredits):
			return response.Error(c, fiber.StatusPaymentRequired, "Assistant is unavailable right now")
		default:
			return response.InternalServerError(c, "Failed to start chat stream")
		}
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("Transfer-Encoding", "chunked")

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer stream.Close()

		if _, err := io.Copy(w, stream); err != nil {
			log.Printf("⚠️ Chat stream interrupted: %v", err)
		}
		w.Flush()
	})

	return nil
}
