package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/customer"
	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/orchestrator"
	errx "github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/core/error"
	logx "github.com/IMADDABLIGI/Techno-Shoe-AIAgent/pkg/logger"
)

// ChatService is the conversational backend behind the HTTP API.
type ChatService interface {
	Chat(ctx context.Context, sessionID, text string) (*orchestrator.Reply, error)
	EndSession(ctx context.Context, sessionID string) (*customer.SaveResult, error)
}

type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type EndSessionResponse struct {
	SessionID string               `json:"session_id"`
	Ended     bool                 `json:"ended"`
	Customer  *customer.SaveResult `json:"customer,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type Handler struct {
	chat ChatService
}

func NewHandler(chat ChatService) *Handler {
	return &Handler{chat: chat}
}

func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, errx.InvalidArgument("Invalid JSON body", err))
		return
	}
	if req.Message == "" {
		handleError(c, errx.InvalidArgument("Message is required", nil))
		return
	}
	if req.SessionID == "" {
		req.SessionID = orchestrator.DefaultSessionID
	}

	reply, err := h.chat.Chat(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Message: "Techno Shoe API is running!"})
}

func (h *Handler) EndSession(c *gin.Context) {
	id := c.Param("id")
	res, err := h.chat.EndSession(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, EndSessionResponse{SessionID: id, Ended: true, Customer: res})
}

// handleError maps err to its status and a client-safe message.
func handleError(c *gin.Context, err error) {
	status := errx.StatusOf(err)
	ev := logx.Ctx(c.Request.Context()).Warn()
	if status >= http.StatusInternalServerError {
		ev = logx.Ctx(c.Request.Context()).Error()
	}
	ev.Err(err).Int("status", status).Str("path", c.Request.URL.Path).Msg("request failed")
	c.JSON(status, ErrorResponse{Error: errx.MessageOf(err)})
}
