package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"chatdesk/assistant-api/internal/domain/assistant"
	"chatdesk/assistant-api/internal/domain/run"
	"chatdesk/assistant-api/internal/infrastructure/metrics"
	"chatdesk/assistant-api/internal/infrastructure/observability"
	"chatdesk/assistant-api/internal/interfaces/httpserver/dto"
	"chatdesk/assistant-api/internal/interfaces/httpserver/responses"
	"chatdesk/assistant-api/internal/utils/platformerrors"
)

// AssistantResolver fetches the stored persona for the location.
type AssistantResolver interface {
	Get(ctx context.Context) (*assistant.StoredConfig, error)
}

// TurnRunner drives one user turn to completion.
type TurnRunner interface {
	RunTurn(ctx context.Context, params run.TurnParams) (*run.TurnResult, error)
}

// ChatHandler exposes the chat endpoint.
type ChatHandler struct {
	assistants AssistantResolver
	turns      TurnRunner
	log        zerolog.Logger
}

// NewChatHandler constructs the handler.
func NewChatHandler(assistants AssistantResolver, turns TurnRunner, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		assistants: assistants,
		turns:      turns,
		log:        log.With().Str("handler", "chat").Logger(),
	}
}

// Chat handles POST /api/v1/chat
// @Summary Send a chat message
// @Description Submits a user message, waits for the assistant run to finish and returns the reply
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "User turn"
// @Success 200 {object} responses.ChatResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Failure 504 {object} responses.ErrorResponse
// @Router /api/v1/chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			"message, conversationId and threadId are required", "chat-bind")
		return
	}

	ctx, span := observability.StartChatTurnSpan(c.Request.Context(), req.ConversationID, req.ThreadID)
	defer span.End()

	stored, err := h.assistants.Get(ctx)
	if err != nil {
		observability.RecordError(span, err)
		responses.HandleError(c, err, "failed to resolve assistant")
		return
	}
	if !stored.Configured() {
		responses.HandleNewError(c, platformerrors.ErrorTypeNotConfigured,
			"assistant is not configured yet", "chat-not-configured")
		return
	}

	started := time.Now()
	result, err := h.turns.RunTurn(ctx, run.TurnParams{
		ThreadID:       req.ThreadID,
		AssistantID:    stored.HostedAssistantID,
		ConversationID: req.ConversationID,
		UserText:       req.Message,
	})
	metrics.ChatTurnDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		metrics.ChatTurnsTotal.WithLabelValues(string(platformerrors.TypeOf(err))).Inc()
		observability.RecordError(span, err)
		responses.HandleError(c, err, "chat turn failed")
		return
	}
	metrics.ChatTurnsTotal.WithLabelValues("success").Inc()

	c.JSON(http.StatusOK, responses.ChatResponse{
		Success:            true,
		Reply:              result.Reply,
		UserMessageID:      result.UserMessageID,
		AssistantMessageID: result.AssistantMessageID,
	})
}
