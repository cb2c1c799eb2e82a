package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"chatdesk/assistant-api/internal/domain/conversation"
	"chatdesk/assistant-api/internal/interfaces/httpserver/dto"
	"chatdesk/assistant-api/internal/interfaces/httpserver/responses"
	"chatdesk/assistant-api/internal/utils/platformerrors"
)

// ConversationService is the subset of the conversation domain used over HTTP.
type ConversationService interface {
	Latest(ctx context.Context) (*conversation.History, error)
	Create(ctx context.Context, locationID string) (*conversation.Conversation, error)
}

// ConversationHandler exposes the conversation endpoints.
type ConversationHandler struct {
	service ConversationService
	log     zerolog.Logger
}

// NewConversationHandler constructs the handler.
func NewConversationHandler(service ConversationService, log zerolog.Logger) *ConversationHandler {
	return &ConversationHandler{
		service: service,
		log:     log.With().Str("handler", "conversation").Logger(),
	}
}

// Latest handles GET /api/v1/conversations
// @Summary Get the latest conversation
// @Description Returns the most recent conversation with its messages; an empty history when none exists
// @Tags Conversations
// @Produce json
// @Success 200 {object} responses.HistoryResponse
// @Failure 502 {object} responses.ErrorResponse
// @Router /api/v1/conversations [get]
func (h *ConversationHandler) Latest(c *gin.Context) {
	history, err := h.service.Latest(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err, "failed to load conversations")
		return
	}
	c.JSON(http.StatusOK, responses.MapHistory(history))
}

// Create handles POST /api/v1/conversations
// @Summary Start a conversation
// @Description Creates a new conversation and its hosted thread for a client location
// @Tags Conversations
// @Accept json
// @Produce json
// @Param request body dto.ConversationCreateRequest true "Client location"
// @Success 200 {object} responses.ConversationResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/v1/conversations [post]
func (h *ConversationHandler) Create(c *gin.Context) {
	var req dto.ConversationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			"clientId is required", "conversation-bind")
		return
	}

	conv, err := h.service.Create(c.Request.Context(), req.ClientID)
	if err != nil {
		responses.HandleError(c, err, "failed to create conversation")
		return
	}

	c.JSON(http.StatusOK, responses.ConversationResponse{
		Success:      true,
		Conversation: responses.MapConversation(conv),
	})
}
