package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"chatdesk/assistant-api/internal/interfaces/httpserver/dto"
	"chatdesk/assistant-api/internal/interfaces/httpserver/responses"
	"chatdesk/assistant-api/internal/utils/platformerrors"
)

// FeedbackService stores end-user feedback on a message.
type FeedbackService interface {
	Submit(ctx context.Context, messageRef, content string, positive bool) error
}

// FeedbackHandler exposes the feedback endpoint.
type FeedbackHandler struct {
	service FeedbackService
	log     zerolog.Logger
}

// NewFeedbackHandler constructs the handler.
func NewFeedbackHandler(service FeedbackService, log zerolog.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		service: service,
		log:     log.With().Str("handler", "feedback").Logger(),
	}
}

// Submit handles POST /api/v1/feedback
// @Summary Submit message feedback
// @Description Stores positive or negative feedback for one assistant message
// @Tags Feedback
// @Accept json
// @Produce json
// @Param request body dto.FeedbackRequest true "Feedback"
// @Success 200 {object} responses.FeedbackResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/v1/feedback [post]
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req dto.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			"id and content are required", "feedback-bind")
		return
	}

	if err := h.service.Submit(c.Request.Context(), req.ID, req.Content, req.IsPositive); err != nil {
		responses.HandleError(c, err, "failed to store feedback")
		return
	}

	c.JSON(http.StatusOK, responses.FeedbackResponse{Success: true})
}
