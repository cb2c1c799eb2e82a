package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"chatdesk/assistant-api/internal/domain/assistant"
	"chatdesk/assistant-api/internal/interfaces/httpserver/dto"
	"chatdesk/assistant-api/internal/interfaces/httpserver/responses"
	"chatdesk/assistant-api/internal/utils/platformerrors"
)

// AssistantService is the subset of the assistant domain used over HTTP.
type AssistantService interface {
	Info(ctx context.Context) (*assistant.Info, error)
	ValidateSetup(ctx context.Context) (*assistant.SetupStatus, error)
	Save(ctx context.Context, cfg assistant.Config) (string, error)
}

// AssistantHandler exposes the persona configuration endpoints.
type AssistantHandler struct {
	service AssistantService
	log     zerolog.Logger
}

// NewAssistantHandler constructs the handler.
func NewAssistantHandler(service AssistantService, log zerolog.Logger) *AssistantHandler {
	return &AssistantHandler{
		service: service,
		log:     log.With().Str("handler", "assistant").Logger(),
	}
}

// Info handles GET /api/v1/assistant-info
// @Summary Get assistant info
// @Description Returns the assistant name, company and configured state
// @Tags Assistant
// @Produce json
// @Success 200 {object} responses.InfoResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/v1/assistant-info [get]
func (h *AssistantHandler) Info(c *gin.Context) {
	info, err := h.service.Info(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err, "failed to get assistant info")
		return
	}
	c.JSON(http.StatusOK, responses.InfoResponse{Success: true, Info: info})
}

// ValidateConfig handles GET /api/v1/validate-config
// @Summary Validate assistant setup
// @Description Reports whether the assistant is configured; a missing configuration is a needs-setup state, not an error
// @Tags Assistant
// @Produce json
// @Success 200 {object} responses.SetupStatusResponse
// @Failure 502 {object} responses.ErrorResponse
// @Router /api/v1/validate-config [get]
func (h *AssistantHandler) ValidateConfig(c *gin.Context) {
	status, err := h.service.ValidateSetup(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err, "failed to validate configuration")
		return
	}
	c.JSON(http.StatusOK, responses.SetupStatusResponse{Success: true, Status: status})
}

// SaveConfig handles POST /api/v1/config
// @Summary Save assistant configuration
// @Description Validates the persona, creates or updates the hosted assistant and persists the configuration
// @Tags Assistant
// @Accept json
// @Produce json
// @Param request body dto.SaveConfigRequest true "Persona configuration"
// @Success 200 {object} responses.SaveConfigResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 502 {object} responses.ErrorResponse
// @Router /api/v1/config [post]
func (h *AssistantHandler) SaveConfig(c *gin.Context) {
	var req dto.SaveConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid configuration payload", "assistant-config-bind")
		return
	}

	assistantID, err := h.service.Save(c.Request.Context(), req.ToDomain())
	if err != nil {
		responses.HandleError(c, err, "failed to save configuration")
		return
	}

	h.log.Info().Str("assistant_id", assistantID).Msg("configuration saved")
	c.JSON(http.StatusOK, responses.SaveConfigResponse{Success: true, AssistantID: assistantID})
}
