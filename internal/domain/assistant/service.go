package assistant

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"chatdesk/assistant-api/internal/utils/platformerrors"
)

// Store reads and writes the persona configuration in the record store.
type Store interface {
	GetConfig(ctx context.Context) (*StoredConfig, error)
	SaveConfig(ctx context.Context, recordID string, cfg Config) error
}

// Provider manages the hosted assistant instance.
type Provider interface {
	CreateAssistant(ctx context.Context, name, instructions, model string) (string, error)
	UpdateAssistant(ctx context.Context, id, name, instructions, model string) (string, error)
}

// InstructionsBuilder renders the system prompt for a persona.
type InstructionsBuilder func(Config) string

// Info is the public summary of the configured persona.
type Info struct {
	AssistantID   string `json:"assistantId,omitempty"`
	AssistantName string `json:"assistantName,omitempty"`
	CompanyName   string `json:"companyName,omitempty"`
	HasAssistant  bool   `json:"hasAssistant"`
}

// SetupStatus reports whether the widget is ready to chat.
type SetupStatus struct {
	HasAssistant bool   `json:"hasAssistant"`
	AssistantID  string `json:"assistantId,omitempty"`
	IsConfigured bool   `json:"isConfigured"`
	NeedsSetup   bool   `json:"needsSetup"`
	Message      string `json:"message"`
}

// Service exposes persona configuration operations.
type Service struct {
	store        Store
	provider     Provider
	instructions InstructionsBuilder
	model        string
	log          zerolog.Logger
}

// NewService wires dependencies.
func NewService(store Store, provider Provider, instructions InstructionsBuilder, model string, log zerolog.Logger) *Service {
	return &Service{
		store:        store,
		provider:     provider,
		instructions: instructions,
		model:        model,
		log:          log.With().Str("component", "assistant-service").Logger(),
	}
}

// Get returns the stored persona configuration for this location.
func (s *Service) Get(ctx context.Context) (*StoredConfig, error) {
	return s.store.GetConfig(ctx)
}

// Info returns the public summary shown by the widget header.
func (s *Service) Info(ctx context.Context) (*Info, error) {
	stored, err := s.store.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	return &Info{
		AssistantID:   stored.HostedAssistantID,
		AssistantName: stored.AssistantName,
		CompanyName:   stored.CompanyName,
		HasAssistant:  stored.Configured(),
	}, nil
}

// ValidateSetup reports the setup state. A missing configuration is a
// needs-setup condition, not an error.
func (s *Service) ValidateSetup(ctx context.Context) (*SetupStatus, error) {
	stored, err := s.store.GetConfig(ctx)
	if err != nil {
		if platformerrors.IsType(err, platformerrors.ErrorTypeNotFound) {
			return &SetupStatus{NeedsSetup: true, Message: "There is no assistant configuration yet"}, nil
		}
		return nil, err
	}

	configured := stored.Configured() && stored.Complete()
	status := &SetupStatus{
		HasAssistant: configured,
		AssistantID:  stored.HostedAssistantID,
		IsConfigured: configured,
		NeedsSetup:   !configured,
	}
	if configured {
		status.Message = "Assistant is configured and ready"
	} else {
		status.Message = "Save the configuration to create the assistant"
	}
	return status, nil
}

// Save validates the persona, creates or updates the hosted assistant (keyed
// on the presence of a previously stored assistant id) and persists the
// configuration with the resulting id.
func (s *Service) Save(ctx context.Context, cfg Config) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"invalid assistant configuration", err, "assistant-save-invalid")
	}

	existing, err := s.store.GetConfig(ctx)
	if err != nil {
		if platformerrors.IsType(err, platformerrors.ErrorTypeNotFound) {
			return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
				"no configuration record exists for this location", err, "assistant-save-missing-record")
		}
		return "", err
	}

	var assistantID string
	if existing.Configured() {
		// Custom commands are managed outside the form; the stored value wins.
		cfg.CustomCommands = existing.CustomCommands

		s.log.Info().Str("assistant_id", existing.HostedAssistantID).Msg("updating hosted assistant")
		assistantID, err = s.provider.UpdateAssistant(ctx, existing.HostedAssistantID, cfg.AssistantName, s.instructions(cfg), s.model)
	} else {
		s.log.Info().Msg("creating hosted assistant")
		assistantID, err = s.provider.CreateAssistant(ctx, cfg.AssistantName, s.instructions(cfg), s.model)
	}
	if err != nil {
		var platformErr *platformerrors.PlatformError
		if errors.As(err, &platformErr) {
			return "", err
		}
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal,
			"provision hosted assistant", err, "assistant-save-provider")
	}

	cfg.HostedAssistantID = strings.TrimSpace(assistantID)
	if err := s.store.SaveConfig(ctx, existing.RecordID, cfg); err != nil {
		return "", err
	}

	return cfg.HostedAssistantID, nil
}
