package conversation

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"chatdesk/assistant-api/internal/utils/platformerrors"
)

// Repository is the record-store access used by the service.
type Repository interface {
	// LatestByLocation returns the most recent conversation for the location,
	// or nil when none exists.
	LatestByLocation(ctx context.Context) (*Conversation, error)
	// MessagesByConversation returns the conversation's messages ascending by
	// message id.
	MessagesByConversation(ctx context.Context, conversationID string) ([]Message, error)
	// Create persists a new conversation record and returns it.
	Create(ctx context.Context, clientRecordID, assistantRecordID, threadID string) (*Conversation, error)
	// FindClientRecord resolves a client record id from a location id.
	FindClientRecord(ctx context.Context, locationID string) (string, error)
}

// AssistantResolver yields the stored assistant record for the location.
type AssistantResolver interface {
	ResolveRecordID(ctx context.Context) (string, error)
}

// ThreadCreator provisions a new provider-owned thread.
type ThreadCreator interface {
	CreateThread(ctx context.Context) (string, error)
}

// Service exposes conversation operations for the widget.
type Service struct {
	repo      Repository
	assistant AssistantResolver
	threads   ThreadCreator
	log       zerolog.Logger
}

// NewService wires dependencies.
func NewService(repo Repository, assistant AssistantResolver, threads ThreadCreator, log zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		assistant: assistant,
		threads:   threads,
		log:       log.With().Str("component", "conversation-service").Logger(),
	}
}

// Latest returns the most recent conversation for the location together with
// its message history. No conversation is a successful empty result.
func (s *Service) Latest(ctx context.Context) (*History, error) {
	conv, err := s.repo.LatestByLocation(ctx)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return &History{Messages: []Message{}}, nil
	}

	messages, err := s.repo.MessagesByConversation(ctx, conv.RecordID)
	if err != nil {
		return nil, err
	}

	return &History{Conversation: conv, Messages: messages}, nil
}

// Create resolves the client and assistant records, provisions a hosted
// thread and persists a new conversation linking the three.
func (s *Service) Create(ctx context.Context, locationID string) (*Conversation, error) {
	if strings.TrimSpace(locationID) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"client location id is required", nil, "conversation-create-no-location")
	}

	clientRecordID, err := s.repo.FindClientRecord(ctx, locationID)
	if err != nil {
		return nil, err
	}

	assistantRecordID, err := s.assistant.ResolveRecordID(ctx)
	if err != nil {
		return nil, err
	}

	threadID, err := s.threads.CreateThread(ctx)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal,
			"create assistant thread", err, "conversation-create-thread")
	}

	conv, err := s.repo.Create(ctx, clientRecordID, assistantRecordID, threadID)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("conversation_id", conv.RecordID).
		Str("thread_id", threadID).
		Msg("created conversation")
	return conv, nil
}
