// Package feedback stores end-user feedback on individual assistant replies.
package feedback

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"chatdesk/assistant-api/internal/utils/platformerrors"
)

// Type of a feedback entry.
type Type string

const (
	TypePositive Type = "Positive"
	TypeNegative Type = "Negative"
)

// Repository is the record-store access used by the service.
type Repository interface {
	// ResolveMessageRecord maps a numeric message id to its record id.
	ResolveMessageRecord(ctx context.Context, msgID string) (string, error)
	// Create persists a feedback record linked to the message record.
	Create(ctx context.Context, messageRecordID, content string, kind Type) error
}

// Service validates and stores feedback.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

// NewService wires dependencies.
func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("component", "feedback-service").Logger(),
	}
}

// Submit stores one feedback entry. The message reference may be either a
// store record id or a numeric message id, which is resolved first.
func (s *Service) Submit(ctx context.Context, messageRef, content string, positive bool) error {
	messageRef = strings.TrimSpace(messageRef)
	if messageRef == "" || strings.TrimSpace(content) == "" {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"feedback needs a message reference and content", nil, "feedback-submit-empty")
	}

	recordID := messageRef
	if !strings.HasPrefix(recordID, "rec") {
		resolved, err := s.repo.ResolveMessageRecord(ctx, messageRef)
		if err != nil {
			return err
		}
		recordID = resolved
	}

	kind := TypeNegative
	if positive {
		kind = TypePositive
	}

	if err := s.repo.Create(ctx, recordID, content, kind); err != nil {
		return err
	}

	s.log.Info().Str("message_record", recordID).Str("type", string(kind)).Msg("stored feedback")
	return nil
}
