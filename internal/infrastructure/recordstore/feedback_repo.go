package recordstore

import (
	"context"
	"strconv"

	"chatdesk/assistant-api/internal/domain/feedback"
	"chatdesk/assistant-api/internal/utils/platformerrors"
)

type feedbackFields struct {
	MessageID []string `json:"MessageId,omitempty"`
	Content   string   `json:"Content,omitempty"`
	Type      string   `json:"Type,omitempty"`
}

// FeedbackRepository implements feedback.Repository on the Feedback and
// Messages tables.
type FeedbackRepository struct {
	client *Client
}

func NewFeedbackRepository(client *Client) *FeedbackRepository {
	return &FeedbackRepository{client: client}
}

// ResolveMessageRecord maps a numeric message id to its record id. The id is
// spliced into a filter formula, so anything non-numeric is rejected first.
func (r *FeedbackRepository) ResolveMessageRecord(ctx context.Context, msgID string) (string, error) {
	if _, err := strconv.Atoi(msgID); err != nil {
		return "", platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeValidation, "message id must be numeric", err,
			"recordstore-feedback-bad-message-id")
	}
	rows, err := r.client.Select(ctx, TableMessages, SelectParams{
		FilterByFormula: "{MsgId}=" + msgID,
		MaxRecords:      1,
	})
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound, "no message with that id", nil,
			"recordstore-feedback-message-missing")
	}
	return rows[0].ID, nil
}

// Create stores one feedback row linked to the message record.
func (r *FeedbackRepository) Create(ctx context.Context, messageRecordID, content string, kind feedback.Type) error {
	_, err := r.client.CreateRecord(ctx, TableFeedback, feedbackFields{
		MessageID: []string{messageRecordID},
		Content:   content,
		Type:      string(kind),
	})
	return err
}
