package recordstore

import (
	"context"
)

// MessageRepository persists chat messages. It implements run.MessageRecorder.
type MessageRepository struct {
	client *Client
}

func NewMessageRepository(client *Client) *MessageRepository {
	return &MessageRepository{client: client}
}

// CreateMessage stores one message row linked to its conversation and returns
// the new record id.
func (r *MessageRepository) CreateMessage(ctx context.Context, conversationID, role, content string) (string, error) {
	created, err := r.client.CreateRecord(ctx, TableMessages, messageFields{
		ConversationID: []string{conversationID},
		Role:           role,
		Content:        content,
	})
	if err != nil {
		return "", err
	}
	return created.ID, nil
}
