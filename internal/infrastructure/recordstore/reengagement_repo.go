package recordstore

import (
	"context"
	"fmt"
	"time"

	"chatdesk/assistant-api/internal/domain/conversation"
	"chatdesk/assistant-api/internal/domain/reengagement"
	"chatdesk/assistant-api/internal/domain/run"
)

type advancedConfigFields struct {
	LocationID string `json:"LocationId,omitempty"`
	reengagement.AdvancedConfig
}

// ReengagementRepository implements reengagement.Store across the
// AdvancedConfig, Conversations and Messages tables.
type ReengagementRepository struct {
	client     *Client
	messages   *MessageRepository
	locationID string
}

func NewReengagementRepository(client *Client, messages *MessageRepository, locationID string) *ReengagementRepository {
	return &ReengagementRepository{client: client, messages: messages, locationID: locationID}
}

// AdvancedConfig loads the pacing settings for the location. A location
// without a row gets the zero config, which disables re-engagement.
func (r *ReengagementRepository) AdvancedConfig(ctx context.Context) (reengagement.AdvancedConfig, error) {
	rows, err := r.client.Select(ctx, TableAdvancedConfig, SelectParams{
		FilterByFormula: formulaEq("LocationId", r.locationID),
		MaxRecords:      1,
	})
	if err != nil {
		return reengagement.AdvancedConfig{}, err
	}
	if len(rows) == 0 {
		return reengagement.AdvancedConfig{}, nil
	}

	var fields advancedConfigFields
	if err := DecodeFields(ctx, TableAdvancedConfig, rows[0], &fields); err != nil {
		return reengagement.AdvancedConfig{}, err
	}
	return fields.AdvancedConfig, nil
}

// IdleConversations lists active conversations whose last message predates
// the cutoff.
func (r *ReengagementRepository) IdleConversations(ctx context.Context, cutoff time.Time) ([]conversation.Conversation, error) {
	formula := fmt.Sprintf("AND(%s, %s, IS_BEFORE({LastMessageAt}, '%s'))",
		formulaEq("LocationId", r.locationID),
		formulaEq("State", string(conversation.StateActive)),
		cutoff.UTC().Format(time.RFC3339))

	rows, err := r.client.Select(ctx, TableConversations, SelectParams{
		FilterByFormula: formula,
		AllPages:        true,
	})
	if err != nil {
		return nil, err
	}

	conversations := make([]conversation.Conversation, 0, len(rows))
	for _, row := range rows {
		conv, err := decodeConversation(ctx, row)
		if err != nil {
			return nil, err
		}
		conversations = append(conversations, *conv)
	}
	return conversations, nil
}

// AppendAssistantMessage stores a re-engagement message as a regular
// assistant message of the conversation.
func (r *ReengagementRepository) AppendAssistantMessage(ctx context.Context, conversationRecordID, content string) error {
	_, err := r.messages.CreateMessage(ctx, conversationRecordID, run.RoleAssistant, content)
	return err
}

// MarkReengaged updates the conversation's re-engagement counter.
func (r *ReengagementRepository) MarkReengaged(ctx context.Context, conversationRecordID string, count int) error {
	_, err := r.client.UpdateRecord(ctx, TableConversations, conversationRecordID, conversationFields{
		Reengaged: count,
	})
	return err
}
