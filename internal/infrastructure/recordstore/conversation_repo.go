package recordstore

import (
	"context"
	"time"

	"chatdesk/assistant-api/internal/domain/conversation"
	"chatdesk/assistant-api/internal/utils/platformerrors"
)

type conversationFields struct {
	ClientID      []string           `json:"ClientId,omitempty"`
	AssistantID   []string           `json:"AssistantId,omitempty"`
	LocationID    string             `json:"LocationId,omitempty"`
	ThreadID      string             `json:"ThreadId,omitempty"`
	Channel       string             `json:"Channel,omitempty"`
	State         conversation.State `json:"State,omitempty"`
	StartedAt     *time.Time         `json:"StartedAt,omitempty"`
	Reengaged     int                `json:"Reengaged,omitempty"`
	LastMessageAt *time.Time         `json:"LastMessageAt,omitempty"`
}

type messageFields struct {
	ConversationID []string `json:"ConversationId,omitempty"`
	MsgID          int      `json:"MsgId,omitempty"`
	Role           string   `json:"Role,omitempty"`
	Content        string   `json:"Content,omitempty"`
}

// ConversationRepository implements conversation.Repository on the
// Conversations, Messages and Clients tables.
type ConversationRepository struct {
	client     *Client
	locationID string
}

func NewConversationRepository(client *Client, locationID string) *ConversationRepository {
	return &ConversationRepository{client: client, locationID: locationID}
}

// LatestByLocation returns the most recently started conversation for the
// location, or nil when the location has none.
func (r *ConversationRepository) LatestByLocation(ctx context.Context) (*conversation.Conversation, error) {
	rows, err := r.client.Select(ctx, TableConversations, SelectParams{
		FilterByFormula: formulaEq("LocationId", r.locationID),
		Sort:            []SortField{{Field: "StartedAt", Direction: "desc"}},
		MaxRecords:      1,
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return decodeConversation(ctx, rows[0])
}

// MessagesByConversation returns all messages of a conversation ascending by
// message id.
func (r *ConversationRepository) MessagesByConversation(ctx context.Context, conversationRecordID string) ([]conversation.Message, error) {
	rows, err := r.client.Select(ctx, TableMessages, SelectParams{
		FilterByFormula: formulaEq("ConversationId", conversationRecordID),
		Sort:            []SortField{{Field: "MsgId", Direction: "asc"}},
		AllPages:        true,
	})
	if err != nil {
		return nil, err
	}

	messages := make([]conversation.Message, 0, len(rows))
	for _, row := range rows {
		var fields messageFields
		if err := DecodeFields(ctx, TableMessages, row, &fields); err != nil {
			return nil, err
		}
		messages = append(messages, conversation.Message{
			RecordID:  row.ID,
			MsgID:     fields.MsgID,
			Role:      fields.Role,
			Content:   fields.Content,
			CreatedAt: row.CreatedTime,
		})
	}
	return messages, nil
}

// Create inserts a new conversation row linking the client and assistant
// records to a fresh thread.
func (r *ConversationRepository) Create(ctx context.Context, clientRecordID, assistantRecordID, threadID string) (*conversation.Conversation, error) {
	now := time.Now().UTC()
	created, err := r.client.CreateRecord(ctx, TableConversations, conversationFields{
		ClientID:    []string{clientRecordID},
		AssistantID: []string{assistantRecordID},
		ThreadID:    threadID,
		Channel:     conversation.ChannelPlayground,
		State:       conversation.StateNew,
		StartedAt:   &now,
	})
	if err != nil {
		return nil, err
	}
	return decodeConversation(ctx, *created)
}

// FindClientRecord returns the record id of the client row for a location.
func (r *ConversationRepository) FindClientRecord(ctx context.Context, locationID string) (string, error) {
	rows, err := r.client.Select(ctx, TableClients, SelectParams{
		FilterByFormula: formulaEq("LocationId", locationID),
		MaxRecords:      1,
	})
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound, "no client record for location", nil,
			"recordstore-client-missing")
	}
	return rows[0].ID, nil
}

func decodeConversation(ctx context.Context, row Record) (*conversation.Conversation, error) {
	var fields conversationFields
	if err := DecodeFields(ctx, TableConversations, row, &fields); err != nil {
		return nil, err
	}

	conv := &conversation.Conversation{
		RecordID:  row.ID,
		ThreadID:  fields.ThreadID,
		Channel:   fields.Channel,
		State:     fields.State,
		Reengaged: fields.Reengaged,
	}
	if fields.StartedAt != nil {
		conv.StartedAt = *fields.StartedAt
	} else {
		conv.StartedAt = row.CreatedTime
	}
	if fields.LastMessageAt != nil {
		conv.LastMessage = *fields.LastMessageAt
	}
	return conv, nil
}
