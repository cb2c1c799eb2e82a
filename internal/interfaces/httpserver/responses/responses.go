package responses

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"chatdesk/assistant-api/internal/domain/assistant"
	"chatdesk/assistant-api/internal/domain/conversation"
	"chatdesk/assistant-api/internal/utils/platformerrors"
)

// ErrorResponse represents an error response with platform error details
type ErrorResponse struct {
	Success       bool   `json:"success"`
	Code          string `json:"code"` // UUID from PlatformError
	Error         string `json:"error"`
	Message       string `json:"message,omitempty"`
	ErrorInstance error  `json:"-"`
	RequestID     string `json:"request_id,omitempty"`
}

// HandleError handles domain errors and returns appropriate HTTP responses
func HandleError(reqCtx *gin.Context, err error, message string) {
	var domainErr *platformerrors.PlatformError
	if errors.As(err, &domainErr) {
		statusCode := platformerrors.ErrorTypeToHTTPStatus(domainErr.GetErrorType())

		errResp := ErrorResponse{
			Code:          domainErr.GetUUID(),
			Error:         message,
			Message:       message,
			ErrorInstance: domainErr,
			RequestID:     domainErr.GetRequestID(),
		}

		reqCtx.AbortWithStatusJSON(statusCode, errResp)
		return
	}
	// Non-platform errors
	errResp := ErrorResponse{
		Error:         message,
		Message:       message,
		ErrorInstance: err,
	}
	reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, errResp)
}

// HandleNewError creates a new typed error at the route layer and handles it
func HandleNewError(reqCtx *gin.Context, errorType platformerrors.ErrorType, message string, uuid string) {
	ctx := reqCtx.Request.Context()
	err := platformerrors.NewError(ctx, platformerrors.LayerRoute, errorType, message, nil, uuid)

	statusCode := platformerrors.ErrorTypeToHTTPStatus(err.GetErrorType())

	errResp := ErrorResponse{
		Code:          err.GetUUID(),
		Error:         message,
		Message:       message,
		ErrorInstance: err,
		RequestID:     err.GetRequestID(),
	}

	reqCtx.AbortWithStatusJSON(statusCode, errResp)
}

// InfoResponse is returned by the assistant-info endpoint.
type InfoResponse struct {
	Success bool            `json:"success"`
	Info    *assistant.Info `json:"info"`
}

// SetupStatusResponse is returned by the validate-config endpoint.
type SetupStatusResponse struct {
	Success bool                   `json:"success"`
	Status  *assistant.SetupStatus `json:"status"`
}

// SaveConfigResponse confirms a saved configuration.
type SaveConfigResponse struct {
	Success     bool   `json:"success"`
	AssistantID string `json:"assistantId"`
}

// ChatResponse carries the assistant reply of one turn.
type ChatResponse struct {
	Success            bool   `json:"success"`
	Reply              string `json:"reply"`
	UserMessageID      string `json:"userMessageId,omitempty"`
	AssistantMessageID string `json:"assistantMessageId,omitempty"`
}

// ConversationPayload is the client view of a conversation record.
type ConversationPayload struct {
	ID        string `json:"id"`
	ThreadID  string `json:"threadId"`
	Channel   string `json:"channel"`
	State     string `json:"state"`
	StartedAt string `json:"startedAt,omitempty"`
}

// MessagePayload is the client view of one stored message.
type MessagePayload struct {
	ID        string `json:"id"`
	MsgID     int    `json:"msgId"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// HistoryResponse is returned by the conversations listing.
type HistoryResponse struct {
	Success      bool                 `json:"success"`
	Conversation *ConversationPayload `json:"conversation"`
	Messages     []MessagePayload     `json:"messages"`
}

// ConversationResponse is returned after creating a conversation.
type ConversationResponse struct {
	Success      bool                 `json:"success"`
	Conversation *ConversationPayload `json:"conversation"`
}

// FeedbackResponse confirms stored feedback.
type FeedbackResponse struct {
	Success bool `json:"success"`
}

// MapConversation maps the domain conversation to its payload.
func MapConversation(conv *conversation.Conversation) *ConversationPayload {
	if conv == nil {
		return nil
	}
	payload := &ConversationPayload{
		ID:       conv.RecordID,
		ThreadID: conv.ThreadID,
		Channel:  conv.Channel,
		State:    string(conv.State),
	}
	if !conv.StartedAt.IsZero() {
		payload.StartedAt = conv.StartedAt.UTC().Format(time.RFC3339)
	}
	return payload
}

// MapHistory maps a conversation history to its response.
func MapHistory(history *conversation.History) HistoryResponse {
	resp := HistoryResponse{
		Success:      true,
		Conversation: MapConversation(history.Conversation),
		Messages:     make([]MessagePayload, 0, len(history.Messages)),
	}
	for _, msg := range history.Messages {
		payload := MessagePayload{
			ID:      msg.RecordID,
			MsgID:   msg.MsgID,
			Role:    msg.Role,
			Content: msg.Content,
		}
		if !msg.CreatedAt.IsZero() {
			payload.CreatedAt = msg.CreatedAt.UTC().Format(time.RFC3339)
		}
		resp.Messages = append(resp.Messages, payload)
	}
	return resp
}
