package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"chatdesk/assistant-api/internal/domain/conversation"
	"chatdesk/assistant-api/internal/interfaces/httpserver/handlers"
	"chatdesk/assistant-api/internal/utils/platformerrors"
)

type MockConversationService struct {
	LatestFunc func(ctx context.Context) (*conversation.History, error)
	CreateFunc func(ctx context.Context, locationID string) (*conversation.Conversation, error)
}

func (m *MockConversationService) Latest(ctx context.Context) (*conversation.History, error) {
	if m.LatestFunc != nil {
		return m.LatestFunc(ctx)
	}
	return &conversation.History{Messages: []conversation.Message{}}, nil
}

func (m *MockConversationService) Create(ctx context.Context, locationID string) (*conversation.Conversation, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, locationID)
	}
	return &conversation.Conversation{}, nil
}

func conversationRouter(service handlers.ConversationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewConversationHandler(service, zerolog.Nop())
	engine := gin.New()
	engine.GET("/api/v1/conversations", handler.Latest)
	engine.POST("/api/v1/conversations", handler.Create)
	return engine
}

func TestConversations_EmptyHistoryIsSuccess(t *testing.T) {
	router := conversationRouter(&MockConversationService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/conversations", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Success      bool  `json:"success"`
		Conversation any   `json:"conversation"`
		Messages     []any `json:"messages"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Success || body.Conversation != nil || len(body.Messages) != 0 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestConversations_CreatePassesClientID(t *testing.T) {
	var gotLocation string
	router := conversationRouter(&MockConversationService{
		CreateFunc: func(ctx context.Context, locationID string) (*conversation.Conversation, error) {
			gotLocation = locationID
			return &conversation.Conversation{
				RecordID: "rec_conv",
				ThreadID: "th_1",
				Channel:  conversation.ChannelPlayground,
				State:    conversation.StateNew,
			}, nil
		},
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations", bytes.NewBufferString(`{"clientId":"loc_1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotLocation != "loc_1" {
		t.Fatalf("expected loc_1, got %q", gotLocation)
	}

	var body struct {
		Conversation struct {
			ID       string `json:"id"`
			ThreadID string `json:"threadId"`
		} `json:"conversation"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Conversation.ID != "rec_conv" || body.Conversation.ThreadID != "th_1" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestConversations_CreateWithoutClientIDIs400(t *testing.T) {
	router := conversationRouter(&MockConversationService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

type MockFeedbackService struct {
	SubmitFunc func(ctx context.Context, messageRef, content string, positive bool) error
}

func (m *MockFeedbackService) Submit(ctx context.Context, messageRef, content string, positive bool) error {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, messageRef, content, positive)
	}
	return nil
}

func feedbackRouter(service handlers.FeedbackService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewFeedbackHandler(service, zerolog.Nop())
	engine := gin.New()
	engine.POST("/api/v1/feedback", handler.Submit)
	return engine
}

func TestFeedback_SubmitsTypedFeedback(t *testing.T) {
	var gotRef, gotContent string
	var gotPositive bool
	router := feedbackRouter(&MockFeedbackService{
		SubmitFunc: func(ctx context.Context, messageRef, content string, positive bool) error {
			gotRef, gotContent, gotPositive = messageRef, content, positive
			return nil
		},
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback",
		bytes.NewBufferString(`{"id":"rec_msg","content":"wrong price quoted","isPositive":false}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotRef != "rec_msg" || gotContent != "wrong price quoted" || gotPositive {
		t.Fatalf("unexpected submit args: %q %q %v", gotRef, gotContent, gotPositive)
	}
}

func TestFeedback_UnknownMessageIs404(t *testing.T) {
	router := feedbackRouter(&MockFeedbackService{
		SubmitFunc: func(ctx context.Context, messageRef, content string, positive bool) error {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound, "no message with that id", nil, "test")
		},
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback",
		bytes.NewBufferString(`{"id":"99","content":"bad"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
