package feedback_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"chatdesk/assistant-api/internal/domain/feedback"
	"chatdesk/assistant-api/internal/utils/platformerrors"
)

type MockRepository struct {
	ResolveFunc func(ctx context.Context, msgID string) (string, error)

	CreatedRecordID string
	CreatedContent  string
	CreatedType     feedback.Type
}

func (m *MockRepository) ResolveMessageRecord(ctx context.Context, msgID string) (string, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, msgID)
	}
	return "rec_resolved", nil
}

func (m *MockRepository) Create(ctx context.Context, messageRecordID, content string, kind feedback.Type) error {
	m.CreatedRecordID = messageRecordID
	m.CreatedContent = content
	m.CreatedType = kind
	return nil
}

func TestSubmit_RecordIDUsedDirectly(t *testing.T) {
	repo := &MockRepository{
		ResolveFunc: func(ctx context.Context, msgID string) (string, error) {
			t.Fatal("record ids must not be resolved")
			return "", nil
		},
	}

	err := feedback.NewService(repo, zerolog.Nop()).Submit(context.Background(), "rec_123", "great answer", true)
	require.NoError(t, err)
	require.Equal(t, "rec_123", repo.CreatedRecordID)
	require.Equal(t, feedback.TypePositive, repo.CreatedType)
}

func TestSubmit_NumericIDIsResolved(t *testing.T) {
	repo := &MockRepository{}

	err := feedback.NewService(repo, zerolog.Nop()).Submit(context.Background(), "42", "wrong info", false)
	require.NoError(t, err)
	require.Equal(t, "rec_resolved", repo.CreatedRecordID)
	require.Equal(t, feedback.TypeNegative, repo.CreatedType)
}

func TestSubmit_ValidatesInput(t *testing.T) {
	svc := feedback.NewService(&MockRepository{}, zerolog.Nop())

	err := svc.Submit(context.Background(), "", "content", true)
	require.True(t, platformerrors.IsType(err, platformerrors.ErrorTypeValidation))

	err = svc.Submit(context.Background(), "rec_1", "  ", true)
	require.True(t, platformerrors.IsType(err, platformerrors.ErrorTypeValidation))
}

func TestSubmit_UnresolvedMessagePropagates(t *testing.T) {
	repo := &MockRepository{
		ResolveFunc: func(ctx context.Context, msgID string) (string, error) {
			return "", platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound, "message not found", nil, "test-msg-missing")
		},
	}

	err := feedback.NewService(repo, zerolog.Nop()).Submit(context.Background(), "99", "content", true)
	require.True(t, platformerrors.IsType(err, platformerrors.ErrorTypeNotFound))
}
