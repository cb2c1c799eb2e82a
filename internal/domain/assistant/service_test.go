package assistant_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"chatdesk/assistant-api/internal/domain/assistant"
	"chatdesk/assistant-api/internal/utils/platformerrors"
)

type MockStore struct {
	GetConfigFunc  func(ctx context.Context) (*assistant.StoredConfig, error)
	SaveConfigFunc func(ctx context.Context, recordID string, cfg assistant.Config) error

	Saved *assistant.Config
}

func (m *MockStore) GetConfig(ctx context.Context) (*assistant.StoredConfig, error) {
	if m.GetConfigFunc != nil {
		return m.GetConfigFunc(ctx)
	}
	return nil, nil
}

func (m *MockStore) SaveConfig(ctx context.Context, recordID string, cfg assistant.Config) error {
	if m.SaveConfigFunc != nil {
		return m.SaveConfigFunc(ctx, recordID, cfg)
	}
	m.Saved = &cfg
	return nil
}

type MockProvider struct {
	CreateFunc func(ctx context.Context, name, instructions, model string) (string, error)
	UpdateFunc func(ctx context.Context, id, name, instructions, model string) (string, error)

	CreateCalls int
	UpdateCalls int
}

func (m *MockProvider) CreateAssistant(ctx context.Context, name, instructions, model string) (string, error) {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, name, instructions, model)
	}
	return "asst_new", nil
}

func (m *MockProvider) UpdateAssistant(ctx context.Context, id, name, instructions, model string) (string, error) {
	m.UpdateCalls++
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, name, instructions, model)
	}
	return id, nil
}

func storedConfig(assistantID string) *assistant.StoredConfig {
	return &assistant.StoredConfig{
		RecordID: "rec_1",
		Config: assistant.Config{
			AssistantName:     "Lia",
			CompanyName:       "Acme Kitchens",
			Tone:              assistant.ToneProfessional,
			CustomCommands:    "/stored-command",
			HostedAssistantID: assistantID,
		},
	}
}

func validInput() assistant.Config {
	return assistant.Config{
		AssistantName: "Lia",
		CompanyName:   "Acme Kitchens",
		Tone:          assistant.ToneInformal,
	}
}

func notFoundErr() error {
	return platformerrors.NewError(context.Background(), platformerrors.LayerRepository,
		platformerrors.ErrorTypeNotFound, "assistant not found", nil, "test-not-found")
}

func newService(store assistant.Store, provider assistant.Provider) *assistant.Service {
	instructions := func(cfg assistant.Config) string { return "instructions for " + cfg.AssistantName }
	return assistant.NewService(store, provider, instructions, "gpt-4o-mini", zerolog.Nop())
}

func TestSave_CreatesAssistantWhenNoneStored(t *testing.T) {
	store := &MockStore{
		GetConfigFunc: func(ctx context.Context) (*assistant.StoredConfig, error) {
			return storedConfig(""), nil
		},
	}
	provider := &MockProvider{}

	id, err := newService(store, provider).Save(context.Background(), validInput())
	require.NoError(t, err)
	require.Equal(t, "asst_new", id)
	require.Equal(t, 1, provider.CreateCalls)
	require.Zero(t, provider.UpdateCalls)
	require.NotNil(t, store.Saved)
	require.Equal(t, "asst_new", store.Saved.HostedAssistantID)
}

func TestSave_UpdatesExistingAssistantAndKeepsCustomCommands(t *testing.T) {
	store := &MockStore{
		GetConfigFunc: func(ctx context.Context) (*assistant.StoredConfig, error) {
			return storedConfig("asst_existing"), nil
		},
	}
	provider := &MockProvider{}

	id, err := newService(store, provider).Save(context.Background(), validInput())
	require.NoError(t, err)
	require.Equal(t, "asst_existing", id)
	require.Equal(t, 1, provider.UpdateCalls)
	require.Zero(t, provider.CreateCalls)
	require.Equal(t, "/stored-command", store.Saved.CustomCommands,
		"stored custom commands must survive a form save")
}

func TestSave_RejectsInvalidConfig(t *testing.T) {
	cfg := validInput()
	cfg.CompanyName = ""

	_, err := newService(&MockStore{}, &MockProvider{}).Save(context.Background(), cfg)
	require.True(t, platformerrors.IsType(err, platformerrors.ErrorTypeValidation))
}

func TestSave_MissingRecordIsNotFound(t *testing.T) {
	store := &MockStore{
		GetConfigFunc: func(ctx context.Context) (*assistant.StoredConfig, error) {
			return nil, notFoundErr()
		},
	}

	_, err := newService(store, &MockProvider{}).Save(context.Background(), validInput())
	require.True(t, platformerrors.IsType(err, platformerrors.ErrorTypeNotFound))
}

func TestValidateSetup(t *testing.T) {
	tests := []struct {
		name           string
		stored         *assistant.StoredConfig
		storeErr       error
		wantConfigured bool
		wantNeedsSetup bool
	}{
		{"configured persona", storedConfig("asst_1"), nil, true, false},
		{"missing hosted assistant", storedConfig(""), nil, false, true},
		{"missing record", nil, notFoundErr(), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &MockStore{
				GetConfigFunc: func(ctx context.Context) (*assistant.StoredConfig, error) {
					return tt.stored, tt.storeErr
				},
			}

			status, err := newService(store, &MockProvider{}).ValidateSetup(context.Background())
			require.NoError(t, err, "needs-setup must not surface as an error")
			require.Equal(t, tt.wantConfigured, status.IsConfigured)
			require.Equal(t, tt.wantNeedsSetup, status.NeedsSetup)
		})
	}
}

func TestInfo(t *testing.T) {
	store := &MockStore{
		GetConfigFunc: func(ctx context.Context) (*assistant.StoredConfig, error) {
			return storedConfig("asst_1"), nil
		},
	}

	info, err := newService(store, &MockProvider{}).Info(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Lia", info.AssistantName)
	require.Equal(t, "Acme Kitchens", info.CompanyName)
	require.True(t, info.HasAssistant)
}
