package recordstore_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"chatdesk/assistant-api/internal/config"
	"chatdesk/assistant-api/internal/infrastructure/recordstore"
	"chatdesk/assistant-api/internal/utils/platformerrors"
)

func newTestClient(t *testing.T, handler http.Handler) *recordstore.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return recordstore.NewClient(&config.Config{
		RecordStoreBaseURL: server.URL,
		RecordStoreBaseID:  "base123",
		RecordStoreAPIKey:  "test-key",
		RecordStoreTimeout: 5 * time.Second,
	})
}

func TestSelect_SendsFilterSortAndAuth(t *testing.T) {
	var gotPath, gotAuth, gotFilter, gotSortField, gotSortDir, gotMax string

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotFilter = r.URL.Query().Get("filterByFormula")
		gotSortField = r.URL.Query().Get("sort[0][field]")
		gotSortDir = r.URL.Query().Get("sort[0][direction]")
		gotMax = r.URL.Query().Get("maxRecords")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"records": []map[string]any{{"id": "rec1", "fields": map[string]any{"ThreadId": "th_1"}}},
		})
	}))

	records, err := client.Select(context.Background(), recordstore.TableConversations, recordstore.SelectParams{
		FilterByFormula: "{LocationId}='loc_1'",
		Sort:            []recordstore.SortField{{Field: "StartedAt", Direction: "desc"}},
		MaxRecords:      1,
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "rec1", records[0].ID)

	require.Equal(t, "/base123/Conversations", gotPath)
	require.Equal(t, "Bearer test-key", gotAuth)
	require.Equal(t, "{LocationId}='loc_1'", gotFilter)
	require.Equal(t, "StartedAt", gotSortField)
	require.Equal(t, "desc", gotSortDir)
	require.Equal(t, "1", gotMax)
}

func TestSelect_FollowsPaginationOffset(t *testing.T) {
	calls := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("offset") == "" {
			json.NewEncoder(w).Encode(map[string]any{
				"records": []map[string]any{{"id": "rec1", "fields": map[string]any{}}},
				"offset":  "page2",
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"records": []map[string]any{{"id": "rec2", "fields": map[string]any{}}},
		})
	}))

	records, err := client.Select(context.Background(), recordstore.TableMessages, recordstore.SelectParams{AllPages: true})
	require.NoError(t, err)
	require.Equal(t, 2, calls)
	require.Len(t, records, 2)
	require.Equal(t, "rec1", records[0].ID)
	require.Equal(t, "rec2", records[1].ID)
}

func TestSelect_FirstPageOnlyWithoutAllPages(t *testing.T) {
	calls := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"records": []map[string]any{{"id": "rec1", "fields": map[string]any{}}},
			"offset":  "page2",
		})
	}))

	records, err := client.Select(context.Background(), recordstore.TableMessages, recordstore.SelectParams{})
	require.NoError(t, err)
	require.Equal(t, 1, calls)
	require.Len(t, records, 1)
}

func TestCreateRecord_WrapsFieldsEnvelope(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": "rec_new", "fields": map[string]any{}})
	}))

	created, err := client.CreateRecord(context.Background(), recordstore.TableFeedback, map[string]any{"Content": "hi"})
	require.NoError(t, err)
	require.Equal(t, "rec_new", created.ID)

	fields, ok := gotBody["fields"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "hi", fields["Content"])
}

func TestUpdateRecord_PatchesRecordPath(t *testing.T) {
	var gotMethod, gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": "rec_1", "fields": map[string]any{}})
	}))

	_, err := client.UpdateRecord(context.Background(), recordstore.TableAssistant, "rec_1", map[string]any{"Tone": "Informal"})
	require.NoError(t, err)
	require.Equal(t, http.MethodPatch, gotMethod)
	require.Equal(t, "/base123/Assistant/rec_1", gotPath)
}

func TestErrorStatusBecomesRecordStoreError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"INVALID_FILTER"}`, http.StatusUnprocessableEntity)
	}))

	_, err := client.Select(context.Background(), recordstore.TableClients, recordstore.SelectParams{})
	require.Error(t, err)
	require.True(t, platformerrors.IsType(err, platformerrors.ErrorTypeRecordStore))
}

func TestDecodeFields_SchemaMismatchIsTyped(t *testing.T) {
	record := recordstore.Record{ID: "rec_1", Fields: json.RawMessage(`{"MsgId":"not-a-number"}`)}

	var out struct {
		MsgID int `json:"MsgId"`
	}
	err := recordstore.DecodeFields(context.Background(), recordstore.TableMessages, record, &out)
	require.Error(t, err)
	require.True(t, platformerrors.IsType(err, platformerrors.ErrorTypeRecordStore))
}
