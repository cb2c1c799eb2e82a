// Package recordstore is the client for the external tabular record store.
// Every row crosses this boundary as a typed struct; dynamic field access
// stays inside the package.
package recordstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"chatdesk/assistant-api/internal/config"
	"chatdesk/assistant-api/internal/infrastructure/metrics"
	"chatdesk/assistant-api/internal/utils/platformerrors"
)

// Table names in the record store base.
const (
	TableClients        = "Clients"
	TableAssistantLink  = "AssistantLink"
	TableAssistant      = "Assistant"
	TableConversations  = "Conversations"
	TableMessages       = "Messages"
	TableFeedback       = "Feedback"
	TableAdvancedConfig = "AdvancedConfig"
)

// Record is one raw row. Fields stay encoded until a repository decodes them
// into its table struct.
type Record struct {
	ID          string          `json:"id"`
	CreatedTime time.Time       `json:"createdTime,omitempty"`
	Fields      json.RawMessage `json:"fields"`
}

// SortField orders a select.
type SortField struct {
	Field     string
	Direction string // "asc" or "desc"
}

// SelectParams narrows a table select.
type SelectParams struct {
	FilterByFormula string
	Sort            []SortField
	MaxRecords      int
	// AllPages follows the pagination offset until the result is complete.
	AllPages bool
}

type listResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset,omitempty"`
}

type recordEnvelope struct {
	Fields any `json:"fields"`
}

// Client issues requests against one record store base.
type Client struct {
	http *resty.Client
}

// NewClient creates a Resty-backed client scoped to the configured base.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimSuffix(cfg.RecordStoreBaseURL, "/") + "/" + cfg.RecordStoreBaseID).
			SetAuthToken(cfg.RecordStoreAPIKey).
			SetHeader("Content-Type", "application/json").
			SetTimeout(cfg.RecordStoreTimeout),
	}
}

// Select returns the rows matching params. With AllPages it follows the
// pagination offset; otherwise only the first page is fetched.
func (c *Client) Select(ctx context.Context, table string, params SelectParams) ([]Record, error) {
	var records []Record
	offset := ""

	for {
		var page listResponse
		req := c.http.R().SetContext(ctx).SetResult(&page)

		if params.FilterByFormula != "" {
			req.SetQueryParam("filterByFormula", params.FilterByFormula)
		}
		if params.MaxRecords > 0 {
			req.SetQueryParam("maxRecords", strconv.Itoa(params.MaxRecords))
		}
		for i, sort := range params.Sort {
			req.SetQueryParam(fmt.Sprintf("sort[%d][field]", i), sort.Field)
			req.SetQueryParam(fmt.Sprintf("sort[%d][direction]", i), sort.Direction)
		}
		if offset != "" {
			req.SetQueryParam("offset", offset)
		}

		resp, err := req.Get("/" + url.PathEscape(table))
		if err := c.checkResponse(ctx, table, "select", resp, err); err != nil {
			return nil, err
		}

		records = append(records, page.Records...)
		offset = page.Offset
		if offset == "" || !params.AllPages {
			return records, nil
		}
	}
}

// CreateRecord inserts one row and returns it.
func (c *Client) CreateRecord(ctx context.Context, table string, fields any) (*Record, error) {
	var created Record
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(recordEnvelope{Fields: fields}).
		SetResult(&created).
		Post("/" + url.PathEscape(table))
	if err := c.checkResponse(ctx, table, "create", resp, err); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateRecord patches the given fields of one row.
func (c *Client) UpdateRecord(ctx context.Context, table, recordID string, fields any) (*Record, error) {
	var updated Record
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(recordEnvelope{Fields: fields}).
		SetResult(&updated).
		Patch("/" + url.PathEscape(table) + "/" + url.PathEscape(recordID))
	if err := c.checkResponse(ctx, table, "update", resp, err); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) checkResponse(ctx context.Context, table, operation string, resp *resty.Response, err error) error {
	if err != nil {
		metrics.RecordStoreCallsTotal.WithLabelValues(table, operation, "error").Inc()
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeRecordStore,
			fmt.Sprintf("record store %s on %s", operation, table), err,
			"recordstore-"+operation+"-transport")
	}
	if resp.IsError() {
		metrics.RecordStoreCallsTotal.WithLabelValues(table, operation, "error").Inc()
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeRecordStore,
			fmt.Sprintf("record store %s on %s: %d %s", operation, table, resp.StatusCode(), resp.String()),
			nil, "recordstore-"+operation+"-status")
	}
	metrics.RecordStoreCallsTotal.WithLabelValues(table, operation, "success").Inc()
	return nil
}

// DecodeFields unmarshals a row into its table struct. A row that does not
// match the expected schema is a record store error, not silent data.
func DecodeFields(ctx context.Context, table string, record Record, out any) error {
	if err := json.Unmarshal(record.Fields, out); err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeRecordStore,
			fmt.Sprintf("decode %s record %s", table, record.ID), err, "recordstore-decode")
	}
	return nil
}

// formulaEq renders a {Field}='value' filter with the value's quotes escaped.
func formulaEq(field, value string) string {
	return fmt.Sprintf("{%s}='%s'", field, strings.ReplaceAll(value, "'", "\\'"))
}
