package recordstore

import (
	"context"

	"chatdesk/assistant-api/internal/domain/assistant"
	"chatdesk/assistant-api/internal/utils/platformerrors"
)

type assistantLinkFields struct {
	LocationID  string `json:"LocationId,omitempty"`
	AssistantID string `json:"AssistantId,omitempty"`
}

type assistantFields struct {
	AssistantID string `json:"AssistantId,omitempty"`
	assistant.Config
}

// assistantUpdateFields is the write-side shape of the persona. It carries no
// omitempty tags on the free-text fields so a value the user cleared in the
// form is sent as an empty string and overwrites the stored one.
type assistantUpdateFields struct {
	AssistantName string `json:"AssistantName"`
	CompanyName   string `json:"CompanyName"`
	Tone          string `json:"Tone"`
	Objective     string `json:"Objective"`

	CompanyDescription  string `json:"CompanyDescription"`
	Sector              string `json:"Sector"`
	TargetCustomers     string `json:"TargetCustomers"`
	Personality         string `json:"Personality"`
	QualifyingQuestions string `json:"QualifyingQuestions"`
	FAQ                 string `json:"FAQ"`
	ConversationSamples string `json:"ConversationSamples"`
	ObjectionHandling   string `json:"ObjectionHandling"`
	UnavailableProducts string `json:"UnavailableProducts"`
	DoNotAnswer         string `json:"DoNotAnswer"`
	ExtraInfo           string `json:"ExtraInfo"`
	SourceSites         string `json:"SourceSites"`
	ReengagementMessage string `json:"ReengagementMessage"`
	CustomCommands      string `json:"CustomCommands"`

	HostedAssistantID string `json:"HostedAssistantID"`
}

func updateFieldsFrom(cfg assistant.Config) assistantUpdateFields {
	return assistantUpdateFields{
		AssistantName:       cfg.AssistantName,
		CompanyName:         cfg.CompanyName,
		Tone:                string(cfg.Tone),
		Objective:           string(cfg.Objective),
		CompanyDescription:  cfg.CompanyDescription,
		Sector:              cfg.Sector,
		TargetCustomers:     cfg.TargetCustomers,
		Personality:         cfg.Personality,
		QualifyingQuestions: cfg.QualifyingQuestions,
		FAQ:                 cfg.FAQ,
		ConversationSamples: cfg.ConversationSamples,
		ObjectionHandling:   cfg.ObjectionHandling,
		UnavailableProducts: cfg.UnavailableProducts,
		DoNotAnswer:         cfg.DoNotAnswer,
		ExtraInfo:           cfg.ExtraInfo,
		SourceSites:         cfg.SourceSites,
		ReengagementMessage: cfg.ReengagementMessage,
		CustomCommands:      cfg.CustomCommands,
		HostedAssistantID:   cfg.HostedAssistantID,
	}
}

// AssistantRepository resolves the persona configured for one location. It
// implements assistant.Store and conversation.AssistantResolver.
type AssistantRepository struct {
	client     *Client
	locationID string
}

func NewAssistantRepository(client *Client, locationID string) *AssistantRepository {
	return &AssistantRepository{client: client, locationID: locationID}
}

// assistantRecord follows the location's link row to its assistant row.
func (r *AssistantRepository) assistantRecord(ctx context.Context) (*Record, *assistantFields, error) {
	links, err := r.client.Select(ctx, TableAssistantLink, SelectParams{
		FilterByFormula: formulaEq("LocationId", r.locationID),
		MaxRecords:      1,
	})
	if err != nil {
		return nil, nil, err
	}
	if len(links) == 0 {
		return nil, nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound, "no assistant is linked to this location", nil,
			"recordstore-assistant-no-link")
	}

	var link assistantLinkFields
	if err := DecodeFields(ctx, TableAssistantLink, links[0], &link); err != nil {
		return nil, nil, err
	}

	rows, err := r.client.Select(ctx, TableAssistant, SelectParams{
		FilterByFormula: formulaEq("AssistantId", link.AssistantID),
		MaxRecords:      1,
	})
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound, "linked assistant record does not exist", nil,
			"recordstore-assistant-missing")
	}

	var fields assistantFields
	if err := DecodeFields(ctx, TableAssistant, rows[0], &fields); err != nil {
		return nil, nil, err
	}
	return &rows[0], &fields, nil
}

// GetConfig returns the stored persona for the location.
func (r *AssistantRepository) GetConfig(ctx context.Context) (*assistant.StoredConfig, error) {
	record, fields, err := r.assistantRecord(ctx)
	if err != nil {
		return nil, err
	}
	return &assistant.StoredConfig{RecordID: record.ID, Config: fields.Config}, nil
}

// SaveConfig writes the persona fields back to its record. Every field is
// written, including the empty ones, so the record always mirrors the form.
func (r *AssistantRepository) SaveConfig(ctx context.Context, recordID string, cfg assistant.Config) error {
	_, err := r.client.UpdateRecord(ctx, TableAssistant, recordID, updateFieldsFrom(cfg))
	return err
}

// ResolveRecordID returns the assistant record id for the location.
func (r *AssistantRepository) ResolveRecordID(ctx context.Context) (string, error) {
	record, _, err := r.assistantRecord(ctx)
	if err != nil {
		return "", err
	}
	return record.ID, nil
}
