// Package dto holds the request bodies accepted by the HTTP surface.
package dto

import "chatdesk/assistant-api/internal/domain/assistant"

// ChatRequest submits one user turn against an existing conversation.
type ChatRequest struct {
	Message        string `json:"message" binding:"required"`
	ConversationID string `json:"conversationId" binding:"required"`
	ThreadID       string `json:"threadId" binding:"required"`
}

// ConversationCreateRequest starts a new conversation for a client location.
type ConversationCreateRequest struct {
	ClientID string `json:"clientId" binding:"required"`
}

// FeedbackRequest rates one assistant message.
type FeedbackRequest struct {
	ID         string `json:"id" binding:"required"`
	Content    string `json:"content" binding:"required"`
	IsPositive bool   `json:"isPositive"`
}

// SaveConfigRequest is the persona configuration form payload.
type SaveConfigRequest struct {
	AssistantName string `json:"assistantName" binding:"required"`
	CompanyName   string `json:"companyName" binding:"required"`
	Tone          string `json:"tone" binding:"required"`
	Objective     string `json:"objective"`

	CompanyDescription  string `json:"companyDescription"`
	Sector              string `json:"sector"`
	TargetCustomers     string `json:"targetCustomers"`
	Personality         string `json:"personality"`
	QualifyingQuestions string `json:"qualifyingQuestions"`
	FAQ                 string `json:"faq"`
	ConversationSamples string `json:"conversationSamples"`
	ObjectionHandling   string `json:"objectionHandling"`
	UnavailableProducts string `json:"unavailableProducts"`
	DoNotAnswer         string `json:"doNotAnswer"`
	ExtraInfo           string `json:"extraInfo"`
	SourceSites         string `json:"sourceSites"`
	ReengagementMessage string `json:"reengagementMessage"`
}

// ToDomain maps the form payload onto the persona config.
func (r SaveConfigRequest) ToDomain() assistant.Config {
	return assistant.Config{
		AssistantName:       r.AssistantName,
		CompanyName:         r.CompanyName,
		Tone:                assistant.Tone(r.Tone),
		Objective:           assistant.Objective(r.Objective),
		CompanyDescription:  r.CompanyDescription,
		Sector:              r.Sector,
		TargetCustomers:     r.TargetCustomers,
		Personality:         r.Personality,
		QualifyingQuestions: r.QualifyingQuestions,
		FAQ:                 r.FAQ,
		ConversationSamples: r.ConversationSamples,
		ObjectionHandling:   r.ObjectionHandling,
		UnavailableProducts: r.UnavailableProducts,
		DoNotAnswer:         r.DoNotAnswer,
		ExtraInfo:           r.ExtraInfo,
		SourceSites:         r.SourceSites,
		ReengagementMessage: r.ReengagementMessage,
	}
}
