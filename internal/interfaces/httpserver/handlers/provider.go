package handlers

import (
	"github.com/rs/zerolog"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Assistant    *AssistantHandler
	Chat         *ChatHandler
	Conversation *ConversationHandler
	Feedback     *FeedbackHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(
	assistantService AssistantService,
	assistantResolver AssistantResolver,
	turnRunner TurnRunner,
	conversationService ConversationService,
	feedbackService FeedbackService,
	log zerolog.Logger,
) *Provider {
	return &Provider{
		Assistant:    NewAssistantHandler(assistantService, log),
		Chat:         NewChatHandler(assistantResolver, turnRunner, log),
		Conversation: NewConversationHandler(conversationService, log),
		Feedback:     NewFeedbackHandler(feedbackService, log),
	}
}
