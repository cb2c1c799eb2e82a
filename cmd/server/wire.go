//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"

	"chatdesk/assistant-api/internal/config"
	"chatdesk/assistant-api/internal/domain/assistant"
	"chatdesk/assistant-api/internal/domain/conversation"
	"chatdesk/assistant-api/internal/domain/feedback"
	"chatdesk/assistant-api/internal/domain/prompt"
	"chatdesk/assistant-api/internal/domain/run"
	"chatdesk/assistant-api/internal/infrastructure/assistantapi"
	"chatdesk/assistant-api/internal/infrastructure/auth"
	"chatdesk/assistant-api/internal/infrastructure/recordstore"
	"chatdesk/assistant-api/internal/interfaces/httpserver"
	"chatdesk/assistant-api/internal/interfaces/httpserver/handlers"
)

func provideLocationID(cfg *config.Config) string {
	return cfg.LocationID
}

func provideInstructionsBuilder() assistant.InstructionsBuilder {
	return prompt.BuildInstructions
}

func provideAssistantService(
	repo *recordstore.AssistantRepository,
	client *assistantapi.Client,
	builder assistant.InstructionsBuilder,
	cfg *config.Config,
	log zerolog.Logger,
) *assistant.Service {
	return assistant.NewService(repo, client, builder, cfg.AssistantModel, log)
}

func provideOrchestrator(
	client *assistantapi.Client,
	messages *recordstore.MessageRepository,
	cfg *config.Config,
	log zerolog.Logger,
) *run.Orchestrator {
	return run.NewOrchestrator(client, messages, cfg.RunPollInterval, cfg.RunPollAttempts, log)
}

var infrastructureSet = wire.NewSet(
	recordstore.NewClient,
	assistantapi.NewClient,
	auth.NewValidator,
	provideLocationID,
	recordstore.NewAssistantRepository,
	recordstore.NewConversationRepository,
	recordstore.NewMessageRepository,
	recordstore.NewFeedbackRepository,
)

var domainSet = wire.NewSet(
	provideInstructionsBuilder,
	provideAssistantService,
	provideOrchestrator,
	conversation.NewService,
	feedback.NewService,
	wire.Bind(new(conversation.Repository), new(*recordstore.ConversationRepository)),
	wire.Bind(new(conversation.AssistantResolver), new(*recordstore.AssistantRepository)),
	wire.Bind(new(conversation.ThreadCreator), new(*assistantapi.Client)),
	wire.Bind(new(feedback.Repository), new(*recordstore.FeedbackRepository)),
)

var httpSet = wire.NewSet(
	handlers.NewProvider,
	wire.Bind(new(handlers.AssistantService), new(*assistant.Service)),
	wire.Bind(new(handlers.AssistantResolver), new(*assistant.Service)),
	wire.Bind(new(handlers.TurnRunner), new(*run.Orchestrator)),
	wire.Bind(new(handlers.ConversationService), new(*conversation.Service)),
	wire.Bind(new(handlers.FeedbackService), new(*feedback.Service)),
	httpserver.New,
)

// BuildApplication assembles the full application graph.
func BuildApplication(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Application, error) {
	wire.Build(
		infrastructureSet,
		domainSet,
		httpSet,
		NewApplication,
	)
	return nil, nil
}
