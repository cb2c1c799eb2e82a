package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"chatdesk/assistant-api/internal/config"
	"chatdesk/assistant-api/internal/domain/assistant"
	"chatdesk/assistant-api/internal/domain/conversation"
	"chatdesk/assistant-api/internal/domain/feedback"
	"chatdesk/assistant-api/internal/domain/prompt"
	"chatdesk/assistant-api/internal/domain/reengagement"
	"chatdesk/assistant-api/internal/domain/run"
	"chatdesk/assistant-api/internal/infrastructure/assistantapi"
	"chatdesk/assistant-api/internal/infrastructure/auth"
	"chatdesk/assistant-api/internal/infrastructure/logger"
	"chatdesk/assistant-api/internal/infrastructure/observability"
	"chatdesk/assistant-api/internal/infrastructure/recordstore"
	"chatdesk/assistant-api/internal/interfaces/httpserver"
	"chatdesk/assistant-api/internal/interfaces/httpserver/handlers"
)

// @title Assistant API
// @version 1.0
// @description Customer support chat widget backend driving a hosted assistant.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	authValidator, err := auth.NewValidator(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize auth validator")
	}

	storeClient := recordstore.NewClient(cfg)
	assistantRepository := recordstore.NewAssistantRepository(storeClient, cfg.LocationID)
	conversationRepository := recordstore.NewConversationRepository(storeClient, cfg.LocationID)
	messageRepository := recordstore.NewMessageRepository(storeClient)
	feedbackRepository := recordstore.NewFeedbackRepository(storeClient)

	providerClient := assistantapi.NewClient(cfg)

	assistantService := assistant.NewService(assistantRepository, providerClient, prompt.BuildInstructions, cfg.AssistantModel, log)
	conversationService := conversation.NewService(conversationRepository, assistantRepository, providerClient, log)
	feedbackService := feedback.NewService(feedbackRepository, log)
	orchestrator := run.NewOrchestrator(providerClient, messageRepository, cfg.RunPollInterval, cfg.RunPollAttempts, log)

	if cfg.ReengagementEnabled {
		reengagementRepository := recordstore.NewReengagementRepository(storeClient, messageRepository, cfg.LocationID)
		janitor := reengagement.NewJanitor(reengagementRepository, assistantService, cfg.ReengagementCron, log)
		go func() {
			if err := janitor.Run(ctx); err != nil {
				log.Error().Err(err).Msg("re-engagement janitor stopped")
			}
		}()
	}

	handlerProvider := handlers.NewProvider(
		assistantService,
		assistantService,
		orchestrator,
		conversationService,
		feedbackService,
		log,
	)

	httpServer := httpserver.New(cfg, log, handlerProvider, authValidator)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
