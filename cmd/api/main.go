package main

import (
	"context"
	"fmt"

	"voice-order-assistant/config"
	_ "voice-order-assistant/docs" // Swagger docs
	"voice-order-assistant/internal/fulfillment"
	fulfillMemory "voice-order-assistant/internal/fulfillment/repository/memory"
	"voice-order-assistant/internal/httpserver"
	orderHTTP "voice-order-assistant/internal/order/delivery/http"
	orderMemory "voice-order-assistant/internal/order/repository/memory"
	orderUC "voice-order-assistant/internal/order/usecase"
	"voice-order-assistant/pkg/dialogflow"
	"voice-order-assistant/pkg/log"
	"voice-order-assistant/pkg/speech"
	"voice-order-assistant/pkg/tts"
)

// @title       Voice Order Assistant API
// @description Voice-driven ordering backend relaying Google Speech-to-Text, Dialogflow and Text-to-Speech.
// @version     1
// @host        localhost:5000
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx := context.Background()

	logger.Info(ctx, "Starting Voice Order Assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Dialogflow project: %s", cfg.Google.ProjectID)

	// 3. Google Cloud collaborators
	speechClient, err := speech.NewClientFromCredentialsFile(ctx, cfg.Google.SpeechCredentials)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize speech client: %v", err)
	}
	speechClient = speechClient.WithLanguageCode(cfg.Google.SpeechLocale)

	intentClient, err := dialogflow.NewClientFromCredentialsFile(ctx, cfg.Google.AgentCredentials, cfg.Google.ProjectID)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize dialogflow client: %v", err)
	}
	intentClient = intentClient.WithLanguageCode(cfg.Google.LanguageCode)

	ttsClient, err := tts.NewClientFromCredentialsFile(ctx, cfg.Google.AgentCredentials)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize texttospeech client: %v", err)
	}

	// 4. Voice order domain
	sessionStore := orderMemory.New(logger, orderMemory.Config{
		MaxEntries: cfg.Session.MaxEntries,
		TTL:        cfg.Session.TTL,
	})
	uc := orderUC.New(logger, speechClient, intentClient, ttsClient, sessionStore)
	orderHandler := orderHTTP.New(logger, uc)

	// 5. Fulfillment webhook (optional)
	var fulfillmentHandler *fulfillment.Handler
	if cfg.Webhook.Enabled {
		menuRepo, menuErr := fulfillMemory.LoadMenuFile(cfg.Menu.Path)
		if menuErr != nil {
			logger.Warnf(ctx, "Fulfillment webhook disabled, menu not available: %v", menuErr)
		} else {
			drafts := fulfillMemory.NewDrafts(logger, cfg.Session.MaxEntries, cfg.Session.TTL)

			var security *fulfillment.SecurityValidator
			if cfg.Webhook.Secret != "" {
				security = fulfillment.NewSecurityValidator(fulfillment.SecurityConfig{
					Secret:          cfg.Webhook.Secret,
					RateLimitPerMin: cfg.Webhook.RateLimitPerMin,
				})
			} else {
				logger.Warn(ctx, "Webhook secret not set, fulfillment requests are unauthenticated")
			}

			fulfillmentHandler = fulfillment.New(logger, menuRepo, drafts, security)
		}
	}

	// 6. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:             logger,
		Port:               cfg.HTTPServer.Port,
		Mode:               cfg.HTTPServer.Mode,
		Environment:        cfg.Environment.Name,
		AllowedOrigin:      cfg.CORS.AllowedOrigin,
		OrderHandler:       orderHandler,
		FulfillmentHandler: fulfillmentHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 7. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
