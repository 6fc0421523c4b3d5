package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig
	CORS       CORSConfig

	// Google Cloud collaborators
	Google GoogleConfig

	// Session store
	Session SessionConfig

	// Fulfillment webhook
	Webhook WebhookConfig
	Menu    MenuConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type CORSConfig struct {
	AllowedOrigin string
}

// GoogleConfig points at the two service-credential files: one for speech
// transcription, one shared by the Dialogflow agent and text-to-speech.
type GoogleConfig struct {
	SpeechCredentials string
	AgentCredentials  string
	ProjectID         string
	LanguageCode      string
	SpeechLocale      string
}

type SessionConfig struct {
	MaxEntries int
	TTL        time.Duration
}

type WebhookConfig struct {
	Enabled         bool
	Secret          string
	RateLimitPerMin int
}

type MenuConfig struct {
	Path string
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")
	cfg.CORS.AllowedOrigin = viper.GetString("cors.allowed_origin")

	// Google Cloud collaborators
	cfg.Google.SpeechCredentials = viper.GetString("google.speech_credentials")
	cfg.Google.AgentCredentials = viper.GetString("google.agent_credentials")
	cfg.Google.ProjectID = viper.GetString("google.project_id")
	cfg.Google.LanguageCode = viper.GetString("google.language_code")
	cfg.Google.SpeechLocale = viper.GetString("google.speech_locale")
	if speechCreds := viper.GetString("google_speech_credentials"); speechCreds != "" {
		cfg.Google.SpeechCredentials = speechCreds
	}
	if agentCreds := viper.GetString("google_agent_credentials"); agentCreds != "" {
		cfg.Google.AgentCredentials = agentCreds
	}
	if projectID := viper.GetString("google_project_id"); projectID != "" {
		cfg.Google.ProjectID = projectID
	}

	// Session store
	cfg.Session.MaxEntries = viper.GetInt("session.max_entries")
	cfg.Session.TTL = viper.GetDuration("session.ttl")

	// Fulfillment webhook
	cfg.Webhook.Enabled = viper.GetBool("webhook.enabled")
	cfg.Webhook.Secret = viper.GetString("webhook.secret")
	if webhookSecret := viper.GetString("webhook_secret"); webhookSecret != "" {
		cfg.Webhook.Secret = webhookSecret
	}
	cfg.Webhook.RateLimitPerMin = viper.GetInt("webhook.rate_limit_per_min")
	cfg.Menu.Path = viper.GetString("menu.path")

	if cfg.Google.ProjectID == "" {
		return nil, fmt.Errorf("google.project_id is required - set it in config.yaml or GOOGLE_PROJECT_ID")
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 5000)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("cors.allowed_origin", "http://localhost:3000")
	viper.SetDefault("google.language_code", "en")
	viper.SetDefault("google.speech_locale", "en-US")
	viper.SetDefault("session.max_entries", 10000)
	viper.SetDefault("session.ttl", "30m")
	viper.SetDefault("webhook.enabled", true)
	viper.SetDefault("webhook.rate_limit_per_min", 60)
	viper.SetDefault("menu.path", "./config/menu.yaml")
}
