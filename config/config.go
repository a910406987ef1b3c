package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Trigger matching strategies for group conversations
const (
	MatchStrategyMention   = "mention"   // structured mention-list match (canonical)
	MatchStrategySubstring = "substring" // literal "@<bot-handle>" match (legacy)
)

type HubConfig struct {
	BaseURL        string
	CallbackSecret string // optional; enables HMAC verification of webhook signatures
	RequestTimeout time.Duration
}

// IsConfigured returns true if all required hub configuration is present
func (c HubConfig) IsConfigured() bool {
	return c.BaseURL != ""
	// Note: CallbackSecret is optional - without it, signature params are
	// checked for presence only
}

type CozeConfig struct {
	BaseURL        string
	AccessToken    string
	BotID          string
	ConversationID string
	UserTag        string
	RequestTimeout time.Duration
}

// IsConfigured returns true if all required conversational backend configuration is present
func (c CozeConfig) IsConfigured() bool {
	return c.BaseURL != "" &&
		c.AccessToken != "" &&
		c.BotID != ""
}

type LookupConfig struct {
	BaseURL        string
	APIKey         string
	Model          string
	ReferencePath  string // JSON product reference table, loaded once at startup
	RequestTimeout time.Duration
}

// IsConfigured returns true if all required lookup responder configuration is present
func (c LookupConfig) IsConfigured() bool {
	return c.BaseURL != "" &&
		c.APIKey != "" &&
		c.Model != "" &&
		c.ReferencePath != ""
}

type TriggerConfig struct {
	Word          string // direct-chat trigger prefix
	BotHandle     string // group-chat display handle, matched as "@<handle>"
	MatchStrategy string // mention | substring
	QuoteReplies  bool   // echo the inbound messageId as quoteMessageId
}

type DedupConfig struct {
	Enabled    bool
	Window     time.Duration
	MaxEntries int
}

type AppConfig struct {
	// Core configuration (always required)
	DatabaseURL        string
	DatabaseSchema     string
	Port               string // Optional with default "8600"
	CORSAllowedOrigins string // Optional with default "*"
	Environment        string
	FailureLogDir      string
	UseStrictConfig    bool // If true, error when any integration is not fully configured

	HubConfig     HubConfig
	CozeConfig    CozeConfig
	LookupConfig  LookupConfig
	TriggerConfig TriggerConfig
	DedupConfig   DedupConfig
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	// Core required configuration
	databaseURL, err := getEnvRequired("DB_URL")
	if err != nil {
		return nil, err
	}

	databaseSchema, err := getEnvRequired("DB_SCHEMA")
	if err != nil {
		return nil, err
	}

	config := &AppConfig{
		DatabaseURL:        databaseURL,
		DatabaseSchema:     databaseSchema,
		Port:               getEnvWithDefault("PORT", "8600"),
		CORSAllowedOrigins: getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*"),
		Environment:        getEnvWithDefault("ENVIRONMENT", "dev"),
		FailureLogDir:      getEnvWithDefault("FAILURE_LOG_DIR", "."),
		UseStrictConfig:    getEnvWithDefault("USE_STRICT_CONFIG", "true") == "true",

		HubConfig: HubConfig{
			BaseURL:        getEnvWithDefault("HUB_BASE_URL", "https://hub.juzibot.com"),
			CallbackSecret: os.Getenv("HUB_CALLBACK_SECRET"),
			RequestTimeout: getEnvDuration("HUB_REQUEST_TIMEOUT", 15*time.Second),
		},

		CozeConfig: CozeConfig{
			BaseURL:        getEnvWithDefault("COZE_BASE_URL", "https://api.coze.cn"),
			AccessToken:    os.Getenv("COZE_ACCESS_TOKEN"),
			BotID:          os.Getenv("COZE_BOT_ID"),
			ConversationID: getEnvWithDefault("COZE_CONVERSATION_ID", "default"),
			UserTag:        getEnvWithDefault("COZE_USER_TAG", "fangbot"),
			RequestTimeout: getEnvDuration("COZE_REQUEST_TIMEOUT", 60*time.Second),
		},

		// Lookup responder configuration (optional)
		LookupConfig: LookupConfig{
			BaseURL:        os.Getenv("LOOKUP_BASE_URL"),
			APIKey:         os.Getenv("LOOKUP_API_KEY"),
			Model:          os.Getenv("LOOKUP_MODEL"),
			ReferencePath:  os.Getenv("LOOKUP_REFERENCE_PATH"),
			RequestTimeout: getEnvDuration("LOOKUP_REQUEST_TIMEOUT", 60*time.Second),
		},

		TriggerConfig: TriggerConfig{
			Word:          getEnvWithDefault("TRIGGER_WORD", "方工"),
			BotHandle:     getEnvWithDefault("BOT_HANDLE", "有方方工"),
			MatchStrategy: getEnvWithDefault("TRIGGER_MATCH_STRATEGY", MatchStrategyMention),
			QuoteReplies:  getEnvWithDefault("QUOTE_REPLIES", "false") == "true",
		},

		DedupConfig: DedupConfig{
			Enabled:    getEnvWithDefault("DEDUP_ENABLED", "true") == "true",
			Window:     getEnvDuration("DEDUP_WINDOW", 10*time.Minute),
			MaxEntries: getEnvInt("DEDUP_MAX_ENTRIES", 10000),
		},
	}

	if config.TriggerConfig.MatchStrategy != MatchStrategyMention &&
		config.TriggerConfig.MatchStrategy != MatchStrategySubstring {
		return nil, fmt.Errorf(
			"TRIGGER_MATCH_STRATEGY must be %q or %q, got %q",
			MatchStrategyMention, MatchStrategySubstring, config.TriggerConfig.MatchStrategy,
		)
	}

	// Log which integrations are configured
	if config.CozeConfig.IsConfigured() {
		log.Printf("✅ Conversational backend configured")
	} else {
		log.Printf("⚠️ Conversational backend not configured - triggered messages will fail")
		if config.UseStrictConfig {
			return nil, fmt.Errorf("conversational backend is not fully configured (USE_STRICT_CONFIG=true)")
		}
	}

	if config.LookupConfig.IsConfigured() {
		log.Printf("✅ Lookup responder configured")
	} else {
		log.Printf("⚠️ Lookup responder not configured - unusable answers will pass through unchanged")
		if config.UseStrictConfig {
			return nil, fmt.Errorf("lookup responder is not fully configured (USE_STRICT_CONFIG=true)")
		}
	}

	if config.HubConfig.CallbackSecret != "" {
		log.Printf("✅ Webhook signature verification enabled")
	} else {
		log.Printf("⚠️ Webhook signature verification disabled - signature params checked for presence only")
	}

	return config, nil
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("⚠️ Invalid duration for %s: %q, using default %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("⚠️ Invalid integer for %s: %q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
