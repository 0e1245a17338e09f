package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	LegalAPI LegalAPIConfig
	WhatsApp WhatsAppConfig
	SMTP     SMTPConfig
	Operator OperatorConfig
	Reports  ReportsConfig
	Bot      BotConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type LegalAPIConfig struct {
	BaseURL string
	APIKey  string
}

type WhatsAppConfig struct {
	APIURL      string
	PhoneID     string
	Token       string
	VerifyToken string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type OperatorConfig struct {
	Email string
}

type ReportsConfig struct {
	Dir         string
	DeleteGrace time.Duration
}

type BotConfig struct {
	SessionTTL   time.Duration
	DedupeTTL    time.Duration
	InboundTopic string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		LegalAPI: LegalAPIConfig{
			BaseURL: getEnv("LEGAL_API_BASE_URL", "http://localhost:4000/api"),
			APIKey:  getEnv("LEGAL_API_KEY", ""),
		},
		WhatsApp: WhatsAppConfig{
			APIURL:      getEnv("WHATSAPP_API_URL", "https://graph.facebook.com/v19.0"),
			PhoneID:     getEnv("WHATSAPP_PHONE_ID", ""),
			Token:       getEnv("WHATSAPP_TOKEN", ""),
			VerifyToken: getEnv("WHATSAPP_VERIFY_TOKEN", "changeme"),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "LegalBot"),
		},
		Operator: OperatorConfig{
			Email: getEnv("OPERATOR_EMAIL", ""),
		},
		Reports: ReportsConfig{
			Dir:         getEnv("REPORTS_DIR", "reports"),
			DeleteGrace: getEnvAsDuration("REPORTS_DELETE_GRACE", 5*time.Minute),
		},
		Bot: BotConfig{
			SessionTTL:   getEnvAsDuration("BOT_SESSION_TTL", 1*time.Hour),
			DedupeTTL:    getEnvAsDuration("BOT_DEDUPE_TTL", 24*time.Hour),
			InboundTopic: getEnv("BOT_INBOUND_TOPIC", "INBOUND_CHAT_MESSAGE"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
