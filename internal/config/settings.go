package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"

	DefaultMaxDocumentBytes = 20 << 20
)

type Settings struct {
	Env      string
	LogLevel string
	Port     string

	AIProvider      string
	GeminiAPIKey    string
	GeminiModel     string
	AnthropicAPIKey string
	AnthropicModel  string

	// QuizServiceURL points front-ends at a remote /ai-quiz endpoint instead of
	// calling the model in-process.
	QuizServiceURL string

	TelegramToken string

	MaxDocumentBytes int64
	SessionIdleTTL   time.Duration
	CORSOrigins      []string
}

func Load() Settings {
	_ = godotenv.Load()

	geminiKey := os.Getenv("GEMINI_API_KEY")
	if geminiKey == "" {
		geminiKey = os.Getenv("GOOGLE_API_KEY")
	}

	return Settings{
		Env:              getEnv("APP_ENV", "development"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		Port:             getEnv("PORT", "8080"),
		AIProvider:       strings.ToLower(getEnv("AI_PROVIDER", ProviderGemini)),
		GeminiAPIKey:     geminiKey,
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		AnthropicAPIKey:  os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:   getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
		QuizServiceURL:   strings.TrimRight(os.Getenv("QUIZ_SERVICE_URL"), "/"),
		TelegramToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		MaxDocumentBytes: getInt64("MAX_DOCUMENT_BYTES", DefaultMaxDocumentBytes),
		SessionIdleTTL:   getDuration("SESSION_IDLE_TTL", 30*time.Minute),
		CORSOrigins:      splitList(getEnv("CORS_ORIGINS", "*")),
	}
}

func (s Settings) IsProduction() bool {
	switch strings.ToLower(s.Env) {
	case "prod", "production":
		return true
	default:
		return false
	}
}

func getEnv(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

func getInt64(name string, def int64) int64 {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil || i <= 0 {
		return def
	}
	return i
}

func getDuration(name string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
