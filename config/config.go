package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"precojusto-backend/logger"
)

func LoadEnv() error {
	// .env is optional; in deployed environments variables are set directly
	_ = godotenv.Load()
	return nil
}

// Config is the runtime configuration, read from the environment.
type Config struct {
	Env  string
	Port string

	AllowedOrigins []string

	SearchDebounce   time.Duration
	SearchSessionTTL time.Duration
	FeedbackDelay    time.Duration
	ListTTL          time.Duration

	RateLimitRequests int
	RateLimitWindow   time.Duration

	GeminiAPIKey string
	GeminiModel  string

	FirebaseBucket    string
	GoogleCredentials string

	PriceHistoryDSN string
	NotifyPhone     string
}

var durationKeys = map[string]string{
	"SEARCH_DEBOUNCE":    "400ms",
	"SEARCH_SESSION_TTL": "30m",
	"FEEDBACK_DELAY":     "1s",
	"LIST_TTL":           "24h",
	"RATE_LIMIT_WINDOW":  "1m",
}

// ValidateEnv checks that the environment holds parseable values.
// Missing optional integrations only produce warnings.
func ValidateEnv() error {
	var invalid []string

	for key, def := range durationKeys {
		if d, err := time.ParseDuration(GetEnv(key, def)); err != nil || d < 0 {
			invalid = append(invalid, key)
		}
	}
	if n, err := strconv.Atoi(GetEnv("RATE_LIMIT_REQUESTS", "20")); err != nil || n < 1 {
		invalid = append(invalid, "RATE_LIMIT_REQUESTS")
	}

	if len(invalid) > 0 {
		return fmt.Errorf("invalid environment variables: %v", invalid)
	}

	if geminiKey() == "" {
		logger.Log.Warn("GEMINI_API_KEY not set - search suggestions are disabled")
	}
	if os.Getenv("FIREBASE_STORAGE_BUCKET") == "" {
		logger.Log.Warn("FIREBASE_STORAGE_BUCKET not set - product photos are stored inline")
	}
	if os.Getenv("FRONTEND_URL") == "" {
		logger.Log.Warn("FRONTEND_URL not set - CORS may not work correctly")
	}
	if os.Getenv("ADMIN_URL") == "" {
		logger.Log.Warn("ADMIN_URL not set")
	}

	return nil
}

// Load reads the configuration. Call ValidateEnv first; unparseable values
// fall back to their defaults here.
func Load() Config {
	return Config{
		Env:               GetEnv("APP_ENV", "development"),
		Port:              GetEnv("PORT", "8080"),
		AllowedOrigins:    origins(),
		SearchDebounce:    getDuration("SEARCH_DEBOUNCE"),
		SearchSessionTTL:  getDuration("SEARCH_SESSION_TTL"),
		FeedbackDelay:     getDuration("FEEDBACK_DELAY"),
		ListTTL:           getDuration("LIST_TTL"),
		RateLimitRequests: getInt("RATE_LIMIT_REQUESTS", 20),
		RateLimitWindow:   getDuration("RATE_LIMIT_WINDOW"),
		GeminiAPIKey:      geminiKey(),
		GeminiModel:       GetEnv("GEMINI_MODEL", "gemini-3-flash-preview"),
		FirebaseBucket:    os.Getenv("FIREBASE_STORAGE_BUCKET"),
		GoogleCredentials: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		PriceHistoryDSN:   GetEnv("PRICE_HISTORY_DSN", "file::memory:?cache=shared"),
		NotifyPhone:       GetEnv("NOTIFY_PHONE", "5500000000000"),
	}
}

// origins collects the CORS origins, dropping empty entries. FRONTEND_URL
// may list several origins separated by commas.
func origins() []string {
	var out []string
	for _, key := range []string{"FRONTEND_URL", "ADMIN_URL"} {
		for _, o := range strings.Split(os.Getenv(key), ",") {
			if o = strings.TrimSpace(o); o != "" {
				out = append(out, o)
			}
		}
	}
	if len(out) == 0 {
		out = []string{"http://localhost:3000"}
		logger.Log.Warn("no CORS origins configured, defaulting to http://localhost:3000")
	}
	return out
}

func geminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return os.Getenv("API_KEY")
}

func getDuration(key string) time.Duration {
	def := durationKeys[key]
	d, err := time.ParseDuration(GetEnv(key, def))
	if err != nil || d < 0 {
		logger.Log.Warn("invalid duration, using default", zap.String("key", key), zap.String("default", def))
		d, _ = time.ParseDuration(def)
	}
	return d
}

func getInt(key string, def int) int {
	n, err := strconv.Atoi(GetEnv(key, strconv.Itoa(def)))
	if err != nil || n < 1 {
		return def
	}
	return n
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
