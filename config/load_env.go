package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/subosito/gotenv"
)

const DEFAULT_APP_ENV = "dev"

// LoadEnv loads config/envs/.env.<env> on top of the process environment.
// Variables already set in the environment win.
func LoadEnv(env string) {
	envFile := "config/envs/.env." + env
	if err := gotenv.Load(envFile); err != nil {
		slog.Warn("[Config] No .env file found, using OS environment",
			slog.String("file", envFile))
	}
}

// AppEnv returns APP_ENV, defaulting to dev.
func AppEnv() string {
	return getEnv("APP_ENV", DEFAULT_APP_ENV)
}

type Config struct {
	AppEnv   string
	LogLevel string

	AnalysisBackend        string
	AnalysisEndpoint       string
	AnalysisHealthEndpoint string
	AnalysisTimeout        time.Duration
	AnalysisBatchSize      int
	OpenAIAPIKey           string
	OpenAIModel            string

	StoreBackend      string
	SQLitePath        string
	ValkeyInitAddress string
	ValkeyPassword    string
	ValkeyTLS         bool
	AWSEndpoint       string
	AWSRegion         string
	DynamoDBTable     string

	KafkaBroker       string
	KafkaResultsTopic string

	ExportDir  string
	ChromePath string
}

func Load() Config {
	return Config{
		AppEnv:   AppEnv(),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		AnalysisBackend:        strings.ToLower(getEnv("ANALYSIS_BACKEND", "remote")),
		AnalysisEndpoint:       getEnv("ANALYSIS_ENDPOINT", "http://localhost:5000/analyze"),
		AnalysisHealthEndpoint: getEnv("ANALYSIS_HEALTH_ENDPOINT", "http://localhost:5000/health"),
		AnalysisTimeout:        getEnvMillis("ANALYSIS_TIMEOUT_MS", 30*time.Second),
		AnalysisBatchSize:      getEnvInt("ANALYSIS_BATCH_SIZE", 0),
		OpenAIAPIKey:           getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:            getEnv("OPENAI_MODEL", ""),

		StoreBackend:      strings.ToLower(getEnv("STORE_BACKEND", "sqlite")),
		SQLitePath:        getEnv("SQLITE_PATH", "sentiscope.db"),
		ValkeyInitAddress: getEnv("VALKEY_INIT_ADDRESS", "localhost:6379"),
		ValkeyPassword:    getEnv("VALKEY_PASSWORD", ""),
		ValkeyTLS:         getEnvBool("VALKEY_TLS", false),
		AWSEndpoint:       getEnv("AWS_ENDPOINT", ""),
		AWSRegion:         getEnv("AWS_REGION", "us-west-2"),
		DynamoDBTable:     getEnv("DYNAMODB_TABLE", "SentiScopeHandoff"),

		KafkaBroker:       getEnv("KAFKA_BROKER", ""),
		KafkaResultsTopic: getEnv("KAFKA_RESULTS_TOPIC", "analysis-results"),

		ExportDir:  getEnv("EXPORT_DIR", "."),
		ChromePath: getEnv("CHROME_PATH", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		slog.Warn("[Config] Invalid integer, using default",
			slog.String("key", key),
			slog.String("value", raw))
		return defaultValue
	}
	return v
}

// getEnvMillis reads a whole number of milliseconds; 0 is allowed and disables the limit.
func getEnvMillis(key string, defaultValue time.Duration) time.Duration {
	ms := getEnvInt(key, -1)
	if ms < 0 {
		return defaultValue
	}
	return time.Duration(ms) * time.Millisecond
}

func getEnvBool(key string, defaultValue bool) bool {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return defaultValue
	}
	return v
}
