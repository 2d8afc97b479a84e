package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Ai        AIConfig
	Sentiment SentimentConfig
	Storage   StorageConfig
	Limiter   LimiterConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	SentimentTopic     string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	Provider      string // "mock", "openai" or "gemini"
	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
	GeminiKey     string
	GeminiModel   string
}

type SentimentConfig struct {
	ModelServerURL string
}

type StorageConfig struct {
	Backend           string // "s3" or "local"
	LocalMediaPath    string
	LocalPublicURL    string
	S3Endpoint        string
	S3Region          string
	S3Bucket          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3UsePathStyle    bool
	S3PublicURL       string
}

type LimiterConfig struct {
	ChatLimit     int
	ChatWindowHrs int
	NlpLimit      int
	NlpWindowHrs  int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			SentimentTopic:     getEnv("SENTIMENT_TASK_TOPIC_NAME", "SENTIMENT_TASKS"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			Provider:      getEnv("CHAT_PROVIDER", "mock"),
			OpenAIKey:     getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
			OpenAIModel:   getEnv("OPENAI_MODEL", ""),
			GeminiKey:     getEnv("GOOGLE_GEMINI_API_KEY", ""),
			GeminiModel:   getEnv("GEMINI_MODEL", ""),
		},
		Sentiment: SentimentConfig{
			ModelServerURL: getEnv("SENTIMENT_MODEL_SERVER_URL", ""),
		},
		Storage: StorageConfig{
			Backend:           getEnv("STORAGE_BACKEND", "local"),
			LocalMediaPath:    getEnv("LOCAL_MEDIA_PATH", "static/uploads"),
			LocalPublicURL:    getEnv("LOCAL_MEDIA_PUBLIC_URL", "/static/uploads"),
			S3Endpoint:        getEnv("S3_ENDPOINT", ""),
			S3Region:          getEnv("S3_REGION", "us-east-1"),
			S3Bucket:          getEnv("S3_BUCKET", ""),
			S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			S3UsePathStyle:    getEnvAsBool("S3_USE_PATH_STYLE", false),
			S3PublicURL:       getEnv("S3_PUBLIC_URL", ""),
		},
		Limiter: LimiterConfig{
			ChatLimit:     getEnvAsInt("CHAT_RATE_LIMIT", 200),
			ChatWindowHrs: getEnvAsInt("CHAT_RATE_WINDOW_HOURS", 24),
			NlpLimit:      getEnvAsInt("NLP_RATE_LIMIT", 10),
			NlpWindowHrs:  getEnvAsInt("NLP_RATE_WINDOW_HOURS", 24),
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
