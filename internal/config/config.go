package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Конфигурация приложения, загружается из окружения (.env для локального запуска)
type Config struct {
	AppPort     string
	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string

	ClassifierURL string
	MinConfidence float64
	AllowedOrigin string
}

func Load() *Config {
	// .env опционален - в проде переменные приходят из окружения
	_ = godotenv.Load()

	return &Config{
		AppPort:       getEnv("APP_PORT", "8000"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		ClassifierURL: os.Getenv("CLASSIFIER_URL"),
		MinConfidence: getEnvFloat("CLASSIFIER_MIN_CONFIDENCE", 0.6),
		AllowedOrigin: os.Getenv("ALLOWED_ORIGIN"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
