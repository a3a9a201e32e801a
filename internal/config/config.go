package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBURL            string
	HTTPPort         string
	JWTSecret        string
	LLMServiceURL    string
	ScoreServiceURL  string
	ParserServiceURL string
}

func Load() (*Config, error) {
	// .env опционален: в контейнере переменные приходят из окружения
	_ = godotenv.Load()

	cfg := &Config{
		DBURL:            os.Getenv("DB_URL"),             // e.g., postgres://user:pass@db:5432/hrdb
		HTTPPort:         os.Getenv("HTTP_PORT"),          // e.g., :8080
		JWTSecret:        os.Getenv("JWT_SECRET"),         // секрет для подписи токенов
		LLMServiceURL:    os.Getenv("LLM_SERVICE_URL"),    // e.g., http://llm-service:8000
		ScoreServiceURL:  os.Getenv("SCORE_SERVICE_URL"),  // e.g., http://score-service:8080
		ParserServiceURL: os.Getenv("PARSER_SERVICE_URL"), // e.g., http://parser-service:8001
	}

	if cfg.DBURL == "" {
		return nil, fmt.Errorf("не задан DB_URL")
	}
	if cfg.HTTPPort == "" {
		cfg.HTTPPort = ":8080"
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("не задан JWT_SECRET")
	}

	return cfg, nil
}
