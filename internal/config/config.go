package config

import (
	"errors"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config — конфигурация процесса, источник — переменные окружения.
type Config struct {
	BotToken       string  `envconfig:"BOT_TOKEN" required:"true"`
	DBURL          string  `envconfig:"DB_URL" required:"true"`
	DeepSeekAPIKey string  `envconfig:"DEEPSEEK_API_KEY" required:"true"`
	DeepSeekURL    string  `envconfig:"DEEPSEEK_URL" default:"https://api.deepseek.com/v1/chat/completions"`
	Admins         []int64 `envconfig:"ADMINS"` // список id через запятую
	DailyMessages  string  `envconfig:"DAILY_MESSAGES_FILE" default:"daily_messages.json"`
	LogLevel       string  `envconfig:"LOG_LEVEL" default:"info"`
}

// Load читает .env (если есть) и переменные окружения.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	// envconfig считает установленную, но пустую переменную заполненной.
	if cfg.BotToken == "" || cfg.DBURL == "" || cfg.DeepSeekAPIKey == "" {
		return cfg, errors.New("config: BOT_TOKEN, DB_URL и DEEPSEEK_API_KEY обязательны")
	}
	return cfg, nil
}
