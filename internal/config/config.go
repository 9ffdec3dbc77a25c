// Package config loads the process configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/chatgpti/webapp-bot/internal/domain"
)

type Config struct {
	BotToken  string `env:"TG_BOT_TOKEN,required,notEmpty"`
	WebAppURL string `env:"WEBAPP_URL" envDefault:"https://chatgpti.ru"`

	// RequiredChannels is the ordered list of channels a user must join
	// before the web app button is shown, in the @name form.
	RequiredChannels []domain.Channel `env:"REQUIRED_CHANNELS,required,notEmpty" envSeparator:","`

	Port int `env:"PORT" envDefault:"3003"`

	GenerationAPIURL string `env:"GENERATION_API_URL,required,notEmpty"`
	GenerationAPIKey string `env:"GENERATION_API_KEY,required,notEmpty"`

	// ErrorLogChatID, when set, mirrors error-level log output into a
	// Telegram chat.
	ErrorLogChatID int64 `env:"ERROR_LOG_CHAT_ID"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
