package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig
	ExchangeAPI ExchangeAPIConfig
	Log         LogConfig
}

type ServerConfig struct {
	Port         int           `validate:"min=1,max=65535"`
	ReadTimeout  time.Duration `validate:"gt=0"`
	WriteTimeout time.Duration `validate:"gt=0"`
	IdleTimeout  time.Duration `validate:"gt=0"`
}

type ExchangeAPIConfig struct {
	BaseURL      string        `validate:"required,url"`
	BaseCurrency string        `validate:"required,len=3,uppercase"`
	Timeout      time.Duration `validate:"gt=0"`
}

type LogConfig struct {
	Level string `validate:"omitempty,oneof=debug info warn error"`
}

// LoadConfig reads the environment, after loading .env if one exists.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_READ_TIMEOUT", "5s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "10s")
	v.SetDefault("SERVER_IDLE_TIMEOUT", "120s")
	v.SetDefault("EXCHANGE_API_BASE_URL", "https://api.exchangeratesapi.io")
	v.SetDefault("EXCHANGE_API_BASE_CURRENCY", "EUR")
	v.SetDefault("EXCHANGE_API_TIMEOUT", "10s")
	v.SetDefault("LOG_LEVEL", "info")
	v.AutomaticEnv()

	config := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("SERVER_PORT"),
			ReadTimeout:  v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("SERVER_WRITE_TIMEOUT"),
			IdleTimeout:  v.GetDuration("SERVER_IDLE_TIMEOUT"),
		},
		ExchangeAPI: ExchangeAPIConfig{
			BaseURL:      v.GetString("EXCHANGE_API_BASE_URL"),
			BaseCurrency: v.GetString("EXCHANGE_API_BASE_CURRENCY"),
			Timeout:      v.GetDuration("EXCHANGE_API_TIMEOUT"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}
