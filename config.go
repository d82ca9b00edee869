package main

import (
	"github.com/spf13/viper"
)

// Config is the runtime configuration, read from the environment.
type Config struct {
	AppPort        string
	DatabaseDriver string
	DatabaseDSN    string
	JWTSecret      string
	RabbitMQURL    string
	RabbitMQQueue  string
	LogLevel       string
	LogFormat      string
	SeedProducts   bool
}

// LoadConfig applies defaults to v, binds the environment and reads the
// result. An empty RABBITMQ_URL disables cart events.
func LoadConfig(v *viper.Viper) Config {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "file:etalase.db?cache=shared")
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", "cart_queue")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("SEED_PRODUCTS", true)
	v.AutomaticEnv()

	return Config{
		AppPort:        v.GetString("APP_PORT"),
		DatabaseDriver: v.GetString("DATABASE_DRIVER"),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
		RabbitMQQueue:  v.GetString("RABBITMQ_QUEUE"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogFormat:      v.GetString("LOG_FORMAT"),
		SeedProducts:   v.GetBool("SEED_PRODUCTS"),
	}
}
