package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT   JWTConfig
	Mongo MongoConfig
	Redis RedisConfig
	Admin AdminConfig
}

type JWTConfig struct {
	Secret   string `env:"JWT_SECRET,   required"`
	Issuer   string `env:"JWT_ISSUER,   default=user-service"`
	Audience string `env:"JWT_AUDIENCE, default=user-service-clients"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=user_service"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// AdminConfig describes the bootstrap administrator seeded at startup when no
// account with that login exists yet.
type AdminConfig struct {
	Login    string `env:"ADMIN_LOGIN,    default=Admin"`
	Password string `env:"ADMIN_PASSWORD, default=StrongPassword2023"`
	Name     string `env:"ADMIN_NAME,     default=Ivan"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
