package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Driver string // "sqlite" or "mysql"
	DSN    string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration int // hours
}

type RateLimitConfig struct {
	AuthPer15Min int
	BidsPerMin   int
	APIPerMin    int
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Environment variables
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("server.port", "5000")
	viper.SetDefault("server.env", "development")
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.dsn", "gigflow.db")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("jwt.secret", "change-me-in-production")
	viper.SetDefault("jwt.expiration", 24)
	viper.SetDefault("ratelimit.auth_per_15min", 10)
	viper.SetDefault("ratelimit.bids_per_min", 10)
	viper.SetDefault("ratelimit.api_per_min", 100)

	// Try to read config file (optional)
	_ = viper.ReadInConfig()

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetString("server.port"),
			Env:  viper.GetString("server.env"),
		},
		Database: DatabaseConfig{
			Driver: viper.GetString("database.driver"),
			DSN:    viper.GetString("database.dsn"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("redis.addr"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Secret:     viper.GetString("jwt.secret"),
			Expiration: viper.GetInt("jwt.expiration"),
		},
		RateLimit: RateLimitConfig{
			AuthPer15Min: viper.GetInt("ratelimit.auth_per_15min"),
			BidsPerMin:   viper.GetInt("ratelimit.bids_per_min"),
			APIPerMin:    viper.GetInt("ratelimit.api_per_min"),
		},
	}

	return cfg, nil
}
