package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	Session   SessionConfig
	Admin     AdminConfig
	Uploads   UploadsConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// SessionConfig controls the admin session cookie and its server-side state.
type SessionConfig struct {
	Secret     string
	CookieName string
	TTL        time.Duration
}

// AdminConfig carries the bootstrap credential for the admin panel.
type AdminConfig struct {
	DefaultPassword string
}

// UploadsConfig points at the object store for admin media uploads. An
// empty Endpoint disables the upload feature and the app falls back to an
// in-memory sink.
type UploadsConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type RateLimitConfig struct {
	Enabled       bool
	RPS           float64
	Burst         int
	UseRedis      bool
	WindowSeconds int
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "5000")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("MONGODB_DATABASE", "printstudio")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("SESSION_COOKIE_NAME", "ps_session")
	viper.SetDefault("SESSION_TTL_MINUTES", 10080)
	viper.SetDefault("ADMIN_DEFAULT_PASSWORD", "printstudio")
	viper.SetDefault("MINIO_BUCKET", "printstudio-uploads")
	viper.SetDefault("RATE_LIMIT_ENABLED", true)
	viper.SetDefault("RATE_LIMIT_RPS", 1.0)
	viper.SetDefault("RATE_LIMIT_BURST", 5)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		},
		Session: SessionConfig{
			Secret:     os.Getenv("SESSION_SECRET"),
			CookieName: viper.GetString("SESSION_COOKIE_NAME"),
			TTL:        time.Duration(viper.GetInt("SESSION_TTL_MINUTES")) * time.Minute,
		},
		Admin: AdminConfig{
			DefaultPassword: viper.GetString("ADMIN_DEFAULT_PASSWORD"),
		},
		Uploads: UploadsConfig{
			Endpoint:  viper.GetString("MINIO_ENDPOINT"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:    viper.GetString("MINIO_BUCKET"),
			UseSSL:    viper.GetBool("MINIO_USE_SSL"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
	}

	// Basic validation
	if cfg.Session.Secret == "" {
		log.Println("WARNING: SESSION_SECRET is not set; set a secure value in production")
	}

	return cfg, nil
}
