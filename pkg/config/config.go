package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Mongo     MongoConfig
	Redis     RedisConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Log       LogConfig
	Directory DirectoryConfig
	Reports   ReportsConfig
}

// MongoConfig holds connection settings for the document store.
type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	MaxPoolSize    uint64
	MinPoolSize    uint64
	MaxIdleTime    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// DirectoryConfig tunes the institutions snapshot cache.
type DirectoryConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// ReportsConfig gates the PDF statement endpoint.
type ReportsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	maxPool := v.GetInt("MONGO_MAX_POOL_SIZE")
	if maxPool <= 0 {
		maxPool = 50
	}
	minPool := v.GetInt("MONGO_MIN_POOL_SIZE")
	if minPool < 0 {
		minPool = 0
	}
	cfg.Mongo = MongoConfig{
		URI:            v.GetString("MONGO_URI"),
		Database:       v.GetString("MONGO_DATABASE"),
		ConnectTimeout: parseDuration(v.GetString("MONGO_CONNECT_TIMEOUT"), 20*time.Second),
		MaxPoolSize:    uint64(maxPool),
		MinPoolSize:    uint64(minPool),
		MaxIdleTime:    parseDuration(v.GetString("MONGO_MAX_IDLE_TIME"), 30*time.Second),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 12*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Directory = DirectoryConfig{
		CacheEnabled: v.GetBool("DIRECTORY_CACHE_ENABLED"),
		CacheTTL:     parseDuration(v.GetString("DIRECTORY_CACHE_TTL"), 5*time.Minute),
	}

	cfg.Reports = ReportsConfig{
		Enabled: v.GetBool("ENABLE_REPORTS"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "student_results")
	v.SetDefault("MONGO_CONNECT_TIMEOUT", "20s")
	v.SetDefault("MONGO_MAX_POOL_SIZE", 50)
	v.SetDefault("MONGO_MIN_POOL_SIZE", 5)
	v.SetDefault("MONGO_MAX_IDLE_TIME", "30s")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "12h")
	v.SetDefault("JWT_ISSUER", "results-api")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("DIRECTORY_CACHE_ENABLED", false)
	v.SetDefault("DIRECTORY_CACHE_TTL", "5m")

	v.SetDefault("ENABLE_REPORTS", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
