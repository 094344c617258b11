package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Preference store backends.
const (
	ProfilesBackendPostgres = "postgres"
	ProfilesBackendMemory   = "memory"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Log      LogConfig
	Gateway  GatewayConfig
	Profiles ProfilesConfig
	Settings SettingsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
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

// GatewayConfig points the console at the monitoring API.
type GatewayConfig struct {
	URL      string
	APIToken string
	Timeout  time.Duration
}

// ProfilesConfig selects where per-user preferences are persisted.
type ProfilesConfig struct {
	Backend string
}

// SettingsConfig holds fallbacks for global settings missing from the settings table,
// and the cache policy applied to them.
type SettingsConfig struct {
	SearchLimit   int
	RowsPerPage   int
	MaxInTable    int
	LoginAttempts int
	CacheEnabled  bool
	CacheTTL      time.Duration
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
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 8*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Gateway = GatewayConfig{
		URL:      v.GetString("GATEWAY_URL"),
		APIToken: v.GetString("GATEWAY_API_TOKEN"),
		Timeout:  parseDuration(v.GetString("GATEWAY_TIMEOUT"), 10*time.Second),
	}

	cfg.Profiles = ProfilesConfig{Backend: strings.ToLower(v.GetString("PROFILES_BACKEND"))}

	cfg.Settings = SettingsConfig{
		SearchLimit:   positiveOr(v.GetInt("DEFAULT_SEARCH_LIMIT"), 1000),
		RowsPerPage:   positiveOr(v.GetInt("DEFAULT_ROWS_PER_PAGE"), 50),
		MaxInTable:    positiveOr(v.GetInt("DEFAULT_MAX_IN_TABLE"), 50),
		LoginAttempts: positiveOr(v.GetInt("DEFAULT_LOGIN_ATTEMPTS"), 5),
		CacheEnabled:  v.GetBool("SETTINGS_CACHE_ENABLED"),
		CacheTTL:      parseDuration(v.GetString("SETTINGS_CACHE_TTL"), time.Minute),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "zabbix")
	v.SetDefault("DB_PASSWORD", "zabbix")
	v.SetDefault("DB_NAME", "zabbix")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "8h")
	v.SetDefault("JWT_ISSUER", "admin-console")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("GATEWAY_URL", "http://localhost/api_jsonrpc.php")
	v.SetDefault("GATEWAY_API_TOKEN", "")
	v.SetDefault("GATEWAY_TIMEOUT", "10s")

	v.SetDefault("PROFILES_BACKEND", ProfilesBackendPostgres)

	v.SetDefault("DEFAULT_SEARCH_LIMIT", 1000)
	v.SetDefault("DEFAULT_ROWS_PER_PAGE", 50)
	v.SetDefault("DEFAULT_MAX_IN_TABLE", 50)
	v.SetDefault("DEFAULT_LOGIN_ATTEMPTS", 5)
	v.SetDefault("SETTINGS_CACHE_ENABLED", false)
	v.SetDefault("SETTINGS_CACHE_TTL", "1m")
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

func positiveOr(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
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
