package cmd

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv   string
	LogLevel string
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// CacheDriver is "memory" or "redis".
	CacheDriver      string
	RedisAddr        string
	CacheJanitorCron string

	ERPBaseURL     string
	ERPTimeout     time.Duration
	ERPRatePerSec  float64
	ERPBurst       int
	RFIDBaseURL    string
	RFIDTimeout    time.Duration
	RFIDRatePerSec float64
	RFIDBurst      int

	TimeZone string
	// WorkWindows is a comma separated list such as "07:00-12:00,13:00-17:00".
	WorkWindows string
	// EnforceRetornoHours rejects retorno outside the work windows.
	EnforceRetornoHours bool

	OTLPEndpoint string
}

// DSN is the libpq URL of the database, shared by GORM and goose.
func (c Config) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + c.DBSslMode,
	}
	return u.String()
}

// LoadConfig reads the environment, after loading .env when present.
func LoadConfig() (Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := Config{
		AppEnv:   v.GetString("APP_ENV"),
		LogLevel: v.GetString("LOG_LEVEL"),
		HTTPPort: v.GetString("HTTP_PORT"),

		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetString("DB_PORT"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     v.GetString("DB_NAME"),
		DBSslMode:  v.GetString("DB_SSLMODE"),

		CacheDriver:      strings.ToLower(v.GetString("CACHE_DRIVER")),
		RedisAddr:        v.GetString("REDIS_ADDR"),
		CacheJanitorCron: v.GetString("CACHE_JANITOR_CRON"),

		ERPBaseURL:     v.GetString("ERP_BASE_URL"),
		ERPTimeout:     v.GetDuration("ERP_TIMEOUT"),
		ERPRatePerSec:  v.GetFloat64("ERP_RATE_PER_SECOND"),
		ERPBurst:       v.GetInt("ERP_BURST"),
		RFIDBaseURL:    v.GetString("RFID_BASE_URL"),
		RFIDTimeout:    v.GetDuration("RFID_TIMEOUT"),
		RFIDRatePerSec: v.GetFloat64("RFID_RATE_PER_SECOND"),
		RFIDBurst:      v.GetInt("RFID_BURST"),

		TimeZone:            v.GetString("TIME_ZONE"),
		WorkWindows:         v.GetString("WORK_WINDOWS"),
		EnforceRetornoHours: v.GetBool("ENFORCE_RETORNO_HOURS"),

		OTLPEndpoint: v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	if cfg.CacheDriver != "memory" && cfg.CacheDriver != "redis" {
		return Config{}, fmt.Errorf("CACHE_DRIVER must be memory or redis, got %q", cfg.CacheDriver)
	}
	if cfg.CacheDriver == "redis" && cfg.RedisAddr == "" {
		return Config{}, fmt.Errorf("REDIS_ADDR is required when CACHE_DRIVER is redis")
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_PORT", "8080")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "shopfloor")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("CACHE_DRIVER", "memory")
	v.SetDefault("CACHE_JANITOR_CRON", "@every 1m")

	v.SetDefault("ERP_TIMEOUT", 5*time.Second)
	v.SetDefault("ERP_RATE_PER_SECOND", 20)
	v.SetDefault("ERP_BURST", 5)
	v.SetDefault("RFID_TIMEOUT", 3*time.Second)
	v.SetDefault("RFID_RATE_PER_SECOND", 20)
	v.SetDefault("RFID_BURST", 5)

	v.SetDefault("TIME_ZONE", "America/Sao_Paulo")
	v.SetDefault("WORK_WINDOWS", "07:00-12:00,13:00-17:00")
	v.SetDefault("ENFORCE_RETORNO_HOURS", true)
}
