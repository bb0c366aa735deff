package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
	CORS       CORSConfig
}

type DatabaseConfig struct {
	Host          string
	Port          int
	User          string
	Password      string
	Name          string
	SSLMode       string
	QueryTimeout  time.Duration
	ReportTimeout time.Duration
}

// RedisConfig holds the office-location cache connection
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
	Version  string
}

// AttendanceConfig holds punch and reporting rules
type AttendanceConfig struct {
	Timezone        string
	GeofenceRadius  float64
	DebugGeo        bool
	PunchRateLimit  float64
	PunchRateBurst  int
	DefaultPageSize int
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	// .env is optional; the environment wins either way.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	queryTimeout, err := time.ParseDuration(getEnv("DB_QUERY_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_QUERY_TIMEOUT: %w", err)
	}
	reportTimeout, err := time.ParseDuration(getEnv("DB_REPORT_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_REPORT_TIMEOUT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:          getEnv("DB_HOST", "localhost"),
		Port:          dbPort,
		User:          getEnv("DB_USER", "postgres"),
		Password:      getEnv("DB_PASSWORD", ""),
		Name:          getEnv("DB_NAME", "hrm_attendance"),
		SSLMode:       getEnv("DB_SSL_MODE", "disable"),
		QueryTimeout:  queryTimeout,
		ReportTimeout: reportTimeout,
	}

	// Redis configuration
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("OFFICE_CACHE_TTL", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid OFFICE_CACHE_TTL: %w", err)
	}

	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
		TTL:      cacheTTL,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Version:  getEnv("APP_VERSION", "v1.0.0"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Attendance configuration
	radius, err := strconv.ParseFloat(getEnv("ATTENDANCE_GEOFENCE_RADIUS", "500"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_GEOFENCE_RADIUS: %w", err)
	}
	debugGeo, err := strconv.ParseBool(getEnv("ATTENDANCE_DEBUG_GEO", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_DEBUG_GEO: %w", err)
	}
	rateLimit, err := strconv.ParseFloat(getEnv("PUNCH_RATE_LIMIT", "1"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PUNCH_RATE_LIMIT: %w", err)
	}
	rateBurst, err := strconv.Atoi(getEnv("PUNCH_RATE_BURST", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid PUNCH_RATE_BURST: %w", err)
	}

	config.Attendance = AttendanceConfig{
		Timezone:        getEnv("ATTENDANCE_TIMEZONE", "Asia/Kolkata"),
		GeofenceRadius:  radius,
		DebugGeo:        debugGeo,
		PunchRateLimit:  rateLimit,
		PunchRateBurst:  rateBurst,
		DefaultPageSize: 30,
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Attendance.GeofenceRadius <= 0 {
		return fmt.Errorf("ATTENDANCE_GEOFENCE_RADIUS must be positive")
	}
	if _, err := time.LoadLocation(c.Attendance.Timezone); err != nil {
		return fmt.Errorf("invalid ATTENDANCE_TIMEZONE: %w", err)
	}
	if c.Attendance.PunchRateBurst < 1 {
		return fmt.Errorf("PUNCH_RATE_BURST must be at least 1")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// IsProduction reports whether APP_ENV names a production deployment
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Env, "production")
}

// ExposeGeoDebug reports whether geofence rejections may carry distance and coordinates
func (c *Config) ExposeGeoDebug() bool {
	return c.Attendance.DebugGeo && !c.IsProduction()
}

// Location returns the time zone attendance dates are normalized in
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Attendance.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SlogLevel maps LOG_LEVEL onto a slog level
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
