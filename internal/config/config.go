package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName                   string
	AppEnv                    string
	AppPort                   string
	Location                  *time.Location
	LogLevel                  string
	DatabaseURL               string
	RedisURL                  string
	NATSURL                   string
	EventsChannel             string
	JWTSecret                 string
	DashboardCacheTTL         time.Duration
	ScoreRefreshCron          string
	RateLimitMax              int
	RateLimitWindow           time.Duration
	RequestTimeout            time.Duration
	CloudinaryCloudName       string
	CloudinaryAPIKey          string
	CloudinaryAPISecret       string
	CloudinaryAvatarTransform string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// CloudinaryEnabled reports whether avatar delivery URLs can be built.
func (c Config) CloudinaryEnabled() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("DASHBOARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Student Dashboard API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.timezone", "UTC")
	v.SetDefault("log.level", "info")
	v.SetDefault("dashboard.cache_ttl", "5m")
	v.SetDefault("events.channel", "dashboard")
	v.SetDefault("scores.refresh_cron", "*/15 * * * *")
	v.SetDefault("rate_limit.max", 60)
	v.SetDefault("rate_limit.window", "1m")
	v.SetDefault("http.request_timeout", "15s")
	v.SetDefault("cloudinary.avatar_transformation", "c_fill,g_face,h_128,w_128")

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	ttl, err := parseDuration(v.GetString("dashboard.cache_ttl"), 5*time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("invalid dashboard cache ttl: %w", err)
	}

	window, err := parseDuration(v.GetString("rate_limit.window"), time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("invalid rate limit window: %w", err)
	}

	requestTimeout, err := parseDuration(v.GetString("http.request_timeout"), 15*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("invalid request timeout: %w", err)
	}

	tz := strings.TrimSpace(v.GetString("app.timezone"))
	if tz == "" {
		tz = "UTC"
	}
	location, err := time.LoadLocation(tz)
	if err != nil {
		return Config{}, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}

	cfg := Config{
		AppName:                   v.GetString("app.name"),
		AppEnv:                    v.GetString("app.env"),
		AppPort:                   v.GetString("app.port"),
		Location:                  location,
		LogLevel:                  strings.ToLower(v.GetString("log.level")),
		DatabaseURL:               v.GetString("database.url"),
		RedisURL:                  v.GetString("redis.url"),
		NATSURL:                   v.GetString("nats.url"),
		EventsChannel:             v.GetString("events.channel"),
		JWTSecret:                 v.GetString("jwt.secret"),
		DashboardCacheTTL:         ttl,
		ScoreRefreshCron:          v.GetString("scores.refresh_cron"),
		RateLimitMax:              v.GetInt("rate_limit.max"),
		RateLimitWindow:           window,
		RequestTimeout:            requestTimeout,
		CloudinaryCloudName:       v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:          v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret:       v.GetString("cloudinary.api_secret"),
		CloudinaryAvatarTransform: v.GetString("cloudinary.avatar_transformation"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("database url must be provided")
	}

	if cfg.RateLimitMax <= 0 {
		cfg.RateLimitMax = 60
	}

	return cfg, nil
}

func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	return time.ParseDuration(value)
}
