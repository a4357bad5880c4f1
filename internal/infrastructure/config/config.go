package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Validation ValidationConfig `mapstructure:"validation"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Logger     LoggerConfig     `mapstructure:"logger"`
	Security   SecurityConfig   `mapstructure:"security"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler"`
	Notifier   NotifierConfig   `mapstructure:"notifier"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	Host         string        `mapstructure:"host"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// StorageConfig holds the data directory and per-entity file names.
// Each repository owns exactly one of these files.
type StorageConfig struct {
	DataDir       string `mapstructure:"data_dir"`
	ChecklistFile string `mapstructure:"checklist_file"`
	GoalsFile     string `mapstructure:"goals_file"`
	ScheduleFile  string `mapstructure:"schedule_file"`
	MoodFile      string `mapstructure:"mood_file"`
}

// ChecklistPath returns the absolute-or-relative path of the checklist file.
func (cfg *StorageConfig) ChecklistPath() string {
	return filepath.Join(cfg.DataDir, cfg.ChecklistFile)
}

// GoalsPath returns the path of the goals file.
func (cfg *StorageConfig) GoalsPath() string {
	return filepath.Join(cfg.DataDir, cfg.GoalsFile)
}

// SchedulePath returns the path of the schedule file.
func (cfg *StorageConfig) SchedulePath() string {
	return filepath.Join(cfg.DataDir, cfg.ScheduleFile)
}

// MoodPath returns the path of the mood file.
func (cfg *StorageConfig) MoodPath() string {
	return filepath.Join(cfg.DataDir, cfg.MoodFile)
}

// ValidationConfig holds the write-gating bounds handed to repositories.
type ValidationConfig struct {
	MinTextLength int `mapstructure:"min_text_length"`
	MaxTextLength int `mapstructure:"max_text_length"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret    string        `mapstructure:"secret"`
	ExpiresIn time.Duration `mapstructure:"expires_in"`
	Issuer    string        `mapstructure:"issuer"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	Filename string `mapstructure:"filename"`
}

// SecurityConfig holds security-related configuration
type SecurityConfig struct {
	OwnerTokenHash     string        `mapstructure:"owner_token_hash"`
	CORSAllowedOrigins string        `mapstructure:"cors_allowed_origins"`
	RateLimitRequests  int           `mapstructure:"rate_limit_requests"`
	RateLimitWindow    time.Duration `mapstructure:"rate_limit_window"`
}

// SchedulerConfig holds the digest job times. Times are HH:MM wall-clock
// values in the configured timezone.
type SchedulerConfig struct {
	Enabled             bool     `mapstructure:"enabled"`
	Timezone            string   `mapstructure:"timezone"`
	QuoteTime           string   `mapstructure:"quote_time"`
	MoodPromptTimes     []string `mapstructure:"mood_prompt_times"`
	ChecklistReportTime string   `mapstructure:"checklist_report_time"`
	WeeklyReportDay     string   `mapstructure:"weekly_report_day"`
	WeeklyReportTime    string   `mapstructure:"weekly_report_time"`
}

// NotifierConfig selects the message delivery channel.
type NotifierConfig struct {
	Kind       string        `mapstructure:"kind"` // "log" or "webhook"
	WebhookURL string        `mapstructure:"webhook_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load loads configuration from various sources
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors)
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()
	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	// App defaults
	viper.SetDefault("app.name", "Daybot")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.environment", "development")
	viper.SetDefault("app.debug", false)

	// Server defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	// Storage defaults
	viper.SetDefault("storage.data_dir", "data")
	viper.SetDefault("storage.checklist_file", "checklist.json")
	viper.SetDefault("storage.goals_file", "goals.json")
	viper.SetDefault("storage.schedule_file", "schedule.json")
	viper.SetDefault("storage.mood_file", "mood.json")

	// Validation defaults
	viper.SetDefault("validation.min_text_length", 1)
	viper.SetDefault("validation.max_text_length", 500)

	// JWT defaults
	viper.SetDefault("jwt.secret", "")
	viper.SetDefault("jwt.expires_in", "24h")
	viper.SetDefault("jwt.issuer", "daybot-api")

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "json")
	viper.SetDefault("logger.output", "stdout")
	viper.SetDefault("logger.filename", "")

	// Security defaults
	viper.SetDefault("security.owner_token_hash", "")
	viper.SetDefault("security.cors_allowed_origins", "*")
	viper.SetDefault("security.rate_limit_requests", 20)
	viper.SetDefault("security.rate_limit_window", "1m")

	// Scheduler defaults, mirroring the assistant's original cadence
	viper.SetDefault("scheduler.enabled", true)
	viper.SetDefault("scheduler.timezone", "Europe/Moscow")
	viper.SetDefault("scheduler.quote_time", "06:00")
	viper.SetDefault("scheduler.mood_prompt_times", []string{"09:00", "14:00", "20:00"})
	viper.SetDefault("scheduler.checklist_report_time", "21:30")
	viper.SetDefault("scheduler.weekly_report_day", "Sunday")
	viper.SetDefault("scheduler.weekly_report_time", "21:00")

	// Notifier defaults
	viper.SetDefault("notifier.kind", "log")
	viper.SetDefault("notifier.webhook_url", "")
	viper.SetDefault("notifier.timeout", "10s")

	// Metrics defaults
	viper.SetDefault("metrics.enabled", true)
}

func bindEnvVars() {
	// App
	viper.BindEnv("app.name", "APP_NAME")
	viper.BindEnv("app.version", "APP_VERSION")
	viper.BindEnv("app.environment", "APP_ENVIRONMENT")
	viper.BindEnv("app.debug", "APP_DEBUG")

	// Server
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.host", "SERVER_HOST")
	viper.BindEnv("server.read_timeout", "SERVER_READ_TIMEOUT")
	viper.BindEnv("server.write_timeout", "SERVER_WRITE_TIMEOUT")
	viper.BindEnv("server.idle_timeout", "SERVER_IDLE_TIMEOUT")

	// Storage
	viper.BindEnv("storage.data_dir", "DATA_DIR")
	viper.BindEnv("storage.checklist_file", "CHECKLIST_FILE")
	viper.BindEnv("storage.goals_file", "GOALS_FILE")
	viper.BindEnv("storage.schedule_file", "SCHEDULE_FILE")
	viper.BindEnv("storage.mood_file", "MOOD_FILE")

	// Validation
	viper.BindEnv("validation.min_text_length", "MIN_TEXT_LENGTH")
	viper.BindEnv("validation.max_text_length", "MAX_TEXT_LENGTH")

	// JWT
	viper.BindEnv("jwt.secret", "JWT_SECRET")
	viper.BindEnv("jwt.expires_in", "JWT_EXPIRES_IN")
	viper.BindEnv("jwt.issuer", "JWT_ISSUER")

	// Logger
	viper.BindEnv("logger.level", "LOG_LEVEL")
	viper.BindEnv("logger.format", "LOG_FORMAT")
	viper.BindEnv("logger.output", "LOG_OUTPUT")
	viper.BindEnv("logger.filename", "LOG_FILENAME")

	// Security
	viper.BindEnv("security.owner_token_hash", "OWNER_TOKEN_HASH")
	viper.BindEnv("security.cors_allowed_origins", "CORS_ALLOWED_ORIGINS")
	viper.BindEnv("security.rate_limit_requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("security.rate_limit_window", "RATE_LIMIT_WINDOW")

	// Scheduler
	viper.BindEnv("scheduler.enabled", "SCHEDULER_ENABLED")
	viper.BindEnv("scheduler.timezone", "TZ")
	viper.BindEnv("scheduler.quote_time", "QUOTE_TIME")
	viper.BindEnv("scheduler.checklist_report_time", "CHECKLIST_REPORT_TIME")
	viper.BindEnv("scheduler.weekly_report_day", "WEEKLY_REPORT_DAY")
	viper.BindEnv("scheduler.weekly_report_time", "WEEKLY_REPORT_TIME")

	// Notifier
	viper.BindEnv("notifier.kind", "NOTIFIER_KIND")
	viper.BindEnv("notifier.webhook_url", "NOTIFIER_WEBHOOK_URL")
	viper.BindEnv("notifier.timeout", "NOTIFIER_TIMEOUT")

	// Metrics
	viper.BindEnv("metrics.enabled", "ENABLE_METRICS")
}

func validateConfig(cfg *Config) error {
	if cfg.Storage.DataDir == "" {
		return fmt.Errorf("storage data directory is required")
	}

	if cfg.Validation.MinTextLength < 1 {
		return fmt.Errorf("minimum text length must be at least 1")
	}

	if cfg.Validation.MaxTextLength < cfg.Validation.MinTextLength {
		return fmt.Errorf("maximum text length must not be below the minimum")
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535")
	}

	if cfg.Notifier.Kind == "webhook" && cfg.Notifier.WebhookURL == "" {
		return fmt.Errorf("webhook notifier requires a webhook URL")
	}

	return nil
}

// IsDevelopment returns true if the environment is development
func (cfg *AppConfig) IsDevelopment() bool {
	return cfg.Environment == "development"
}

// IsProduction returns true if the environment is production
func (cfg *AppConfig) IsProduction() bool {
	return cfg.Environment == "production"
}
