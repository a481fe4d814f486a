package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/vsinha/bakeplan/pkg/application/services/planning"
	"github.com/vsinha/bakeplan/pkg/infrastructure/logging"
)

// EnvPrefix is prepended to every environment override, e.g. BAKEPLAN_LOGGING_LEVEL
const EnvPrefix = "BAKEPLAN"

// Config is the main configuration struct combining all sub-configs
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Planning PlanningConfig `mapstructure:"planning"`
	HTTP     HTTPConfig     `mapstructure:"http"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	// Connection type: "postgres" or "sqlite"
	Type string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`

	// Full connection URL, takes precedence over the individual postgres fields
	URL string `mapstructure:"url"`

	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`

	// SQLite file path or ":memory:"
	Path string `mapstructure:"path"`

	Pool PoolConfig `mapstructure:"pool"`
}

// PoolConfig holds connection pool configuration
type PoolConfig struct {
	MaxOpen     int           `mapstructure:"max_open" validate:"min=1"`
	MaxIdle     int           `mapstructure:"max_idle" validate:"min=1"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
	// Output destination: stdout, stderr, file
	Output string `mapstructure:"output" validate:"required,oneof=stdout stderr file"`
	// Required when output is "file"
	FilePath      string `mapstructure:"file_path" validate:"required_if=Output file"`
	IncludeCaller bool   `mapstructure:"include_caller"`
}

// PlanningConfig holds planning defaults
type PlanningConfig struct {
	// Days from now used as due date when a plan gives none
	DefaultDueDays          int    `mapstructure:"default_due_days" validate:"min=0"`
	NamePrefix              string `mapstructure:"name_prefix" validate:"required"`
	RequireKnownIngredients bool   `mapstructure:"require_known_ingredients"`
}

// HTTPConfig holds the REST server configuration
type HTTPConfig struct {
	Address         string        `mapstructure:"address" validate:"required"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoadConfig loads configuration from multiple sources with priority:
// 1. Environment variables (highest priority)
// 2. Config file (bakeplan.yaml)
// 3. Defaults (lowest priority)
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	v := viper.New()
	registerDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("bakeplan")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/bakeplan")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// DATABASE_URL is honoured without the prefix
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		v.Set("database.url", dbURL)
		if !v.IsSet("database.type") || v.GetString("database.type") == "sqlite" {
			v.Set("database.type", "postgres")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns the built-in configuration
func Default() *Config {
	v := viper.New()
	registerDefaults(v)

	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// LoggerConfig converts the logging section for the logger
func (c LoggingConfig) LoggerConfig() logging.Config {
	output := c.Output
	if output == "file" {
		output = c.FilePath
	}
	return logging.Config{
		Level:        logging.Level(c.Level),
		Format:       c.Format,
		Output:       output,
		EnableCaller: c.IncludeCaller,
	}
}

// EngineConfig converts the planning section for the planning engine
func (c PlanningConfig) EngineConfig() planning.EngineConfig {
	return planning.EngineConfig{
		RequireKnownIngredients: c.RequireKnownIngredients,
		NamePrefix:              c.NamePrefix,
	}
}

// DueDate returns now plus the configured default lead
func (c PlanningConfig) DueDate(now time.Time) time.Time {
	return now.AddDate(0, 0, c.DefaultDueDays)
}

func registerDefaults(v *viper.Viper) {
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.path", "bakeplan.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "bakeplan")
	v.SetDefault("database.name", "bakeplan")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.url", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.pool.max_open", 10)
	v.SetDefault("database.pool.max_idle", 2)
	v.SetDefault("database.pool.max_lifetime", 5*time.Minute)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stderr")
	v.SetDefault("logging.file_path", "")
	v.SetDefault("logging.include_caller", false)

	v.SetDefault("planning.default_due_days", 1)
	v.SetDefault("planning.name_prefix", planning.DefaultNamePrefix)
	v.SetDefault("planning.require_known_ingredients", true)

	v.SetDefault("http.address", ":8080")
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
}
