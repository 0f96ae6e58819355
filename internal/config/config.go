package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	S3        S3Config        `mapstructure:"s3"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Planning  PlanningConfig  `mapstructure:"planning"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Export    ExportConfig    `mapstructure:"export"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	// Duration string in config.yaml, e.g. "60m" or "1h".
	Expiration time.Duration `mapstructure:"expiration"`
}

// PlanningConfig tunes the plan engine.
type PlanningConfig struct {
	AdaptationCooldown time.Duration `mapstructure:"adaptation_cooldown"`
	// RandomSeed makes exercise selection reproducible. 0 seeds from the clock.
	RandomSeed uint64 `mapstructure:"random_seed"`
}

// SchedulerConfig controls background jobs. ProgressSpec is a robfig/cron spec.
type SchedulerConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	ProgressSpec string `mapstructure:"progress_spec"`
}

// ExportConfig controls calendar/spreadsheet exports.
type ExportConfig struct {
	URLExpiry time.Duration `mapstructure:"url_expiry"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json or text
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Nested keys map to env vars: planning.adaptation_cooldown -> PLANNING_ADAPTATION_COOLDOWN
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	setDefaults(v)

	err = v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		// No file; defaults and env vars only.
		err = nil
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "fitness_coach")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("jwt.expiration", "1h")
	v.SetDefault("planning.adaptation_cooldown", "168h")
	v.SetDefault("planning.random_seed", 0)
	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.progress_spec", "@daily")
	v.SetDefault("export.url_expiry", "15m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}
