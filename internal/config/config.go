package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Tracking   TrackingConfig
	Monitoring MonitoringConfig
	Auth       AuthConfig
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	AppDB PostgresConfig `mapstructure:"postgres_app"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// TrackingConfig holds the movement-analysis tuning knobs. Thresholds live
// here, not in the detectors, so they can be tuned per species/herd without
// code changes.
type TrackingConfig struct {
	RetentionWindowDays          int           `mapstructure:"retention_window_days"`
	HotspotGridCellDegrees       float64       `mapstructure:"hotspot_grid_cell_degrees"`
	HotspotTopK                  int           `mapstructure:"hotspot_top_k"`
	StationarySpeedThresholdMps  float64       `mapstructure:"stationary_speed_threshold_mps"`
	ExcessiveSpeedThresholdMps   float64       `mapstructure:"excessive_speed_threshold_mps"`
	MinSamplesForStationaryAlert int           `mapstructure:"min_samples_for_stationary_alert"`
	BehaviorWindowDays           int           `mapstructure:"behavior_window_days"`
	BehaviorSweepInterval        time.Duration `mapstructure:"behavior_sweep_interval"`
}

type MonitoringConfig struct {
	PrometheusPort     int    `mapstructure:"prometheus_port"`
	LogLevel           string `mapstructure:"log_level"`
	PrometheusEndpoint string `mapstructure:"prometheus_endpoint"`
	LokiEndpoint       string `mapstructure:"loki_endpoint"`
}

type AuthConfig struct {
	APIToken string `mapstructure:"api_token"`
}

// Load initializes configuration from environment variables and config file
func Load() (*Config, error) {
	viper.SetEnvPrefix("HERDHUB")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Load config file if exists
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "15s")
	viper.SetDefault("server.shutdown_timeout", "30s")

	// Database defaults
	viper.SetDefault("database.postgres_app.sslmode", "disable")

	// Redis defaults
	viper.SetDefault("redis.db", 0)

	// Tracking defaults
	viper.SetDefault("tracking.retention_window_days", 7)
	viper.SetDefault("tracking.hotspot_grid_cell_degrees", 0.0001)
	viper.SetDefault("tracking.hotspot_top_k", 5)
	viper.SetDefault("tracking.stationary_speed_threshold_mps", 0.01)
	viper.SetDefault("tracking.excessive_speed_threshold_mps", 2.0)
	viper.SetDefault("tracking.min_samples_for_stationary_alert", 10)
	viper.SetDefault("tracking.behavior_window_days", 1)
	viper.SetDefault("tracking.behavior_sweep_interval", "5m")

	// Monitoring defaults
	viper.SetDefault("monitoring.prometheus_port", 9090)
	viper.SetDefault("monitoring.log_level", "info")
	viper.SetDefault("monitoring.prometheus_endpoint", "http://localhost:9090")
	viper.SetDefault("monitoring.loki_endpoint", "http://localhost:3100")
}

func validateConfig(config *Config) error {
	if config.Database.AppDB.Host == "" {
		return fmt.Errorf("postgres app host is required")
	}
	if config.Tracking.RetentionWindowDays <= 0 {
		return fmt.Errorf("tracking retention window must be positive")
	}
	if config.Tracking.HotspotGridCellDegrees <= 0 {
		return fmt.Errorf("hotspot grid cell size must be positive")
	}
	if config.Tracking.StationarySpeedThresholdMps >= config.Tracking.ExcessiveSpeedThresholdMps {
		return fmt.Errorf("stationary speed threshold must be below excessive speed threshold")
	}
	return nil
}
