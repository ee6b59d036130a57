package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestConfig() *Config {
	cfg := &Config{}
	cfg.Database.AppDB.Host = "localhost"
	cfg.Tracking.RetentionWindowDays = 7
	cfg.Tracking.HotspotGridCellDegrees = 0.0001
	cfg.Tracking.StationarySpeedThresholdMps = 0.01
	cfg.Tracking.ExcessiveSpeedThresholdMps = 2.0
	return cfg
}

func TestValidateConfig(t *testing.T) {
	require.NoError(t, validateConfig(validTestConfig()))
}

func TestValidateConfig_MissingDBHost(t *testing.T) {
	cfg := validTestConfig()
	cfg.Database.AppDB.Host = ""
	assert.Error(t, validateConfig(cfg))
}

func TestValidateConfig_BadRetention(t *testing.T) {
	cfg := validTestConfig()
	cfg.Tracking.RetentionWindowDays = 0
	assert.Error(t, validateConfig(cfg))
}

func TestValidateConfig_BadGridCell(t *testing.T) {
	cfg := validTestConfig()
	cfg.Tracking.HotspotGridCellDegrees = 0
	assert.Error(t, validateConfig(cfg))
}

func TestValidateConfig_ThresholdOrdering(t *testing.T) {
	cfg := validTestConfig()
	cfg.Tracking.StationarySpeedThresholdMps = 2.0
	cfg.Tracking.ExcessiveSpeedThresholdMps = 2.0
	assert.Error(t, validateConfig(cfg))

	cfg.Tracking.StationarySpeedThresholdMps = 3.0
	assert.Error(t, validateConfig(cfg))
}
