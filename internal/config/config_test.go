package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8001", cfg.App.Port)
	assert.Equal(t, ".", cfg.App.StaticDir)
	assert.Equal(t, "https://api.deepseek.com/v1", cfg.DeepSeek.BaseURL)
	assert.Equal(t, "deepseek-chat", cfg.DeepSeek.Model)
	assert.Equal(t, 30*time.Second, cfg.DeepSeek.Timeout)
	assert.False(t, cfg.HasAPIKey())
}

func TestLoadConfig_EnvironmentWins(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "sk-env")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("DEEPSEEK_TIMEOUT", "5s")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "sk-env", cfg.DeepSeek.APIKey)
	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 5*time.Second, cfg.DeepSeek.Timeout)
	assert.True(t, cfg.HasAPIKey())
}

func TestLoadConfig_ConfigFile(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "")
	dir := t.TempDir()
	yaml := "app:\n  port: \"7000\"\ndeepseek:\n  model: deepseek-reasoner\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.App.Port)
	assert.Equal(t, "deepseek-reasoner", cfg.DeepSeek.Model)
}

func TestHasAPIKey_Placeholder(t *testing.T) {
	var cfg Config
	cfg.DeepSeek.APIKey = PlaceholderAPIKey
	assert.False(t, cfg.HasAPIKey())
}
