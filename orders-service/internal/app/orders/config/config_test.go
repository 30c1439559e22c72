package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8083", cfg.Server.Address())
	assert.Equal(t, "inventory_events", cfg.Kafka.Topic)
	assert.Equal(t, "http://localhost:8081", cfg.Configurator.URL)
	assert.Equal(t, 10*time.Second, cfg.Configurator.Timeout)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address())
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=bikeshop_orders sslmode=disable", cfg.Database.DSN())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("CONFIGURATOR_SERVICE_URL", "http://configurator:8081")
	t.Setenv("CONFIGURATOR_TIMEOUT", "3s")
	t.Setenv("REDIS_DB", "2")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "http://configurator:8081", cfg.Configurator.URL)
	assert.Equal(t, 3*time.Second, cfg.Configurator.Timeout)
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"REDIS_DB", "one"},
		{"CONFIGURATOR_TIMEOUT", "soon"},
		{"CONFIGURATOR_TIMEOUT", "-1s"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()

			assert.Error(t, err)
		})
	}
}
