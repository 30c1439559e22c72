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
	assert.Equal(t, 720*time.Hour, cfg.Cart.TTL)
	assert.Equal(t, "inventory_events", cfg.Kafka.Topic)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=bikeshop sslmode=disable", cfg.Database.DSN())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CART_TTL", "48h")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 48*time.Hour, cfg.Cart.TTL)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"CART_TTL", "a month"},
		{"CART_TTL", "0s"},
		{"KAFKA_MIN_BYTES", "x"},
		{"KAFKA_MAX_BYTES", "y"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()

			assert.Error(t, err)
		})
	}
}
