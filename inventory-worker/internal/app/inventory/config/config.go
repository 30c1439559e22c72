package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит все настройки Inventory Worker
// Включает PostgreSQL с остатками, MongoDB с корзинами, Kafka и расписание очистки
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Mongo    MongoConfig
	Kafka    KafkaConfig
	Cart     CartConfig
	LogLevel string
}

// ServerConfig - HTTP сервер healthcheck и метрик
type ServerConfig struct {
	Port string
}

// DatabaseConfig - та же БД, что у configurator-service
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type MongoConfig struct {
	URI      string
	Database string
}

// KafkaConfig - подписка на события склада
type KafkaConfig struct {
	Brokers  []string
	Topic    string // inventory_events
	GroupID  string
	MinBytes int
	MaxBytes int
}

// CartConfig - очистка брошенных корзин
type CartConfig struct {
	TTL           time.Duration // корзина без изменений дольше TTL удаляется
	PurgeSchedule string        // cron выражение
}

// Load загружает конфигурацию из переменных окружения и необязательного .env
func Load() (*Config, error) {
	_ = godotenv.Load()

	cartTTL, err := time.ParseDuration(getEnv("CART_TTL", "720h"))
	if err != nil {
		return nil, fmt.Errorf("invalid CART_TTL value: %w", err)
	}
	if cartTTL <= 0 {
		return nil, fmt.Errorf("CART_TTL must be positive, got %s", cartTTL)
	}

	minBytes, err := strconv.Atoi(getEnv("KAFKA_MIN_BYTES", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid KAFKA_MIN_BYTES value: %w", err)
	}
	maxBytes, err := strconv.Atoi(getEnv("KAFKA_MAX_BYTES", "10000000"))
	if err != nil {
		return nil, fmt.Errorf("invalid KAFKA_MAX_BYTES value: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8082"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "bikeshop"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "bikeshop"),
		},
		Kafka: KafkaConfig{
			Brokers:  splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
			Topic:    getEnv("KAFKA_TOPIC", "inventory_events"),
			GroupID:  getEnv("KAFKA_GROUP_ID", "inventory-worker-group"),
			MinBytes: minBytes,
			MaxBytes: maxBytes,
		},
		Cart: CartConfig{
			TTL:           cartTTL,
			PurgeSchedule: getEnv("CRON_PURGE_CARTS", "0 3 * * *"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}, nil
}

// DSN возвращает строку подключения к PostgreSQL в формате libpq
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
