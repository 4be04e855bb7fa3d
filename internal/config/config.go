// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// Config groups all settings for the server, worker and seeder.
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Queue   QueueConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	storage, err := loadStorageConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Storage: storage, Queue: loadQueueConfig()}, nil
}

type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := getEnv("PORT", "8000")

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	// accepts ":8000" or "127.0.0.1:8000" as well as a bare port
	if strings.Contains(port, ":") {
		return ServerConfig{Addr: port}, nil
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// StorageConfig selects and locates the customer record store.
type StorageConfig struct {
	Backend     string
	DataPath    string
	DatabaseURL string
	DBUser      string
	DBPassword  string
	DBHost      string
	DBPort      string
	DBName      string
}

func loadStorageConfig() (StorageConfig, error) {
	cfg := StorageConfig{
		Backend:     strings.ToLower(getEnv("STORE_BACKEND", BackendFile)),
		DataPath:    getEnv("DATA_PATH", "data/customers.json"),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      os.Getenv("DB_NAME"),
	}

	switch cfg.Backend {
	case BackendFile:
	case BackendPostgres:
		if cfg.DatabaseURL == "" && cfg.DBName == "" {
			return StorageConfig{}, fmt.Errorf("postgres backend requires DATABASE_URL or DB_NAME")
		}
	default:
		return StorageConfig{}, fmt.Errorf("invalid STORE_BACKEND value: %q", cfg.Backend)
	}

	return cfg, nil
}

// DSN returns the Postgres connection string.
func (c StorageConfig) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// DSNSource names where the connection settings came from, without secrets.
func (c StorageConfig) DSNSource() string {
	if c.DatabaseURL != "" {
		return "DATABASE_URL"
	}
	return fmt.Sprintf("DB_* (host=%s port=%s name=%s)", c.DBHost, c.DBPort, c.DBName)
}

// QueueConfig describes where customer events are published.
type QueueConfig struct {
	AMQPURL         string
	Topic           string
	WelcomeTemplate string
}

// Enabled reports whether a RabbitMQ broker is configured.
func (c QueueConfig) Enabled() bool {
	return c.AMQPURL != ""
}

func loadQueueConfig() QueueConfig {
	return QueueConfig{
		AMQPURL:         strings.TrimSpace(os.Getenv("AMQP_URL")),
		Topic:           getEnv("CUSTOMER_EVENTS_QUEUE", "customer_events"),
		WelcomeTemplate: os.Getenv("WELCOME_TEMPLATE"),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
