package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the top-level struct that holds all configuration.
type Config struct {
	Exchange ExchangeConfig `yaml:"exchange"`
	Relay    RelayConfig    `yaml:"relay"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	API      APIConfig      `yaml:"api"`
	Stream   StreamConfig   `yaml:"stream"`
	Symbols  []string       `yaml:"subscribed_symbols"`
}

// ExchangeConfig holds the primary (websocket) transport settings.
type ExchangeConfig struct {
	WSBaseURL string `yaml:"ws_base_url"`
}

// RelayConfig holds the fallback (SSE relay) transport settings.
type RelayConfig struct {
	URL string `yaml:"url"`
}

// KafkaConfig holds the configuration for the Kafka connection.
type KafkaConfig struct {
	BrokerURL string `yaml:"broker_url"`
	Topic     string `yaml:"topic"`
}

// APIConfig holds the REST service settings.
type APIConfig struct {
	Port int `yaml:"port"`
}

// StreamConfig holds the stream client tuning knobs.
type StreamConfig struct {
	ThrottleMs           int `yaml:"throttle_ms"`
	MaxReconnectAttempts int `yaml:"max_reconnect_attempts"`
}

// LoadConfig reads the configuration file from the given path, applies
// environment overrides and returns a Config struct. A .env file next to
// the process is loaded first if present.
func LoadConfig(path string) (*Config, error) {
	// Absence of a .env file is not an error.
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Environment overrides, for deployments that cannot ship a config file.
	if v := os.Getenv("EXCHANGE_WS_URL"); v != "" {
		cfg.Exchange.WSBaseURL = v
	}
	if v := os.Getenv("RELAY_URL"); v != "" {
		cfg.Relay.URL = v
	}
	if v := os.Getenv("KAFKA_BROKER_URL"); v != "" {
		cfg.Kafka.BrokerURL = v
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		cfg.Kafka.Topic = v
	}
	if v := os.Getenv("API_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.API.Port = p
		}
	}

	return &cfg, nil
}
