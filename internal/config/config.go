package config

import (
	"errors"
	"math"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/couchcryptid/temperature-heatmap/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Remote dataset.
	DatasetURL   string
	FetchTimeout time.Duration // 0 means no client-side timeout

	// Heat map geometry and colours.
	Width       float64
	Height      float64
	Padding     float64
	ColorScheme string

	// Render summary publishing.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("FETCH_TIMEOUT", "0s"))
	if err != nil || fetchTimeout < 0 {
		return nil, errors.New("invalid FETCH_TIMEOUT")
	}

	width, err := parsePixels("HEATMAP_WIDTH", 1200)
	if err != nil {
		return nil, err
	}
	height, err := parsePixels("HEATMAP_HEIGHT", 600)
	if err != nil {
		return nil, err
	}
	padding, err := parsePixels("HEATMAP_PADDING", 80)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DatasetURL:   sharedcfg.EnvOrDefault("DATASET_URL", domain.DefaultDatasetURL),
		FetchTimeout: fetchTimeout,

		Width:       width,
		Height:      height,
		Padding:     padding,
		ColorScheme: sharedcfg.EnvOrDefault("COLOR_SCHEME", "RdYlBu"),

		KafkaEnabled: os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers: sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "heatmap-renders"),
	}

	if cfg.DatasetURL == "" {
		return nil, errors.New("DATASET_URL is required")
	}
	if 2*cfg.Padding >= cfg.Width || 2*cfg.Padding >= cfg.Height {
		return nil, errors.New("HEATMAP_PADDING leaves no room for the plot")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when KAFKA_ENABLED is true")
	}

	return cfg, nil
}

func parsePixels(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return v, nil
}
