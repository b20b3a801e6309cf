package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config хранит настройки одного приложения: адрес HTTP-сервера, параметры
// обращений к внешнему API, ключ NewsAPI, метрики и уровень логирования.
type Config struct {
	HTTP     HTTPConfig     `json:"http" yaml:"http"`
	Upstream UpstreamConfig `json:"upstream" yaml:"upstream"`
	NewsAPI  NewsAPIConfig  `json:"newsapi" yaml:"newsapi"`
	Metrics  MetricsConfig  `json:"metrics" yaml:"metrics"`
	Log      LogConfig      `json:"log" yaml:"log"`
}

type HTTPConfig struct {
	Addr                   string `json:"addr" yaml:"addr"`
	ShutdownTimeoutSeconds int    `json:"shutdown_timeout_seconds" yaml:"shutdown_timeout_seconds"`
}

// UpstreamConfig задаёт таймаут одного запроса и число параллельных
// запросов деталей (1 означает строго последовательно).
type UpstreamConfig struct {
	TimeoutSeconds int `json:"timeout_seconds" yaml:"timeout_seconds"`
	Concurrency    int `json:"concurrency" yaml:"concurrency"`
}

type NewsAPIConfig struct {
	APIKey  string `json:"api_key" yaml:"api_key"`
	Country string `json:"country" yaml:"country"`
}

type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path" yaml:"path"`
}

type LogConfig struct {
	Level string `json:"level" yaml:"level"`
}

const (
	maxConcurrency = 32

	EnvAPIKey = "NEWS_API_KEY"
	EnvDebug  = "DEBUG"
	EnvAddr   = "NEWSDESK_ADDR"
)

// Default возвращает конфигурацию, с которой приложение стартует без файла.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Addr:                   ":8080",
			ShutdownTimeoutSeconds: 5,
		},
		Upstream: UpstreamConfig{
			TimeoutSeconds: 10,
			Concurrency:    5,
		},
		NewsAPI: NewsAPIConfig{Country: "us"},
		Metrics: MetricsConfig{Enabled: true, Path: "/metrics"},
		Log:     LogConfig{Level: "info"},
	}
}

// LoadConfig читает файл по пути path поверх значений по умолчанию.
// Файлы .yaml/.yml читаются как YAML, остальные как JSON.
// Пустой path означает «только значения по умолчанию».
func LoadConfig(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode yaml config %s: %w", path, err)
		}
	default:
		if err := json.NewDecoder(file).Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode json config %s: %w", path, err)
		}
	}
	return cfg, nil
}

// ApplyEnv переопределяет значения из окружения. Ключ NewsAPI читается
// только здесь и дальше передаётся клиенту явно.
func (cfg *Config) ApplyEnv() {
	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.NewsAPI.APIKey = v
	}
	if os.Getenv(EnvDebug) == "true" {
		cfg.Log.Level = "debug"
	}
	if v := os.Getenv(EnvAddr); v != "" {
		cfg.HTTP.Addr = v
	}
}

// Validate проверяет общие для всех приложений параметры.
func (cfg *Config) Validate() error {
	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		return errors.New("http addr must not be empty")
	}
	if cfg.HTTP.ShutdownTimeoutSeconds < 1 {
		return errors.New("shutdown timeout must be ≥ 1 second")
	}
	if cfg.Upstream.TimeoutSeconds < 1 {
		return errors.New("upstream timeout must be ≥ 1 second")
	}
	if cfg.Upstream.Concurrency < 1 || cfg.Upstream.Concurrency > maxConcurrency {
		return fmt.Errorf("upstream concurrency must be between 1 and %d", maxConcurrency)
	}
	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		return fmt.Errorf("invalid metrics path: %q", cfg.Metrics.Path)
	}
	return nil
}

// ValidateHeadlines дополнительно требует ключ NewsAPI.
func (cfg *Config) ValidateHeadlines() error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.NewsAPI.APIKey) == "" {
		return fmt.Errorf("newsapi api key is required (set %s)", EnvAPIKey)
	}
	if len(cfg.NewsAPI.Country) != 2 {
		return fmt.Errorf("invalid newsapi country: %q", cfg.NewsAPI.Country)
	}
	return nil
}

func (cfg *Config) UpstreamTimeout() time.Duration {
	return time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second
}

func (cfg *Config) ShutdownTimeout() time.Duration {
	return time.Duration(cfg.HTTP.ShutdownTimeoutSeconds) * time.Second
}
