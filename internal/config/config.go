// Package config handles loading and validating the kodokoe configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root configuration for the kodokoe daemon.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Describe DescribeConfig `mapstructure:"describe"`
	Speech   SpeechConfig   `mapstructure:"speech"`
	Sentry   SentryConfig   `mapstructure:"sentry"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig holds the listener settings.
type ServerConfig struct {
	HTTPPort    int  `mapstructure:"http_port"`
	HealthPort  int  `mapstructure:"health_port"`
	GRPCEnabled bool `mapstructure:"grpc_enabled"`
	GRPCPort    int  `mapstructure:"grpc_port"`
}

// DescribeConfig configures the documentation backend chain.
type DescribeConfig struct {
	// Mode is the capability hint: "auto" (remote allowed when a key is
	// configured), "remote" (prefer remote), or "local" (never call out).
	Mode string `mapstructure:"mode"`

	Remote RemoteConfig `mapstructure:"remote"`
	Local  LocalConfig  `mapstructure:"local"`

	// MaxChars bounds the generated description length.
	MaxChars int `mapstructure:"max_chars"`
}

// RemoteConfig holds settings for the hosted instruction-tuned model.
type RemoteConfig struct {
	APIKey         string `mapstructure:"api_key"`
	Endpoint       string `mapstructure:"endpoint"`
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// LocalConfig holds self-hosted model settings (Ollama-compatible API).
type LocalConfig struct {
	Endpoint       string `mapstructure:"endpoint"`
	InstructModel  string `mapstructure:"instruct_model"`
	BaseModel      string `mapstructure:"base_model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// SpeechConfig configures the text-to-speech chain.
type SpeechConfig struct {
	Piper PiperConfig `mapstructure:"piper"`

	// SystemEngine optionally pins the OS speech binary (e.g. "espeak-ng").
	// Empty means probe the PATH for known engines.
	SystemEngine string `mapstructure:"system_engine"`
}

// PiperConfig holds Piper TTS settings (Wyoming protocol).
type PiperConfig struct {
	// Endpoint is the Wyoming TCP endpoint (host:port). Empty disables the tier.
	Endpoint string `mapstructure:"endpoint"`
	Voice    string `mapstructure:"voice"`
}

// SentryConfig holds optional crash reporting settings.
type SentryConfig struct {
	DSN         string `mapstructure:"dsn"`
	Environment string `mapstructure:"environment"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// Load reads the configuration from file, environment variables, and defaults.
// If configFile is non-empty it is used directly; otherwise the standard
// search order applies: ./kodokoe.yaml, ./configs/kodokoe.yaml, /etc/kodokoe/kodokoe.yaml.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.health_port", 8081)
	v.SetDefault("server.grpc_enabled", false)
	v.SetDefault("server.grpc_port", 50051)
	v.SetDefault("describe.mode", "auto")
	v.SetDefault("describe.remote.endpoint", "https://api.openai.com/v1/chat/completions")
	v.SetDefault("describe.remote.model", "gpt-4o-mini")
	v.SetDefault("describe.remote.timeout_seconds", 15)
	v.SetDefault("describe.local.endpoint", "http://localhost:11434")
	v.SetDefault("describe.local.instruct_model", "llama3.2:1b")
	v.SetDefault("describe.local.base_model", "")
	v.SetDefault("describe.local.timeout_seconds", 30)
	v.SetDefault("describe.max_chars", 600)
	v.SetDefault("speech.piper.endpoint", "")
	v.SetDefault("speech.piper.voice", "en_US-lessac-medium")
	v.SetDefault("speech.system_engine", "")
	v.SetDefault("sentry.environment", "development")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("kodokoe")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/kodokoe")
	}

	// Environment variables: KODOKOE_SERVER_HTTP_PORT, KODOKOE_DESCRIBE_MODE, etc.
	v.SetEnvPrefix("KODOKOE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (optional — env vars and defaults are sufficient)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		slog.Info("no config file found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Resolve env var references in sensitive fields (e.g., "${OPENAI_API_KEY}").
	// An absent key is a valid state: the remote tier is simply skipped.
	cfg.Describe.Remote.APIKey = resolveEnvRef(cfg.Describe.Remote.APIKey)
	cfg.Sentry.DSN = resolveEnvRef(cfg.Sentry.DSN)

	switch cfg.Describe.Mode {
	case "auto", "remote", "local":
	default:
		return nil, fmt.Errorf("invalid describe.mode %q (want auto, remote, or local)", cfg.Describe.Mode)
	}

	return &cfg, nil
}

// resolveEnvRef replaces "${VAR_NAME}" patterns with the corresponding env var value.
func resolveEnvRef(val string) string {
	if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
		envKey := val[2 : len(val)-1]
		if envVal := os.Getenv(envKey); envVal != "" {
			return envVal
		}
	}
	return val
}

// SetupLogging configures the global slog logger based on config.
func SetupLogging(cfg LoggingConfig) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
