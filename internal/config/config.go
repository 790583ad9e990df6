// Package config provides centralized configuration management for the
// application. Settings come from built-in defaults, an optional YAML file
// (CONFIG_FILE), and environment variables, in increasing precedence, and are
// validated on startup to fail fast on misconfiguration.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transform TransformConfig `yaml:"transform"`
	Rate      RateLimitConfig `yaml:"rate"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" yaml:"host" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" envAlt:"PORT" yaml:"port" default:"8080"`

	// ReadTimeout is the maximum duration for reading the request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" yaml:"readTimeout" default:"15s"`

	// WriteTimeout is the maximum duration for writing the response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" yaml:"writeTimeout" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" yaml:"idleTimeout" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" yaml:"shutdownTimeout" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" yaml:"requestTimeout" default:"60s"`
}

// TransformConfig holds transform and run retention settings.
type TransformConfig struct {
	// MaxInputSize is the maximum accepted input in bytes (default: 2MB)
	MaxInputSize int `env:"TRANSFORM_MAX_INPUT_SIZE" yaml:"maxInputSize" default:"2097152"`

	// MaxRuns is the number of completed runs kept in memory before the
	// oldest is evicted (default: 50)
	MaxRuns int `env:"TRANSFORM_MAX_RUNS" yaml:"maxRuns" default:"50"`
}

// RateLimitConfig holds per-IP request throttling settings.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" yaml:"enabled" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" yaml:"requestsPerMinute" default:"100"`

	// TransformLimit is requests per minute for the transform endpoint (default: 20)
	TransformLimit int `env:"RATE_LIMIT_TRANSFORM" yaml:"transformLimit" default:"20"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" yaml:"level" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" yaml:"format" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + itoa(c.Port)
	}
	return c.Host + ":" + itoa(c.Port)
}

// itoa converts an int to string without importing strconv in this file.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var b [20]byte
	n := len(b)
	neg := i < 0
	if neg {
		i = -i
	}
	for i > 0 {
		n--
		b[n] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		n--
		b[n] = '-'
	}
	return string(b[n:])
}
