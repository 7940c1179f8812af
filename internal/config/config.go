package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates all runtime settings required by the application.
type Config struct {
	AppName string
	HTTP    HTTPConfig
	Files   FilesConfig
	History HistoryConfig
	Monitor MonitorConfig
	JWT     JWTConfig
	Context ContextConfig
	Logger  LoggerConfig
}

type HTTPConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// FilesConfig locates the documents the dashboard is built from.
type FilesConfig struct {
	MetaPath      string
	DeadlinesPath string
	BackupDir     string
}

type HistoryConfig struct {
	Path             string
	SnapshotInterval time.Duration
}

type MonitorConfig struct {
	Interval time.Duration
}

// JWTConfig guards the mutating routes. An empty secret disables auth.
type JWTConfig struct {
	Secret string
}

type ContextConfig struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// Load reads configuration from environment variables (optionally .env)
// and applies defaults suited to a single-user homepage.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName: getString("APP_NAME", "homepage"),
		HTTP: HTTPConfig{
			Host:         getString("SERVER_HOST", "127.0.0.1"),
			Port:         getString("SERVER_PORT", "8000"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
		Files: FilesConfig{
			MetaPath:      getString("HOMEPAGE_META_PATH", "~/.config/homepage/homepage.yaml"),
			DeadlinesPath: getString("HOMEPAGE_DEADLINES_PATH", "~/.config/homepage/deadlines.json"),
			BackupDir:     getString("HOMEPAGE_BACKUP_DIR", "~/.local/share/homepage/backups"),
		},
		History: HistoryConfig{
			Path:             getString("HISTORY_DB_PATH", "~/.local/share/homepage/history.db"),
			SnapshotInterval: getDuration("HISTORY_SNAPSHOT_INTERVAL", 5*time.Minute),
		},
		Monitor: MonitorConfig{
			Interval: getDuration("MONITOR_INTERVAL", 30*time.Second),
		},
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
		},
		Context: ContextConfig{
			RequestTimeout:  getDuration("REQUEST_TIMEOUT_SECONDS", 5*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
		},
	}

	return cfg, nil
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// Address returns the HTTP listen address for the fasthttp server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}
