package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	StorageDriverJSON     = "json"
	StorageDriverSQLite   = "sqlite"
	StorageDriverPostgres = "postgres"

	AppDirName      = ".expense-tracker"
	DataFileName    = "expenses.json"
	SQLiteFileName  = "expenses.db"
	ConfigFileName  = "config"
	EnvPrefix       = "EXPENSE"
	DefaultCurrency = "$"
)

type Config struct {
	Storage       StorageConfig       `mapstructure:"storage"`
	Server        ServerConfig        `mapstructure:"http_server"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type StorageConfig struct {
	Driver   string `mapstructure:"driver" validate:"required,oneof=json sqlite postgres"`
	DataFile string `mapstructure:"data_file"`
	Source   string `mapstructure:"source"`
}

type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
}

type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// AppDir is the per-user directory holding data and config.
func AppDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		if wd, wdErr := os.Getwd(); wdErr == nil {
			return filepath.Join(wd, AppDirName)
		}
		return AppDirName
	}
	return filepath.Join(home, AppDirName)
}

func DefaultConfig() *Config {
	dir := AppDir()
	return &Config{
		Storage: StorageConfig{
			Driver:   StorageDriverJSON,
			DataFile: filepath.Join(dir, DataFileName),
			Source:   filepath.Join(dir, SQLiteFileName),
		},
		Server: ServerConfig{
			Host:              "127.0.0.1",
			Port:              8085,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			IdleTimeout:       60 * time.Second,
			WriteTimeout:      30 * time.Second,
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{Level: "warn", Format: "text"},
		},
	}
}

func (c *Config) Validate() error {
	var errs []string

	if err := c.Storage.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("storage config: %v", err))
	}

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Observability.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("logging config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *StorageConfig) Validate() error {
	switch c.Driver {
	case StorageDriverJSON:
		if strings.TrimSpace(c.DataFile) == "" {
			return errors.New("data_file is required for the json driver")
		}
		if !filepath.IsAbs(c.DataFile) {
			return fmt.Errorf("data_file must be an absolute path, got %q", c.DataFile)
		}
	case StorageDriverSQLite, StorageDriverPostgres:
		if strings.TrimSpace(c.Source) == "" {
			return fmt.Errorf("source is required for the %s driver", c.Driver)
		}
	default:
		return fmt.Errorf("unknown driver %q: must be one of json, sqlite, postgres", c.Driver)
	}
	return nil
}

func (c *ServerConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port)
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *LoggingConfig) Validate() error {
	switch strings.ToLower(c.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid level %q", c.Level)
	}
	switch strings.ToLower(c.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("invalid format %q", c.Format)
	}
	return nil
}
