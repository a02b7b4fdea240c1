// Package config handles application configuration management using Viper
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/xhit/go-str2duration/v2"
)

// EnvPrefix prefixes every environment variable read by launchdash
const EnvPrefix = "LAUNCHDASH"

// Configuration keys
const (
	KeyDataFile      = "data.file"
	KeyDataSQLite    = "data.sqlite"
	KeyServerPort    = "server.port"
	KeyServerDebug   = "server.debug"
	KeyCacheTTL      = "cache.ttl"
	KeySliderStep    = "slider.step"
	KeyLogLevel      = "log.level"
	KeyLogTimeFormat = "log.time_format"
	KeyLogColor      = "log.color"
	KeyLogJSON       = "log.json"
)

// Default configuration values
const (
	DefaultDataFile      = "spacex_launch_dash.csv"
	DefaultServerPort    = 8050
	DefaultCacheTTL      = "10m"
	DefaultSliderStep    = 1000
	DefaultLogLevel      = "info"
	DefaultLogTimeFormat = "2006-01-02 15:04:05"
)

// AppConfig holds the application configuration
type AppConfig struct {
	Data   DataConfig
	Server ServerConfig
	Cache  CacheConfig
	Slider SliderConfig
	Log    LogConfig
}

// DataConfig selects where the launch dataset is loaded from
type DataConfig struct {
	File   string // CSV file
	SQLite string // SQLite database; takes precedence over File when set
}

// ServerConfig holds dashboard HTTP server configuration
type ServerConfig struct {
	Port  int
	Debug bool
}

// CacheConfig holds figure cache configuration
type CacheConfig struct {
	TTL time.Duration // zero disables expiry
}

// SliderConfig holds payload range slider configuration
type SliderConfig struct {
	Step float64
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level      string
	TimeFormat string
	Colored    bool
	JSON       bool
}

// New returns a viper instance with defaults and environment binding set up.
// Environment variables use the LAUNCHDASH_ prefix with dots replaced by
// underscores, e.g. LAUNCHDASH_SERVER_PORT.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyDataFile, DefaultDataFile)
	v.SetDefault(KeyDataSQLite, "")
	v.SetDefault(KeyServerPort, DefaultServerPort)
	v.SetDefault(KeyServerDebug, false)
	v.SetDefault(KeyCacheTTL, DefaultCacheTTL)
	v.SetDefault(KeySliderStep, DefaultSliderStep)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogTimeFormat, DefaultLogTimeFormat)
	v.SetDefault(KeyLogColor, true)
	v.SetDefault(KeyLogJSON, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	for _, file := range files {
		err := godotenv.Load(file)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// Load reads the optional config file into v and builds the AppConfig
func Load(v *viper.Viper, configFile string) (*AppConfig, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	ttl, err := parseDuration(v.GetString(KeyCacheTTL))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyCacheTTL, err)
	}

	cfg := &AppConfig{
		Data: DataConfig{
			File:   v.GetString(KeyDataFile),
			SQLite: v.GetString(KeyDataSQLite),
		},
		Server: ServerConfig{
			Port:  v.GetInt(KeyServerPort),
			Debug: v.GetBool(KeyServerDebug),
		},
		Cache: CacheConfig{
			TTL: ttl,
		},
		Slider: SliderConfig{
			Step: v.GetFloat64(KeySliderStep),
		},
		Log: LogConfig{
			Level:      v.GetString(KeyLogLevel),
			TimeFormat: v.GetString(KeyLogTimeFormat),
			Colored:    v.GetBool(KeyLogColor),
			JSON:       v.GetBool(KeyLogJSON),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the values that would otherwise fail late at startup
func (c *AppConfig) Validate() error {
	if c.Data.File == "" && c.Data.SQLite == "" {
		return errors.New("no dataset configured: set data.file or data.sqlite")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Slider.Step <= 0 {
		return fmt.Errorf("invalid slider step: %v", c.Slider.Step)
	}
	return nil
}

// parseDuration accepts day and week units on top of time.ParseDuration
func parseDuration(value string) (time.Duration, error) {
	if value == "" || value == "0" {
		return 0, nil
	}
	return str2duration.ParseDuration(value)
}
