package launchdash

import (
	"os"
	"strconv"

	"github.com/raykavin/launchdash/pkg/logger"
	"github.com/raykavin/launchdash/pkg/logger/zerolog"
)

const (
	// Default configuration values
	defaultLogLevel      = "info"
	defaultLogTimeFormat = "2006-01-02 15:04:05"
	defaultLogColored    = "true"
	defaultLogJSON       = "false"
)

// Environment variable names
const (
	envLogLevel      = "LAUNCHDASH_LOG_LEVEL"
	envLogTimeFormat = "LAUNCHDASH_LOG_TIME_FORMAT"
	envLogColor      = "LAUNCHDASH_LOG_COLOR"
	envLogJSON       = "LAUNCHDASH_LOG_JSON"
)

// DefaultLog is the logger used until a configuration has been loaded
var DefaultLog logger.Logger

func init() {
	log, err := initLogger()
	if err != nil {
		panic(err)
	}

	DefaultLog = log
}

// initLogger creates a new logger instance configured from environment variables
func initLogger() (logger.Logger, error) {
	logColored, err := parseBoolEnv(envLogColor, defaultLogColored)
	if err != nil {
		return nil, err
	}

	logJSON, err := parseBoolEnv(envLogJSON, defaultLogJSON)
	if err != nil {
		return nil, err
	}

	zl, err := zerolog.New(zerolog.Config{
		Level:          getEnvWithDefault(envLogLevel, defaultLogLevel),
		DateTimeLayout: getEnvWithDefault(envLogTimeFormat, defaultLogTimeFormat),
		Colored:        logColored,
		JSON:           logJSON,
	})
	if err != nil {
		return nil, err
	}

	return zerolog.NewAdapter(zl), nil
}

// getEnvWithDefault returns the value of the environment variable or the default if not set
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// parseBoolEnv gets a boolean environment variable with a default value
func parseBoolEnv(key, defaultValue string) (bool, error) {
	value := getEnvWithDefault(key, defaultValue)
	return strconv.ParseBool(value)
}
