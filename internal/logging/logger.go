package logging

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "NEVIWEB_LOG_LEVEL"

// Initialize creates a new logger with the specified level.
// If level is empty, it checks NEVIWEB_LOG_LEVEL environment variable.
// If neither is set, logging is disabled (silent mode).
func Initialize(level string) error {
	// If no level provided, check environment variable
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	// If still no level, use silent mode (nop logger)
	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		// Unknown level - use info as default when explicitly set to something
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	// Customize encoder for better readability
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// InitializeFromEnv initializes the logger from the NEVIWEB_LOG_LEVEL
// environment variable. This is the recommended way to initialize logging
// for CLI commands that want silent mode by default.
func InitializeFromEnv() error {
	return Initialize("")
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		// Fallback to silent logger if not initialized
		// This ensures no unexpected log output in CLI commands
		logger = zap.NewNop()
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// Fatal logs a fatal message and exits
func Fatal(msg string, fields ...zap.Field) {
	GetLogger().Fatal(msg, fields...)
}

// LogAPIRequest logs a request to the Neviweb cloud API
func LogAPIRequest(method string, url string, statusCode int, elapsed time.Duration) {
	Info("Cloud API request",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", statusCode),
		zap.Duration("elapsed", elapsed),
	)
}

// LogLoginResult logs the outcome of a login attempt. The account name is
// masked so log files never identify the account directly.
func LogLoginResult(username string, err error) {
	if err != nil {
		Warn("Login failed",
			zap.String("username", MaskAccount(username)),
			zap.Error(err),
		)
		return
	}
	Info("Login succeeded",
		zap.String("username", MaskAccount(username)),
	)
}

// LogStep logs a wizard step transition
func LogStep(flow string, step string) {
	Debug("Flow step",
		zap.String("flow", flow),
		zap.String("step", step),
	)
}

// LogRegistryWrite logs a write to the entry registry file
func LogRegistryWrite(path string, entries int) {
	Info("Registry saved",
		zap.String("path", path),
		zap.Int("entries", entries),
	)
}

// MaskAccount obscures an account name for logging. The first two
// characters and the mail domain survive, everything else is replaced:
// "jane.doe@example.com" becomes "ja***@example.com".
func MaskAccount(username string) string {
	if username == "" {
		return ""
	}

	local := username
	domain := ""
	if at := strings.IndexByte(username, '@'); at >= 0 {
		local = username[:at]
		domain = username[at:]
	}

	if len(local) <= 2 {
		return local + "***" + domain
	}
	return local[:2] + "***" + domain
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
