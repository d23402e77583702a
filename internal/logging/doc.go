// Package logging provides structured logging for the neviweb-cfg tool.
//
// This package wraps zap logger with convenience functions for common logging
// patterns used throughout the wizard. It provides both general logging
// functions and specialized functions for cloud API and registry logging.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (request URLs, step transitions, timings)
//   - Info: Normal operations (login, location fetches, registry writes)
//   - Warn: Non-fatal issues (unreadable config files, skipped defaults)
//   - Error: Fatal issues (startup failures, critical errors)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Entry created",
//	    zap.String("username", logging.MaskAccount("jane@example.com")),
//	    zap.Int("networks", 2),
//	)
//
// # Specialized Logging
//
// The package provides domain-specific logging functions:
//
// Cloud API Logging:
//
//	logging.LogAPIRequest("POST", url, status, elapsed)
//	logging.LogLoginResult(username, err)
//
// Wizard Step Logging:
//
//	logging.LogStep("setup", "user")
//	logging.LogStep("options", "init")
//
// Registry Logging:
//
//	logging.LogRegistryWrite(path, entryCount)
//
// # Configuration
//
// The logger is silent by default so it never pollutes wizard output. Set
// NEVIWEB_LOG_LEVEL to enable it:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Output Format
//
// Logs are written to stderr in console format so they can be separated from
// the interactive wizard on stdout:
//
//	2026-08-25T10:30:45.123-0400  INFO  Cloud API request
//	  method=POST
//	  url=https://neviweb.com/api/login
//	  status=200
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging
