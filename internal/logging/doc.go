// Package logging provides structured logging for civctl.
//
// This package wraps zap logger with convenience functions for common
// logging patterns used throughout the tool. It provides both general
// logging functions and specialized functions for CI-V traffic logging.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (hex dumps, frame decoding, skipped frames)
//   - Info: Normal operations (port open, baud detection, session state)
//   - Warn: Non-fatal issues (malformed frames, retries)
//   - Error: Fatal issues (port open failures, critical errors)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Serial port opened",
//	    zap.String("port", "/dev/ttyACM0"),
//	    zap.Int("baud", 19200),
//	)
//
// # Specialized Logging
//
// CI-V traffic logging:
//
//	logging.LogFrame("tx", frame)
//	logging.LogRawBytes("rx bytes", buf)
//
// # Configuration
//
// Initialize logging at startup:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// CLI commands want silent mode by default; set CIVCTL_LOG_LEVEL to
// enable output.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
