// Package logging provides structured logging for divelink.
//
// This package wraps zap with convenience functions for the logging
// patterns used throughout the toolkit. By default it is silent so the CLI
// output stays clean; set DIVELINK_LOG_LEVEL to enable it.
//
// # Log Levels
//
//   - Debug: protocol traces (commands, answers, hex dumps, chunk sizes)
//   - Info: normal operations (discovery, connections, dump summaries)
//   - Warn: tolerated anomalies (failed handshake, unknown profile events)
//   - Error: failures that abort an operation
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Dump complete",
//	    zap.String("address", "192.168.4.16:2000"),
//	    zap.Int("bytes", 16384),
//	)
//
// Raw protocol traffic is logged with LogRawBytes, which renders both a hex
// and an ASCII dump at debug level.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use; zap handles
// synchronization.
package logging
