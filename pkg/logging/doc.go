// Package logging sets up the JSON slog logger used by cdiff.
//
// Records go to stderr. Every record carries the module and version
// attributes, and debug level adds the source location.
//
// ParseLogLevel maps a level name to a slog.Level. Matching is
// case-insensitive, "warning" is accepted for warn, and anything unknown
// or empty is info:
//
//	logging.ParseLogLevel("DEBUG") // slog.LevelDebug
//	logging.ParseLogLevel("")      // slog.LevelInfo
//
// NewStructuredLogger builds a logger without touching the slog default:
//
//	logger := logging.NewStructuredLogger("cdiff", version, "debug")
//	logger.Debug("resolved collection", "ref", ref, "id", id)
//
// SetDefaultStructuredLoggerWithLevel installs such a logger as the slog
// default. The CLI calls it from its Before hook with the --log-level value.
// An empty level falls back to the LOG_LEVEL environment variable:
//
//	logging.SetDefaultStructuredLoggerWithLevel("cdiff", version, cmd.String("log-level"))
//
// A record looks like:
//
//	{"time":"2025-03-01T12:00:00Z","level":"INFO","msg":"snapshot saved",
//	 "module":"cdiff","version":"v0.3.0","collection_id":"dv_1"}
package logging
