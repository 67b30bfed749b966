// Package logging provides structured logging configuration for typedstore.
//
// This package wraps log/slog so the storage adapters, hosts and the CLI
// log the same way. It supports configurable log levels and output formats.
//
// # Usage
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatJSON,
//	})
//
//	store := webstorage.NewLocal(w, webstorage.WithLogger(logging.Component(logger, "webstorage")))
//
// # Integration
//
// Components accept a *slog.Logger through a WithLogger option. If no
// logger is provided they use logging.Nop(). Listener bookkeeping is logged
// at debug level; events dropped because they carry a malformed envelope
// are logged at error level.
//
// Recorder captures records in memory for tests.
package logging
