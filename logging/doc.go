// Package logging provides a minimal logging interface and adapters for numbridge.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) that sessions, the engine and the relay runner use. This
// package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter and BridgeLogger over Go's structured logging
//   - ZerologAdapter for colorized console output
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelDebug, "json", false)
//	eng := engine.New(engine.WithLogger(logger))
//
// Evaluated input text is only ever logged at debug level.
package logging
