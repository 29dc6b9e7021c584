// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable time formatting, caller information,
// and output formats that are applied at logger creation time using
// functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("expansion started", slog.Int("tokens", 12))
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// The zero [Logger] discards everything, so packages may hold a Logger field
// without checking whether one was configured.
//
// # Levels
//
// In addition to the four [log/slog] levels the package defines
// [LevelTrace], which the expansion engine uses to report every pass and
// every oracle call.
//
// # Default Logger
//
// Package-level functions such as [Info] and [DebugContext] write through a
// process-wide default logger that [Config] reconfigures.
package log
