// Package logging provides structured logging for taskboard.
//
// The terminal UI owns stdout, so diagnostics go to a JSON-lines file under
// the user's state directory (see [DefaultDir]). Each line is one slog
// record; API calls are logged at DEBUG with method, path, status, duration
// and the X-Request-ID that was sent.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger(logging.DefaultDir(), "DEBUG", logging.DefaultRotationConfig())
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	apiLog := logger.WithComponent("api")
//	apiLog.Debug("request", "method", "GET", "path", "/tasks")
//
// # Rotation
//
// [RotatingWriter] renames debug.log to debug.log.1 when it would grow past
// MaxSizeMB, shifting older backups up and dropping the oldest beyond
// MaxBackups.
//
// # Reading Logs Back
//
// [ReadEntries] and [FilterEntries] back the `taskboard logs` command:
//
//	entries, _ := logging.ReadEntries(logger.Path())
//	failed := logging.FilterEntries(entries, logging.Filter{Level: "WARN"})
package logging
