// Package logging provides structured logging for the conversion pipeline.
//
// The logger wraps log/slog with level and format parsing. Pipeline
// components log warnings as they occur; the accumulated warning report is
// printed separately at the end of a run.
//
// Example:
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "console",
//	})
//	if err != nil {
//	    return err
//	}
//	logger.Info("collection complete", "files", n)
package logging
