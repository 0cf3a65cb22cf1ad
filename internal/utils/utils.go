// Package utils holds small helpers shared by the provider packages.
package utils

import (
	"fmt"
	"io"
	"log/slog"
)

// CloseWithLog closes c and logs a warning on failure instead of returning
// the error, so a close failure never overrides the caller's primary error.
func CloseWithLog(c io.Closer, what string) {
	if err := c.Close(); err != nil {
		slog.Warn("failed to close", "what", what, "error", err.Error())
	}
}

// Truncate shortens s to at most maxLen characters, appending a suffix that
// records the original total length so callers know data was omitted.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return fmt.Sprintf("%s... (truncated, total: %d chars)", s[:maxLen], len(s))
}
