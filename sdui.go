// Package sdui implements the content document model for backend-driven
// user interfaces: a closed set of content node kinds with a recursive
// JSON wire format, the per-session form value store, and the
// multipart/form-data submission pipeline.
//
// Rendering the nodes, recording audio, capturing photos and showing
// maps are the caller's business; this package covers everything from
// raw fetched bytes to a decoded Page tree, and from entered form
// values to the bytes of a submission.
package sdui

import (
	"strings"

	"github.com/sduikit/sdui/internal/logging"
)

// SetLogLevel controls the diagnostic output on stderr.
// Accepted levels are "debug", "info", "warning" and "error"; anything
// else disables logging.
func SetLogLevel(level string) {
	var lvl logging.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = logging.LevelDebug
	case "info":
		lvl = logging.LevelInfo
	case "warning":
		lvl = logging.LevelWarning
	case "error":
		lvl = logging.LevelError
	default:
		lvl = logging.LevelNone
	}
	logging.SetLevel(lvl)
}
