// Package tlog holds the project's single zerolog.Logger instance,
// grounded on crytic-medusa/logging's console-writer setup, scaled down
// from that project's multi-sink (file+console) logger to the single
// console sink this tool needs.
package tlog

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is the package-level logger every internal package writes
// through. SetVerbose adjusts its level; it starts at Info.
var Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
	Level(zerolog.InfoLevel).
	With().Timestamp().Logger()

// SetVerbose switches the logger to Debug level when v is true, back to
// Info otherwise. Called from cmd/atcgen's --verbose flag.
func SetVerbose(v bool) {
	if v {
		Logger = Logger.Level(zerolog.DebugLevel)
	} else {
		Logger = Logger.Level(zerolog.InfoLevel)
	}
}

// Verbose reports whether the logger is currently at Debug level or
// below, letting callers gate expensive debug-only work (e.g. dumping
// SSA blocks) on the same --verbose flag that controls log output.
func Verbose() bool {
	return Logger.GetLevel() <= zerolog.DebugLevel
}
