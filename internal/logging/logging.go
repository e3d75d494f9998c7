// Package logging routes the standard logger to a file in debug mode and
// discards it otherwise, so the window never competes with log output.
package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

const (
	logDir      = "logs"
	logFileName = "keysynth.log"
)

// Setup points the standard logger at logs/keysynth.log when debug is set
// and returns the open file, which the caller closes. Otherwise log output
// is discarded and Setup returns nil.
func Setup(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	f, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Println("keysynth: logging started")
	return f
}
