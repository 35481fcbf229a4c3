package logging

import (
	"io"
	"log"
	"os"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelNone
)

var (
	debug   *log.Logger
	info    *log.Logger
	warning *log.Logger
	erro    *log.Logger
)

func init() {
	flags := log.Ldate | log.Ltime | log.LUTC
	debug = log.New(io.Discard, "D ", flags)
	info = log.New(io.Discard, "I ", flags)
	warning = log.New(io.Discard, "W ", flags)
	erro = log.New(io.Discard, "E ", flags)

	SetLevel(LevelWarning)
}

// SetLevel directs output for the given level and above to stderr
// and discards everything below it.
func SetLevel(l Level) {
	out := func(min Level) io.Writer {
		if l <= min && l != LevelNone {
			return os.Stderr
		}
		return io.Discard
	}
	debug.SetOutput(out(LevelDebug))
	info.SetOutput(out(LevelInfo))
	warning.SetOutput(out(LevelWarning))
	erro.SetOutput(out(LevelError))
}

func Debug(msg string, v ...interface{}) {
	debug.Printf(msg, v...)
}

func Info(msg string, v ...interface{}) {
	info.Printf(msg, v...)
}

func Warning(msg string, v ...interface{}) {
	warning.Printf(msg, v...)
}

func Error(msg string, v ...interface{}) {
	erro.Printf(msg, v...)
}
