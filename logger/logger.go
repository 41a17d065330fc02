package logger

import (
	"io"
	"log"
	"os"
)

var (
	// Debug is a logger for debug level messages
	Debug = log.New(os.Stdout, "[Debug] Linmod: ", log.Lshortfile)
	// Info is a logger for infomation level messages
	Info = log.New(os.Stdout, "[Info] Linmod: ", 0)
	// Warn is a logger for warning level messages
	Warn = log.New(os.Stderr, "[Warning] Linmod: ", 0)
	// Err is a logger for error level messages
	Err     = log.New(os.Stderr, "[Error] Linmod: ", 0)
	loggers = []*log.Logger{Debug, Info, Warn, Err}
)

// SetLogsFlags applies the flags to every logger.
func SetLogsFlags(flags int) {
	for _, logger := range loggers {
		logger.SetFlags(flags)
	}
}

// SetLogsOutput redirects every logger to w.
func SetLogsOutput(w io.Writer) {
	for _, logger := range loggers {
		logger.SetOutput(w)
	}
}

// SetLogsPrefix sets the message prefix of every logger.
func SetLogsPrefix(prefix string) {
	for _, logger := range loggers {
		logger.SetPrefix(prefix)
	}
}
