// Package log provides the logger used throughout the emulator.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

type logger struct {
	w     io.Writer
	debug bool
	mu    sync.Mutex
}

// New returns a logger writing to stdout. Debug messages are
// only printed when debug is set.
func New(debug bool) Logger {
	return NewWithWriter(os.Stdout, debug)
}

// NewWithWriter returns a logger writing to w.
func NewWithWriter(w io.Writer, debug bool) Logger {
	return &logger{w: w, debug: debug}
}

func (l *logger) printf(prefix, format string, args ...interface{}) {
	l.mu.Lock()
	fmt.Fprintf(l.w, prefix+format+"\n", args...)
	l.mu.Unlock()
}

func (l *logger) Infof(format string, args ...interface{}) {
	l.printf("[INFO]\t", format, args...)
}

func (l *logger) Errorf(format string, args ...interface{}) {
	l.printf("[ERROR]\t", format, args...)
}

func (l *logger) Debugf(format string, args ...interface{}) {
	if l.debug {
		l.printf("[DEBUG]\t", format, args...)
	}
}

// Fatalf logs the message and exits with status 1.
func (l *logger) Fatalf(format string, args ...interface{}) {
	l.printf("[FATAL]\t", format, args...)
	os.Exit(1)
}
