package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Logger writes leveled, prefixed lines. The zero value logs warnings and
// errors to stderr.
type Logger struct {
	Verbose bool
	Debug   bool

	// Out receives info and debug lines; nil means os.Stdout.
	Out io.Writer
	// Err receives warnings and errors; nil means os.Stderr.
	Err io.Writer
}

// New returns a Logger with the given switches. Debug implies Verbose.
func New(verbose, debug bool) *Logger {
	return &Logger{Verbose: verbose || debug, Debug: debug}
}

// Discard returns a Logger that prints nothing.
func Discard() *Logger {
	return &Logger{Out: io.Discard, Err: io.Discard}
}

// Infof prints to Out when Verbose is set.
func (l *Logger) Infof(msg string, args ...any) {
	if l != nil && l.Verbose {
		fmt.Fprintf(l.out(), color.GreenString("[info] ")+msg+"\n", args...)
	}
}

// Debugf prints to Out when Debug is set.
func (l *Logger) Debugf(msg string, args ...any) {
	if l != nil && l.Debug {
		fmt.Fprintf(l.out(), color.CyanString("[debug] ")+msg+"\n", args...)
	}
}

// Warnf always prints to Err.
func (l *Logger) Warnf(msg string, args ...any) {
	fmt.Fprintf(l.err(), color.YellowString("[warn] ")+msg+"\n", args...)
}

// Errorf always prints to Err.
func (l *Logger) Errorf(msg string, args ...any) {
	fmt.Fprintf(l.err(), color.RedString("[error] ")+msg+"\n", args...)
}

func (l *Logger) out() io.Writer {
	if l == nil || l.Out == nil {
		return os.Stdout
	}
	return l.Out
}

func (l *Logger) err() io.Writer {
	if l == nil || l.Err == nil {
		return os.Stderr
	}
	return l.Err
}
