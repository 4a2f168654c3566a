// Package logging provides the small leveled logger shared by the daemon,
// the CLI and the services.
//
// Info lines are printed only in verbose mode and debug lines only in debug
// mode. Warnings and errors are always printed. Prefixes are colored with
// fatih/color, which honours NO_COLOR and non-TTY output.
//
// Nothing secret is ever passed to a Logger: callers log ids, kinds, sizes
// and fingerprints, never keys or plaintext.
package logging
