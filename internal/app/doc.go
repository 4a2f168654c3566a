// Package app wires application dependencies for the daemon and the CLI.
//
// Config is assembled in layers: built-in defaults, then an optional TOML
// file, then LEXVAULT_* environment variables (which a .env file may supply),
// and finally command-line flags applied by the commands themselves.
//
// NewWire builds the store, key store and material service from a Config and
// exposes them on the Wire struct. NewClient builds the HTTP client the CLI
// uses to reach a running daemon.
package app
