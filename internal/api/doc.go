// Package api exposes the material service over HTTP and provides the typed
// client the CLI uses.
//
// The server is built on gin. It only ever publishes public keys; private
// keys stay inside the process that generated them.
//
// Errors are JSON objects {"error": message, "kind": kind} where kind is one
// of the domain.ErrorKind values. The client turns them back into errors
// that match the domain sentinels with errors.Is.
//
// When concealment is enabled the server reports signature and decryption
// failures under the single kind "open_failed". The server log always records
// the precise kind.
package api
