// Package commands defines the lexvault CLI.
//
// Commands
//
//   - upload    Seal a file and store it as a new material
//   - list      List stored materials, newest first
//   - view      Verify, decrypt and print or save a material
//   - replace   Replace a material's content with a new bundle
//   - update    Edit a material's name or description
//   - delete    Delete a material
//   - keys      Print the daemon's public keys and fingerprints
//   - selftest  Run the encryption scheme in-process, without a daemon
//
// # Implementation
//
// The root command loads configuration (defaults, TOML, .env and LEXVAULT_*
// variables, then flags) and builds one API client before any subcommand
// runs. Every request is bounded by the configured operation timeout.
package commands
