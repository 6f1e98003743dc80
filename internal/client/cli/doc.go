// Package cli provides the fisikaap command-line client.
//
// It wires configuration, the local SQLite store, the API client, the
// session manager and the catalog service, and exposes them two ways: as
// cobra subcommands for one-shot use, and as an interactive REPL when no
// subcommand is given. Both share one command table (see App.commands).
//
// Authentication failures are reported with three distinct messages:
// rejected credentials, unreachable server and expired session.
package cli
