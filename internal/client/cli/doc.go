// Package cli provides the interactive terminal client for the
// file-sharing service.
//
// It wires configuration, the credential store, the session manager, and
// the catalog store into a REPL. Typical flow: restore or prompt for a
// session, start the revocation watcher, and execute user commands. Every
// command counts as activity for the inactivity watchdog; the session
// ending for any reason prints a reason-specific notice and drops the user
// back to the unauthenticated prompt.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
