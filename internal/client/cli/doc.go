// Package cli provides the interactive feed client.
//
// It wires configuration, the local SQLite store, the API client and the
// feed services, then runs a REPL that plays the presentation layer: the
// feed screen with its three tabs, pull-to-refresh, posting, commenting and
// the social commands. A gocron job revalidates the active tab in the
// background the way a mobile screen does when it regains focus.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartRevalidation and runREPL for details.
package cli
