// Package cli provides the interactive PageKeeper command-line client.
//
// It wires configuration, the device-local store, the gateway client, the
// page resolver and an interactive REPL that keeps working while the server
// is unreachable. Typical flow: prompt for credentials, start a background
// connectivity watcher, and execute user commands.
//
// Key features:
//   - Register / Login / Logout (online with offline fallback)
//   - Show and edit the profile card, upload an avatar
//   - Publish the public page and look up any page by path
//   - Serve public pages over HTTP
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
