// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem under ~/.ideapad.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - IdentityStore: the signed-in user, kept in the config file
//   - Watcher: reloads the config file when it changes on disk
package file
