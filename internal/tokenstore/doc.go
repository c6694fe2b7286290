// Package tokenstore persists the LinkedIn OAuth token record.
//
// A single record exists per process, identified implicitly by where it is
// stored. Two backends share the same JSON document format:
//   - File: Local filesystem storage with atomic writes and secure permissions
//   - Keyring: OS-native credential storage (macOS Keychain, Windows Credential Manager, etc.)
//
// Validity is a purely local check: a token is valid iff now < expiresAt.
package tokenstore
