// Package credentials is the bundled downstream collaborator for authflow: a
// Redis-backed account store that consumes verified signup payloads, checks
// login credentials, and manages password-reset tokens.
//
// # Design
//
// Passwords are stored as Argon2id PHC hashes (package password); plaintext is
// never persisted. Successful credential checks are answered with a short-lived
// HS256 access token. Reset tokens are single-use opaque UUIDs with a TTL.
//
// # Architecture boundaries
//
// This package sits on the far side of the authflow boundary: the validation
// core only ever sees it through the CredentialChecker, RegistrationHandler,
// and ResetSender interfaces.
package credentials
