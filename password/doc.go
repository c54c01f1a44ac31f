// Package password implements password hashing and verification with Argon2id
// defaults for the credentials collaborator.
//
// # Output format
//
// Hashes are encoded in PHC string format:
//
//	$argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<hash>
//
// [Hasher.NeedsRehash] reports when a stored hash was produced with weaker
// parameters so callers can re-hash on the next successful verification.
//
// # What this package must NOT do
//
//   - Store or retrieve passwords — callers supply plaintext and receive hashes.
//   - Enforce password policy; the rules package owns that.
//   - Import any other authflow package.
package password
