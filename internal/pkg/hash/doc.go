// Package hash hashes and verifies secrets behind a small interface.
//
// Password hashers (bcrypt, argon2id) are salted and slow on purpose; the
// HMAC hasher is deterministic and fast, meant for token fingerprints rather
// than passwords.
package hash
