// Package password hashes and verifies user passwords.
//
// Hasher is the whole contract: Hash salts every call with fresh randomness,
// so hashing the same password twice yields two different strings that both
// verify, and Verify reports a plain bool. A malformed or foreign hash simply
// fails verification.
//
// Two implementations are provided. Bcrypt (golang.org/x/crypto/bcrypt) is the
// default. Argon2id (golang.org/x/crypto/argon2) stores its parameters in a
// PHC string ($argon2id$v=19$m=...,t=...,p=...$salt$hash) and can report
// whether a stored hash was produced with weaker parameters via NeedsRehash.
//
//	h, err := password.New(password.Config{Algorithm: password.AlgorithmBcrypt})
//	hash, err := h.Hash("s3cret")
//	ok := h.Verify(hash, "s3cret")
package password
