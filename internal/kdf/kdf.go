// Package kdf implements the two SHAKE256-based derivations that turn a
// Diffie-Hellman shared point (or a payload secret) into symmetric-crypto
// parameters. Output length and byte ordering are part of the wire format:
// callers on both ends of an envelope must agree on them exactly, so this
// package changes only if the wire format itself changes.
package kdf

import (
	"golang.org/x/crypto/sha3"
)

const (
	ctrKeySize = 32
	ctrIVSize  = 16
	gcmKeySize = 32
	gcmNonceSize = 12
)

// CTRKeyIV derives an AES-256-CTR key and IV from a Diffie-Hellman shared
// point q and the two Curve25519 public keys that produced it. The input to
// SHAKE256 is q || a || b, 96 bytes; the first 32 bytes of the 48-byte
// output are the key, the remaining 16 the IV.
//
// Argument order matters and is fixed by the wire format: a is the
// recipient's Curve25519 public key, b is the sender's ephemeral public
// key. Both encoder and decoder compute the same q for a given recipient,
// so both must feed (q, recipientPub, ephemeralPub) in that order.
func CTRKeyIV(q, a, b [32]byte) (key [32]byte, iv [16]byte) {
	var in [96]byte
	copy(in[0:32], q[:])
	copy(in[32:64], a[:])
	copy(in[64:96], b[:])

	var out [ctrKeySize + ctrIVSize]byte
	sha3.ShakeSum256(out[:], in[:])

	copy(key[:], out[:ctrKeySize])
	copy(iv[:], out[ctrKeySize:])
	return key, iv
}

// GCMKeyNonce derives an AES-256-GCM key and nonce from a 32-byte payload
// secret. The first 32 bytes of the 44-byte SHAKE256 output are the key,
// the remaining 12 the nonce. The nonce is never transmitted: it is safe to
// derive because the payload secret is fresh and secret per envelope.
func GCMKeyNonce(secret [32]byte) (key [32]byte, nonce [12]byte) {
	var out [gcmKeySize + gcmNonceSize]byte
	sha3.ShakeSum256(out[:], secret[:])

	copy(key[:], out[:gcmKeySize])
	copy(nonce[:], out[gcmKeySize:])
	return key, nonce
}
