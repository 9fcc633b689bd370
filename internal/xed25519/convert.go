// Package xed25519 converts Ed25519 identity keys to the Curve25519 keys
// used for Diffie-Hellman.
//
// Both directions are pure functions: no randomness, no I/O. The public-key
// conversion is the standard Edwards-to-Montgomery birational map; the
// private-key conversion is the RFC 8032 key expansion (SHA-512 of the seed)
// followed by RFC 7748 clamping.
package xed25519

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha512"
	"errors"

	"filippo.io/edwards25519"
)

// ErrInvalidPublicKey is returned when an Ed25519 public key is not a
// canonical encoding of a point on the curve.
var ErrInvalidPublicKey = errors.New("xed25519: invalid ed25519 public key")

// ErrInvalidSeed is returned when a private key seed is not exactly
// ed25519.SeedSize bytes.
var ErrInvalidSeed = errors.New("xed25519: invalid ed25519 seed")

// PublicToCurve converts an Ed25519 public key to its corresponding
// Curve25519 (Montgomery u-coordinate) public key.
func PublicToCurve(pub ed25519.PublicKey) ([32]byte, error) {
	var out [32]byte
	if len(pub) != ed25519.PublicKeySize {
		return out, ErrInvalidPublicKey
	}
	p, err := new(edwards25519.Point).SetBytes(pub)
	if err != nil {
		return out, ErrInvalidPublicKey
	}
	// SetBytes also accepts non-canonical encodings of valid points; only
	// an input that re-encodes to itself is canonical.
	if !bytes.Equal(p.Bytes(), pub) {
		return out, ErrInvalidPublicKey
	}
	copy(out[:], p.BytesMontgomery())
	return out, nil
}

// PrivateToCurve converts an Ed25519 private key seed to the Curve25519
// scalar used for X25519 Diffie-Hellman.
func PrivateToCurve(seed []byte) ([32]byte, error) {
	var out [32]byte
	if len(seed) != ed25519.SeedSize {
		return out, ErrInvalidSeed
	}
	h := sha512.Sum512(seed)
	h[0] &= 248
	h[31] &= 127
	h[31] |= 64
	copy(out[:], h[:32])
	return out, nil
}
