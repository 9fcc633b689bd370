package envelope

import "golang.org/x/crypto/sha3"

// fingerprint identifies a recipient's Curve25519 public key in a
// container's recipient table without revealing the key itself: the first 7
// bytes of SHAKE256(curvePub, 16).
func fingerprint(curvePub [curvePubSize]byte) [fingerprintSize]byte {
	var full [16]byte
	sha3.ShakeSum256(full[:], curvePub[:])

	var out [fingerprintSize]byte
	copy(out[:], full[:fingerprintSize])
	return out
}
