package envelope

import (
	"crypto/aes"
	"crypto/cipher"
)

// sealGCM seals plaintext under AES-256-GCM, appending the 16-byte tag.
func sealGCM(key [32]byte, nonce [12]byte, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return aead.Seal(nil, nonce[:], plaintext, nil), nil
}

// openGCM verifies and decrypts a sealGCM body. It fails closed: any tag
// mismatch returns an error and no partial plaintext.
func openGCM(key [32]byte, nonce [12]byte, body []byte) ([]byte, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return aead.Open(nil, nonce[:], body, nil)
}

// ctrCrypt runs AES-256-CTR over in. CTR is an XOR stream, so the same call
// wraps and unwraps a payload secret.
func ctrCrypt(key [32]byte, iv [16]byte, in []byte) ([]byte, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(in))
	cipher.NewCTR(block, iv[:]).XORKeyStream(out, in)
	return out, nil
}
