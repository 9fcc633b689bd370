// Package envelope implements multi-recipient hybrid encryption: a single
// plaintext sealed once under AES-256-GCM with a random payload secret, and
// that secret wrapped once per recipient under AES-256-CTR using an X25519
// shared point derived from a fresh ephemeral keypair and the recipient's
// Ed25519 identity key (converted to Curve25519 via xed25519).
//
// The two operations here are Encrypt and Decrypt. Neither does I/O,
// logging, or key management — those live in cmd/envelope and
// internal/identity. Every secret byte slice this package touches (private
// scalars, shared points, derived keys, the payload secret) is wiped with
// zero.Bytes before the call returns, on every exit path.
package envelope

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/curve25519"

	"github.com/duskcell/envelope/internal/kdf"
	"github.com/duskcell/envelope/internal/xed25519"
	"github.com/duskcell/envelope/internal/zero"
)

// genEphemeral generates a fresh X25519 keypair for one Encrypt call. The
// private scalar is clamped explicitly even though curve25519.X25519 clamps
// its own copy internally, so that priv itself is always a valid clamped
// scalar for the lifetime callers can observe it.
func genEphemeral() (priv, pub [curvePubSize]byte, err error) {
	if _, err = io.ReadFull(rand.Reader, priv[:]); err != nil {
		return priv, pub, err
	}
	priv[0] &= 248
	priv[31] &= 127
	priv[31] |= 64

	pubSlice, err := curve25519.X25519(priv[:], curve25519.Basepoint)
	if err != nil {
		return priv, pub, err
	}
	copy(pub[:], pubSlice)
	return priv, pub, nil
}

func curvePublicFromPrivate(priv [curvePubSize]byte) ([curvePubSize]byte, error) {
	var pub [curvePubSize]byte
	pubSlice, err := curve25519.X25519(priv[:], curve25519.Basepoint)
	if err != nil {
		return pub, err
	}
	copy(pub[:], pubSlice)
	return pub, nil
}

// Encrypt seals plaintext so that any one of the holders of recipients'
// matching Ed25519 seeds can recover it with Decrypt. recipients must be
// non-empty; duplicate entries are permitted and each gets its own
// independently wrapped copy of the payload secret.
func Encrypt(recipients []ed25519.PublicKey, plaintext []byte) ([]byte, error) {
	if len(recipients) == 0 {
		return nil, fmt.Errorf("envelope: encrypt: %w", ErrInvalidParameter)
	}

	ephPriv, ephPub, err := genEphemeral()
	if err != nil {
		return nil, fmt.Errorf("envelope: encrypt: ephemeral keypair: %w", ErrRNGFailure)
	}
	defer zero.Bytes(ephPriv[:])

	var secret [32]byte
	if _, err := io.ReadFull(rand.Reader, secret[:]); err != nil {
		return nil, fmt.Errorf("envelope: encrypt: payload secret: %w", ErrRNGFailure)
	}
	defer zero.Bytes(secret[:])

	gcmKey, gcmNonce := kdf.GCMKeyNonce(secret)
	defer zero.Bytes(gcmKey[:])
	defer zero.Bytes(gcmNonce[:])

	gcmBody, err := sealGCM(gcmKey, gcmNonce, plaintext)
	if err != nil {
		return nil, fmt.Errorf("envelope: encrypt: seal: %w", ErrCryptoFailure)
	}

	records := make([]record, len(recipients))
	for i, rpub := range recipients {
		rCurvePub, err := xed25519.PublicToCurve(rpub)
		if err != nil {
			return nil, fmt.Errorf("envelope: encrypt: recipient %d: %w", i, ErrInvalidPublicKey)
		}

		q, err := curve25519.X25519(ephPriv[:], rCurvePub[:])
		if err != nil {
			return nil, fmt.Errorf("envelope: encrypt: recipient %d: dh: %w", i, ErrCryptoFailure)
		}
		var qArr [32]byte
		copy(qArr[:], q)
		zero.Bytes(q)

		ctrKey, ctrIV := kdf.CTRKeyIV(qArr, rCurvePub, ephPub)
		zero.Bytes(qArr[:])

		encSecret, err := ctrCrypt(ctrKey, ctrIV, secret[:])
		zero.Bytes(ctrKey[:])
		zero.Bytes(ctrIV[:])
		if err != nil {
			return nil, fmt.Errorf("envelope: encrypt: recipient %d: wrap secret: %w", i, ErrCryptoFailure)
		}

		records[i].fingerprint = fingerprint(rCurvePub)
		copy(records[i].encSecret[:], encSecret)
	}

	return buildBlob(ephPub, records, gcmBody), nil
}

// Decrypt recovers plaintext from blob using the Ed25519 seed of one of its
// recipients. It performs the same sequence of work — a lookup, a CTR
// unwrap, a GCM open — whether or not seed's fingerprint appears in the
// recipient table, so that a non-recipient's rejection takes the same shape
// as a corrupted-blob rejection: on a miss it trial-decrypts the last
// record rather than returning early.
func Decrypt(seed []byte, blob []byte) ([]byte, error) {
	ephPub, records, gcmBody, err := parseBlob(blob)
	if err != nil {
		return nil, fmt.Errorf("envelope: decrypt: %w", err)
	}

	myCurvePriv, err := xed25519.PrivateToCurve(seed)
	if err != nil {
		return nil, fmt.Errorf("envelope: decrypt: %w", ErrInvalidParameter)
	}
	defer zero.Bytes(myCurvePriv[:])

	myCurvePub, err := curvePublicFromPrivate(myCurvePriv)
	if err != nil {
		return nil, fmt.Errorf("envelope: decrypt: %w", ErrCryptoFailure)
	}
	myFP := fingerprint(myCurvePub)

	candidate := len(records) - 1
	for i, rec := range records {
		if rec.fingerprint == myFP {
			candidate = i
			break
		}
	}

	q, err := curve25519.X25519(myCurvePriv[:], ephPub[:])
	if err != nil {
		return nil, fmt.Errorf("envelope: decrypt: %w", ErrDecryptFailure)
	}
	var qArr [32]byte
	copy(qArr[:], q)
	zero.Bytes(q)
	defer zero.Bytes(qArr[:])

	ctrKey, ctrIV := kdf.CTRKeyIV(qArr, myCurvePub, ephPub)
	defer zero.Bytes(ctrKey[:])
	defer zero.Bytes(ctrIV[:])

	secretBytes, err := ctrCrypt(ctrKey, ctrIV, records[candidate].encSecret[:])
	if err != nil {
		return nil, fmt.Errorf("envelope: decrypt: %w", ErrDecryptFailure)
	}
	var secret [32]byte
	copy(secret[:], secretBytes)
	zero.Bytes(secretBytes)
	defer zero.Bytes(secret[:])

	gcmKey, gcmNonce := kdf.GCMKeyNonce(secret)
	defer zero.Bytes(gcmKey[:])
	defer zero.Bytes(gcmNonce[:])

	plaintext, err := openGCM(gcmKey, gcmNonce, gcmBody)
	if err != nil {
		return nil, fmt.Errorf("envelope: decrypt: %w", ErrDecryptFailure)
	}
	return plaintext, nil
}
