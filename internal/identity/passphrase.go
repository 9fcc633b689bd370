package identity

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/duskcell/envelope/internal/zero"
)

const (
	sealedVersion = 1
	saltSize      = 16
	sealedPrefix  = "ENVID1\n"
)

// ErrWrongPassphrase is returned when the AEAD tag doesn't verify, meaning
// either the passphrase is wrong or the file was tampered with.
var ErrWrongPassphrase = errors.New("identity: wrong passphrase or corrupted file")

// sealedFile is the on-disk envelope format for a passphrase-protected
// identity: an Argon2id-derived key seals the JSON key file under
// XChaCha20-Poly1305.
type sealedFile struct {
	Version uint32 `json:"version"`
	Salt    []byte `json:"salt"`
	Nonce   []byte `json:"nonce"`
	Sealed  []byte `json:"sealed"`
}

func deriveKey(passphrase string, salt []byte) []byte {
	return argon2.IDKey([]byte(passphrase), salt, 2, 64*1024, 1, chacha20poly1305.KeySize)
}

// SaveEncrypted writes id to path, sealed under a key derived from
// passphrase with Argon2id.
func (id *Identity) SaveEncrypted(path, passphrase string) error {
	plaintext, err := json.Marshal(id.toFile())
	if err != nil {
		return err
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return err
	}
	key := deriveKey(passphrase, salt)
	defer zero.Bytes(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return err
	}
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return err
	}
	sealed := aead.Seal(nil, nonce, plaintext, nil)

	raw, err := json.Marshal(sealedFile{
		Version: sealedVersion,
		Salt:    salt,
		Nonce:   nonce,
		Sealed:  sealed,
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, append([]byte(sealedPrefix), raw...), 0o600)
}

// LoadEncrypted reads and unseals an identity file written by
// SaveEncrypted.
func LoadEncrypted(path, passphrase string) (*Identity, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(string(raw), sealedPrefix) {
		return nil, ErrInvalidFile
	}
	raw = raw[len(sealedPrefix):]

	var sf sealedFile
	if err := json.Unmarshal(raw, &sf); err != nil {
		return nil, ErrInvalidFile
	}
	if sf.Version != sealedVersion {
		return nil, ErrInvalidFile
	}

	key := deriveKey(passphrase, sf.Salt)
	defer zero.Bytes(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	plaintext, err := aead.Open(nil, sf.Nonce, sf.Sealed, nil)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	defer zero.Bytes(plaintext)

	var kf keyFile
	if err := json.Unmarshal(plaintext, &kf); err != nil {
		return nil, ErrInvalidFile
	}
	return fromFile(kf)
}

// IsEncrypted reports whether the file at path is a passphrase-protected
// identity file, without needing the passphrase.
func IsEncrypted(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	buf := make([]byte, len(sealedPrefix))
	n, _ := f.Read(buf)
	return n == len(sealedPrefix) && string(buf) == sealedPrefix, nil
}
