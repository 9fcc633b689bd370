// Package identity manages the Ed25519 seeds envelope recipients use: it
// generates them, and it saves and loads them to disk either in the clear
// or behind a passphrase. It does not touch the wire format — that is
// internal/envelope's job — only the key material that feeds it.
package identity

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
)

// ErrInvalidFile is returned when a key file's hex fields don't decode to
// the expected sizes.
var ErrInvalidFile = errors.New("identity: invalid key file")

// Identity holds an Ed25519 keypair for use with envelope.Encrypt and
// envelope.Decrypt: Seed is the 32-byte value envelope.Decrypt takes,
// Public is what callers hand to envelope.Encrypt for this identity.
type Identity struct {
	Seed   []byte
	Public ed25519.PublicKey
}

// keyFile is the on-disk hex-JSON representation, mirroring the shape of a
// plain (non-passphrase-protected) key file.
type keyFile struct {
	SeedHex   string `json:"seed"`
	PublicHex string `json:"public"`
}

// Generate creates a fresh Identity from crypto/rand.
func Generate() (*Identity, error) {
	seed := make([]byte, ed25519.SeedSize)
	if _, err := io.ReadFull(rand.Reader, seed); err != nil {
		return nil, err
	}
	return fromSeed(seed), nil
}

func fromSeed(seed []byte) *Identity {
	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)
	return &Identity{Seed: seed, Public: pub}
}

func (id *Identity) toFile() keyFile {
	return keyFile{
		SeedHex:   hex.EncodeToString(id.Seed),
		PublicHex: hex.EncodeToString(id.Public),
	}
}

func fromFile(kf keyFile) (*Identity, error) {
	seed, err := hex.DecodeString(kf.SeedHex)
	if err != nil || len(seed) != ed25519.SeedSize {
		return nil, ErrInvalidFile
	}
	pub, err := hex.DecodeString(kf.PublicHex)
	if err != nil || len(pub) != ed25519.PublicKeySize {
		return nil, ErrInvalidFile
	}
	id := &Identity{Seed: seed, Public: pub}
	want := ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey)
	if !want.Equal(id.Public) {
		return nil, ErrInvalidFile
	}
	return id, nil
}

// Save writes id to path as indented JSON, in the clear.
func (id *Identity) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(id.toFile())
}

// Load reads an Identity previously written by Save.
func Load(path string) (*Identity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var kf keyFile
	if err := json.NewDecoder(f).Decode(&kf); err != nil {
		return nil, ErrInvalidFile
	}
	return fromFile(kf)
}

// PublicKeyHex returns the hex encoding of id's Ed25519 public key, the
// form used on the command line and in recipient lists.
func (id *Identity) PublicKeyHex() string {
	return hex.EncodeToString(id.Public)
}

// PublicKeyFromHex parses a hex-encoded Ed25519 public key.
func PublicKeyFromHex(s string) (ed25519.PublicKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(b) != ed25519.PublicKeySize {
		return nil, ErrInvalidFile
	}
	return ed25519.PublicKey(b), nil
}
