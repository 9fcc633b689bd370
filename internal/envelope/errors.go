package envelope

// ErrKind classifies why Encrypt or Decrypt failed. The taxonomy and its
// string form are a stable contract: callers compare against the sentinel
// values below (with errors.Is), not against error text.
type ErrKind int

const (
	Success ErrKind = iota
	InvalidParameter
	InvalidPublicKey
	InvalidBlob
	TruncatedBlob
	RNGFailure
	CryptoFailure
	DecryptFailure
)

var kindMessage = [...]string{
	Success:          "success",
	InvalidParameter: "invalid parameter",
	InvalidPublicKey: "invalid public key",
	InvalidBlob:      "invalid blob",
	TruncatedBlob:    "truncated blob",
	RNGFailure:       "rng failure",
	CryptoFailure:    "crypto failure",
	DecryptFailure:   "decrypt failure",
}

func (k ErrKind) String() string {
	if int(k) < 0 || int(k) >= len(kindMessage) {
		return "unknown error"
	}
	return kindMessage[k]
}

// kindError is a stable sentinel error carrying an ErrKind. Call sites wrap
// it with fmt.Errorf("...: %w", sentinel) to add context; errors.Is against
// the package-level Err* vars still works because wrapping preserves the
// underlying value.
type kindError struct{ kind ErrKind }

func (e *kindError) Error() string { return e.kind.String() }

// Kind returns the classified error kind.
func (e *kindError) Kind() ErrKind { return e.kind }

// Sentinel errors, one per non-success ErrKind. Never interpolate secret or
// caller-controlled data into these — the string form is fixed.
var (
	ErrInvalidParameter = &kindError{InvalidParameter}
	ErrInvalidPublicKey = &kindError{InvalidPublicKey}
	ErrInvalidBlob      = &kindError{InvalidBlob}
	ErrTruncatedBlob    = &kindError{TruncatedBlob}
	ErrRNGFailure       = &kindError{RNGFailure}
	ErrCryptoFailure    = &kindError{CryptoFailure}
	ErrDecryptFailure   = &kindError{DecryptFailure}
)
