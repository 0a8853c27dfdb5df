package signature

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

const (
	// DefaultSize is the digest size in bytes used when no size is configured.
	DefaultSize = 16
	// MaxKeySize is the longest key keyed BLAKE2b accepts.
	MaxKeySize = blake2b.Size
)

// Signer produces and checks keyed BLAKE2b signatures over strings.
// It is immutable after construction and safe for concurrent use.
type Signer struct {
	key  []byte
	size int
}

// Option configures a Signer.
type Option func(*Signer)

// WithSize sets the digest size in bytes (1..64).
func WithSize(size int) Option {
	return func(s *Signer) {
		s.size = size
	}
}

// New creates a Signer for the given secret key.
func New(key []byte, opts ...Option) (*Signer, error) {
	if len(key) == 0 {
		return nil, fmt.Errorf("%w: key is empty", ErrInvalidKey)
	}
	if len(key) > MaxKeySize {
		return nil, fmt.Errorf("%w: key has %d bytes, max is %d", ErrInvalidKey, len(key), MaxKeySize)
	}

	s := &Signer{
		key:  append([]byte(nil), key...),
		size: DefaultSize,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.size < 1 || s.size > blake2b.Size {
		return nil, fmt.Errorf("%w: got %d, want 1..%d", ErrInvalidSize, s.size, blake2b.Size)
	}

	return s, nil
}

// Size returns the digest size in bytes. Signatures are twice as long in hex.
func (s *Signer) Size() int {
	return s.size
}

// Sign returns the lowercase hex encoded signature of message.
func (s *Signer) Sign(message string) string {
	return hex.EncodeToString(s.digest(message))
}

// Verify reports whether signature is a valid signature of message.
// Any malformed input yields false.
func (s *Signer) Verify(message, signature string) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	if len(signature) != hex.EncodedLen(s.size) {
		return false
	}

	// Only the canonical lowercase form is accepted.
	return subtle.ConstantTimeCompare([]byte(signature), []byte(s.Sign(message))) == 1
}

func (s *Signer) digest(message string) []byte {
	// blake2b.New only fails on size/key bounds, which New already checked.
	h, err := blake2b.New(s.size, s.key)
	if err != nil {
		panic(err)
	}
	h.Write([]byte(message))
	return h.Sum(nil)
}
