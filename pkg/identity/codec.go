package identity

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrymomot/pkgindex/pkg/cookie"
)

const separator = ":"

// Signer computes and checks signatures over identity strings.
// *signature.Signer satisfies it.
type Signer interface {
	Sign(message string) string
	Verify(message, signature string) bool
}

// Codec turns user identities into signed cookie values and back.
// It is immutable and safe for concurrent use.
type Codec struct {
	signer  Signer
	cookies *cookie.Manager
	name    string
}

// NewCodec creates a Codec that writes cookies named name through cookies.
func NewCodec(signer Signer, cookies *cookie.Manager, name string) (*Codec, error) {
	if signer == nil {
		return nil, fmt.Errorf("%w: signer is nil", ErrInvalidCodec)
	}
	if cookies == nil {
		return nil, fmt.Errorf("%w: cookie manager is nil", ErrInvalidCodec)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: cookie name is empty", ErrInvalidCodec)
	}
	return &Codec{signer: signer, cookies: cookies, name: name}, nil
}

// Name returns the cookie name.
func (c *Codec) Name() string {
	return c.name
}

// Value returns base64url(id) + ":" + signature(id).
func (c *Codec) Value(id int64) (string, error) {
	if id <= 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidIdentity, id)
	}
	s := strconv.FormatInt(id, 10)
	return base64.URLEncoding.EncodeToString([]byte(s)) + separator + c.signer.Sign(s), nil
}

// Encode builds the outbound cookie carrying id, with attributes taken from
// the cookie manager configuration.
func (c *Codec) Encode(id int64) (*http.Cookie, error) {
	value, err := c.Value(id)
	if err != nil {
		return nil, err
	}
	return c.cookies.Cookie(c.name, value), nil
}

// Decode verifies a raw cookie value.
//
// A value without exactly one separator, or whose first half is not valid
// base64, is Anonymous. A well formed value with a bad signature is Tampered.
// A correctly signed payload that is not a positive integer is Anonymous.
func (c *Codec) Decode(raw string) Result {
	parts := strings.Split(raw, separator)
	if len(parts) != 2 {
		return anonymous()
	}

	payload, ok := decodePayload(parts[0])
	if !ok {
		return anonymous()
	}

	if !c.signer.Verify(payload, parts[1]) {
		return tampered()
	}

	id, err := strconv.ParseInt(payload, 10, 64)
	if err != nil || id <= 0 {
		return anonymous()
	}

	return authenticated(id)
}

// FromRequest decodes the identity cookie of r. A missing cookie is Anonymous.
func (c *Codec) FromRequest(r *http.Request) Result {
	raw, err := c.cookies.Get(r, c.name)
	if err != nil {
		return anonymous()
	}
	return c.Decode(raw)
}

// SetCookie writes the identity cookie for id.
func (c *Codec) SetCookie(w http.ResponseWriter, id int64) error {
	value, err := c.Value(id)
	if err != nil {
		return err
	}
	if err := c.cookies.Set(w, c.name, value); err != nil {
		return errors.Join(ErrSetCookie, err)
	}
	return nil
}

// ClearCookie expires the identity cookie on the client.
func (c *Codec) ClearCookie(w http.ResponseWriter) {
	c.cookies.Delete(w, c.name)
}

// decodePayload accepts padded and unpadded base64url. Standard base64 is
// accepted as well; for decimal payloads both alphabets produce the same text.
func decodePayload(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	for _, enc := range []*base64.Encoding{
		base64.URLEncoding,
		base64.RawURLEncoding,
		base64.StdEncoding,
	} {
		if b, err := enc.DecodeString(s); err == nil {
			return string(b), true
		}
	}
	return "", false
}
