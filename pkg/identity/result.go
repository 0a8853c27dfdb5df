package identity

// Status classifies what an inbound identity cookie proved about the request.
type Status uint8

const (
	// Anonymous means no usable identity: cookie absent, malformed, or its
	// payload is not a number. It is an expected state, not an error.
	Anonymous Status = iota
	// Authenticated means the cookie carried a correctly signed identity.
	Authenticated
	// Tampered means the cookie was well formed but its signature did not
	// match. Callers send the client to the login page.
	Tampered
)

func (s Status) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Tampered:
		return "tampered"
	default:
		return "anonymous"
	}
}

// Result is the outcome of decoding an identity cookie.
// ID is non-zero only when Status is Authenticated.
type Result struct {
	ID     int64
	Status Status
}

// IsAuthenticated reports whether the result carries a trusted identity.
func (r Result) IsAuthenticated() bool {
	return r.Status == Authenticated && r.ID > 0
}

// UserID returns the identity or nil, matching the optional user id that
// page views expose.
func (r Result) UserID() *int64 {
	if !r.IsAuthenticated() {
		return nil
	}
	id := r.ID
	return &id
}

func anonymous() Result { return Result{Status: Anonymous} }
func tampered() Result  { return Result{Status: Tampered} }

func authenticated(id int64) Result {
	return Result{ID: id, Status: Authenticated}
}
