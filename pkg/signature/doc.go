// Package signature signs short strings with a keyed BLAKE2b hash.
//
// A Signer is built once at process start from a secret key and shared by
// reference. Sign returns a hex digest; Verify recomputes it and compares in
// constant time. Verify never reports success on malformed input: wrong
// length, non-hex characters or any internal failure all yield false.
//
//	s, err := signature.New([]byte(os.Getenv("AUTH_SECRET_KEY")), signature.WithSize(16))
//	if err != nil {
//		return err
//	}
//	sig := s.Sign("42")
//	ok := s.Verify("42", sig) // true
package signature
