package authenticator

type TokenEngine[T any] interface {
	// Generate creates a signed token wrapping obj, with sub as its subject.
	Generate(sub string, obj T) (string, error)

	// Verify checks the token signature and expiration, then returns the
	// wrapped object.
	Verify(token string) (T, error)
}
