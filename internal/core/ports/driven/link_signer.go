package driven

// LinkSigner issues and checks tokens that authorize a download.
type LinkSigner interface {
	// Sign returns a token bound to the output id
	Sign(id string) (string, error)

	// Verify checks that token is valid for id.
	// Returns domain.ErrTokenExpired or domain.ErrUnauthorized on failure.
	Verify(token, id string) error
}
