package types

// TokenStream is a stream of tokens read from source text.
type TokenStream interface {
	// Next returns the next token and advances the stream by one.
	Next() Token

	// Peek returns the next token without advancing the stream.
	Peek() Token

	// HasNext reports whether the stream has any additional tokens.
	HasNext() bool
}
