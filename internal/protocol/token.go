package protocol

import "github.com/google/uuid"

// Token identifies one hop in a chain of forwarding owservers. Servers
// append their token to responses they relay; a client that sees its own
// token has found a loop.
type Token [16]byte

// NewToken returns a fresh random token.
func NewToken() Token {
	return Token(uuid.New())
}
