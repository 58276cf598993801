package protocol

import (
	"io"
)

const (
	// Version-field markers for the server token trailer: when tokenFlag is
	// set, the low 16 bits count 16-byte tokens following the payload.
	tokenFlag      uint32 = 0x10000
	tokenCountMask uint32 = 0xFFFF

	// maxPayload bounds a single response payload. The size hint sent with
	// requests is 64 KiB; anything wildly beyond it is a malformed header.
	maxPayload = 1 << 24

	// maxKeepalives bounds the keepalive skip loop so a misbehaving server
	// cannot pin the client forever.
	maxKeepalives = 16
)

// Response is one decoded frame from owserver.
type Response struct {
	Header
	Data   []byte
	Tokens []Token
}

// Ret is the server return code; negative values report an error.
func (r *Response) Ret() int32 {
	return r.Type
}

// Ping reports a keepalive frame: negative payload length with a zero
// return code. Pings carry no data and must be skipped, not surfaced.
func (r *Response) Ping() bool {
	return r.Payload < 0 && r.Type == 0
}

// Err classifies the return code: nil for non-negative, *ServerError with
// the code magnitude otherwise.
func (r *Response) Err() error {
	if ret := r.Ret(); ret < 0 {
		return &ServerError{Code: -ret}
	}
	return nil
}

// ReadResponse reads exactly one frame: header, payload when the payload
// length is positive, and any server token trailer. A short payload read
// is an I/O failure from io.ReadFull, not a protocol error.
func ReadResponse(r io.Reader) (*Response, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	if h.Payload > maxPayload {
		return nil, ErrPayloadTooLarge
	}

	resp := &Response{Header: h}
	if h.Payload > 0 {
		resp.Data = make([]byte, h.Payload)
		if _, err := io.ReadFull(r, resp.Data); err != nil {
			return nil, err
		}
	}

	if h.Version&tokenFlag != 0 {
		count := int(h.Version & tokenCountMask)
		resp.Tokens = make([]Token, 0, count)
		for range count {
			var tok Token
			if _, err := io.ReadFull(r, tok[:]); err != nil {
				return nil, err
			}
			resp.Tokens = append(resp.Tokens, tok)
		}
	}

	return resp, nil
}

// ReadReply reads frames until a non-keepalive response arrives, bounded by
// maxKeepalives. own, when non-zero, is checked against the token trailer to
// detect a forwarding loop between chained owservers.
func ReadReply(r io.Reader, own Token) (*Response, error) {
	for range maxKeepalives + 1 {
		resp, err := ReadResponse(r)
		if err != nil {
			return nil, err
		}
		if resp.Ping() {
			continue
		}
		if own != (Token{}) {
			for _, tok := range resp.Tokens {
				if tok == own {
					return nil, ErrServerLoop
				}
			}
		}
		return resp, nil
	}
	return nil, ErrTooManyPings
}
