package protocol

import (
	"io"
	"strings"
)

// Request is one outgoing message: header fields plus the body holding the
// nul-terminated path and, for writes, the raw data that follows it.
// Requests are built fresh per call and never reused.
type Request struct {
	Type   MessageType
	Flags  uint32
	Size   int32
	Offset int32
	body   []byte
}

// NewRequest builds a request for op on path. data is the write body and
// must be nil for every other operation. The path cannot contain a nul
// byte: it is carried in a nul-terminated field.
func NewRequest(op MessageType, flags uint32, path string, data []byte) (*Request, error) {
	if strings.IndexByte(path, 0) >= 0 {
		return nil, ErrPathNul
	}
	req := &Request{
		Type:   op,
		Flags:  flags,
		Size:   DefaultSize,
		Offset: 0,
	}
	body := make([]byte, 0, len(path)+1+len(data))
	body = append(body, path...)
	body = append(body, 0)
	if data != nil {
		body = append(body, data...)
		req.Size = int32(len(data))
	}
	req.body = body
	return req, nil
}

// SetRange overrides the response size hint and read offset.
func (r *Request) SetRange(size, offset int32) {
	if size > 0 {
		r.Size = size
	}
	r.Offset = offset
}

// PayloadLen is the header payload length: path, its nul, and any data.
func (r *Request) PayloadLen() int32 {
	return int32(len(r.body))
}

// Encode renders the full wire message: header followed by body.
func (r *Request) Encode() []byte {
	h := Header{
		Version: RequestVersion,
		Payload: r.PayloadLen(),
		Type:    int32(r.Type),
		Flags:   r.Flags,
		Size:    r.Size,
		Offset:  r.Offset,
	}
	buf := EncodeHeader(h)
	return append(buf, r.body...)
}

// WriteRequest writes the encoded request to w in one logical write.
// io.Writer contracts require Write to retry partial writes internally,
// so a short write surfaces only as an error.
func WriteRequest(w io.Writer, r *Request) error {
	_, err := w.Write(r.Encode())
	return err
}
