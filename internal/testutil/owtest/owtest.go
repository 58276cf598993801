// Package owtest runs a scripted in-process owserver for tests.
package owtest

import (
	"bytes"
	"io"
	"net"
	"strings"
	"testing"

	"github.com/onewire-tools/owctl/internal/protocol"
)

// Request is one decoded client message handed to the test handler.
type Request struct {
	Header protocol.Header
	Path   string
	Data   []byte
}

// Type returns the request message type.
func (r Request) Type() protocol.MessageType {
	return protocol.MessageType(r.Header.Type)
}

// Frame is one scripted response frame.
type Frame struct {
	Ret     int32
	Payload []byte
	Ping    bool
	Tokens  []protocol.Token
}

// Handler maps a decoded request to the frames the server emits before
// closing the connection.
type Handler func(req Request) []Frame

// Server accepts one request per connection, replies with the handler's
// frames and closes, mirroring owserver's per-exchange behavior.
type Server struct {
	ln      net.Listener
	handler Handler
}

// Start listens on an ephemeral localhost port. The listener is shut down
// via t.Cleanup.
func Start(t *testing.T, handler Handler) *Server {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("owtest: listen: %v", err)
	}
	s := &Server{ln: ln, handler: handler}
	go s.serve()
	t.Cleanup(func() { ln.Close() })
	return s
}

// Addr is the host:port clients should dial.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

func (s *Server) serve() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		go s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	req, err := readRequest(conn)
	if err != nil {
		return
	}
	for _, frame := range s.handler(req) {
		if _, err := conn.Write(encodeFrame(frame)); err != nil {
			return
		}
	}
}

func readRequest(r io.Reader) (Request, error) {
	h, err := protocol.ReadHeader(r)
	if err != nil {
		return Request{}, err
	}
	req := Request{Header: h}
	if h.Payload > 0 {
		body := make([]byte, h.Payload)
		if _, err := io.ReadFull(r, body); err != nil {
			return Request{}, err
		}
		path, data, _ := bytes.Cut(body, []byte{0})
		req.Path = string(path)
		if len(data) > 0 {
			req.Data = data
		}
	}
	return req, nil
}

func encodeFrame(f Frame) []byte {
	h := protocol.Header{
		Type: f.Ret,
		Size: int32(len(f.Payload)),
	}
	if f.Ping {
		h.Payload = -1
		h.Type = 0
		return protocol.EncodeHeader(h)
	}
	h.Payload = int32(len(f.Payload))
	if n := len(f.Tokens); n > 0 {
		h.Version = 0x10000 | uint32(n)
	}
	buf := append(protocol.EncodeHeader(h), f.Payload...)
	for _, tok := range f.Tokens {
		buf = append(buf, tok[:]...)
	}
	return buf
}

// Ping is a keepalive frame.
func Ping() Frame {
	return Frame{Ping: true}
}

// Value is a single data frame, as a READ or GET reply.
func Value(v []byte) Frame {
	return Frame{Payload: v}
}

// OK is an empty success frame.
func OK() Frame {
	return Frame{}
}

// ServerErr is an error frame carrying -code as the return value.
func ServerErr(code int32) Frame {
	return Frame{Ret: -code}
}

// Listing scripts a DIR reply: one nul-terminated entry per frame, then
// the empty frame that ends the listing.
func Listing(entries ...string) []Frame {
	frames := make([]Frame, 0, len(entries)+1)
	for _, e := range entries {
		frames = append(frames, Frame{Payload: append([]byte(e), 0)})
	}
	return append(frames, Frame{})
}

// ListingAll scripts a DIRALL reply: every entry in one comma-separated
// payload with the stray trailing nul the original server emits.
func ListingAll(entries ...string) Frame {
	joined := strings.Join(entries, ",")
	return Frame{Payload: append([]byte(joined), 0)}
}
