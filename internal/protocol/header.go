package protocol

import (
	"encoding/binary"
	"io"
)

// HeaderSize is the fixed wire header length: six 32-bit big-endian integers.
const HeaderSize = 24

// Header is the fixed frame header shared by requests and responses.
// Type holds the message type on a request and the return code on a
// response; Payload is signed because a negative value marks a keepalive.
type Header struct {
	Version uint32
	Payload int32
	Type    int32
	Flags   uint32
	Size    int32
	Offset  int32
}

// EncodeHeader renders h in wire order.
func EncodeHeader(h Header) []byte {
	buf := make([]byte, HeaderSize)
	binary.BigEndian.PutUint32(buf[0:4], h.Version)
	binary.BigEndian.PutUint32(buf[4:8], uint32(h.Payload))
	binary.BigEndian.PutUint32(buf[8:12], uint32(h.Type))
	binary.BigEndian.PutUint32(buf[12:16], h.Flags)
	binary.BigEndian.PutUint32(buf[16:20], uint32(h.Size))
	binary.BigEndian.PutUint32(buf[20:24], uint32(h.Offset))
	return buf
}

// DecodeHeader parses a 24-byte wire header.
func DecodeHeader(b []byte) (Header, error) {
	if len(b) != HeaderSize {
		return Header{}, ErrShortHeader
	}
	return Header{
		Version: binary.BigEndian.Uint32(b[0:4]),
		Payload: int32(binary.BigEndian.Uint32(b[4:8])),
		Type:    int32(binary.BigEndian.Uint32(b[8:12])),
		Flags:   binary.BigEndian.Uint32(b[12:16]),
		Size:    int32(binary.BigEndian.Uint32(b[16:20])),
		Offset:  int32(binary.BigEndian.Uint32(b[20:24])),
	}, nil
}

// ReadHeader reads exactly one wire header from r.
func ReadHeader(r io.Reader) (Header, error) {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Header{}, err
	}
	return DecodeHeader(buf[:])
}
