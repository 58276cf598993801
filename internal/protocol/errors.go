package protocol

import (
	"errors"
	"fmt"
	"os"
)

var (
	ErrPathNul         = errors.New("protocol: path contains nul byte")
	ErrShortHeader     = errors.New("protocol: short header")
	ErrPayloadTooLarge = errors.New("protocol: payload too large")
	ErrTooManyPings    = errors.New("protocol: too many keepalive frames")
	ErrServerLoop      = errors.New("protocol: own token seen, loop in owserver topology")
	ErrEntrySeparator  = errors.New("protocol: separator byte inside directory entry")
)

// retNotFound is the server return code magnitude for a missing path
// (owserver reports unix ENOENT).
const retNotFound = 2

var retCodeNames = map[int32]string{
	1:  "operation not permitted",
	2:  "no such path",
	5:  "i/o error",
	13: "permission denied",
	22: "invalid argument",
	42: "no message",
}

// ServerError is a negative return code from a well-formed response.
// Code carries the magnitude of the reported error.
type ServerError struct {
	Code int32
}

func (e *ServerError) Error() string {
	if name, ok := retCodeNames[e.Code]; ok {
		return fmt.Sprintf("owserver: error %d (%s)", e.Code, name)
	}
	return fmt.Sprintf("owserver: error %d", e.Code)
}

// NotFound reports whether the server indicated a missing path.
func (e *ServerError) NotFound() bool {
	return e.Code == retNotFound
}

// Is lets errors.Is(err, os.ErrNotExist) match missing-path responses.
func (e *ServerError) Is(target error) bool {
	return target == os.ErrNotExist && e.NotFound()
}
