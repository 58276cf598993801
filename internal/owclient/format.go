package owclient

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrOddHexLength rejects hex write input before any dial happens.
	ErrOddHexLength = errors.New("owclient: hex input must have even length")
	// ErrInvalidText reports a value that cannot render as text output.
	ErrInvalidText = errors.New("owclient: value is not valid text")
)

// FormatValue renders a read result for display. Hex mode shows uppercase
// byte pairs; text mode requires valid UTF-8.
func (c *Client) FormatValue(v []byte) (string, error) {
	if c.cfg.Hex {
		pairs := make([]string, len(v))
		for i, b := range v {
			pairs[i] = fmt.Sprintf("%02X", b)
		}
		return strings.Join(pairs, " "), nil
	}
	if !utf8.Valid(v) {
		return "", ErrInvalidText
	}
	return string(v), nil
}

// ParseWriteInput converts the command-line value for a write. In hex mode
// each pair of characters decodes to one byte; odd-length input fails
// before any network activity.
func (c *Client) ParseWriteInput(s string) ([]byte, error) {
	if !c.cfg.Hex {
		return []byte(s), nil
	}
	if len(s)%2 != 0 {
		return nil, ErrOddHexLength
	}
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("owclient: bad hex input: %w", err)
	}
	return data, nil
}
