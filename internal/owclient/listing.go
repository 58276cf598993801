package owclient

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/onewire-tools/owctl/internal/protocol"
)

// listSeparator joins entries inside a DIRALL payload. It can never occur
// inside a legitimate path segment; seeing one inside an entry means the
// server broke the protocol.
const listSeparator = ','

// assembleListing consumes DIR response frames from r until the server
// sends an empty payload or closes the connection, returning entries in
// emission order.
func assembleListing(r io.Reader, own protocol.Token) ([]string, error) {
	var entries []string
	for {
		resp, err := protocol.ReadReply(r, own)
		if errors.Is(err, io.EOF) {
			// Peer close ends the listing.
			return entries, nil
		}
		if err != nil {
			return nil, err
		}
		if err := resp.Err(); err != nil {
			return nil, err
		}
		if resp.Payload <= 0 {
			return entries, nil
		}
		frame, err := parseEntries(resp.Data)
		if err != nil {
			return nil, err
		}
		entries = append(entries, frame...)
	}
}

// parseEntries splits one frame payload into its nul-terminated entries.
func parseEntries(payload []byte) ([]string, error) {
	var entries []string
	for _, raw := range bytes.Split(payload, []byte{0}) {
		if len(raw) == 0 {
			continue
		}
		if bytes.IndexByte(raw, listSeparator) >= 0 {
			return nil, protocol.ErrEntrySeparator
		}
		entries = append(entries, string(raw))
	}
	return entries, nil
}

// splitListing decodes a single DIRALL payload: strip the stray nul bytes
// the original owserver adds, then split on the separator.
func splitListing(payload []byte) []string {
	cleaned := bytes.ReplaceAll(payload, []byte{0}, nil)
	if len(cleaned) == 0 {
		return nil
	}
	return strings.Split(string(cleaned), string(listSeparator))
}

// pruneList names the convenience properties every device directory
// repeats; --prune drops them for sparser output.
var pruneList = map[string]struct{}{
	"address":   {},
	"crc8":      {},
	"family":    {},
	"id":        {},
	"locator":   {},
	"r_address": {},
	"r_id":      {},
	"r_locator": {},
	"type":      {},
	"bus":       {},
}

func (c *Client) prune(entries []string) []string {
	if !c.cfg.Prune || entries == nil {
		return entries
	}
	kept := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, drop := pruneList[basename(e)]; drop {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

// basename is the final non-empty path segment, stripped of any numeric
// suffix (bus.0 -> bus).
func basename(path string) string {
	segments := strings.Split(path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] == "" {
			continue
		}
		name, _, _ := strings.Cut(segments[i], ".")
		return name
	}
	return ""
}
