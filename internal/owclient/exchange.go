package owclient

import (
	"fmt"
	"net"

	"github.com/onewire-tools/owctl/internal/protocol"
)

// exchange performs one request/response round trip: dial, write the full
// request, read the first non-keepalive reply, close. The connection is
// never reused across calls; the protocol has no correlation id, so
// out-of-order replies on a shared socket could not be told apart.
func (c *Client) exchange(req *protocol.Request) (*protocol.Response, error) {
	conn, err := net.Dial("tcp", c.cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("owclient: dial %s: %w", c.cfg.Server, err)
	}
	defer conn.Close()

	if err := protocol.WriteRequest(conn, req); err != nil {
		return nil, fmt.Errorf("owclient: send %s: %w", req.Type, err)
	}
	resp, err := protocol.ReadReply(conn, c.token)
	if err != nil {
		return nil, fmt.Errorf("owclient: receive %s: %w", req.Type, err)
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp, nil
}

// exchangeDir is the DIR variant: after the first reply the server keeps
// emitting one frame per entry on the same connection until an empty
// payload or close marks the end.
func (c *Client) exchangeDir(req *protocol.Request) ([]string, error) {
	conn, err := net.Dial("tcp", c.cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("owclient: dial %s: %w", c.cfg.Server, err)
	}
	defer conn.Close()

	if err := protocol.WriteRequest(conn, req); err != nil {
		return nil, fmt.Errorf("owclient: send %s: %w", req.Type, err)
	}
	return assembleListing(conn, c.token)
}
