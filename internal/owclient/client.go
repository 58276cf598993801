package owclient

import (
	"errors"

	"github.com/onewire-tools/owctl/internal/protocol"
)

// Client performs owserver operations. Each call opens its own connection
// and closes it before returning, so a Client is safe for concurrent use;
// the Config is read-only after New.
//
// There is no client-side timeout: a server that never responds blocks the
// calling goroutine until the peer or the caller closes the connection.
type Client struct {
	cfg   Config
	token protocol.Token
}

// New returns a client for cfg. An empty server address falls back to the
// conventional localhost:4304.
func New(cfg Config) *Client {
	if cfg.Server == "" {
		cfg.Server = protocol.DefaultServer
	}
	return &Client{
		cfg:   cfg,
		token: protocol.NewToken(),
	}
}

// Config returns the client settings.
func (c *Client) Config() Config {
	return c.cfg
}

func (c *Client) request(op protocol.MessageType, path string, data []byte) (*protocol.Request, error) {
	req, err := protocol.NewRequest(op, c.cfg.Flags(), path, data)
	if err != nil {
		return nil, err
	}
	if op == protocol.MsgRead {
		req.SetRange(c.cfg.ReadSize, c.cfg.ReadOffset)
	}
	return req, nil
}

// Read returns the raw value of a device property, e.g.
// /10.67C6697351FF/temperature.
func (c *Client) Read(path string) ([]byte, error) {
	req, err := c.request(protocol.MsgRead, path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.exchange(req)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Write stores data into a device property. A non-zero return code from
// the server is surfaced as a *protocol.ServerError.
func (c *Client) Write(path string, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	req, err := c.request(protocol.MsgWrite, path, data)
	if err != nil {
		return err
	}
	_, err = c.exchange(req)
	return err
}

// Present reports whether the device path currently exists on the bus.
// A not-found return code yields false; any other server error propagates.
func (c *Client) Present(path string) (bool, error) {
	req, err := c.request(protocol.MsgPresent, path, nil)
	if err != nil {
		return false, err
	}
	resp, err := c.exchange(req)
	if err != nil {
		if se, ok := asServerError(err); ok && se.NotFound() {
			return false, nil
		}
		return false, err
	}
	return resp.Ret() >= 0, nil
}

// Size returns the byte length a read of the property would produce.
func (c *Client) Size(path string) (int32, error) {
	req, err := c.request(protocol.MsgSize, path, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.exchange(req)
	if err != nil {
		return 0, err
	}
	return resp.Ret(), nil
}

// Dir lists a directory using one response frame per entry, preserving the
// server's emission order.
func (c *Client) Dir(path string) ([]string, error) {
	req, err := c.request(protocol.MsgDir, path, nil)
	if err != nil {
		return nil, err
	}
	entries, err := c.exchangeDir(req)
	if err != nil {
		return nil, err
	}
	return c.prune(entries), nil
}

// DirAll lists a directory using a single comma-separated payload. The
// Slash config selects the variant that marks directories with a trailing
// slash.
func (c *Client) DirAll(path string) ([]string, error) {
	op := protocol.MsgDirAll
	if c.cfg.Slash {
		op = protocol.MsgDirAllSlash
	}
	return c.dirAll(op, path)
}

// DirAllSlash lists a directory with explicit trailing-slash markers,
// regardless of the Slash config.
func (c *Client) DirAllSlash(path string) ([]string, error) {
	return c.dirAll(protocol.MsgDirAllSlash, path)
}

func (c *Client) dirAll(op protocol.MessageType, path string) ([]string, error) {
	req, err := c.request(op, path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.exchange(req)
	if err != nil {
		return nil, err
	}
	return c.prune(splitListing(resp.Data)), nil
}

// GetResult is the outcome of a Get: exactly one of Data or Entries is
// populated, depending on whether the path named a file or a directory.
type GetResult struct {
	Data    []byte
	Entries []string
}

// IsDir reports whether the server resolved the path as a directory.
func (g *GetResult) IsDir() bool {
	return g.Entries != nil
}

// Get reads a file or lists a directory, whichever the path names.
// owserver returns listing entries as absolute paths, so a payload whose
// first byte is '/' is a listing; file values never start that way.
func (c *Client) Get(path string) (*GetResult, error) {
	op := protocol.MsgGet
	if c.cfg.Slash {
		op = protocol.MsgGetSlash
	}
	req, err := c.request(op, path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.exchange(req)
	if err != nil {
		return nil, err
	}
	if len(resp.Data) > 0 && resp.Data[0] == '/' {
		return &GetResult{Entries: c.prune(splitListing(resp.Data))}, nil
	}
	return &GetResult{Data: resp.Data}, nil
}

func asServerError(err error) (*protocol.ServerError, bool) {
	var se *protocol.ServerError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
