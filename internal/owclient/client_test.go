package owclient

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onewire-tools/owctl/internal/protocol"
	"github.com/onewire-tools/owctl/internal/testutil/owtest"
)

func newClient(t *testing.T, cfg Config, handler owtest.Handler) *Client {
	t.Helper()
	srv := owtest.Start(t, handler)
	cfg.Server = srv.Addr()
	return New(cfg)
}

func TestReadEndToEnd(t *testing.T) {
	c := newClient(t, Config{}, func(req owtest.Request) []owtest.Frame {
		assert.Equal(t, protocol.MsgRead, req.Type())
		assert.Equal(t, "/10.67C6697351FF/temperature", req.Path)
		return []owtest.Frame{owtest.Value([]byte("22.50"))}
	})

	v, err := c.Read("/10.67C6697351FF/temperature")
	require.NoError(t, err)
	assert.Equal(t, []byte("22.50"), v)
}

func TestReadKeepalivesAreTransparent(t *testing.T) {
	c := newClient(t, Config{}, func(owtest.Request) []owtest.Frame {
		return []owtest.Frame{owtest.Ping(), owtest.Ping(), owtest.Value([]byte("22.50"))}
	})

	v, err := c.Read("/10.67C6697351FF/temperature")
	require.NoError(t, err)
	assert.Equal(t, []byte("22.50"), v)
}

func TestReadNotFound(t *testing.T) {
	c := newClient(t, Config{}, func(owtest.Request) []owtest.Frame {
		return []owtest.Frame{owtest.ServerErr(2)}
	})

	_, err := c.Read("/10.missing/temperature")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadRejectsNulPathWithoutDialing(t *testing.T) {
	c := New(Config{Server: "127.0.0.1:1"}) // nothing listens here
	_, err := c.Read("/10.\x00bad")
	assert.ErrorIs(t, err, protocol.ErrPathNul)
}

func TestDirPreservesEmissionOrder(t *testing.T) {
	c := newClient(t, Config{}, func(req owtest.Request) []owtest.Frame {
		assert.Equal(t, protocol.MsgDir, req.Type())
		return owtest.Listing("/10.AAAA", "/12.BBBB")
	})

	entries, err := c.Dir("/")
	require.NoError(t, err)
	assert.Equal(t, []string{"/10.AAAA", "/12.BBBB"}, entries)
}

func TestDirSeparatorInEntryIsProtocolError(t *testing.T) {
	c := newClient(t, Config{}, func(owtest.Request) []owtest.Frame {
		return []owtest.Frame{{Payload: append([]byte("/10.AA,A"), 0)}, {}}
	})

	_, err := c.Dir("/")
	assert.ErrorIs(t, err, protocol.ErrEntrySeparator)
}

func TestDirAllSplitsPayload(t *testing.T) {
	c := newClient(t, Config{}, func(req owtest.Request) []owtest.Frame {
		assert.Equal(t, protocol.MsgDirAll, req.Type())
		return []owtest.Frame{owtest.ListingAll("/10.AAAA", "/12.BBBB", "/bus.0")}
	})

	entries, err := c.DirAll("/")
	require.NoError(t, err)
	assert.Equal(t, []string{"/10.AAAA", "/12.BBBB", "/bus.0"}, entries)
}

func TestDirAllSlashVariantSelected(t *testing.T) {
	c := newClient(t, Config{Slash: true}, func(req owtest.Request) []owtest.Frame {
		assert.Equal(t, protocol.MsgDirAllSlash, req.Type())
		return []owtest.Frame{owtest.ListingAll("/10.AAAA/")}
	})

	entries, err := c.DirAll("/")
	require.NoError(t, err)
	assert.Equal(t, []string{"/10.AAAA/"}, entries)
}

func TestDirAllPruneDropsConvenienceProperties(t *testing.T) {
	c := newClient(t, Config{Prune: true}, func(owtest.Request) []owtest.Frame {
		return []owtest.Frame{owtest.ListingAll(
			"/10.AAAA/address", "/10.AAAA/temperature", "/10.AAAA/crc8", "/10.AAAA/id",
		)}
	})

	entries, err := c.DirAll("/10.AAAA")
	require.NoError(t, err)
	assert.Equal(t, []string{"/10.AAAA/temperature"}, entries)
}

func TestWriteSendsPathAndData(t *testing.T) {
	var got owtest.Request
	c := newClient(t, Config{}, func(req owtest.Request) []owtest.Frame {
		got = req
		return []owtest.Frame{owtest.OK()}
	})

	require.NoError(t, c.Write("/05.4AEC29CDBAAB/PIO", []byte("1")))
	assert.Equal(t, protocol.MsgWrite, got.Type())
	assert.Equal(t, "/05.4AEC29CDBAAB/PIO", got.Path)
	assert.Equal(t, []byte("1"), got.Data)
	assert.Equal(t, int32(1), got.Header.Size)
}

func TestWriteServerErrorPropagates(t *testing.T) {
	c := newClient(t, Config{}, func(owtest.Request) []owtest.Frame {
		return []owtest.Frame{owtest.ServerErr(22)}
	})

	err := c.Write("/05.4AEC29CDBAAB/PIO", []byte("1"))
	var se *protocol.ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, int32(22), se.Code)
}

func TestPresent(t *testing.T) {
	t.Run("exists", func(t *testing.T) {
		c := newClient(t, Config{}, func(req owtest.Request) []owtest.Frame {
			assert.Equal(t, protocol.MsgPresent, req.Type())
			return []owtest.Frame{owtest.OK()}
		})
		present, err := c.Present("/10.AAAA")
		require.NoError(t, err)
		assert.True(t, present)
	})

	t.Run("not found maps to false", func(t *testing.T) {
		c := newClient(t, Config{}, func(owtest.Request) []owtest.Frame {
			return []owtest.Frame{owtest.ServerErr(2)}
		})
		present, err := c.Present("/10.FFFF")
		require.NoError(t, err)
		assert.False(t, present)
	})

	t.Run("other server errors propagate", func(t *testing.T) {
		c := newClient(t, Config{}, func(owtest.Request) []owtest.Frame {
			return []owtest.Frame{owtest.ServerErr(5)}
		})
		_, err := c.Present("/10.FFFF")
		var se *protocol.ServerError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, int32(5), se.Code)
		assert.False(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestSize(t *testing.T) {
	c := newClient(t, Config{}, func(req owtest.Request) []owtest.Frame {
		assert.Equal(t, protocol.MsgSize, req.Type())
		return []owtest.Frame{{Ret: 12}}
	})

	n, err := c.Size("/10.AAAA/temperature")
	require.NoError(t, err)
	assert.Equal(t, int32(12), n)
}

func TestGetDistinguishesFileAndDirectory(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		c := newClient(t, Config{}, func(req owtest.Request) []owtest.Frame {
			assert.Equal(t, protocol.MsgGet, req.Type())
			return []owtest.Frame{owtest.Value([]byte("22.50"))}
		})
		res, err := c.Get("/10.AAAA/temperature")
		require.NoError(t, err)
		assert.False(t, res.IsDir())
		assert.Equal(t, []byte("22.50"), res.Data)
		assert.Nil(t, res.Entries)
	})

	t.Run("directory", func(t *testing.T) {
		c := newClient(t, Config{Slash: true}, func(req owtest.Request) []owtest.Frame {
			assert.Equal(t, protocol.MsgGetSlash, req.Type())
			return []owtest.Frame{owtest.ListingAll("/10.AAAA/", "/12.BBBB/")}
		})
		res, err := c.Get("/")
		require.NoError(t, err)
		assert.True(t, res.IsDir())
		assert.Equal(t, []string{"/10.AAAA/", "/12.BBBB/"}, res.Entries)
		assert.Nil(t, res.Data)
	})
}

func TestRequestCarriesComputedFlags(t *testing.T) {
	cfg := Config{Temperature: Kelvin, Bare: true}
	c := newClient(t, cfg, func(req owtest.Request) []owtest.Frame {
		assert.Equal(t, cfg.Flags(), req.Header.Flags)
		assert.Zero(t, req.Header.Flags&protocol.FlagBusRet)
		return []owtest.Frame{owtest.Value([]byte("ok"))}
	})

	_, err := c.Read("/10.AAAA/temperature")
	require.NoError(t, err)
}

func TestReadRangeOverride(t *testing.T) {
	c := newClient(t, Config{ReadSize: 8, ReadOffset: 4}, func(req owtest.Request) []owtest.Frame {
		assert.Equal(t, int32(8), req.Header.Size)
		assert.Equal(t, int32(4), req.Header.Offset)
		return []owtest.Frame{owtest.Value([]byte("partial"))}
	})

	_, err := c.Read("/10.AAAA/scratchpad")
	require.NoError(t, err)
}
