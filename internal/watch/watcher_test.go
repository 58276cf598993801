package watch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	mu     sync.Mutex
	values map[string]string
	errs   map[string]error
	reads  []string
}

func (f *fakeReader) Read(path string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads = append(f.reads, path)
	if err := f.errs[path]; err != nil {
		return nil, err
	}
	return []byte(f.values[path]), nil
}

type captureSink struct {
	mu       sync.Mutex
	name     string
	err      error
	readings []Reading
	closed   bool
	done     chan struct{}
}

func newCaptureSink(name string, want int) *captureSink {
	return &captureSink{name: name, done: make(chan struct{}, want)}
}

func (s *captureSink) Name() string { return s.name }

func (s *captureSink) Record(_ context.Context, r Reading) error {
	s.mu.Lock()
	s.readings = append(s.readings, r)
	s.mu.Unlock()
	select {
	case s.done <- struct{}{}:
	default:
	}
	return s.err
}

func (s *captureSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func TestWatcherDeliversReadings(t *testing.T) {
	reader := &fakeReader{values: map[string]string{
		"/10.AAAA/temperature": "     22.5",
		"/05.BBBB/PIO":         "1",
	}}
	sink := newCaptureSink("capture", 2)

	w := New(reader, []string{"/10.AAAA/temperature", "/05.BBBB/PIO"}, time.Hour, sink)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	for i := 0; i < 2; i++ {
		select {
		case <-sink.done:
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for readings")
		}
	}
	cancel()
	require.ErrorIs(t, <-errCh, context.Canceled)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	require.Len(t, sink.readings, 2)
	assert.Equal(t, "/10.AAAA/temperature", sink.readings[0].Path)
	assert.Equal(t, "     22.5", sink.readings[0].Value)
	assert.Equal(t, "1", sink.readings[1].Value)
	assert.False(t, sink.readings[0].At.IsZero())
}

func TestWatcherReadErrorSkipsSinks(t *testing.T) {
	reader := &fakeReader{
		values: map[string]string{"/05.BBBB/PIO": "0"},
		errs:   map[string]error{"/10.AAAA/temperature": errors.New("device gone")},
	}
	sink := newCaptureSink("capture", 1)

	w := New(reader, []string{"/10.AAAA/temperature", "/05.BBBB/PIO"}, time.Hour, sink)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	select {
	case <-sink.done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reading")
	}
	cancel()
	<-errCh

	sink.mu.Lock()
	defer sink.mu.Unlock()
	require.Len(t, sink.readings, 1)
	assert.Equal(t, "/05.BBBB/PIO", sink.readings[0].Path)
}

func TestWatcherSinkErrorDoesNotStopOthers(t *testing.T) {
	reader := &fakeReader{values: map[string]string{"/10.AAAA/temperature": "19.0"}}
	failing := newCaptureSink("failing", 1)
	failing.err = errors.New("broker down")
	healthy := newCaptureSink("healthy", 1)

	w := New(reader, []string{"/10.AAAA/temperature"}, time.Hour, failing, healthy)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	select {
	case <-healthy.done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for healthy sink")
	}
	cancel()
	<-errCh

	healthy.mu.Lock()
	defer healthy.mu.Unlock()
	require.Len(t, healthy.readings, 1)
}

func TestWatcherClose(t *testing.T) {
	a := newCaptureSink("a", 0)
	b := newCaptureSink("b", 0)

	w := New(&fakeReader{}, nil, time.Hour, a, b)
	require.NoError(t, w.Close())
	assert.True(t, a.closed)
	assert.True(t, b.closed)
}
