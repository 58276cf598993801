// Package watch implements the owwatch polling daemon: read a fixed set
// of 1-wire properties on an interval and fan each reading out to the
// configured sinks.
package watch

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/onewire-tools/owctl/internal/observability"
)

// Reading is one polled property value.
type Reading struct {
	Path  string
	Value string
	At    time.Time
}

// Reader is the slice of the client the watcher needs.
type Reader interface {
	Read(path string) ([]byte, error)
}

// Sink receives successful readings. Record errors are counted and
// logged but never stop the poll loop.
type Sink interface {
	Name() string
	Record(ctx context.Context, r Reading) error
	Close() error
}

// Watcher polls a set of paths on a fixed interval.
type Watcher struct {
	reader   Reader
	paths    []string
	interval time.Duration
	sinks    []Sink
}

func New(reader Reader, paths []string, interval time.Duration, sinks ...Sink) *Watcher {
	return &Watcher{
		reader:   reader,
		paths:    paths,
		interval: interval,
		sinks:    sinks,
	}
}

// Run polls until ctx is cancelled. The first poll happens immediately,
// then on every tick.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

func (w *Watcher) poll(ctx context.Context) {
	for _, path := range w.paths {
		if ctx.Err() != nil {
			return
		}

		start := time.Now()
		data, err := w.reader.Read(path)
		observability.RecordPoll(path, time.Since(start), err)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("poll failed")
			continue
		}

		r := Reading{Path: path, Value: string(data), At: start}
		log.Debug().Str("path", path).Str("value", r.Value).Msg("polled")
		w.record(ctx, r)
	}
}

func (w *Watcher) record(ctx context.Context, r Reading) {
	for _, s := range w.sinks {
		if err := s.Record(ctx, r); err != nil {
			observability.RecordSinkError(s.Name())
			log.Warn().Err(err).Str("sink", s.Name()).Str("path", r.Path).Msg("sink record failed")
		}
	}
}

// Close shuts every sink down, keeping the first error.
func (w *Watcher) Close() error {
	var first error
	for _, s := range w.sinks {
		if err := s.Close(); err != nil {
			log.Warn().Err(err).Str("sink", s.Name()).Msg("sink close failed")
			if first == nil {
				first = err
			}
		}
	}
	return first
}
