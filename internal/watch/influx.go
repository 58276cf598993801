package watch

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/onewire-tools/owctl/internal/config"
)

// InfluxSink writes readings as points in an InfluxDB v2 bucket. Writes
// are blocking so a delivery failure surfaces on the poll that caused it.
type InfluxSink struct {
	client influxdb2.Client
	write  api.WriteAPIBlocking
}

func NewInfluxSink(cfg config.InfluxConfig) (*InfluxSink, error) {
	client := influxdb2.NewClient(cfg.URL, cfg.Token)
	return &InfluxSink{
		client: client,
		write:  client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
	}, nil
}

func (s *InfluxSink) Name() string { return "influx" }

func (s *InfluxSink) Record(ctx context.Context, r Reading) error {
	fields := map[string]any{"raw": r.Value}
	if v, err := strconv.ParseFloat(strings.TrimSpace(r.Value), 64); err == nil {
		fields["value"] = v
	}

	point := influxdb2.NewPoint(
		"onewire",
		map[string]string{"path": r.Path},
		fields,
		r.At,
	)
	if err := s.write.WritePoint(ctx, point); err != nil {
		return fmt.Errorf("influx write %s: %w", r.Path, err)
	}
	return nil
}

func (s *InfluxSink) Close() error {
	s.client.Close()
	return nil
}
