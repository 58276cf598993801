// owwatch polls a configured set of 1-wire properties and fans the
// readings out to MQTT, InfluxDB and a local history store.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/onewire-tools/owctl/internal/config"
	"github.com/onewire-tools/owctl/internal/logging"
	"github.com/onewire-tools/owctl/internal/observability"
	"github.com/onewire-tools/owctl/internal/owclient"
	"github.com/onewire-tools/owctl/internal/watch"
)

const pruneInterval = time.Hour

func main() {
	configPath := flag.String("config", "owwatch.toml", "TOML config file")
	flag.Parse()

	logging.Init("owwatch")

	cfg, err := config.LoadWatchConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load watch config")
	}
	log.Info().Str("path", *configPath).Int("paths", len(cfg.Paths)).Msg("loaded watch config")

	clientCfg, err := cfg.Client.Resolve()
	if err != nil {
		log.Fatal().Err(err).Msg("bad client config")
	}
	client := owclient.New(clientCfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sinks, history, err := buildSinks(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up sinks")
	}

	if history != nil {
		go pruneLoop(ctx, history)
	}
	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr)
	}

	w := watch.New(client, cfg.Paths, time.Duration(cfg.IntervalSeconds)*time.Second, sinks...)
	defer func() {
		if err := w.Close(); err != nil {
			log.Warn().Err(err).Msg("sink shutdown failed")
		}
	}()

	log.Info().
		Str("server", client.Config().Server).
		Int("interval_seconds", cfg.IntervalSeconds).
		Msg("owwatch started")
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("owwatch stopped")
	}
	log.Info().Msg("owwatch shutting down")
}

func buildSinks(cfg config.WatchConfig) ([]watch.Sink, *watch.History, error) {
	var sinks []watch.Sink

	if cfg.MQTT.Broker != "" {
		s, err := watch.NewMQTTSink(cfg.MQTT)
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, s)
		log.Info().Str("broker", cfg.MQTT.Broker).Msg("mqtt sink enabled")
	}
	if cfg.Influx.URL != "" {
		s, err := watch.NewInfluxSink(cfg.Influx)
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, s)
		log.Info().Str("url", cfg.Influx.URL).Str("bucket", cfg.Influx.Bucket).Msg("influx sink enabled")
	}

	var history *watch.History
	if cfg.History.Path != "" {
		h, err := watch.OpenHistory(cfg.History)
		if err != nil {
			return nil, nil, err
		}
		history = h
		sinks = append(sinks, h)
		log.Info().Str("path", cfg.History.Path).Msg("history store enabled")
	}

	if len(sinks) == 0 {
		log.Warn().Msg("no sinks configured, readings will only be logged")
	}
	return sinks, history, nil
}

func pruneLoop(ctx context.Context, history *watch.History) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			dropped, err := history.Prune(ctx, time.Now())
			if err != nil {
				log.Warn().Err(err).Msg("history prune failed")
				continue
			}
			if dropped > 0 {
				log.Info().Int64("dropped", dropped).Msg("history pruned")
			}
		}
	}
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", observability.Handler())
	log.Info().Str("addr", addr).Msg("metrics listening")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Msg("metrics server stopped")
		os.Exit(1)
	}
}
