// Package config loads the TOML configuration files for the ow* tools and
// the owwatch daemon.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/onewire-tools/owctl/internal/owclient"
)

// ClientConfig mirrors the owclient settings in file form.
type ClientConfig struct {
	Server      string `toml:"server"`
	Temperature string `toml:"temperature"`
	Pressure    string `toml:"pressure"`
	Format      string `toml:"format"`
	Hex         bool   `toml:"hex"`
	Bare        bool   `toml:"bare"`
	DirSlash    bool   `toml:"dir_slash"`
	Prune       bool   `toml:"prune"`
	Persistence bool   `toml:"persistence"`
	Uncached    bool   `toml:"uncached"`
}

// LoadClientConfig reads and validates a client config file.
func LoadClientConfig(path string) (ClientConfig, error) {
	var cfg ClientConfig
	if err := loadToml(path, &cfg); err != nil {
		return ClientConfig{}, err
	}
	if _, err := cfg.Resolve(); err != nil {
		return ClientConfig{}, err
	}
	return cfg, nil
}

// Resolve converts the file form into an owclient.Config.
func (c ClientConfig) Resolve() (owclient.Config, error) {
	temperature, err := owclient.ParseTemperature(c.Temperature)
	if err != nil {
		return owclient.Config{}, err
	}
	pressure, err := owclient.ParsePressure(c.Pressure)
	if err != nil {
		return owclient.Config{}, err
	}
	format, err := owclient.ParseIDFormat(c.Format)
	if err != nil {
		return owclient.Config{}, err
	}
	return owclient.Config{
		Server:      c.Server,
		Temperature: temperature,
		Pressure:    pressure,
		Format:      format,
		Hex:         c.Hex,
		Bare:        c.Bare,
		Slash:       c.DirSlash,
		Prune:       c.Prune,
		Persistence: c.Persistence,
		Uncached:    c.Uncached,
	}, nil
}

// MQTTConfig configures the owwatch MQTT sink.
type MQTTConfig struct {
	Broker      string `toml:"broker"`
	ClientID    string `toml:"client_id"`
	Username    string `toml:"username"`
	Password    string `toml:"password"`
	TopicPrefix string `toml:"topic_prefix"`
	QoS         int    `toml:"qos"`
}

// InfluxConfig configures the owwatch InfluxDB sink.
type InfluxConfig struct {
	URL    string `toml:"url"`
	Token  string `toml:"token"`
	Org    string `toml:"org"`
	Bucket string `toml:"bucket"`
}

// HistoryConfig configures the owwatch SQLite reading history.
type HistoryConfig struct {
	Path       string `toml:"path"`
	RetainDays int    `toml:"retain_days"`
}

// WatchConfig configures the owwatch daemon.
type WatchConfig struct {
	Client          ClientConfig  `toml:"client"`
	IntervalSeconds int           `toml:"interval_seconds"`
	Paths           []string      `toml:"paths"`
	MetricsAddr     string        `toml:"metrics_addr"`
	MQTT            MQTTConfig    `toml:"mqtt"`
	Influx          InfluxConfig  `toml:"influx"`
	History         HistoryConfig `toml:"history"`
}

// LoadWatchConfig reads and validates the owwatch config file.
func LoadWatchConfig(path string) (WatchConfig, error) {
	var cfg WatchConfig
	if err := loadToml(path, &cfg); err != nil {
		return WatchConfig{}, err
	}
	if cfg.IntervalSeconds == 0 {
		cfg.IntervalSeconds = 30
	}
	if err := ValidateWatchConfig(cfg); err != nil {
		return WatchConfig{}, err
	}
	return cfg, nil
}

// ValidateWatchConfig rejects configs owwatch cannot run with.
func ValidateWatchConfig(cfg WatchConfig) error {
	if cfg.IntervalSeconds < 1 {
		return fmt.Errorf("watch config interval_seconds must be positive")
	}
	if len(cfg.Paths) == 0 {
		return fmt.Errorf("watch config needs at least one path")
	}
	for i, p := range cfg.Paths {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("paths[%d] is empty", i)
		}
	}
	if cfg.MQTT.Broker != "" && cfg.MQTT.TopicPrefix == "" {
		return fmt.Errorf("mqtt config missing topic_prefix")
	}
	if cfg.MQTT.QoS < 0 || cfg.MQTT.QoS > 2 {
		return fmt.Errorf("mqtt qos must be 0, 1 or 2")
	}
	if cfg.Influx.URL != "" && cfg.Influx.Bucket == "" {
		return fmt.Errorf("influx config missing bucket")
	}
	if _, err := cfg.Client.Resolve(); err != nil {
		return err
	}
	return nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}
