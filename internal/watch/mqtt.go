package watch

import (
	"context"
	"fmt"
	"strings"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/onewire-tools/owctl/internal/config"
)

const mqttConnectTimeout = 10 * time.Second

// MQTTSink publishes readings to an MQTT broker, one retained topic per
// property path under the configured prefix.
type MQTTSink struct {
	client pahomqtt.Client
	prefix string
	qos    byte
}

// NewMQTTSink connects to the broker. Reconnection after a drop is
// handled by the paho client itself.
func NewMQTTSink(cfg config.MQTTConfig) (*MQTTSink, error) {
	opts := pahomqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(mqttConnectTimeout)

	client := pahomqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(mqttConnectTimeout) {
		return nil, fmt.Errorf("mqtt connect timeout after %v", mqttConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect failed: %w", err)
	}

	return &MQTTSink{
		client: client,
		prefix: strings.TrimSuffix(cfg.TopicPrefix, "/"),
		qos:    byte(cfg.QoS),
	}, nil
}

func (s *MQTTSink) Name() string { return "mqtt" }

func (s *MQTTSink) Record(ctx context.Context, r Reading) error {
	topic := s.prefix + r.Path
	token := s.client.Publish(topic, s.qos, true, r.Value)

	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			return fmt.Errorf("mqtt publish %s: %w", topic, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *MQTTSink) Close() error {
	s.client.Disconnect(uint(mqttConnectTimeout / time.Millisecond))
	return nil
}
