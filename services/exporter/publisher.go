package exporter

import (
	"fmt"
	"log"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// Publisher abstracts the MQTT client so the service can be tested with an
// in-memory double.
type Publisher interface {
	Publish(topic string, payload []byte, retain bool) error
	Close()
}

type mqttPublisher struct {
	client      paho.Client
	statusTopic string
	timeout     time.Duration
}

// NewMQTTPublisher connects to the broker. The status topic carries
// "online"/"offline" with a last-will fallback so consumers can tell a
// stopped exporter from a silent sensor.
func NewMQTTPublisher(cfg MQTTConfig) (Publisher, error) {
	statusTopic := cfg.TopicPrefix + "/status"

	opts := paho.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.Broker, cfg.Port))
	opts.SetClientID(cfg.ClientID)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetAutoReconnect(true)
	opts.SetKeepAlive(time.Duration(cfg.KeepAlive) * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetWill(statusTopic, "offline", 1, true)

	opts.SetOnConnectHandler(func(client paho.Client) {
		log.Printf("connected to MQTT broker %s:%d", cfg.Broker, cfg.Port)
		if token := client.Publish(statusTopic, 1, true, "online"); token.Wait() && token.Error() != nil {
			log.Printf("publish online status: %v", token.Error())
		}
	})
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		log.Printf("MQTT connection lost: %v", err)
	})

	client := paho.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}
	return &mqttPublisher{
		client:      client,
		statusTopic: statusTopic,
		timeout:     5 * time.Second,
	}, nil
}

func (p *mqttPublisher) Publish(topic string, payload []byte, retain bool) error {
	token := p.client.Publish(topic, 1, retain, payload)
	if !token.WaitTimeout(p.timeout) {
		return fmt.Errorf("mqtt publish %s: timeout", topic)
	}
	return token.Error()
}

func (p *mqttPublisher) Close() {
	if token := p.client.Publish(p.statusTopic, 1, true, "offline"); token.Wait() && token.Error() != nil {
		log.Printf("publish offline status: %v", token.Error())
	}
	p.client.Disconnect(250)
}
