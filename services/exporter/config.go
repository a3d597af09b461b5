package exporter

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"sht3x-go/drivers/sht3x"
)

// Config is the exporter's YAML-backed configuration.
type Config struct {
	MQTT   MQTTConfig   `yaml:"mqtt"`
	Sensor SensorConfig `yaml:"sensor"`
}

// MQTTConfig contains broker connection settings.
type MQTTConfig struct {
	Broker      string `yaml:"broker"`
	Port        int    `yaml:"port"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	ClientID    string `yaml:"client_id"`
	TopicPrefix string `yaml:"topic_prefix"`
	KeepAlive   int    `yaml:"keep_alive"` // seconds
}

// SensorConfig selects the bus, address and acquisition mode.
type SensorConfig struct {
	// Bus is a periph.io bus name (e.g. "/dev/i2c-1", "1"); empty picks
	// the first available host bus.
	Bus string `yaml:"bus"`
	// SerialPort, when set, routes the sensor through an SC18IM704
	// UART-to-I2C bridge instead of a native bus.
	SerialPort string `yaml:"serial_port"`
	BaudRate   int    `yaml:"baud_rate"`

	Address         uint16 `yaml:"address"`       // 0x44 or 0x45
	Repeatability   string `yaml:"repeatability"` // low | medium | high
	ClockStretching bool   `yaml:"clock_stretching"`
	PollInterval    int    `yaml:"poll_interval"` // seconds
}

// LoadConfig reads and validates the configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.MQTT.Port == 0 {
		c.MQTT.Port = 1883
	}
	if c.MQTT.ClientID == "" {
		c.MQTT.ClientID = "sht3x-exporter"
	}
	if c.MQTT.TopicPrefix == "" {
		c.MQTT.TopicPrefix = "sht3x"
	}
	if c.MQTT.KeepAlive == 0 {
		c.MQTT.KeepAlive = 60
	}
	if c.Sensor.Address == 0 {
		c.Sensor.Address = sht3x.AddressLow
	}
	if c.Sensor.Repeatability == "" {
		c.Sensor.Repeatability = "high"
	}
	if c.Sensor.PollInterval == 0 {
		c.Sensor.PollInterval = 10
	}
}

func (c *Config) validate() error {
	if c.MQTT.Broker == "" {
		return fmt.Errorf("config: mqtt.broker is required")
	}
	if a := c.Sensor.Address; a != sht3x.AddressLow && a != sht3x.AddressHigh {
		return fmt.Errorf("config: sensor.address 0x%02X is not 0x44 or 0x45", a)
	}
	if _, err := ParseRepeatability(c.Sensor.Repeatability); err != nil {
		return err
	}
	if c.Sensor.PollInterval < 1 {
		return fmt.Errorf("config: sensor.poll_interval must be at least 1s")
	}
	return nil
}

// ParseRepeatability maps the config string onto the driver type.
func ParseRepeatability(s string) (sht3x.Repeatability, error) {
	switch s {
	case "low":
		return sht3x.RepeatabilityLow, nil
	case "medium":
		return sht3x.RepeatabilityMedium, nil
	case "high":
		return sht3x.RepeatabilityHigh, nil
	default:
		return 0, fmt.Errorf("config: unknown repeatability %q", s)
	}
}

// Interval returns the poll interval as a duration.
func (s SensorConfig) Interval() time.Duration {
	return time.Duration(s.PollInterval) * time.Second
}

// Stretch returns the configured clock-stretching mode.
func (s SensorConfig) Stretch() sht3x.ClockStretch {
	if s.ClockStretching {
		return sht3x.StretchEnabled
	}
	return sht3x.StretchDisabled
}
