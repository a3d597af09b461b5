// Command sht3x-exporter polls an SHT3x sensor and publishes readings to an
// MQTT broker, configured via a YAML file.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os/signal"
	"syscall"

	"tinygo.org/x/drivers"

	"sht3x-go/bus/i2chost"
	"sht3x-go/bus/sc18im"
	"sht3x-go/drivers/sht3x"
	"sht3x-go/services/exporter"
)

func main() {
	configPath := flag.String("config", "/etc/sht3x-exporter.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := exporter.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bus, closer, err := openBus(cfg.Sensor)
	if err != nil {
		log.Fatalf("transport: %v", err)
	}
	defer closer.Close()

	dev := sht3x.New(bus, sht3x.Config{Address: cfg.Sensor.Address})

	pub, err := exporter.NewMQTTPublisher(cfg.MQTT)
	if err != nil {
		log.Fatalf("mqtt: %v", err)
	}
	defer pub.Close()

	svc, err := exporter.NewService(dev, pub, cfg)
	if err != nil {
		log.Fatalf("service: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("polling every %s, publishing under %q", cfg.Sensor.Interval(), cfg.MQTT.TopicPrefix)
	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("run: %v", err)
	}
	log.Print("shutting down")
}

func openBus(cfg exporter.SensorConfig) (drivers.I2C, io.Closer, error) {
	if cfg.SerialPort != "" {
		b, err := sc18im.Open(cfg.SerialPort, cfg.BaudRate)
		if err != nil {
			return nil, nil, err
		}
		return b, b, nil
	}
	b, err := i2chost.Open(cfg.Bus)
	if err != nil {
		return nil, nil, err
	}
	return b, b, nil
}
