// Package exporter polls an SHT3x sensor on a fixed interval and publishes
// readings over MQTT.
package exporter

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"sht3x-go/bus/sc18im"
	"sht3x-go/drivers/sht3x"
	"sht3x-go/errcode"
	"sht3x-go/x/mathx"
)

// Measurer is what the service needs from the driver.
type Measurer interface {
	Measure(rpt sht3x.Repeatability, cs sht3x.ClockStretch) (sht3x.Measurement, error)
}

// Service owns one sensor and one publisher. It is not safe for concurrent
// Run calls; the sensor bus is a non-reentrant resource.
type Service struct {
	dev      Measurer
	pub      Publisher
	prefix   string
	rpt      sht3x.Repeatability
	cs       sht3x.ClockStretch
	interval time.Duration
}

// NewService wires a driver and a publisher according to cfg.
func NewService(dev Measurer, pub Publisher, cfg *Config) (*Service, error) {
	rpt, err := ParseRepeatability(cfg.Sensor.Repeatability)
	if err != nil {
		return nil, err
	}
	return &Service{
		dev:      dev,
		pub:      pub,
		prefix:   cfg.MQTT.TopicPrefix,
		rpt:      rpt,
		cs:       cfg.Sensor.Stretch(),
		interval: cfg.Sensor.Interval(),
	}, nil
}

// reading is the JSON payload published per successful measurement.
type reading struct {
	TemperatureC   float64 `json:"temperature_c"`
	HumidityRH     float64 `json:"humidity_rh"`
	RawTemperature uint16  `json:"raw_temperature"`
	RawHumidity    uint16  `json:"raw_humidity"`
	TsMs           int64   `json:"ts_ms"`
}

// Run polls until ctx is cancelled. The first sample is taken immediately.
func (s *Service) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Poll()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Poll()
		}
	}
}

// Poll takes one measurement and publishes either a reading or an error
// code. A failed cycle never stops the loop; the sensor may recover.
func (s *Service) Poll() {
	m, err := s.dev.Measure(s.rpt, s.cs)
	if err != nil {
		log.Printf("measure: %v", err)
		if perr := s.pub.Publish(s.prefix+"/error", []byte(codeOf(err)), false); perr != nil {
			log.Printf("publish error topic: %v", perr)
		}
		return
	}

	// Reported range is bounded to the sensor's rated span; raw counts
	// stay untouched for consumers that want the unclipped values.
	centiT := mathx.Clamp(m.CentiCelsius(), -4500, 13000)
	centiRH := mathx.Clamp(m.CentiRelHumidity(), 0, 10000)

	payload, err := json.Marshal(reading{
		TemperatureC:   float64(centiT) / 100,
		HumidityRH:     float64(centiRH) / 100,
		RawTemperature: m.RawTemperature,
		RawHumidity:    m.RawHumidity,
		TsMs:           time.Now().UnixMilli(),
	})
	if err != nil {
		log.Printf("encode reading: %v", err)
		return
	}
	if err := s.pub.Publish(s.prefix+"/reading", payload, false); err != nil {
		log.Printf("publish reading: %v", err)
	}
}

// codeOf maps a driver error onto a stable code for the error topic.
func codeOf(err error) errcode.Code {
	var ce sht3x.ChecksumError
	if errors.As(err, &ce) {
		return errcode.ChecksumMismatch
	}
	var le sht3x.LengthError
	if errors.As(err, &le) {
		return errcode.MalformedResponse
	}
	switch {
	case errors.Is(err, sc18im.ErrNack):
		return errcode.Nack
	case errors.Is(err, sc18im.ErrTimeout):
		return errcode.Timeout
	}
	return errcode.Transport
}
