// Command sht3x probes a Sensirion SHT3x sensor from the command line,
// over a native host I2C bus or an SC18IM704 UART-to-I2C bridge.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"sht3x-go/bus/i2chost"
	"sht3x-go/bus/sc18im"
	"sht3x-go/drivers/sht3x"

	"tinygo.org/x/drivers"
)

var (
	busName    string
	serialPort string
	baudRate   int
	addrHigh   bool
)

var rootCmd = &cobra.Command{
	Use:   "sht3x",
	Short: "SHT3x temperature/humidity sensor tool",
	Long: `sht3x talks to a Sensirion SHT3x-DIS sensor in single-shot mode.

Transport selection:
  Native bus:  --bus /dev/i2c-1     (default: first available host bus)
  UART bridge: --serial /dev/ttyUSB0 [--baud 9600]

The sensor answers at 0x44, or 0x45 with --addr-high.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&busName, "bus", "b", "", "host I2C bus name")
	rootCmd.PersistentFlags().StringVarP(&serialPort, "serial", "s", "", "SC18IM704 bridge serial port")
	rootCmd.PersistentFlags().IntVar(&baudRate, "baud", sc18im.DefaultBaudRate, "bridge baud rate")
	rootCmd.PersistentFlags().BoolVar(&addrHigh, "addr-high", false, "sensor ADDR pin is pulled high (0x45)")
}

// openDevice builds the selected transport and the driver on top of it.
func openDevice() (*sht3x.Device, io.Closer, error) {
	var (
		bus    drivers.I2C
		closer io.Closer
	)
	if serialPort != "" {
		b, err := sc18im.Open(serialPort, baudRate)
		if err != nil {
			return nil, nil, fmt.Errorf("open bridge: %w", err)
		}
		bus, closer = b, b
	} else {
		b, err := i2chost.Open(busName)
		if err != nil {
			return nil, nil, fmt.Errorf("open bus: %w", err)
		}
		bus, closer = b, b
	}
	addr := uint16(sht3x.AddressLow)
	if addrHigh {
		addr = sht3x.AddressHigh
	}
	return sht3x.New(bus, sht3x.Config{Address: addr}), closer, nil
}

func parseRepeatability(s string) (sht3x.Repeatability, error) {
	switch s {
	case "low":
		return sht3x.RepeatabilityLow, nil
	case "medium":
		return sht3x.RepeatabilityMedium, nil
	case "high":
		return sht3x.RepeatabilityHigh, nil
	default:
		return 0, fmt.Errorf("unknown repeatability %q (low, medium, high)", s)
	}
}

func stretchMode(enabled bool) sht3x.ClockStretch {
	if enabled {
		return sht3x.StretchEnabled
	}
	return sht3x.StretchDisabled
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
