package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"sht3x-go/drivers/sht3x"
)

var (
	repeatability string
	clockStretch  bool
	watchInterval time.Duration
)

var measureCmd = &cobra.Command{
	Use:   "measure",
	Short: "Take a single-shot temperature/humidity measurement",
	RunE:  runMeasure,
}

func init() {
	measureCmd.Flags().StringVarP(&repeatability, "repeatability", "r", "high", "measurement repeatability (low, medium, high)")
	measureCmd.Flags().BoolVar(&clockStretch, "stretch", false, "use I2C clock stretching instead of a host-side wait")
	measureCmd.Flags().DurationVarP(&watchInterval, "watch", "w", 0, "repeat at this interval (0 = once)")
	rootCmd.AddCommand(measureCmd)
}

func runMeasure(cmd *cobra.Command, args []string) error {
	rpt, err := parseRepeatability(repeatability)
	if err != nil {
		return err
	}
	dev, closer, err := openDevice()
	if err != nil {
		return err
	}
	defer closer.Close()

	for {
		m, err := dev.Measure(rpt, stretchMode(clockStretch))
		if err != nil {
			if watchInterval == 0 {
				return err
			}
			fmt.Printf("error: %v\n", err)
		} else {
			printMeasurement(m)
		}
		if watchInterval == 0 {
			return nil
		}
		time.Sleep(watchInterval)
	}
}

func printMeasurement(m sht3x.Measurement) {
	fmt.Printf("%.2f °C  %.2f %%RH  (raw 0x%04X / 0x%04X)\n",
		m.Celsius(), m.RelHumidity(), m.RawTemperature, m.RawHumidity)
}
