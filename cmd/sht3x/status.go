package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sht3x-go/drivers/sht3x"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Read and decode the sensor status register",
	RunE: func(cmd *cobra.Command, args []string) error {
		dev, closer, err := openDevice()
		if err != nil {
			return err
		}
		defer closer.Close()

		reg, err := dev.Status()
		if err != nil {
			return err
		}
		printStatus(reg)
		return nil
	},
}

var clearStatusCmd = &cobra.Command{
	Use:   "clear-status",
	Short: "Clear the alert and reset flags in the status register",
	RunE: func(cmd *cobra.Command, args []string) error {
		dev, closer, err := openDevice()
		if err != nil {
			return err
		}
		defer closer.Close()
		return dev.ClearStatus()
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Issue a soft reset",
	Long: `Issue a soft reset. The sensor needs roughly 1.5 ms to settle before it
accepts the next command; this tool does not wait for it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dev, closer, err := openDevice()
		if err != nil {
			return err
		}
		defer closer.Close()
		return dev.SoftReset()
	},
}

func init() {
	rootCmd.AddCommand(statusCmd, clearStatusCmd, resetCmd)
}

func printStatus(reg sht3x.StatusRegister) {
	fmt.Printf("status: 0x%04X\n", reg.Word())
	flags := []struct {
		name string
		flag sht3x.StatusRegister
	}{
		{"alert pending", sht3x.StatusAlertPending},
		{"heater on", sht3x.StatusHeaterOn},
		{"RH tracking alert", sht3x.StatusRHTrackingAlert},
		{"T tracking alert", sht3x.StatusTTrackingAlert},
		{"reset detected", sht3x.StatusResetDetected},
		{"last command failed", sht3x.StatusCommandFailed},
		{"last write checksum failed", sht3x.StatusChecksumFailed},
	}
	for _, f := range flags {
		fmt.Printf("  %-28s %v\n", f.name, reg.Has(f.flag))
	}
}
