package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/google/shlex"
	"github.com/spf13/cobra"

	"sht3x-go/drivers/sht3x"
)

// deviceOps is the subset of the driver the shell dispatches to; tests
// inject a fake.
type deviceOps interface {
	Measure(rpt sht3x.Repeatability, cs sht3x.ClockStretch) (sht3x.Measurement, error)
	Status() (sht3x.StatusRegister, error)
	ClearStatus() error
	SoftReset() error
}

func sht3xDefaults() (sht3x.Repeatability, sht3x.ClockStretch) {
	return sht3x.RepeatabilityHigh, sht3x.StretchDisabled
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive session against the sensor",
	Long: `Open the transport once and accept commands on stdin:

  measure [low|medium|high] [stretch]
  status
  clear
  reset
  quit`,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	dev, closer, err := openDevice()
	if err != nil {
		return err
	}
	defer closer.Close()

	sc := bufio.NewScanner(os.Stdin)
	fmt.Print("sht3x> ")
	for sc.Scan() {
		words, err := shlex.Split(sc.Text())
		if err != nil {
			fmt.Printf("parse: %v\n", err)
			fmt.Print("sht3x> ")
			continue
		}
		if len(words) == 0 {
			fmt.Print("sht3x> ")
			continue
		}
		if done := dispatch(dev, words); done {
			return nil
		}
		fmt.Print("sht3x> ")
	}
	return sc.Err()
}

// dispatch runs one shell command. Returns true when the session should end.
func dispatch(dev deviceOps, words []string) bool {
	switch strings.ToLower(words[0]) {
	case "quit", "exit":
		return true
	case "measure":
		rpt, cs := sht3xDefaults()
		for _, arg := range words[1:] {
			switch strings.ToLower(arg) {
			case "stretch":
				cs = stretchMode(true)
			default:
				r, err := parseRepeatability(arg)
				if err != nil {
					fmt.Println(err)
					return false
				}
				rpt = r
			}
		}
		m, err := dev.Measure(rpt, cs)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return false
		}
		printMeasurement(m)
	case "status":
		reg, err := dev.Status()
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return false
		}
		printStatus(reg)
	case "clear":
		if err := dev.ClearStatus(); err != nil {
			fmt.Printf("error: %v\n", err)
		}
	case "reset":
		if err := dev.SoftReset(); err != nil {
			fmt.Printf("error: %v\n", err)
		}
	case "help":
		fmt.Println("commands: measure [low|medium|high] [stretch], status, clear, reset, quit")
	default:
		fmt.Printf("unknown command %q (try help)\n", words[0])
	}
	return false
}
