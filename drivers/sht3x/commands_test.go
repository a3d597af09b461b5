package sht3x

import (
	"testing"
	"time"
)

func TestSingleShotCodes(t *testing.T) {
	cases := []struct {
		name string
		rpt  Repeatability
		cs   ClockStretch
		want uint16
	}{
		{"high/stretch", RepeatabilityHigh, StretchEnabled, 0x2C06},
		{"medium/stretch", RepeatabilityMedium, StretchEnabled, 0x2C0D},
		{"low/stretch", RepeatabilityLow, StretchEnabled, 0x2C10},
		{"high/no-stretch", RepeatabilityHigh, StretchDisabled, 0x2400},
		{"medium/no-stretch", RepeatabilityMedium, StretchDisabled, 0x240B},
		{"low/no-stretch", RepeatabilityLow, StretchDisabled, 0x2416},
	}
	for _, tc := range cases {
		c := singleShot(tc.rpt, tc.cs)
		if c.code != tc.want {
			t.Errorf("%s: code = 0x%04X, want 0x%04X", tc.name, c.code, tc.want)
		}
		if c.respLen != 6 {
			t.Errorf("%s: respLen = %d, want 6", tc.name, c.respLen)
		}
		// Pure function: a second lookup yields the identical command.
		if again := singleShot(tc.rpt, tc.cs); again != c {
			t.Errorf("%s: repeated encode differs: %+v vs %+v", tc.name, again, c)
		}
	}
}

func TestControlCommands(t *testing.T) {
	cases := []struct {
		name string
		cmd  command
		code uint16
		resp int
	}{
		{"read status", cmdReadStatus, 0xF32D, 3},
		{"clear status", cmdClearStatus, 0x3041, 0},
		{"soft reset", cmdSoftReset, 0x30A2, 0},
	}
	for _, tc := range cases {
		if tc.cmd.code != tc.code {
			t.Errorf("%s: code = 0x%04X, want 0x%04X", tc.name, tc.cmd.code, tc.code)
		}
		if tc.cmd.respLen != tc.resp {
			t.Errorf("%s: respLen = %d, want %d", tc.name, tc.cmd.respLen, tc.resp)
		}
	}
}

func TestConversionTimes(t *testing.T) {
	cases := []struct {
		rpt  Repeatability
		want time.Duration
	}{
		{RepeatabilityLow, 4 * time.Millisecond},
		{RepeatabilityMedium, 6 * time.Millisecond},
		{RepeatabilityHigh, 15 * time.Millisecond},
	}
	for _, tc := range cases {
		if got := tc.rpt.conversionTime(); got != tc.want {
			t.Errorf("conversionTime(%d) = %v, want %v", tc.rpt, got, tc.want)
		}
	}
}
