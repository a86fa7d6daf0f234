package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Width is a resolved S1G channel width in MHz.
type Width uint8

const (
	WidthUnknown Width = 0
	Width1MHz    Width = 1
	Width2MHz    Width = 2
)

func (w Width) String() string {
	switch w {
	case Width1MHz:
		return "1MHz"
	case Width2MHz:
		return "2MHz"
	}
	return "unknown"
}

// BandwidthMask holds the channel widths a channel may be operated at.
type BandwidthMask uint8

const (
	BW1MHz BandwidthMask = 1 << iota
	BW2MHz
	BW4MHz
	BW8MHz
	BW16MHz
)

// Has reports whether every bit of flag is set.
func (m BandwidthMask) Has(flag BandwidthMask) bool {
	return m&flag == flag
}

func (m BandwidthMask) String() string {
	names := []struct {
		bit  BandwidthMask
		name string
	}{
		{BW1MHz, "1MHz"},
		{BW2MHz, "2MHz"},
		{BW4MHz, "4MHz"},
		{BW8MHz, "8MHz"},
		{BW16MHz, "16MHz"},
	}
	var parts []string
	for _, n := range names {
		if m&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// HwModeType identifies a PHY mode (hw_mode in AP configuration).
type HwModeType int

const (
	ModeUnknown HwModeType = iota
	ModeIEEE80211B
	ModeIEEE80211G
	ModeIEEE80211A
	ModeIEEE80211AD
	ModeIEEE80211AH // S1G
)

var ErrUnknownHwMode = errors.New("unknown hw_mode")

var hwModeNames = map[HwModeType]string{
	ModeIEEE80211B:  "b",
	ModeIEEE80211G:  "g",
	ModeIEEE80211A:  "a",
	ModeIEEE80211AD: "ad",
	ModeIEEE80211AH: "ah",
}

func (m HwModeType) String() string {
	if s, ok := hwModeNames[m]; ok {
		return s
	}
	return "unknown"
}

// ParseHwMode converts a hw_mode configuration value ("g", "ah", ...).
func ParseHwMode(s string) (HwModeType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for mode, name := range hwModeNames {
		if name == s {
			return mode, nil
		}
	}
	return ModeUnknown, fmt.Errorf("%w: %q", ErrUnknownHwMode, s)
}

// MarshalText implements encoding.TextMarshaler so modes render as "ah" in JSON.
func (m HwModeType) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *HwModeType) UnmarshalText(text []byte) error {
	parsed, err := ParseHwMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ChannelDescriptor is a hardware-reported channel entry.
type ChannelDescriptor struct {
	Number    int           `json:"chan" yaml:"chan"`
	FreqKHz   int           `json:"freq_khz" yaml:"freq_khz"`
	AllowedBW BandwidthMask `json:"allowed_bw" yaml:"allowed_bw"`
	Disabled  bool          `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// HardwareMode is the channel table of one PHY mode.
type HardwareMode struct {
	Mode     HwModeType          `json:"mode" yaml:"mode"`
	Channels []ChannelDescriptor `json:"channels" yaml:"channels"`
}

// Channel returns the descriptor for channel number n.
func (h *HardwareMode) Channel(n int) (*ChannelDescriptor, bool) {
	if h == nil {
		return nil, false
	}
	for i := range h.Channels {
		if h.Channels[i].Number == n {
			return &h.Channels[i], true
		}
	}
	return nil, false
}
