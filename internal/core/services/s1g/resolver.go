package s1g

import (
	"log/slog"

	"github.com/lcalzada-xor/s1gap/internal/core/domain"
	"github.com/lcalzada-xor/s1gap/internal/core/ports"
)

// Resolver maps a channel number to the width the hardware allows for it.
type Resolver struct {
	hw ports.HardwareModeProvider
}

// NewResolver creates a Resolver backed by hw.
func NewResolver(hw ports.HardwareModeProvider) *Resolver {
	return &Resolver{hw: hw}
}

// Resolve returns the narrowest recognized width allowed on channel. 1MHz
// wins when both 1MHz and 2MHz are allowed.
func (r *Resolver) Resolve(channel int) (domain.Width, error) {
	mode, ok := r.hw.ActiveMode()
	if !ok || mode == nil {
		slog.Error("s1g: no active hardware mode")
		return domain.WidthUnknown, ErrNoActiveMode
	}

	ch, ok := r.hw.LookupChannel(mode, channel)
	if !ok {
		slog.Error("s1g: channel not found", "channel", channel, "mode", mode.Mode)
		return domain.WidthUnknown, ErrChannelNotFound
	}
	if ch.Disabled {
		slog.Error("s1g: channel disabled", "channel", channel, "mode", mode.Mode)
		return domain.WidthUnknown, ErrChannelDisabled
	}

	switch {
	case ch.AllowedBW&domain.BW1MHz != 0:
		return domain.Width1MHz, nil
	case ch.AllowedBW&domain.BW2MHz != 0:
		return domain.Width2MHz, nil
	}

	slog.Error("s1g: unsupported bandwidth", "channel", channel, "allowed_bw", ch.AllowedBW.String())
	return domain.WidthUnknown, ErrUnsupportedBandwidth
}
