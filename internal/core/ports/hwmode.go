package ports

import "github.com/lcalzada-xor/s1gap/internal/core/domain"

// HardwareModeProvider exposes the channel tables discovered for the radio.
// Tables are populated before bring-up and are read-only afterwards.
type HardwareModeProvider interface {
	// ActiveMode returns the currently selected mode, if any.
	ActiveMode() (*domain.HardwareMode, bool)

	// LookupChannel finds channel n in mode.
	LookupChannel(mode *domain.HardwareMode, n int) (*domain.ChannelDescriptor, bool)
}
