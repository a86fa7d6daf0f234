package hwmode

import (
	"errors"
	"fmt"
	"sync"

	"github.com/lcalzada-xor/s1gap/internal/core/domain"
	"github.com/lcalzada-xor/s1gap/internal/core/ports"
)

var ErrModeNotAvailable = errors.New("hardware mode not available")

// StaticProvider serves channel tables that were discovered (or loaded)
// before bring-up.
type StaticProvider struct {
	mu     sync.RWMutex
	modes  []domain.HardwareMode
	active int // index into modes, -1 if none
}

// NewStaticProvider creates a provider with no active mode.
func NewStaticProvider(modes ...domain.HardwareMode) *StaticProvider {
	return &StaticProvider{modes: modes, active: -1}
}

// SetActive selects the mode used for subsequent lookups.
func (p *StaticProvider) SetActive(mode domain.HwModeType) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.modes {
		if p.modes[i].Mode == mode {
			p.active = i
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrModeNotAvailable, mode)
}

// ActiveMode implements ports.HardwareModeProvider.
func (p *StaticProvider) ActiveMode() (*domain.HardwareMode, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.active < 0 {
		return nil, false
	}
	return &p.modes[p.active], true
}

// LookupChannel implements ports.HardwareModeProvider. Disabled channels are
// returned with their flag set; rejecting them is up to the caller.
func (p *StaticProvider) LookupChannel(mode *domain.HardwareMode, n int) (*domain.ChannelDescriptor, bool) {
	return mode.Channel(n)
}

// Modes returns the available modes.
func (p *StaticProvider) Modes() []domain.HwModeType {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]domain.HwModeType, len(p.modes))
	for i, m := range p.modes {
		out[i] = m.Mode
	}
	return out
}

// Ensure interface compliance
var _ ports.HardwareModeProvider = (*StaticProvider)(nil)
