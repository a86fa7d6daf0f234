package s1g

import (
	"fmt"
	"log/slog"

	"github.com/lcalzada-xor/s1gap/internal/core/domain"
	"github.com/lcalzada-xor/s1gap/internal/telemetry"
)

// InitState is the S1G state of an interface.
type InitState int

const (
	StateInactive InitState = iota
	StateActive
)

func (s InitState) String() string {
	if s == StateActive {
		return "Active"
	}
	return "Inactive"
}

// Initializer performs the one-shot S1G part of interface bring-up.
type Initializer struct {
	resolver *Resolver
	state    InitState
}

// NewInitializer creates an Initializer in the Inactive state.
func NewInitializer(resolver *Resolver) *Initializer {
	return &Initializer{resolver: resolver}
}

// State returns the current S1G state.
func (i *Initializer) State() InitState {
	return i.state
}

// Init fixes the primary and operating channels and their widths. Interfaces
// not configured for hw_mode=ah are left untouched. Widths are only published
// when both channels resolve; a failure returns a *ConfigurationError.
//
// Whether the primary channel lies inside the operating channel is not checked.
func (i *Initializer) Init(cfg *domain.InterfaceConfig) error {
	if !cfg.IsS1G() {
		telemetry.BringupTotal.WithLabelValues(cfg.Name, telemetry.ResultSkipped).Inc()
		return nil
	}

	cfg.S1GEnabled = true

	if cfg.S1GOperChannel == 0 {
		cfg.S1GOperChannel = cfg.Channel
	}

	primary, err := i.resolver.Resolve(cfg.Channel)
	if err != nil {
		telemetry.BringupTotal.WithLabelValues(cfg.Name, telemetry.ResultError).Inc()
		return &ConfigurationError{Op: "primary", Channel: cfg.Channel, Err: err}
	}
	oper, err := i.resolver.Resolve(cfg.S1GOperChannel)
	if err != nil {
		telemetry.BringupTotal.WithLabelValues(cfg.Name, telemetry.ResultError).Inc()
		return &ConfigurationError{Op: "operating", Channel: cfg.S1GOperChannel, Err: err}
	}

	cfg.S1GPrimaryWidth = primary
	cfg.S1GOperWidth = oper
	i.state = StateActive
	telemetry.BringupTotal.WithLabelValues(cfg.Name, telemetry.ResultOK).Inc()

	slog.Debug(fmt.Sprintf("S1G chose primary %d @ %dMHz operating in %d @ %dMHz",
		cfg.Channel, int(primary), cfg.S1GOperChannel, int(oper)),
		"interface", cfg.Name,
		"primary", cfg.Channel, "primary_mhz", int(primary),
		"operating", cfg.S1GOperChannel, "operating_mhz", int(oper))
	return nil
}
