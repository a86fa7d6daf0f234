package s1g

import (
	"errors"
	"fmt"
)

// Sentinel errors for bandwidth resolution and capability storage.
var (
	// ErrNoActiveMode indicates hardware discovery has not selected a mode yet
	ErrNoActiveMode = errors.New("no active hardware mode")

	// ErrChannelNotFound indicates the active mode has no such channel
	ErrChannelNotFound = errors.New("channel not found in active mode")

	// ErrChannelDisabled indicates the channel exists but regulatory rules disable it
	ErrChannelDisabled = errors.New("channel disabled")

	// ErrUnsupportedBandwidth indicates the channel allows neither 1MHz nor 2MHz
	ErrUnsupportedBandwidth = errors.New("unsupported channel bandwidth")

	// ErrAllocationFailure indicates a capability record could not be allocated
	ErrAllocationFailure = errors.New("capability record allocation failed")
)

// ConfigurationError is fatal to interface bring-up.
type ConfigurationError struct {
	Op      string // "primary" or "operating"
	Channel int
	Err     error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("s1g %s channel %d: %v", e.Op, e.Channel, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
