package domain

// InterfaceConfig is the per-interface AP state touched during S1G bring-up.
type InterfaceConfig struct {
	Name           string          `json:"name"`
	HwMode         HwModeType      `json:"hw_mode"`
	Channel        int             `json:"channel"`
	S1GOperChannel int             `json:"s1g_oper_channel"` // 0 = same as Channel
	LocalS1GCap    S1GCapabilities `json:"local_s1g_cap"`

	S1GEnabled      bool  `json:"s1g"`
	S1GPrimaryWidth Width `json:"s1g_primary_width"`
	S1GOperWidth    Width `json:"s1g_oper_width"`
}

// NewInterfaceConfig is the factory for creating valid InterfaceConfig entities.
func NewInterfaceConfig(name string, mode HwModeType, channel, operChannel int) (*InterfaceConfig, error) {
	if !IsValidInterface(name) {
		return nil, ErrInvalidInterfaceName
	}
	if channel <= 0 {
		return nil, ErrInvalidChannel
	}
	if operChannel < 0 {
		return nil, ErrInvalidChannel
	}
	return &InterfaceConfig{
		Name:           name,
		HwMode:         mode,
		Channel:        channel,
		S1GOperChannel: operChannel,
	}, nil
}

// IsS1G reports whether the interface is configured for the sub-1GHz mode.
func (c *InterfaceConfig) IsS1G() bool {
	return c.HwMode == ModeIEEE80211AH
}

// InterfaceStatus is the operator view of an interface and its S1G state.
type InterfaceStatus struct {
	InterfaceConfig
	S1GState string `json:"s1g_state"`
}
