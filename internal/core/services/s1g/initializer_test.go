package s1g

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/lcalzada-xor/s1gap/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCfg(t *testing.T, mode domain.HwModeType, channel, oper int) *domain.InterfaceConfig {
	cfg, err := domain.NewInterfaceConfig("wlan0", mode, channel, oper)
	require.NoError(t, err)
	return cfg
}

func TestInit_OperatingDefaultsToPrimary(t *testing.T) {
	hw := s1gMode(ch(36, domain.BW1MHz))
	ini := NewInitializer(NewResolver(hw))
	cfg := newCfg(t, domain.ModeIEEE80211AH, 36, 0)

	require.NoError(t, ini.Init(cfg))

	assert.True(t, cfg.S1GEnabled)
	assert.Equal(t, 36, cfg.S1GOperChannel)
	assert.Equal(t, domain.Width1MHz, cfg.S1GPrimaryWidth)
	assert.Equal(t, domain.Width1MHz, cfg.S1GOperWidth)
	assert.Equal(t, StateActive, ini.State())
}

func TestInit_ChannelMissing(t *testing.T) {
	hw := s1gMode(ch(1, domain.BW1MHz))
	ini := NewInitializer(NewResolver(hw))
	cfg := newCfg(t, domain.ModeIEEE80211AH, 36, 0)

	err := ini.Init(cfg)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "primary", cfgErr.Op)
	assert.ErrorIs(t, err, ErrChannelNotFound)
	assert.Equal(t, StateInactive, ini.State())
	assert.Equal(t, domain.WidthUnknown, cfg.S1GPrimaryWidth)
	assert.Equal(t, domain.WidthUnknown, cfg.S1GOperWidth)
}

func TestInit_OperatingFailureDoesNotPublishPrimary(t *testing.T) {
	hw := s1gMode(ch(17, domain.BW1MHz), ch(22, domain.BW4MHz))
	ini := NewInitializer(NewResolver(hw))
	cfg := newCfg(t, domain.ModeIEEE80211AH, 17, 22)

	err := ini.Init(cfg)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "operating", cfgErr.Op)
	assert.Equal(t, 22, cfgErr.Channel)
	assert.ErrorIs(t, err, ErrUnsupportedBandwidth)
	assert.Equal(t, domain.WidthUnknown, cfg.S1GPrimaryWidth)
	assert.Equal(t, StateInactive, ini.State())
}

func TestInit_NoActiveMode(t *testing.T) {
	ini := NewInitializer(NewResolver(&fakeHW{}))
	cfg := newCfg(t, domain.ModeIEEE80211AH, 1, 0)

	assert.ErrorIs(t, ini.Init(cfg), ErrNoActiveMode)
	assert.Equal(t, StateInactive, ini.State())
}

func TestInit_NonS1GModeIsNoop(t *testing.T) {
	ini := NewInitializer(NewResolver(&fakeHW{}))
	cfg := newCfg(t, domain.ModeIEEE80211G, 1, 0)

	require.NoError(t, ini.Init(cfg))

	assert.False(t, cfg.S1GEnabled)
	assert.Equal(t, 0, cfg.S1GOperChannel)
	assert.Equal(t, StateInactive, ini.State())
}

func TestInit_PrimaryInsideOperating(t *testing.T) {
	// 1MHz primary on 17 inside the 2MHz operating channel 18.
	hw := s1gMode(ch(17, domain.BW1MHz), ch(18, domain.BW2MHz))
	ini := NewInitializer(NewResolver(hw))
	cfg := newCfg(t, domain.ModeIEEE80211AH, 17, 18)

	require.NoError(t, ini.Init(cfg))
	assert.Equal(t, domain.Width1MHz, cfg.S1GPrimaryWidth)
	assert.Equal(t, domain.Width2MHz, cfg.S1GOperWidth)
}

func TestInit_LogsChosenChannels(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	hw := s1gMode(ch(17, domain.BW1MHz), ch(18, domain.BW2MHz))
	ini := NewInitializer(NewResolver(hw))
	require.NoError(t, ini.Init(newCfg(t, domain.ModeIEEE80211AH, 17, 18)))

	assert.Contains(t, buf.String(), "S1G chose primary 17 @ 1MHz operating in 18 @ 2MHz")
}

func TestInit_MismatchedSpansAccepted(t *testing.T) {
	// Channel 1 is nowhere near channel 50; bring-up still succeeds.
	hw := s1gMode(ch(1, domain.BW1MHz), ch(50, domain.BW2MHz))
	ini := NewInitializer(NewResolver(hw))
	cfg := newCfg(t, domain.ModeIEEE80211AH, 1, 50)

	require.NoError(t, ini.Init(cfg))
	assert.Equal(t, StateActive, ini.State())
	assert.Equal(t, 50, cfg.S1GOperChannel)
}
