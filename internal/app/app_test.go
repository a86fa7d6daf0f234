package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/lcalzada-xor/s1gap/internal/config"
	"github.com/lcalzada-xor/s1gap/internal/core/domain"
	"github.com/lcalzada-xor/s1gap/internal/core/services/s1g"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Addr = "127.0.0.1:0"
	cfg.Persistence = false
	cfg.DBPath = filepath.Join(t.TempDir(), "s1gap.db")
	return cfg
}

func mgmtFrame(fc byte, sa []byte, body ...byte) []byte {
	ap := []byte{0x02, 0, 0, 0, 0x03, 0}
	f := []byte{fc, 0, 0, 0}
	f = append(f, ap...)
	f = append(f, sa...)
	f = append(f, ap...)
	f = append(f, 0, 0)
	return append(f, body...)
}

func TestNew_S1GBringUp(t *testing.T) {
	cfg := testConfig(t)
	cfg.Channel = 17
	cfg.S1GOperChannel = 18

	app, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer app.Close()

	assert.NotEmpty(t, app.RunID)
	st := app.Service.Interface()
	assert.True(t, st.S1GEnabled)
	assert.Equal(t, "Active", st.S1GState)
	assert.Equal(t, domain.Width1MHz, st.S1GPrimaryWidth)
	assert.Equal(t, domain.Width2MHz, st.S1GOperWidth)
}

func TestNew_ConfigurationErrorIsFatal(t *testing.T) {
	cfg := testConfig(t)
	cfg.Channel = 52

	_, err := New(context.Background(), cfg)
	require.Error(t, err)

	var cerr *s1g.ConfigurationError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, 52, cerr.Channel)
	assert.ErrorIs(t, err, s1g.ErrChannelNotFound)
}

func TestNew_NonS1GModeSkipped(t *testing.T) {
	cfg := testConfig(t)
	cfg.HwMode = "g"

	app, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer app.Close()

	assert.False(t, app.Interface.S1GEnabled)
	assert.Equal(t, "Inactive", app.Initializer.State().String())
}

func TestNew_UnknownModeHasNoActiveTable(t *testing.T) {
	cfg := testConfig(t)
	cfg.HwMode = "a" // not in the built-in tables

	app, err := New(context.Background(), cfg)
	require.NoError(t, err, "non-S1G interfaces never consult the table")
	app.Close()
}

func TestApplication_StationsArePersisted(t *testing.T) {
	cfg := testConfig(t)
	cfg.Persistence = true

	app, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer app.Close()

	ctx, cancel := context.WithCancel(context.Background())
	app.PersistenceManager.Start(ctx)

	sta := []byte{0x02, 0, 0, 0, 0, 0x07}
	peer := make([]byte, domain.S1GCapabilitiesLen)
	peer[0] = 0x01

	require.NoError(t, app.Dispatcher.HandleFrame(mgmtFrame(0xB0, sta, 0, 0, 1, 0, 0, 0)))
	assoc := mgmtFrame(0x00, sta, 0x01, 0x00, 0x0a, 0x00)
	assoc = append(assoc, 217, byte(len(peer)))
	assoc = append(assoc, peer...)
	require.NoError(t, app.Dispatcher.HandleFrame(assoc))

	cancel()
	select {
	case <-app.PersistenceManager.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("persistence did not flush")
	}

	stored, err := app.Storage.GetStation(context.Background(), "02:00:00:00:00:07")
	require.NoError(t, err)
	assert.True(t, stored.S1G)
	assert.Equal(t, "010000000000000000000000000000", stored.S1GCap)

	snap, err := app.Service.Station(context.Background(), "02:00:00:00:00:07")
	require.NoError(t, err)
	assert.Contains(t, snap.Flags, "[ASSOC]")
}
