package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/lcalzada-xor/s1gap/internal/adapters/capture"
	"github.com/lcalzada-xor/s1gap/internal/adapters/replay"
	"github.com/lcalzada-xor/s1gap/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assocFrame(s1gCap []byte) []byte {
	ap := []byte{0x02, 0, 0, 0, 0x03, 0}
	f := []byte{0x00, 0, 0, 0}
	f = append(f, ap...)
	f = append(f, fuzzStation...)
	f = append(f, ap...)
	f = append(f, 0, 0, 0x01, 0x00, 0x0a, 0x00)
	f = append(f, 217, byte(len(s1gCap)))
	return append(f, s1gCap...)
}

func writeInput(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestNewHarness(t *testing.T) {
	h, err := newHarness()
	require.NoError(t, err)

	assert.False(t, h.iface.S1GEnabled)
	sta, ok := h.stations.Get(fuzzStation)
	require.True(t, ok)
	assert.True(t, sta.Flags.Has(domain.StaAssoc|domain.StaWMM))
}

func TestHarness_StoresButDoesNotAdvertiseOnG(t *testing.T) {
	h, err := newHarness()
	require.NoError(t, err)

	caps := make([]byte, domain.S1GCapabilitiesLen)
	caps[0] = 0x02
	require.NoError(t, h.dispatcher.HandleFrame(assocFrame(caps)))

	sta, _ := h.stations.Get(fuzzStation)
	require.NotNil(t, sta.S1GCap)
	assert.Equal(t, caps, sta.S1GCap.Bytes())
}

func TestRun(t *testing.T) {
	caps := make([]byte, domain.S1GCapabilitiesLen)
	multi, err := replay.Encode(assocFrame(caps), []byte("junk"))
	require.NoError(t, err)

	tests := []struct {
		name string
		args func(t *testing.T) []string
		code int
	}{
		{"single frame", func(t *testing.T) []string {
			return []string{writeInput(t, assocFrame(caps))}
		}, 0},
		{"multi frame", func(t *testing.T) []string {
			return []string{"-m", writeInput(t, multi)}
		}, 0},
		{"truncated multi frame", func(t *testing.T) []string {
			return []string{"-m", writeInput(t, []byte{0x00, 0x05, 'A', 'B'})}
		}, 0},
		{"missing file", func(t *testing.T) []string {
			return []string{filepath.Join(t.TempDir(), "nope")}
		}, 1},
		{"no arguments", func(t *testing.T) []string { return nil }, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			assert.Equal(t, tt.code, run(tt.args(t), &out, &errOut))
		})
	}
}

func TestRun_WritesPcap(t *testing.T) {
	caps := make([]byte, domain.S1GCapabilitiesLen)
	multi, err := replay.Encode(assocFrame(caps), []byte("ABC"))
	require.NoError(t, err)
	pcapPath := filepath.Join(t.TempDir(), "out.pcap")

	var out, errOut bytes.Buffer
	require.Equal(t, 0, run([]string{"-m", "-w", pcapPath, writeInput(t, multi)}, &out, &errOut))

	n, err := capture.ReadFile(pcapPath, func([]byte, bool) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
