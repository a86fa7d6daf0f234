package domain

import (
	"net"
	"strings"
)

// StationFlags mirrors the per-station WLAN_STA_* flag set.
type StationFlags uint32

const (
	StaAuth StationFlags = 1 << iota
	StaAssoc
	StaWMM
	StaS1G
)

func (f StationFlags) Has(flag StationFlags) bool {
	return f&flag == flag
}

func (f StationFlags) String() string {
	var parts []string
	if f.Has(StaAuth) {
		parts = append(parts, "AUTH")
	}
	if f.Has(StaAssoc) {
		parts = append(parts, "ASSOC")
	}
	if f.Has(StaWMM) {
		parts = append(parts, "WMM")
	}
	if f.Has(StaS1G) {
		parts = append(parts, "S1G")
	}
	return "[" + strings.Join(parts, "][") + "]"
}

// StationRecord is an associated (or associating) client. S1GCap is owned
// by the station and allocated lazily on the first advertised capability.
type StationRecord struct {
	Addr   net.HardwareAddr
	Flags  StationFlags
	S1GCap *S1GCapabilities
}

// NewStationRecord copies addr so the caller's frame buffer can be reused.
func NewStationRecord(addr net.HardwareAddr) *StationRecord {
	a := make(net.HardwareAddr, len(addr))
	copy(a, addr)
	return &StationRecord{Addr: a}
}

// Snapshot returns a detached view safe to hand to other goroutines.
func (s *StationRecord) Snapshot() StationSnapshot {
	snap := StationSnapshot{
		Addr:  s.Addr.String(),
		Flags: s.Flags.String(),
		S1G:   s.Flags.Has(StaS1G),
	}
	if s.S1GCap != nil {
		snap.S1GCap = s.S1GCap.String()
	}
	return snap
}

// StationSnapshot is the JSON view of a station.
type StationSnapshot struct {
	Addr   string `json:"addr"`
	Flags  string `json:"flags"`
	S1G    bool   `json:"s1g"`
	S1GCap string `json:"s1g_cap,omitempty"`
}
