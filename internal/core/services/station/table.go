package station

import (
	"net"
	"sort"
	"sync"

	"github.com/lcalzada-xor/s1gap/internal/core/domain"
)

// Forgetter releases per-station resources when a station is removed.
type Forgetter interface {
	Forget(sta *domain.StationRecord)
}

// Table is the AP's station list.
type Table struct {
	mu       sync.RWMutex
	stations map[string]*domain.StationRecord
	forget   Forgetter
}

// NewTable creates an empty table. forget may be nil.
func NewTable(forget Forgetter) *Table {
	return &Table{
		stations: make(map[string]*domain.StationRecord),
		forget:   forget,
	}
}

// Add returns the station for addr, creating it if needed.
func (t *Table) Add(addr net.HardwareAddr) *domain.StationRecord {
	key := addr.String()
	t.mu.Lock()
	defer t.mu.Unlock()
	if sta, ok := t.stations[key]; ok {
		return sta
	}
	sta := domain.NewStationRecord(addr)
	t.stations[key] = sta
	return sta
}

// Get looks up a station.
func (t *Table) Get(addr net.HardwareAddr) (*domain.StationRecord, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	sta, ok := t.stations[addr.String()]
	return sta, ok
}

// Update runs fn on the station for addr while holding the table lock, so
// readers taking snapshots never observe a half-applied change. It reports
// whether the station exists.
func (t *Table) Update(addr net.HardwareAddr, fn func(sta *domain.StationRecord)) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	sta, ok := t.stations[addr.String()]
	if !ok {
		return false
	}
	fn(sta)
	return true
}

// Remove deletes a station and releases its capability record. Forget runs
// after the table lock is released.
func (t *Table) Remove(addr net.HardwareAddr) bool {
	t.mu.Lock()
	sta, ok := t.stations[addr.String()]
	if ok {
		delete(t.stations, addr.String())
	}
	t.mu.Unlock()

	if ok && t.forget != nil {
		t.forget.Forget(sta)
	}
	return ok
}

// Len returns the number of stations.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.stations)
}

// Snapshot returns all stations sorted by address.
func (t *Table) Snapshot() []domain.StationSnapshot {
	t.mu.RLock()
	out := make([]domain.StationSnapshot, 0, len(t.stations))
	for _, sta := range t.stations {
		out = append(out, sta.Snapshot())
	}
	t.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Addr < out[j].Addr })
	return out
}

// Lookup returns the snapshot for a textual address.
func (t *Table) Lookup(addr string) (domain.StationSnapshot, bool) {
	hw, err := domain.ParseStationAddr(addr)
	if err != nil {
		return domain.StationSnapshot{}, false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	sta, ok := t.stations[hw.String()]
	if !ok {
		return domain.StationSnapshot{}, false
	}
	return sta.Snapshot(), true
}
