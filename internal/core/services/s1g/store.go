package s1g

import (
	"log/slog"

	"github.com/lcalzada-xor/s1gap/internal/core/domain"
	"github.com/lcalzada-xor/s1gap/internal/core/ports"
	"github.com/lcalzada-xor/s1gap/internal/telemetry"
)

// Store records the S1G capabilities a station advertised.
type Store struct {
	alloc RecordAllocator
	sink  ports.StationEventSink
}

// NewStore creates a Store. A nil allocator defaults to HeapAllocator and
// sink may be nil.
func NewStore(alloc RecordAllocator, sink ports.StationEventSink) *Store {
	if alloc == nil {
		alloc = HeapAllocator{}
	}
	return &Store{alloc: alloc, sink: sink}
}

// Record overwrites sta's capability record with raw and marks the station
// S1G capable. A nil raw means the peer did not advertise the element and
// leaves the station untouched.
//
// raw is expected to be exactly domain.S1GCapabilitiesLen bytes; length is
// the IE parser's responsibility. Shorter input leaves the tail zeroed.
func (s *Store) Record(sta *domain.StationRecord, raw []byte) error {
	if raw == nil {
		telemetry.StationRecordsTotal.WithLabelValues(telemetry.ResultAbsent).Inc()
		return nil
	}

	if sta.S1GCap == nil {
		rec, err := s.alloc.Alloc()
		if err != nil {
			telemetry.StationRecordsTotal.WithLabelValues(telemetry.ResultAllocFailure).Inc()
			slog.Warn("s1g: capability record allocation failed", "sta", sta.Addr.String(), "error", err)
			return err
		}
		sta.S1GCap = rec
	}

	*sta.S1GCap = domain.S1GCapabilities{}
	copy(sta.S1GCap[:], raw)
	sta.Flags |= domain.StaS1G
	telemetry.StationRecordsTotal.WithLabelValues(telemetry.ResultStored).Inc()

	if s.sink != nil {
		s.sink.StationUpdated(sta.Snapshot())
	}
	return nil
}

// Forget releases sta's record. It is called when the station is removed.
func (s *Store) Forget(sta *domain.StationRecord) {
	if sta.S1GCap != nil {
		s.alloc.Release(sta.S1GCap)
		sta.S1GCap = nil
	}
	sta.Flags &^= domain.StaS1G
	if s.sink != nil {
		s.sink.StationRemoved(sta.Addr.String())
	}
}
