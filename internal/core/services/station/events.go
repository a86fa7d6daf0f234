package station

import (
	"github.com/lcalzada-xor/s1gap/internal/core/domain"
	"github.com/lcalzada-xor/s1gap/internal/core/ports"
)

// Fanout forwards station events to every sink in order. Sinks are called
// with the station table locked and must not block.
type Fanout []ports.StationEventSink

func (f Fanout) StationUpdated(snap domain.StationSnapshot) {
	for _, s := range f {
		if s != nil {
			s.StationUpdated(snap)
		}
	}
}

func (f Fanout) StationRemoved(addr string) {
	for _, s := range f {
		if s != nil {
			s.StationRemoved(addr)
		}
	}
}
