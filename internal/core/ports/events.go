package ports

import "github.com/lcalzada-xor/s1gap/internal/core/domain"

// StationEventSink receives station capability changes.
type StationEventSink interface {
	StationUpdated(snap domain.StationSnapshot)
	StationRemoved(addr string)
}

// ResponseSink receives the negotiated capabilities the AP will advertise
// in its next response to a peer.
type ResponseSink interface {
	AdvertiseS1G(peer string, caps domain.S1GCapabilities)
}
