package ports

import (
	"context"

	"github.com/lcalzada-xor/s1gap/internal/core/domain"
)

// APService is the read side of the access point exposed to operators.
type APService interface {
	Interface() domain.InterfaceStatus
	Stations() []domain.StationSnapshot
	// Station returns a live station, falling back to the persisted record.
	Station(ctx context.Context, addr string) (domain.StationSnapshot, error)
	StoredStations(ctx context.Context) ([]domain.StationSnapshot, error)
	// Negotiate computes what the AP would advertise to a peer with the given
	// capabilities. It has no side effects on station state.
	Negotiate(peer domain.S1GCapabilities) domain.S1GCapabilities

	IsPersistenceEnabled() bool
	SetPersistenceEnabled(enabled bool)
}
