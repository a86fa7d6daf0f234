package ports

import (
	"context"

	"github.com/lcalzada-xor/s1gap/internal/core/domain"
)

// StationStorage defines the behavior for persisting station capability records.
type StationStorage interface {
	// SaveStationsBatch upserts station snapshots in a single transaction.
	SaveStationsBatch(ctx context.Context, stations []domain.StationSnapshot) error

	// GetStation retrieves a stored snapshot by address. A missing record
	// yields an error wrapping domain.ErrStationNotFound.
	GetStation(ctx context.Context, addr string) (*domain.StationSnapshot, error)

	// GetAllStations retrieves every stored snapshot.
	GetAllStations(ctx context.Context) ([]domain.StationSnapshot, error)

	// DeleteStation removes a station's stored record.
	DeleteStation(ctx context.Context, addr string) error

	// Close closes the storage connection.
	Close() error
}
