package ap

import (
	"context"
	"errors"
	"fmt"

	"github.com/lcalzada-xor/s1gap/internal/core/domain"
	"github.com/lcalzada-xor/s1gap/internal/core/ports"
	"github.com/lcalzada-xor/s1gap/internal/core/services/persistence"
	"github.com/lcalzada-xor/s1gap/internal/core/services/s1g"
	"github.com/lcalzada-xor/s1gap/internal/core/services/station"
)

// APService is the facade the status API reads from. The interface
// configuration is only written during bring-up, before the service is
// shared.
type APService struct {
	iface       *domain.InterfaceConfig
	initializer *s1g.Initializer
	stations    *station.Table
	persistence *persistence.PersistenceManager
	storage     ports.StationStorage
}

// NewAPService creates the facade. persistence and storage may be nil.
func NewAPService(
	iface *domain.InterfaceConfig,
	initializer *s1g.Initializer,
	stations *station.Table,
	persistence *persistence.PersistenceManager,
	storage ports.StationStorage,
) *APService {
	return &APService{
		iface:       iface,
		initializer: initializer,
		stations:    stations,
		persistence: persistence,
		storage:     storage,
	}
}

var _ ports.APService = (*APService)(nil)

func (s *APService) Interface() domain.InterfaceStatus {
	return domain.InterfaceStatus{
		InterfaceConfig: *s.iface,
		S1GState:        s.initializer.State().String(),
	}
}

func (s *APService) Stations() []domain.StationSnapshot {
	return s.stations.Snapshot()
}

func (s *APService) Station(ctx context.Context, addr string) (domain.StationSnapshot, error) {
	if snap, ok := s.stations.Lookup(addr); ok {
		return snap, nil
	}
	if s.storage == nil {
		return domain.StationSnapshot{}, fmt.Errorf("%w: %s", domain.ErrStationNotFound, addr)
	}
	snap, err := s.storage.GetStation(ctx, addr)
	if errors.Is(err, domain.ErrStationNotFound) || (err == nil && snap == nil) {
		return domain.StationSnapshot{}, fmt.Errorf("%w: %s", domain.ErrStationNotFound, addr)
	}
	if err != nil {
		return domain.StationSnapshot{}, fmt.Errorf("load stored station %s: %w", addr, err)
	}
	return *snap, nil
}

func (s *APService) StoredStations(ctx context.Context) ([]domain.StationSnapshot, error) {
	if s.storage == nil {
		return nil, nil
	}
	return s.storage.GetAllStations(ctx)
}

func (s *APService) Negotiate(peer domain.S1GCapabilities) domain.S1GCapabilities {
	return s1g.Negotiate(s.iface.LocalS1GCap, peer)
}

func (s *APService) IsPersistenceEnabled() bool {
	return s.persistence != nil && s.persistence.IsEnabled()
}

func (s *APService) SetPersistenceEnabled(enabled bool) {
	if s.persistence != nil {
		s.persistence.SetEnabled(enabled)
	}
}
