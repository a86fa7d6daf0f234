package web

import (
	"context"

	"github.com/lcalzada-xor/s1gap/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockAPService is a mock of ports.APService
type MockAPService struct {
	mock.Mock
}

func (m *MockAPService) Interface() domain.InterfaceStatus {
	return m.Called().Get(0).(domain.InterfaceStatus)
}

func (m *MockAPService) Stations() []domain.StationSnapshot {
	return m.Called().Get(0).([]domain.StationSnapshot)
}

func (m *MockAPService) Station(ctx context.Context, addr string) (domain.StationSnapshot, error) {
	args := m.Called(ctx, addr)
	return args.Get(0).(domain.StationSnapshot), args.Error(1)
}

func (m *MockAPService) StoredStations(ctx context.Context) ([]domain.StationSnapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.StationSnapshot), args.Error(1)
}

func (m *MockAPService) Negotiate(peer domain.S1GCapabilities) domain.S1GCapabilities {
	return m.Called(peer).Get(0).(domain.S1GCapabilities)
}

func (m *MockAPService) IsPersistenceEnabled() bool {
	return m.Called().Bool(0)
}

func (m *MockAPService) SetPersistenceEnabled(enabled bool) {
	m.Called(enabled)
}
