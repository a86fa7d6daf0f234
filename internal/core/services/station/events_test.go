package station

import (
	"testing"

	"github.com/lcalzada-xor/s1gap/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

type MockSink struct {
	mock.Mock
}

func (m *MockSink) StationUpdated(snap domain.StationSnapshot) { m.Called(snap) }
func (m *MockSink) StationRemoved(addr string)                 { m.Called(addr) }

func TestFanout(t *testing.T) {
	a, b := new(MockSink), new(MockSink)
	snap := domain.StationSnapshot{Addr: "02:00:00:00:00:01", S1G: true}
	a.On("StationUpdated", snap).Return()
	b.On("StationUpdated", snap).Return()
	a.On("StationRemoved", snap.Addr).Return()
	b.On("StationRemoved", snap.Addr).Return()

	f := Fanout{a, nil, b}
	f.StationUpdated(snap)
	f.StationRemoved(snap.Addr)

	a.AssertExpectations(t)
	b.AssertExpectations(t)
}
