package s1g

import (
	"sync"

	"github.com/lcalzada-xor/s1gap/internal/core/domain"
)

// RecordAllocator hands out capability records for stations.
type RecordAllocator interface {
	// Alloc returns a zeroed record or ErrAllocationFailure.
	Alloc() (*domain.S1GCapabilities, error)
	// Release returns a record obtained from Alloc.
	Release(rec *domain.S1GCapabilities)
}

// HeapAllocator never fails.
type HeapAllocator struct{}

func (HeapAllocator) Alloc() (*domain.S1GCapabilities, error) {
	return new(domain.S1GCapabilities), nil
}

func (HeapAllocator) Release(*domain.S1GCapabilities) {}

// QuotaAllocator limits the number of live records. Max <= 0 means unlimited.
type QuotaAllocator struct {
	Max  int
	mu   sync.Mutex
	live int
}

// NewQuotaAllocator creates an allocator capped at max live records.
func NewQuotaAllocator(max int) *QuotaAllocator {
	return &QuotaAllocator{Max: max}
}

func (q *QuotaAllocator) Alloc() (*domain.S1GCapabilities, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.Max > 0 && q.live >= q.Max {
		return nil, ErrAllocationFailure
	}
	q.live++
	return new(domain.S1GCapabilities), nil
}

func (q *QuotaAllocator) Release(rec *domain.S1GCapabilities) {
	if rec == nil {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.live > 0 {
		q.live--
	}
}

// Live returns the number of outstanding records.
func (q *QuotaAllocator) Live() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.live
}
