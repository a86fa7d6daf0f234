package persistence

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lcalzada-xor/s1gap/internal/core/domain"
	"github.com/lcalzada-xor/s1gap/internal/core/ports"
)

// stationOp is a queued upsert (snap set) or delete (snap nil).
type stationOp struct {
	addr string
	snap *domain.StationSnapshot
}

// PersistenceManager handles background batch writing of station records to storage.
type PersistenceManager struct {
	storage     ports.StationStorage
	persistChan chan stationOp
	batchSize   int
	interval    time.Duration
	enabled     bool
	mu          sync.RWMutex
	done        chan struct{}
}

// NewPersistenceManager creates a new manager.
func NewPersistenceManager(storage ports.StationStorage, bufferSize int) *PersistenceManager {
	return &PersistenceManager{
		storage:     storage,
		persistChan: make(chan stationOp, bufferSize),
		batchSize:   100,
		interval:    5 * time.Second,
		enabled:     true,
		done:        make(chan struct{}),
	}
}

// StationUpdated implements ports.StationEventSink.
func (p *PersistenceManager) StationUpdated(snap domain.StationSnapshot) {
	p.enqueue(stationOp{addr: snap.Addr, snap: &snap})
}

// StationRemoved implements ports.StationEventSink.
func (p *PersistenceManager) StationRemoved(addr string) {
	p.enqueue(stationOp{addr: addr})
}

func (p *PersistenceManager) enqueue(op stationOp) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.enabled {
		return
	}
	// Never block the frame path; drop when the queue is full.
	select {
	case p.persistChan <- op:
	default:
		slog.Warn("persistence: queue full, dropping station update", "sta", op.addr)
	}
}

// IsEnabled returns the current persistence status.
func (p *PersistenceManager) IsEnabled() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.enabled
}

// SetEnabled toggles the persistence logic.
func (p *PersistenceManager) SetEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = enabled
}

// SetInterval changes the flush interval. Call before Start.
func (p *PersistenceManager) SetInterval(d time.Duration) {
	p.interval = d
}

// Start begins the persistence loop. Done is closed once the final flush
// after ctx cancellation has completed.
func (p *PersistenceManager) Start(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	buffer := make(map[string]stationOp)

	go func() {
		defer close(p.done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				p.drain(buffer)
				p.flushBuffer(context.Background(), buffer)
				return
			case op := <-p.persistChan:
				buffer[op.addr] = op
				if len(buffer) >= p.batchSize {
					p.flushBuffer(ctx, buffer)
					buffer = make(map[string]stationOp)
				}
			case <-ticker.C:
				if len(buffer) > 0 {
					p.flushBuffer(ctx, buffer)
					buffer = make(map[string]stationOp)
				}
			}
		}
	}()
}

// Done is closed when the persistence loop has exited.
func (p *PersistenceManager) Done() <-chan struct{} {
	return p.done
}

func (p *PersistenceManager) drain(buffer map[string]stationOp) {
	for {
		select {
		case op := <-p.persistChan:
			buffer[op.addr] = op
		default:
			return
		}
	}
}

func (p *PersistenceManager) flushBuffer(ctx context.Context, buffer map[string]stationOp) {
	if len(buffer) == 0 || p.storage == nil {
		return
	}
	var upserts []domain.StationSnapshot
	for addr, op := range buffer {
		if op.snap == nil {
			if err := p.storage.DeleteStation(ctx, addr); err != nil {
				slog.Error("persistence: failed to delete station", "sta", addr, "error", err)
			}
			continue
		}
		upserts = append(upserts, *op.snap)
	}
	if err := p.storage.SaveStationsBatch(ctx, upserts); err != nil {
		slog.Error("persistence: failed to batch save stations", "count", len(upserts), "error", err)
	}
}
