package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Repository keeps live sessions in process memory.
type Repository interface {
	Save(c *Controller)
	GetByID(id uuid.UUID) (*Controller, error)
	Delete(id uuid.UUID) error
	Prune(maxIdle time.Duration) int
	Count() int
}

type memoryRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Controller
	now      func() time.Time
}

func NewRepository() Repository {
	return newRepository(time.Now)
}

func newRepository(now func() time.Time) *memoryRepository {
	return &memoryRepository{
		sessions: make(map[uuid.UUID]*Controller),
		now:      now,
	}
}

func (r *memoryRepository) Save(c *Controller) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[c.ID()] = c
}

func (r *memoryRepository) GetByID(id uuid.UUID) (*Controller, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return c, nil
}

func (r *memoryRepository) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// Prune drops sessions idle for longer than maxIdle and returns how many
// were removed. Sessions waiting on the generator are never idle.
func (r *memoryRepository) Prune(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)

	r.mu.Lock()
	defer r.mu.Unlock()

	stale := lo.PickBy(r.sessions, func(_ uuid.UUID, c *Controller) bool {
		return !c.Generating() && c.LastActive().Before(cutoff)
	})
	for id := range stale {
		delete(r.sessions, id)
	}
	return len(stale)
}

func (r *memoryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
