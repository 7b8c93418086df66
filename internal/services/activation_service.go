package services

import (
	"context"
	"sync"
	"time"

	"licentra/internal/models"
	"licentra/internal/repositories"

	"github.com/google/uuid"
)

// ActivationService enforces seat limits. The check-then-act between counting
// occupied seats and inserting an activation is the one true critical section in
// the engine: it is serialized per license by an in-process keyed mutex, and the
// repository additionally runs it inside a transaction that locks the license row,
// so the invariant holds across processes too.
type ActivationService interface {
	Record(ctx context.Context, license *models.License, user *models.User) (*models.Activation, bool, error)
	EvictIdleLocks(maxIdle time.Duration) int
}

type activationService struct {
	activationRepo repositories.ActivationRepository

	mu    sync.Mutex
	locks map[uuid.UUID]*licenseLock
}

type licenseLock struct {
	mu       sync.Mutex
	lastUsed time.Time
}

func NewActivationService(activationRepo repositories.ActivationRepository) ActivationService {
	return &activationService{
		activationRepo: activationRepo,
		locks:          make(map[uuid.UUID]*licenseLock),
	}
}

func (s *activationService) Record(ctx context.Context, license *models.License, user *models.User) (*models.Activation, bool, error) {
	lock := s.acquire(license.ID)
	defer lock.mu.Unlock()

	return s.activationRepo.Record(ctx, license.TenantID, license.ID, user.ID, license.MaxSeats)
}

// acquire returns the lock entry for licenseID with its mutex held. The evictor
// can delete an entry between the map lookup and the Lock call, so membership is
// re-checked after acquiring; a stale entry is released and the lookup retried.
func (s *activationService) acquire(licenseID uuid.UUID) *licenseLock {
	for {
		s.mu.Lock()
		lock, ok := s.locks[licenseID]
		if !ok {
			lock = &licenseLock{}
			s.locks[licenseID] = lock
		}
		lock.lastUsed = time.Now()
		s.mu.Unlock()

		lock.mu.Lock()
		s.mu.Lock()
		current := s.locks[licenseID]
		s.mu.Unlock()
		if current == lock {
			return lock
		}
		lock.mu.Unlock()
	}
}

// EvictIdleLocks drops lock entries not used within maxIdle. Called from the
// background scheduler so the arena does not grow with every license ever
// validated.
func (s *activationService) EvictIdleLocks(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, lock := range s.locks {
		if lock.lastUsed.Before(cutoff) && lock.mu.TryLock() {
			lock.mu.Unlock()
			delete(s.locks, id)
			evicted++
		}
	}
	return evicted
}
