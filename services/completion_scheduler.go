package services

import (
	"log"
	"sync"
	"time"

	"organizely/organizer/database"

	"github.com/google/uuid"
)

// CompletionScheduler defers the persisted write of a completion toggle so
// a caller can show the state change immediately and still back out of it.
// Each task has at most one pending commit: scheduling a toggle for a task
// that already has one cancels the pending write instead of stacking a
// second, so rapid re-toggling always settles on the committed state.
type CompletionScheduler struct {
	db    *database.Database
	tasks TaskServiceInterface
	delay time.Duration

	mu      sync.Mutex
	pending map[uuid.UUID]*time.Timer
}

func NewCompletionScheduler(db *database.Database, tasks TaskServiceInterface, delay time.Duration) *CompletionScheduler {
	return &CompletionScheduler{
		db:      db,
		tasks:   tasks,
		delay:   delay,
		pending: make(map[uuid.UUID]*time.Timer),
	}
}

// ScheduleToggle arms a deferred toggle for the task and reports true. If a
// toggle is already pending for the task it is cancelled instead, nothing is
// written, and ScheduleToggle reports false.
func (s *CompletionScheduler) ScheduleToggle(taskID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.pending[taskID]; ok {
		timer.Stop()
		delete(s.pending, taskID)
		return false
	}

	s.pending[taskID] = time.AfterFunc(s.delay, func() {
		s.commit(taskID)
	})
	return true
}

// Pending reports whether the task has an uncommitted toggle.
func (s *CompletionScheduler) Pending(taskID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[taskID]
	return ok
}

// Flush commits every pending toggle immediately. Called on shutdown so
// armed toggles are not lost with the process.
func (s *CompletionScheduler) Flush() {
	s.mu.Lock()
	ids := make([]uuid.UUID, 0, len(s.pending))
	for taskID, timer := range s.pending {
		if timer.Stop() {
			ids = append(ids, taskID)
		}
		delete(s.pending, taskID)
	}
	s.mu.Unlock()

	for _, taskID := range ids {
		if _, err := s.tasks.ToggleCompletion(s.db, taskID.String()); err != nil {
			log.Printf("Failed to commit completion toggle for task %s: %v", taskID, err)
		}
	}
}

func (s *CompletionScheduler) commit(taskID uuid.UUID) {
	s.mu.Lock()
	if _, ok := s.pending[taskID]; !ok {
		// Cancelled or flushed between firing and acquiring the lock.
		s.mu.Unlock()
		return
	}
	delete(s.pending, taskID)
	s.mu.Unlock()

	if _, err := s.tasks.ToggleCompletion(s.db, taskID.String()); err != nil {
		log.Printf("Failed to commit completion toggle for task %s: %v", taskID, err)
	}
}
