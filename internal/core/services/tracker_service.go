package services

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/alessiogreco/weekblocks/internal/core/domain"
)

// Saver receives snapshots for persistence after every successful mutation.
// Implementations must not block the caller for long; save failures are
// theirs to report.
type Saver interface {
	Enqueue(snapshot *domain.TrackerState)
}

// TrackerService owns the in-memory aggregate. There is exactly one writer
// per running instance; HTTP goroutines serialize on the mutex below, which
// is the whole concurrency story.
type TrackerService struct {
	mu    sync.RWMutex
	state *domain.TrackerState

	store domain.TrackerStore
	clock domain.Clock
	saver Saver

	// loadFailed blocks persistence for the session. A load that failed for
	// any reason other than a missing document means a real document may
	// still exist in the backend; saving the seed would overwrite it.
	loadFailed bool
}

func NewTrackerService(store domain.TrackerStore, clock domain.Clock, saver Saver) *TrackerService {
	return &TrackerService{
		store: store,
		clock: clock,
		saver: saver,
	}
}

// Load primes the aggregate from the store. A missing key or a document the
// store could not decode falls back to seed defaults; no load failure
// propagates past this boundary. Any other load error also falls back to
// the seed but additionally disables saves for the session, so a document
// hidden behind a backend outage is never clobbered with seed data.
func (s *TrackerService) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrStateNotFound) {
			log.Printf("Tracker load failed (%v), running in-memory without persistence", err)
			s.loadFailed = true
		}
		s.state = domain.SeedState(s.clock.Now())
		return
	}

	s.loadFailed = false
	state.Normalize()
	s.state = state
}

// State returns a deep copy of the aggregate. Mutating the result never
// affects the service.
func (s *TrackerService) State() *domain.TrackerState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Overview derives all display values for the current instant.
func (s *TrackerService) Overview() domain.Overview {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.BuildOverview(s.state, s.clock.Now())
}

// History lists archived week summaries in chronological order.
func (s *TrackerService) History() []domain.WeekSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.WeekSummary(nil), s.state.History...)
}

type WeekStatus struct {
	State        string `json:"state"`
	WeekStartISO string `json:"weekStartISO"`
	DayOffset    int    `json:"dayOffset"`
}

const (
	WeekStateActive   = "active"
	WeekStateFinished = "finished"
)

// WeekStatus reports whether the stored week is still active and today's
// clamped offset within it.
func (s *TrackerService) WeekStatus() WeekStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.weekStatusLocked()
}

func (s *TrackerService) weekStatusLocked() WeekStatus {
	now := s.clock.Now()
	ov := domain.BuildOverview(s.state, now)

	status := WeekStatus{
		State:        WeekStateActive,
		WeekStartISO: s.state.WeekStartISO,
		DayOffset:    ov.DayOffset,
	}
	if s.state.WeekFinished(now) {
		status.State = WeekStateFinished
	}
	return status
}

// ToggleTask flips a task's completion on the given day and returns the
// updated goal. dayIndex must be in [0,6]; the HTTP boundary clamps what it
// derives from the clock before calling.
func (s *TrackerService) ToggleTask(goalID, taskID string, dayIndex int) (*domain.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := domain.ToggleTask(s.state, goalID, taskID, dayIndex)
	if !ok {
		return nil, domain.ErrGoalNotFound
	}
	s.state = next
	s.persistLocked()

	return s.goalLocked(goalID), nil
}

// SetNote replaces the free-text note on a goal's day. Empty text clears it.
func (s *TrackerService) SetNote(goalID string, dayIndex int, text string) (*domain.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := domain.SetNote(s.state, goalID, dayIndex, text)
	if !ok {
		return nil, domain.ErrGoalNotFound
	}
	s.state = next
	s.persistLocked()

	return s.goalLocked(goalID), nil
}

type AddGoalInput struct {
	Label   string
	Section string
	Tasks   []domain.Task
}

// AddGoal appends a new goal with seven empty days to the aggregate.
func (s *TrackerService) AddGoal(input AddGoalInput) (*domain.Goal, error) {
	goal, err := domain.NewGoal(input.Label, input.Section, input.Tasks)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	next.Goals = append(next.Goals, *goal)
	s.state = next
	s.persistLocked()

	return goal.Clone(), nil
}

// Rollover archives the elapsed week and resets every goal for a new week
// starting today. Summary append and day reset are one transition; the
// snapshot handed to persistence already contains both.
func (s *TrackerService) Rollover() (domain.WeekSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if !s.state.WeekFinished(now) {
		return domain.WeekSummary{}, domain.ErrWeekNotFinished
	}

	next, summary := domain.Rollover(s.state, now)
	s.state = next
	s.persistLocked()

	return summary, nil
}

// goalLocked returns a copy of the named goal, nil when absent.
func (s *TrackerService) goalLocked(goalID string) *domain.Goal {
	for i := range s.state.Goals {
		if s.state.Goals[i].ID == goalID {
			return s.state.Goals[i].Clone()
		}
	}
	return nil
}

func (s *TrackerService) persistLocked() {
	if s.saver == nil || s.loadFailed {
		return
	}
	s.saver.Enqueue(s.state.Clone())
}
