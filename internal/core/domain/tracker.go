package domain

import (
	"errors"
	"time"

	"github.com/alessiogreco/weekblocks/internal/core/timeutil"
)

var (
	ErrWeekNotFinished = errors.New("current week has not elapsed yet")
)

// BestGoal identifies the strongest performer of an archived week.
type BestGoal struct {
	GoalID string  `json:"goalId"`
	Label  string  `json:"label"`
	Pct    float64 `json:"pct"`
}

// WeekSummary is the immutable record appended to history at rollover.
// Its ID is the rolled-over week's start date.
type WeekSummary struct {
	ID             string    `json:"id"`
	WeekStartISO   string    `json:"weekStartISO"`
	WeekEndISO     string    `json:"weekEndISO"`
	TotalCompleted int       `json:"totalCompleted"`
	TotalPossible  int       `json:"totalPossible"`
	BestGoal       *BestGoal `json:"bestGoal,omitempty"`
}

// TrackerState is the root aggregate and the sole unit of persistence.
// It owns its goals and history outright: accessors hand out deep copies,
// mutations are copy-on-write.
type TrackerState struct {
	WeekStartISO string        `json:"weekStartISO"`
	Goals        []Goal        `json:"goals"`
	History      []WeekSummary `json:"history"`
}

// Clone returns a deep copy sharing no memory with the receiver.
func (s *TrackerState) Clone() *TrackerState {
	out := &TrackerState{WeekStartISO: s.WeekStartISO}
	out.Goals = make([]Goal, len(s.Goals))
	for i := range s.Goals {
		out.Goals[i] = *s.Goals[i].Clone()
	}
	if len(s.History) > 0 {
		out.History = append([]WeekSummary(nil), s.History...)
	}
	return out
}

// Normalize repairs a loaded aggregate: every goal gets exactly seven days.
func (s *TrackerState) Normalize() {
	for i := range s.Goals {
		s.Goals[i].Normalize()
	}
}

// WeekStart parses the stored week start date. Zero time when unparseable.
func (s *TrackerState) WeekStart() time.Time {
	t, err := timeutil.ParseISO(s.WeekStartISO)
	if err != nil {
		return time.Time{}
	}
	return t
}

// WeekFinished reports whether the active week has elapsed relative to now.
// The Active -> Finished transition is detected on inspection, never
// scheduled.
func (s *TrackerState) WeekFinished(now time.Time) bool {
	ws := s.WeekStart()
	if ws.IsZero() {
		return false
	}
	return timeutil.DayIndex(ws, now) >= DaysPerWeek
}

// ToggleTask flips membership of taskID in the named goal's day. The input
// state is never mutated. The boolean reports whether the goal and task
// matched; unknown references leave the state unchanged in effect.
// dayIndex must already be clamped to [0,6] by the caller.
func ToggleTask(s *TrackerState, goalID, taskID string, dayIndex int) (*TrackerState, bool) {
	next := s.Clone()
	for i := range next.Goals {
		g := &next.Goals[i]
		if g.ID != goalID {
			continue
		}
		if !g.HasTask(taskID) {
			return next, false
		}
		g.Days[dayIndex].toggle(taskID)
		return next, true
	}
	return next, false
}

// SetNote replaces the note on the named goal's day. An empty string clears
// the note; it is not treated specially. Same no-op contract as ToggleTask.
func SetNote(s *TrackerState, goalID string, dayIndex int, text string) (*TrackerState, bool) {
	next := s.Clone()
	for i := range next.Goals {
		g := &next.Goals[i]
		if g.ID != goalID {
			continue
		}
		g.Days[dayIndex].Note = text
		return next, true
	}
	return next, false
}

// BuildWeekSummary aggregates the finished week. Best goal is the first
// maximum of CompletionPct in goal order; nil when no goals exist.
func BuildWeekSummary(s *TrackerState, endDate time.Time) WeekSummary {
	summary := WeekSummary{
		ID:           s.WeekStartISO,
		WeekStartISO: s.WeekStartISO,
		WeekEndISO:   timeutil.FormatISO(endDate),
	}

	var best *BestGoal
	for i := range s.Goals {
		g := &s.Goals[i]
		for d := range g.Days {
			summary.TotalCompleted += g.Days[d].CompletedCount()
		}
		summary.TotalPossible += len(g.Tasks) * DaysPerWeek

		pct := CompletionPct(g)
		if best == nil || pct > best.Pct {
			best = &BestGoal{GoalID: g.ID, Label: g.Label, Pct: pct}
		}
	}
	summary.BestGoal = best

	return summary
}

// Rollover archives the finished week and starts a new one dated today.
// The summary append and the day reset happen on the same returned state:
// there is no intermediate aggregate where one exists without the other.
func Rollover(s *TrackerState, today time.Time) (*TrackerState, WeekSummary) {
	endDate := today.AddDate(0, 0, -1)
	if ws := s.WeekStart(); !ws.IsZero() {
		// The archived week ends six days after it started, regardless of
		// how late the rollover is triggered.
		endDate = ws.AddDate(0, 0, DaysPerWeek-1)
	}
	summary := BuildWeekSummary(s, endDate)

	next := s.Clone()
	next.WeekStartISO = timeutil.FormatISO(today)
	next.History = append(next.History, summary)
	for i := range next.Goals {
		next.Goals[i].Days = emptyWeek()
	}

	return next, summary
}
