package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrGoalLabelEmpty   = errors.New("goal label cannot be empty")
	ErrGoalLabelTooLong = errors.New("goal label is too long (max 100 chars)")
	ErrInvalidSection   = errors.New("invalid section")
	ErrNoTasks          = errors.New("goal needs at least one task")
	ErrTaskLabelEmpty   = errors.New("task label cannot be empty")
	ErrDuplicateTaskID  = errors.New("duplicate task id within goal")
	ErrGoalNotFound     = errors.New("goal not found")
)

const (
	SectionStudies  = "Studies"
	SectionPersonal = "Personal Life"

	DaysPerWeek = 7
	MaxLabelLen = 100
)

// Task is a fixed unit of daily work belonging to a Goal. Tasks are seed
// data: they are never created or destroyed by check-in mutations.
type Task struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// DayState is one calendar day's record inside a Goal's 7-day window.
// Completed holds task IDs with set semantics (membership, never count).
// The set is never nil so an empty day serializes as [], not null.
type DayState struct {
	Completed []string `json:"completedTasks"`
	Note      string   `json:"note,omitempty"`
}

// Has reports whether taskID is marked completed on this day.
func (d *DayState) Has(taskID string) bool {
	for _, id := range d.Completed {
		if id == taskID {
			return true
		}
	}
	return false
}

// CompletedCount returns how many tasks were completed on this day.
func (d *DayState) CompletedCount() int {
	return len(d.Completed)
}

// toggle flips membership of taskID in the completed set.
func (d *DayState) toggle(taskID string) {
	for i, id := range d.Completed {
		if id == taskID {
			d.Completed = append(d.Completed[:i], d.Completed[i+1:]...)
			return
		}
	}
	d.Completed = append(d.Completed, taskID)
}

func (d DayState) clone() DayState {
	return DayState{
		Note:      d.Note,
		Completed: append([]string{}, d.Completed...),
	}
}

// Goal is a trackable weekly habit: a label, a section, a static task list
// and exactly seven DayStates (index 0 = first day of the current week).
type Goal struct {
	ID      string     `json:"id"`
	Label   string     `json:"label"`
	Section string     `json:"section"`
	Tasks   []Task     `json:"tasks"`
	Days    []DayState `json:"days"`
}

func validSection(s string) bool {
	return s == SectionStudies || s == SectionPersonal
}

// NewGoal builds a goal with a fresh ID and seven empty days. Tasks missing
// an ID get one derived from their position.
func NewGoal(label, section string, tasks []Task) (*Goal, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, ErrGoalLabelEmpty
	}
	if len(label) > MaxLabelLen {
		return nil, ErrGoalLabelTooLong
	}
	if !validSection(section) {
		return nil, ErrInvalidSection
	}
	if len(tasks) == 0 {
		return nil, ErrNoTasks
	}

	seen := make(map[string]bool, len(tasks))
	cleaned := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		t.Label = strings.TrimSpace(t.Label)
		if t.Label == "" {
			return nil, ErrTaskLabelEmpty
		}
		if t.ID == "" {
			t.ID = uuid.New().String()
		}
		if seen[t.ID] {
			return nil, ErrDuplicateTaskID
		}
		seen[t.ID] = true
		cleaned = append(cleaned, t)
	}

	return &Goal{
		ID:      uuid.New().String(),
		Label:   label,
		Section: section,
		Tasks:   cleaned,
		Days:    emptyWeek(),
	}, nil
}

// HasTask reports whether taskID belongs to the goal's task list.
func (g *Goal) HasTask(taskID string) bool {
	for _, t := range g.Tasks {
		if t.ID == taskID {
			return true
		}
	}
	return false
}

// Normalize forces Days back to exactly seven entries, padding with empty
// days or truncating, and repairs null completed sets. Persisted state of
// the wrong shape is repaired here rather than rejected.
func (g *Goal) Normalize() {
	if len(g.Days) > DaysPerWeek {
		g.Days = g.Days[:DaysPerWeek]
	}
	for len(g.Days) < DaysPerWeek {
		g.Days = append(g.Days, DayState{Completed: []string{}})
	}
	for i := range g.Days {
		if g.Days[i].Completed == nil {
			g.Days[i].Completed = []string{}
		}
	}
}

// Clone returns a deep copy sharing no memory with the receiver.
func (g *Goal) Clone() *Goal {
	out := &Goal{
		ID:      g.ID,
		Label:   g.Label,
		Section: g.Section,
	}
	if len(g.Tasks) > 0 {
		out.Tasks = append([]Task(nil), g.Tasks...)
	}
	out.Days = make([]DayState, len(g.Days))
	for i, d := range g.Days {
		out.Days[i] = d.clone()
	}
	return out
}

func emptyWeek() []DayState {
	days := make([]DayState, DaysPerWeek)
	for i := range days {
		days[i].Completed = []string{}
	}
	return days
}
