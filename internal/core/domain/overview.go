package domain

import (
	"time"

	"github.com/alessiogreco/weekblocks/internal/core/timeutil"
)

type GoalProgress struct {
	GoalID  string  `json:"goalId"`
	Label   string  `json:"label"`
	Section string  `json:"section"`
	Blocks  float64 `json:"blocks"`
	Pct     float64 `json:"pct"`
	Streak  int     `json:"streak"`
	Dormant bool    `json:"dormant"`
	Tint    int     `json:"tint"`
	Stage   int     `json:"stage"`
}

// Overview is the derived view the rendering surface consumes. Nothing here
// is ever persisted; it is recomputed from the aggregate on demand.
type Overview struct {
	WeekStartISO string         `json:"weekStartISO"`
	DayOffset    int            `json:"dayOffset"`
	WeekFinished bool           `json:"weekFinished"`
	OverallPct   float64        `json:"overallPct"`
	Goals        []GoalProgress `json:"goals"`
	Series       HabitSeries    `json:"series"`
	Quote        string         `json:"quote"`
}

// BuildOverview derives per-goal progress, the chart series and the quote
// of the moment from the aggregate. Pure given 'now'.
func BuildOverview(s *TrackerState, now time.Time) Overview {
	ov := Overview{
		WeekStartISO: s.WeekStartISO,
		WeekFinished: s.WeekFinished(now),
		Goals:        make([]GoalProgress, 0, len(s.Goals)),
		Series:       BuildHabitSeries(s.Goals),
	}

	if ws := s.WeekStart(); !ws.IsZero() {
		ov.DayOffset = timeutil.ClampDayIndex(timeutil.DayIndex(ws, now))
	}

	var pctSum float64
	for i := range s.Goals {
		g := &s.Goals[i]
		pct := CompletionPct(g)
		pctSum += pct
		ov.Goals = append(ov.Goals, GoalProgress{
			GoalID:  g.ID,
			Label:   g.Label,
			Section: g.Section,
			Blocks:  TotalBlocks(g),
			Pct:     pct,
			Streak:  StreakDays(g),
			Dormant: IsDormant(g),
			Tint:    RowTint(pct),
			Stage:   FigureStage(pct),
		})
	}

	if len(s.Goals) > 0 {
		ov.OverallPct = round2(pctSum / float64(len(s.Goals)))
	}
	ov.Quote = QuoteForCompletion(ov.OverallPct)

	return ov
}
