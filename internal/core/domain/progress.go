package domain

import "math"

// Visual-intensity tiers derived from a completion percentage. RowTint and
// FigureStage use different boundaries on purpose: the row background and
// the progress figure are tuned independently.
const (
	TintNone = iota
	TintFaint
	TintMedium
	TintStrong
	TintFull
)

const (
	StageSeed = iota
	StageSprout
	StageGrowing
	StageBloom
)

// StepForDay maps a day's completed-task count to its weekly-progress
// contribution. The ladder deliberately rewards any engagement
// disproportionately: going from zero to one task is worth more than going
// from four to five.
func StepForDay(completed, totalTasks int) float64 {
	switch {
	case completed <= 0:
		// Also covers goals with no tasks defined: they contribute nothing
		// but never error.
		return 0
	case completed >= totalTasks:
		return 1.0
	case completed >= 4:
		return 0.8
	case completed >= 2:
		return 0.5
	default:
		return 0.2
	}
}

// TotalBlocks sums the daily steps over the week. The sum is rounded to two
// decimals first and clamped to seven after, so floating drift can never
// push the result fractionally past a full week.
func TotalBlocks(g *Goal) float64 {
	var sum float64
	for i := range g.Days {
		sum += StepForDay(g.Days[i].CompletedCount(), len(g.Tasks))
	}
	sum = round2(sum)
	if sum > float64(DaysPerWeek) {
		sum = float64(DaysPerWeek)
	}
	return sum
}

// CompletionPct converts accumulated blocks into a 0..100 percentage.
func CompletionPct(g *Goal) float64 {
	return TotalBlocks(g) / float64(DaysPerWeek) * 100
}

// StreakDays counts the trailing run of non-empty days, scanning backward
// from the most recent day. A gap earlier in the week neither counts nor
// breaks a run that is still unbroken at the tail.
func StreakDays(g *Goal) int {
	streak := 0
	for i := len(g.Days) - 1; i >= 0; i-- {
		if g.Days[i].CompletedCount() == 0 {
			break
		}
		streak++
	}
	return streak
}

// IsDormant reports whether the two most recent days are both empty.
// Windows shorter than two days degrade to checking what exists.
func IsDormant(g *Goal) bool {
	n := len(g.Days)
	if n == 0 {
		return true
	}
	start := n - 2
	if start < 0 {
		start = 0
	}
	for i := start; i < n; i++ {
		if g.Days[i].CompletedCount() > 0 {
			return false
		}
	}
	return true
}

// RowTint buckets a percentage into row-background tiers:
// 0, (0,40], (40,70], (70,100), 100.
func RowTint(pct float64) int {
	switch {
	case pct <= 0:
		return TintNone
	case pct <= 40:
		return TintFaint
	case pct <= 70:
		return TintMedium
	case pct < 100:
		return TintStrong
	default:
		return TintFull
	}
}

// FigureStage buckets a percentage into figure-growth tiers:
// <30, <60, <85, >=85. Intentionally not aligned with RowTint.
func FigureStage(pct float64) int {
	switch {
	case pct < 30:
		return StageSeed
	case pct < 60:
		return StageSprout
	case pct < 85:
		return StageGrowing
	default:
		return StageBloom
	}
}

// HabitSeries carries the two parallel chart series. Real is the cumulative
// completed-task count across all goals per day; Projected is a compound
// 1%-per-day growth curve starting at 1. The units are unrelated on
// purpose: the chart juxtaposes actual work against the "1% better every
// day" principle rather than forecasting.
type HabitSeries struct {
	Real      []int     `json:"real"`
	Projected []float64 `json:"projected"`
}

// BuildHabitSeries produces the seven-point real-vs-projected series for a
// set of goals.
func BuildHabitSeries(goals []Goal) HabitSeries {
	series := HabitSeries{
		Real:      make([]int, DaysPerWeek),
		Projected: make([]float64, DaysPerWeek),
	}

	cumulative := 0
	projected := 1.0
	for day := 0; day < DaysPerWeek; day++ {
		for i := range goals {
			if day < len(goals[i].Days) {
				cumulative += goals[i].Days[day].CompletedCount()
			}
		}
		series.Real[day] = cumulative

		if day > 0 {
			projected *= 1.01
		}
		series.Projected[day] = round2(projected)
	}

	return series
}

var completionQuotes = [5]string{
	"Every week is a fresh start. Check off that first task.",
	"Small steps still move you forward. Keep going.",
	"Halfway there. Momentum is on your side now.",
	"Strong week. A couple more pushes and it's yours.",
	"A week fully owned. This is what consistency looks like.",
}

// QuoteForCompletion picks one of five fixed strings by threshold ladder:
// 0, <30, <60, <90, else.
func QuoteForCompletion(pct float64) string {
	switch {
	case pct <= 0:
		return completionQuotes[0]
	case pct < 30:
		return completionQuotes[1]
	case pct < 60:
		return completionQuotes[2]
	case pct < 90:
		return completionQuotes[3]
	default:
		return completionQuotes[4]
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
