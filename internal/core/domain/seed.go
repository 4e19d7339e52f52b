package domain

import (
	"time"

	"github.com/alessiogreco/weekblocks/internal/core/timeutil"
)

// SeedState is the aggregate a fresh installation starts from: the default
// goal catalog with an empty week beginning today. Task lists are static
// seed data and are not user-editable.
func SeedState(today time.Time) *TrackerState {
	return &TrackerState{
		WeekStartISO: timeutil.FormatISO(today),
		Goals: []Goal{
			{
				ID:      "deep-work",
				Label:   "Deep Work",
				Section: SectionStudies,
				Tasks: []Task{
					{ID: "plan", Label: "Plan the session"},
					{ID: "focus-block", Label: "90 min focus block"},
					{ID: "review", Label: "Review notes"},
				},
				Days: emptyWeek(),
			},
			{
				ID:      "reading",
				Label:   "Reading",
				Section: SectionStudies,
				Tasks: []Task{
					{ID: "pages", Label: "Read 20 pages"},
					{ID: "summary", Label: "Write a short summary"},
				},
				Days: emptyWeek(),
			},
			{
				ID:      "fitness",
				Label:   "Fitness",
				Section: SectionPersonal,
				Tasks: []Task{
					{ID: "warmup", Label: "Warm up"},
					{ID: "workout", Label: "Main workout"},
					{ID: "stretch", Label: "Stretch"},
					{ID: "walk", Label: "Evening walk"},
				},
				Days: emptyWeek(),
			},
			{
				ID:      "mindfulness",
				Label:   "Mindfulness",
				Section: SectionPersonal,
				Tasks: []Task{
					{ID: "meditate", Label: "10 min meditation"},
					{ID: "journal", Label: "Journal one page"},
				},
				Days: emptyWeek(),
			},
		},
	}
}
