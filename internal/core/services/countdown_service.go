package services

import (
	"math"
	"time"

	"github.com/alessiogreco/weekblocks/internal/core/domain"
	"github.com/alessiogreco/weekblocks/internal/core/timeutil"
)

// Countdown is the life-countdown display payload: how many weeks have been
// lived against the configured horizon and what calendar time remains.
type Countdown struct {
	WeeksLived int     `json:"weeksLived"`
	TotalWeeks int     `json:"totalWeeks"`
	YearsLeft  int     `json:"yearsLeft"`
	MonthsLeft int     `json:"monthsLeft"`
	DaysLeft   int     `json:"daysLeft"`
	PctElapsed float64 `json:"pctElapsed"`
	HorizonISO string  `json:"horizonISO"`
	BirthISO   string  `json:"birthISO"`
}

type CountdownService struct {
	birthdate time.Time
	horizon   time.Time
	clock     domain.Clock
}

// NewCountdownService fixes the birthdate epoch and a lifespan horizon in
// years. The service is pure given its clock; callers re-poll as often as
// their display needs, it never mutates anything.
func NewCountdownService(birthdate time.Time, lifespanYears int, clock domain.Clock) *CountdownService {
	return &CountdownService{
		birthdate: timeutil.StartOfDay(birthdate.UTC()),
		horizon:   timeutil.StartOfDay(birthdate.UTC()).AddDate(lifespanYears, 0, 0),
		clock:     clock,
	}
}

func (s *CountdownService) Current() Countdown {
	now := s.clock.Now()

	cd := Countdown{
		WeeksLived: timeutil.WeeksSince(s.birthdate, now),
		TotalWeeks: timeutil.WeeksSince(s.birthdate, s.horizon),
		BirthISO:   timeutil.FormatISO(s.birthdate),
		HorizonISO: timeutil.FormatISO(s.horizon),
	}

	cd.YearsLeft, cd.MonthsLeft, cd.DaysLeft = timeutil.CalendarDiff(now, s.horizon)

	if cd.TotalWeeks > 0 {
		pct := float64(cd.WeeksLived) / float64(cd.TotalWeeks) * 100
		if pct > 100 {
			pct = 100
		}
		cd.PctElapsed = math.Round(pct*100) / 100
	}

	return cd
}
