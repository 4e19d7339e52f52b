package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alessiogreco/weekblocks/internal/core/services"
)

func TestCountdownService(t *testing.T) {
	birth := time.Date(1995, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Midlife figures", func(t *testing.T) {
		clock := &fixedClock{now: time.Date(2035, 1, 1, 12, 0, 0, 0, time.UTC)}
		svc := services.NewCountdownService(birth, 80, clock)

		cd := svc.Current()

		assert.Equal(t, "1995-01-01", cd.BirthISO)
		assert.Equal(t, "2075-01-01", cd.HorizonISO)
		assert.Equal(t, 40, cd.YearsLeft)
		assert.Equal(t, 0, cd.MonthsLeft)
		assert.Equal(t, 0, cd.DaysLeft)

		// 1995-01-01 to 2035-01-01 is 14610 days = 2087 weeks + 1 day.
		assert.Equal(t, 2087, cd.WeeksLived)
		assert.Greater(t, cd.TotalWeeks, cd.WeeksLived)
		assert.InDelta(t, 50.0, cd.PctElapsed, 0.5)
	})

	t.Run("Horizon passed clamps percentage", func(t *testing.T) {
		clock := &fixedClock{now: time.Date(2080, 6, 1, 0, 0, 0, 0, time.UTC)}
		svc := services.NewCountdownService(birth, 80, clock)

		cd := svc.Current()

		assert.Equal(t, 100.0, cd.PctElapsed)
		assert.Zero(t, cd.YearsLeft)
		assert.Zero(t, cd.MonthsLeft)
		assert.Zero(t, cd.DaysLeft)
	})

	t.Run("Advisory only: repeated reads are stable for a fixed instant", func(t *testing.T) {
		clock := &fixedClock{now: time.Date(2030, 7, 15, 0, 0, 0, 0, time.UTC)}
		svc := services.NewCountdownService(birth, 80, clock)

		assert.Equal(t, svc.Current(), svc.Current())
	})
}
