package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"group-planner/modules/availability/entity"
)

func TestToGridResponseOrdersColumnsMondayFirst(t *testing.T) {
	// week starting on a Monday
	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	grid := &entity.AvailabilityGrid{
		WeekStart: monday,
		HourStart: 7,
		HourEnd:   22,
	}
	for day := 0; day < 7; day++ {
		grid.Cells[day] = make([]int, grid.Hours())
	}
	grid.Cells[6][0] = 42 // Sunday 7:00

	resp := ToGridResponse("g1", grid)
	require.Len(t, resp.Days, 7)

	assert.Equal(t, "Thứ 2", resp.Days[0].DayLabel)
	assert.Equal(t, 1, resp.Days[0].CalendarIndex)
	assert.Equal(t, 0, resp.Days[0].DisplayIndex)

	// Sunday renders last even though its calendar index is 0
	assert.Equal(t, "CN", resp.Days[6].DayLabel)
	assert.Equal(t, 0, resp.Days[6].CalendarIndex)
	assert.Equal(t, 6, resp.Days[6].DisplayIndex)
	assert.Equal(t, 42, resp.Days[6].Percentages[0])
	assert.Equal(t, "2026-08-30", resp.Days[6].Date)
}

func TestToGridResponseSundayWeekStart(t *testing.T) {
	// week starting on a Sunday: the first date column renders last
	sunday := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	grid := &entity.AvailabilityGrid{
		WeekStart: sunday,
		HourStart: 7,
		HourEnd:   22,
	}
	for day := 0; day < 7; day++ {
		grid.Cells[day] = make([]int, grid.Hours())
	}

	resp := ToGridResponse("g1", grid)
	require.Len(t, resp.Days, 7)

	assert.Equal(t, "Thứ 2", resp.Days[0].DayLabel)
	assert.Equal(t, "2026-08-24", resp.Days[0].Date)
	assert.Equal(t, "CN", resp.Days[6].DayLabel)
	assert.Equal(t, "2026-08-23", resp.Days[6].Date)
}
