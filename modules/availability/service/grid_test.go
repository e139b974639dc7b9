package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"group-planner/modules/availability/entity"
)

// weekStart is a Monday
var weekStart = time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

func interval(day, fromHour, toHour int, memberID uuid.UUID) entity.TimeInterval {
	date := weekStart.AddDate(0, 0, day)
	return entity.TimeInterval{
		ID:        uuid.New(),
		MemberID:  memberID,
		StartTime: time.Date(date.Year(), date.Month(), date.Day(), fromHour, 0, 0, 0, time.UTC),
		EndTime:   time.Date(date.Year(), date.Month(), date.Day(), toHour, 0, 0, 0, time.UTC),
		Source:    "manual",
	}
}

func TestComputeGridPercentages(t *testing.T) {
	m1 := uuid.New()
	m2 := uuid.New()
	m3 := uuid.New()

	members := []entity.MemberAvailability{
		{MemberID: m1, Intervals: []entity.TimeInterval{interval(0, 9, 12, m1)}},
		{MemberID: m2, Intervals: []entity.TimeInterval{interval(0, 10, 11, m2)}},
		{MemberID: m3, Intervals: []entity.TimeInterval{interval(0, 10, 14, m3)}},
	}

	grid, err := ComputeGrid(members, weekStart, 7, 22, 3)
	require.NoError(t, err)

	assert.Equal(t, 33, grid.PercentAt(0, 9))  // only m1
	assert.Equal(t, 100, grid.PercentAt(0, 10))
	assert.Equal(t, 67, grid.PercentAt(0, 11)) // m1 and m3
	assert.Equal(t, 33, grid.PercentAt(0, 13)) // only m3
	assert.Equal(t, 0, grid.PercentAt(0, 14))  // intervals are half-open
	assert.Equal(t, 0, grid.PercentAt(1, 10))  // next day untouched
}

func TestComputeGridAllCellsBounded(t *testing.T) {
	m1 := uuid.New()
	members := []entity.MemberAvailability{
		{MemberID: m1, Intervals: []entity.TimeInterval{interval(2, 7, 23, m1)}},
	}

	grid, err := ComputeGrid(members, weekStart, 7, 22, 1)
	require.NoError(t, err)

	for day := 0; day < 7; day++ {
		for hour := grid.HourStart; hour <= grid.HourEnd; hour++ {
			pct := grid.PercentAt(day, hour)
			assert.GreaterOrEqual(t, pct, 0)
			assert.LessOrEqual(t, pct, 100)
		}
	}
}

func TestComputeGridPartialOverlapCountsAsAvailable(t *testing.T) {
	m1 := uuid.New()
	date := weekStart
	// 15 minutes inside the 9:00 bucket
	iv := entity.TimeInterval{
		ID:        uuid.New(),
		MemberID:  m1,
		StartTime: time.Date(date.Year(), date.Month(), date.Day(), 8, 45, 0, 0, time.UTC),
		EndTime:   time.Date(date.Year(), date.Month(), date.Day(), 9, 15, 0, 0, time.UTC),
	}

	grid, err := ComputeGrid([]entity.MemberAvailability{{MemberID: m1, Intervals: []entity.TimeInterval{iv}}}, weekStart, 7, 22, 1)
	require.NoError(t, err)

	assert.Equal(t, 100, grid.PercentAt(0, 8))
	assert.Equal(t, 100, grid.PercentAt(0, 9))
	assert.Equal(t, 0, grid.PercentAt(0, 10))
}

func TestComputeGridDuplicateMemberDoesNotDoubleCount(t *testing.T) {
	m1 := uuid.New()
	m2 := uuid.New()

	// m1 appears twice with overlapping intervals
	members := []entity.MemberAvailability{
		{MemberID: m1, Intervals: []entity.TimeInterval{interval(0, 9, 11, m1)}},
		{MemberID: m1, Intervals: []entity.TimeInterval{interval(0, 10, 12, m1)}},
		{MemberID: m2, Intervals: []entity.TimeInterval{}},
	}

	grid, err := ComputeGrid(members, weekStart, 7, 22, 2)
	require.NoError(t, err)

	assert.Equal(t, 50, grid.PercentAt(0, 10), "duplicate member rows must merge by identity")
}

func TestComputeGridEmptyMembersYieldsZeroGrid(t *testing.T) {
	grid, err := ComputeGrid(nil, weekStart, 7, 22, 0)
	require.NoError(t, err)

	for day := 0; day < 7; day++ {
		for hour := 7; hour <= 22; hour++ {
			assert.Equal(t, 0, grid.PercentAt(day, hour))
		}
	}
}

func TestComputeGridContractViolations(t *testing.T) {
	_, err := ComputeGrid(nil, weekStart, 7, 22, -1)
	assert.Error(t, err)

	_, err = ComputeGrid(nil, weekStart, 22, 7, 0)
	assert.Error(t, err)

	m1 := uuid.New()
	bad := interval(0, 12, 12, m1) // start == end
	_, err = ComputeGrid([]entity.MemberAvailability{{MemberID: m1, Intervals: []entity.TimeInterval{bad}}}, weekStart, 7, 22, 1)
	assert.Error(t, err)
}

func TestDayIndexRoundTrip(t *testing.T) {
	for i := 0; i < 7; i++ {
		cal := entity.CalendarDayIndex(i)
		assert.Equal(t, cal, cal.ToDisplay().ToCalendar())

		disp := entity.DisplayDayIndex(i)
		assert.Equal(t, disp, disp.ToCalendar().ToDisplay())
	}

	// Sunday is calendar 0 but renders last
	assert.Equal(t, entity.DisplayDayIndex(6), entity.CalendarDayIndex(0).ToDisplay())
	assert.Equal(t, "CN", entity.CalendarDayIndex(0).Label())
	assert.Equal(t, "Thứ 2", entity.DisplayDayIndex(0).Label())
}

func TestGridCalendarIndexForMondayWeekStart(t *testing.T) {
	grid, err := ComputeGrid(nil, weekStart, 7, 22, 0)
	require.NoError(t, err)

	// weekStart is a Monday, so column 0 is Thứ 2 and column 6 is CN
	assert.Equal(t, entity.CalendarDayIndex(1), grid.CalendarIndexAt(0))
	assert.Equal(t, "Thứ 2", grid.CalendarIndexAt(0).Label())
	assert.Equal(t, entity.CalendarDayIndex(0), grid.CalendarIndexAt(6))
	assert.Equal(t, "CN", grid.CalendarIndexAt(6).Label())
}
