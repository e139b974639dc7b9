package entity

import (
	"time"

	"github.com/google/uuid"
)

// TimeInterval is a block of declared free time owned by one member.
// Intervals are half-open [StartTime, EndTime) and immutable once created;
// edits are delete + recreate.
type TimeInterval struct {
	ID        uuid.UUID `db:"id" json:"id"`
	GroupID   uuid.UUID `db:"group_id" json:"group_id"`
	MemberID  uuid.UUID `db:"member_id" json:"member_id"`
	StartTime time.Time `db:"start_time" json:"start_time"`
	EndTime   time.Time `db:"end_time" json:"end_time"`
	Source    string    `db:"source" json:"source"` // "manual" or "calendar"
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// MemberAvailability groups one member's intervals for a bounded date range
type MemberAvailability struct {
	MemberID  uuid.UUID
	Intervals []TimeInterval
}

// CalendarDayIndex follows time.Weekday numbering: 0=Sunday .. 6=Saturday.
// DisplayDayIndex is the presentation order: 0=Monday .. 6=Sunday ("CN" last).
// The two orderings coexist everywhere in the calendar UI; keeping them as
// distinct types with one tested conversion avoids the usual off-by-one.
type (
	CalendarDayIndex int
	DisplayDayIndex  int
)

// ToDisplay converts Sunday-first indexing to Monday-first presentation order
func (d CalendarDayIndex) ToDisplay() DisplayDayIndex {
	return DisplayDayIndex((int(d) + 6) % 7)
}

// ToCalendar converts Monday-first presentation order back to Sunday-first indexing
func (d DisplayDayIndex) ToCalendar() CalendarDayIndex {
	return CalendarDayIndex((int(d) + 1) % 7)
}

// dayLabels is indexed by CalendarDayIndex (Sunday first)
var dayLabels = [7]string{"CN", "Thứ 2", "Thứ 3", "Thứ 4", "Thứ 5", "Thứ 6", "Thứ 7"}

// Label returns the Vietnamese day label for a calendar day index
func (d CalendarDayIndex) Label() string {
	return dayLabels[int(d)%7]
}

// Label returns the Vietnamese day label for a display position
func (d DisplayDayIndex) Label() string {
	return d.ToCalendar().Label()
}

// AvailabilityGrid maps each (day, hour) cell of one week to the percentage of
// group members with at least one interval overlapping that hour. Cells are
// stored by day offset from WeekStart so the grid is agnostic to which weekday
// the week starts on.
type AvailabilityGrid struct {
	WeekStart    time.Time `json:"week_start"`
	HourStart    int       `json:"hour_start"`
	HourEnd      int       `json:"hour_end"`
	TotalMembers int       `json:"total_members"`
	// Cells[dayOffset][hour-HourStart] is an integer percentage 0..100
	Cells [7][]int `json:"cells"`
}

// Hours returns the number of hour buckets per day
func (g *AvailabilityGrid) Hours() int {
	return g.HourEnd - g.HourStart + 1
}

// DateAt returns the calendar date of a day column
func (g *AvailabilityGrid) DateAt(dayOffset int) time.Time {
	return g.WeekStart.AddDate(0, 0, dayOffset)
}

// CalendarIndexAt returns the Sunday-first weekday index of a day column
func (g *AvailabilityGrid) CalendarIndexAt(dayOffset int) CalendarDayIndex {
	return CalendarDayIndex(g.DateAt(dayOffset).Weekday())
}

// PercentAt returns the cell value for a day column and absolute hour.
// Out-of-range lookups return 0.
func (g *AvailabilityGrid) PercentAt(dayOffset, hour int) int {
	if dayOffset < 0 || dayOffset > 6 || hour < g.HourStart || hour > g.HourEnd {
		return 0
	}
	return g.Cells[dayOffset][hour-g.HourStart]
}

// AvailabilityBlock is a contiguous run of same-day hour cells at or above a
// viability threshold, expressed as [StartHour, EndHour) of one date.
type AvailabilityBlock struct {
	Date       time.Time `json:"date"`
	DayLabel   string    `json:"day_label"`
	StartHour  int       `json:"start_hour"`
	EndHour    int       `json:"end_hour"`
	MinPercent int       `json:"min_percent"`
}

// BlockSummary merges contiguous days sharing an identical hour range
type BlockSummary struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	StartHour int       `json:"start_hour"`
	EndHour   int       `json:"end_hour"`
}

// CalendarConnection stores a member's calendar provider tokens for busy-time import
type CalendarConnection struct {
	ID             uuid.UUID `db:"id" json:"id"`
	MemberID       uuid.UUID `db:"member_id" json:"member_id"`
	Provider       string    `db:"provider" json:"provider"`
	AccessToken    string    `db:"access_token" json:"-"`
	RefreshToken   string    `db:"refresh_token" json:"-"`
	TokenExpiresAt time.Time `db:"token_expires_at" json:"token_expires_at"`
	CalendarEmail  string    `db:"calendar_email" json:"calendar_email"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
