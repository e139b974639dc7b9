package dto

import (
	"time"

	"group-planner/modules/availability/entity"
)

// ===================== Request DTOs =====================

// CreateIntervalRequest declares a block of free time
type CreateIntervalRequest struct {
	StartTime string `json:"start_time" validate:"required"` // RFC3339
	EndTime   string `json:"end_time" validate:"required"`   // RFC3339
}

// SyncCalendarRequest imports free time from a connected calendar
type SyncCalendarRequest struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD, defaults to today
	Days      int    `json:"days"`       // defaults to 7
}

// SelectBlocksRequest commits a drag-style rectangle selection over the grid.
// Day indexes are week offsets (0 = week start), hours are absolute.
type SelectBlocksRequest struct {
	WeekStart string `json:"week_start" validate:"required"` // YYYY-MM-DD
	DayFrom   int    `json:"day_from"`
	DayTo     int    `json:"day_to"`
	HourFrom  int    `json:"hour_from"`
	HourTo    int    `json:"hour_to"`
	Threshold int    `json:"threshold"` // defaults to 60
}

// ConnectCalendarRequest saves provider tokens for busy-time import
type ConnectCalendarRequest struct {
	AccessToken    string `json:"access_token" validate:"required"`
	RefreshToken   string `json:"refresh_token"`
	TokenExpiresAt string `json:"token_expires_at"` // RFC3339
	CalendarEmail  string `json:"calendar_email" validate:"required"`
}

// ===================== Response DTOs =====================

// IntervalResponse is one declared free-time block
type IntervalResponse struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"group_id"`
	MemberID  string    `json:"member_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// GridDayResponse is one day column of the availability grid
type GridDayResponse struct {
	Date          string `json:"date"` // YYYY-MM-DD
	DayLabel      string `json:"day_label"`
	CalendarIndex int    `json:"calendar_index"` // 0=Sunday
	DisplayIndex  int    `json:"display_index"`  // 0=Monday
	Percentages   []int  `json:"percentages"`    // indexed by hour-hour_start
}

// GridResponse is the weekly availability grid, columns in display order
type GridResponse struct {
	GroupID      string            `json:"group_id"`
	WeekStart    string            `json:"week_start"`
	HourStart    int               `json:"hour_start"`
	HourEnd      int               `json:"hour_end"`
	TotalMembers int               `json:"total_members"`
	Days         []GridDayResponse `json:"days"`
}

// BlocksResponse lists viable contiguous blocks and their multi-day summaries
type BlocksResponse struct {
	GroupID   string                     `json:"group_id"`
	Threshold int                        `json:"threshold"`
	Blocks    []entity.AvailabilityBlock `json:"blocks"`
	Summaries []entity.BlockSummary      `json:"summaries"`
}

// SyncCalendarResponse reports how many intervals a calendar import produced
type SyncCalendarResponse struct {
	ImportedCount int                `json:"imported_count"`
	Intervals     []IntervalResponse `json:"intervals"`
}

// ExportResponse carries the presigned link to an uploaded grid snapshot
type ExportResponse struct {
	Key       string `json:"key"`
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in_seconds"`
}

// ===================== Mapper Functions =====================

// ToIntervalResponse maps entity to DTO
func ToIntervalResponse(iv *entity.TimeInterval) *IntervalResponse {
	return &IntervalResponse{
		ID:        iv.ID.String(),
		GroupID:   iv.GroupID.String(),
		MemberID:  iv.MemberID.String(),
		StartTime: iv.StartTime,
		EndTime:   iv.EndTime,
		Source:    iv.Source,
		CreatedAt: iv.CreatedAt,
	}
}

// ToGridResponse maps the grid into display order (Monday first, CN last)
func ToGridResponse(groupID string, grid *entity.AvailabilityGrid) *GridResponse {
	resp := &GridResponse{
		GroupID:      groupID,
		WeekStart:    grid.WeekStart.Format("2006-01-02"),
		HourStart:    grid.HourStart,
		HourEnd:      grid.HourEnd,
		TotalMembers: grid.TotalMembers,
		Days:         make([]GridDayResponse, 0, 7),
	}

	type column struct {
		dayOffset int
		display   entity.DisplayDayIndex
	}
	columns := make([]column, 7)
	for offset := 0; offset < 7; offset++ {
		cal := grid.CalendarIndexAt(offset)
		columns[offset] = column{dayOffset: offset, display: cal.ToDisplay()}
	}

	// Emit columns sorted by display position, not by date offset
	for pos := entity.DisplayDayIndex(0); pos < 7; pos++ {
		for _, col := range columns {
			if col.display != pos {
				continue
			}
			cal := grid.CalendarIndexAt(col.dayOffset)
			percentages := make([]int, grid.Hours())
			copy(percentages, grid.Cells[col.dayOffset])
			resp.Days = append(resp.Days, GridDayResponse{
				Date:          grid.DateAt(col.dayOffset).Format("2006-01-02"),
				DayLabel:      cal.Label(),
				CalendarIndex: int(cal),
				DisplayIndex:  int(pos),
				Percentages:   percentages,
			})
		}
	}

	return resp
}
