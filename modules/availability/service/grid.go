package service

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"group-planner/modules/availability/entity"
)

// ComputeGrid aggregates member free-time intervals into a week-shaped grid of
// "percent of members free" values. Pure function of its inputs.
//
// A member counts as available for an hour bucket when any of their intervals
// overlaps the bucket at all; full coverage is not required. Duplicate entries
// for the same member are merged so a member never counts twice.
func ComputeGrid(
	members []entity.MemberAvailability,
	weekStart time.Time,
	hourStart int,
	hourEnd int,
	totalMembers int,
) (*entity.AvailabilityGrid, error) {

	if totalMembers < 0 {
		return nil, fmt.Errorf("total members must not be negative, got %d", totalMembers)
	}
	if hourStart < 0 || hourEnd > 23 || hourStart > hourEnd {
		return nil, fmt.Errorf("invalid hour range [%d, %d]", hourStart, hourEnd)
	}

	// Merge duplicate member entries so availability is counted per identity
	byMember := make(map[uuid.UUID][]entity.TimeInterval, len(members))
	for _, m := range members {
		for _, iv := range m.Intervals {
			if !iv.StartTime.Before(iv.EndTime) {
				return nil, fmt.Errorf("interval %s has start >= end", iv.ID)
			}
		}
		byMember[m.MemberID] = append(byMember[m.MemberID], m.Intervals...)
	}

	grid := &entity.AvailabilityGrid{
		WeekStart:    weekStart,
		HourStart:    hourStart,
		HourEnd:      hourEnd,
		TotalMembers: totalMembers,
	}

	hours := grid.Hours()
	for day := 0; day < 7; day++ {
		grid.Cells[day] = make([]int, hours)
	}

	if totalMembers == 0 {
		return grid, nil
	}

	loc := weekStart.Location()
	for day := 0; day < 7; day++ {
		date := weekStart.AddDate(0, 0, day)
		for hour := hourStart; hour <= hourEnd; hour++ {
			bucketStart := time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, loc)
			bucketEnd := bucketStart.Add(time.Hour)

			available := 0
			for _, intervals := range byMember {
				if coversBucket(intervals, bucketStart, bucketEnd) {
					available++
				}
			}

			pct := int(math.Round(100 * float64(available) / float64(totalMembers)))
			grid.Cells[day][hour-hourStart] = pct
		}
	}

	return grid, nil
}

// coversBucket reports whether any interval overlaps [bucketStart, bucketEnd)
func coversBucket(intervals []entity.TimeInterval, bucketStart, bucketEnd time.Time) bool {
	for _, iv := range intervals {
		if iv.StartTime.Before(bucketEnd) && iv.EndTime.After(bucketStart) {
			return true
		}
	}
	return false
}
