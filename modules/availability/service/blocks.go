package service

import (
	"group-planner/modules/availability/entity"
)

// ExtractBlocks groups contiguous hour cells of the same day, each at or above
// the threshold percentage, into [StartHour, EndHour) ranges.
func ExtractBlocks(grid *entity.AvailabilityGrid, threshold int) []entity.AvailabilityBlock {
	blocks := []entity.AvailabilityBlock{}

	for day := 0; day < 7; day++ {
		runStart := -1
		runMin := 101

		flush := func(endHour int) {
			if runStart >= 0 {
				blocks = append(blocks, entity.AvailabilityBlock{
					Date:       grid.DateAt(day),
					DayLabel:   grid.CalendarIndexAt(day).Label(),
					StartHour:  runStart,
					EndHour:    endHour,
					MinPercent: runMin,
				})
				runStart = -1
				runMin = 101
			}
		}

		for hour := grid.HourStart; hour <= grid.HourEnd; hour++ {
			pct := grid.PercentAt(day, hour)
			if pct >= threshold {
				if runStart < 0 {
					runStart = hour
				}
				if pct < runMin {
					runMin = pct
				}
			} else {
				flush(hour)
			}
		}
		flush(grid.HourEnd + 1)
	}

	return blocks
}

// SummarizeBlocks merges contiguous days whose blocks share an identical hour
// range into multi-day summaries. Blocks must come from ExtractBlocks, which
// emits them in day order.
func SummarizeBlocks(blocks []entity.AvailabilityBlock) []entity.BlockSummary {
	summaries := []entity.BlockSummary{}

	for _, b := range blocks {
		merged := false
		if len(summaries) > 0 {
			last := &summaries[len(summaries)-1]
			sameRange := last.StartHour == b.StartHour && last.EndHour == b.EndHour
			nextDay := b.Date.Sub(last.EndDate).Hours() == 24
			if sameRange && nextDay {
				last.EndDate = b.Date
				merged = true
			}
		}
		if !merged {
			summaries = append(summaries, entity.BlockSummary{
				StartDate: b.Date,
				EndDate:   b.Date,
				StartHour: b.StartHour,
				EndHour:   b.EndHour,
			})
		}
	}

	return summaries
}

// SelectRange commits a drag-style rectangle selection over the grid. The
// earlier (lower day, lower hour) corner anchors the range regardless of drag
// direction, and cells below the threshold inside the rectangle are silently
// excluded rather than included and flagged.
func SelectRange(
	grid *entity.AvailabilityGrid,
	dayFrom, dayTo int,
	hourFrom, hourTo int,
	threshold int,
) []entity.AvailabilityBlock {

	if dayFrom > dayTo {
		dayFrom, dayTo = dayTo, dayFrom
	}
	if hourFrom > hourTo {
		hourFrom, hourTo = hourTo, hourFrom
	}

	clamp := func(v, lo, hi int) int {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}
	dayFrom = clamp(dayFrom, 0, 6)
	dayTo = clamp(dayTo, 0, 6)
	hourFrom = clamp(hourFrom, grid.HourStart, grid.HourEnd)
	hourTo = clamp(hourTo, grid.HourStart, grid.HourEnd)

	blocks := []entity.AvailabilityBlock{}
	for day := dayFrom; day <= dayTo; day++ {
		runStart := -1
		runMin := 101

		flush := func(endHour int) {
			if runStart >= 0 {
				blocks = append(blocks, entity.AvailabilityBlock{
					Date:       grid.DateAt(day),
					DayLabel:   grid.CalendarIndexAt(day).Label(),
					StartHour:  runStart,
					EndHour:    endHour,
					MinPercent: runMin,
				})
				runStart = -1
				runMin = 101
			}
		}

		for hour := hourFrom; hour <= hourTo; hour++ {
			pct := grid.PercentAt(day, hour)
			if pct >= threshold {
				if runStart < 0 {
					runStart = hour
				}
				if pct < runMin {
					runMin = pct
				}
			} else {
				flush(hour)
			}
		}
		flush(hourTo + 1)
	}

	return blocks
}
