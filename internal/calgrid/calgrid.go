// Package calgrid implements the date and pixel arithmetic behind the
// calendar views: padding a month to whole Sunday-to-Saturday weeks,
// mapping drag-selected hour rows to concrete time intervals, and
// positioning appointment blocks inside the fixed-height hourly grid.
package calgrid

import (
	"fmt"
	"time"
)

// SlotHeight is the rendered height of one hour row, in pixels.
const SlotHeight = 48.0

// MinBlockMinutes floors the rendered duration of an appointment block so
// that very short or malformed (end <= start) appointments stay visible.
const MinBlockMinutes = 15.0

// gridFirstHour is the hour of the first row; the grid starts at 1:00.
const gridFirstHour = 1

// slotRows is the number of hour rows per day column (1:00 through 23:00).
const slotRows = 23

// MonthGridStart returns the Sunday on or before the first day of ref's
// month, at midnight in ref's location.
func MonthGridStart(ref time.Time) time.Time {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	return first.AddDate(0, 0, -int(first.Weekday()))
}

// MonthGridEnd returns the Saturday on or after the last day of ref's
// month, at midnight in ref's location.
func MonthGridEnd(ref time.Time) time.Time {
	last := time.Date(ref.Year(), ref.Month()+1, 0, 0, 0, 0, 0, ref.Location())
	return last.AddDate(0, 0, int(time.Saturday-last.Weekday()))
}

// MonthGridRange returns both grid bounds. The range always spans a whole
// number of weeks beginning on a Sunday.
func MonthGridRange(ref time.Time) (start, end time.Time) {
	return MonthGridStart(ref), MonthGridEnd(ref)
}

// GridDays enumerates every day of ref's padded month grid, including the
// leading and trailing days borrowed from adjacent months.
func GridDays(ref time.Time) []time.Time {
	start, end := MonthGridRange(ref)
	days := make([]time.Time, 0, 42)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// SlotRange maps a drag selection in the week grid to a concrete interval.
// weekStart is the first (Sunday) day of the displayed week, col the
// zero-based day column (0-6), and startRow/endRow the zero-based hour rows
// (0-22, representing 1:00 through 23:00). Rows are order-independent and a
// single-slot click (equal rows) yields a one-hour interval.
//
// A selection ending on the last row produces an end of midnight the
// following day rather than clamping to 23:59; time.Date normalizes the
// hour-24 boundary. Out-of-range indices (an off-grid drag release) return
// an error instead of a garbage interval.
func SlotRange(weekStart time.Time, col, startRow, endRow int) (start, end time.Time, err error) {
	if col < 0 || col > 6 {
		return time.Time{}, time.Time{}, fmt.Errorf("calgrid: day column %d out of range", col)
	}
	if startRow < 0 || startRow >= slotRows {
		return time.Time{}, time.Time{}, fmt.Errorf("calgrid: start row %d out of range", startRow)
	}
	if endRow < 0 || endRow >= slotRows {
		return time.Time{}, time.Time{}, fmt.Errorf("calgrid: end row %d out of range", endRow)
	}
	if startRow > endRow {
		startRow, endRow = endRow, startRow
	}

	day := weekStart.AddDate(0, 0, col)
	start = time.Date(day.Year(), day.Month(), day.Day(), gridFirstHour+startRow, 0, 0, 0, day.Location())
	end = time.Date(day.Year(), day.Month(), day.Day(), gridFirstHour+endRow+1, 0, 0, 0, day.Location())
	return start, end, nil
}

// Layout computes the vertical pixel offset and height of an appointment
// block within the hourly grid. The top offset is never negative and the
// height never renders shorter than MinBlockMinutes, regardless of
// malformed end <= start data.
func Layout(start, end time.Time) (top, height float64) {
	startMinutes := (start.Hour()-gridFirstHour)*60 + start.Minute()
	if startMinutes < 0 {
		startMinutes = 0
	}
	top = float64(startMinutes) * (SlotHeight / 60)

	durationMinutes := end.Sub(start).Minutes()
	if durationMinutes < MinBlockMinutes {
		durationMinutes = MinBlockMinutes
	}
	height = durationMinutes / 60 * SlotHeight
	return top, height
}
