package calgrid

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthGridBounds(t *testing.T) {
	tests := []struct {
		name      string
		ref       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		// March 2024: the 1st is a Friday, the 31st a Sunday.
		{"march 2024", date(2024, time.March, 15), date(2024, time.February, 25), date(2024, time.April, 6)},
		// September 2024: starts on a Sunday, no leading padding.
		{"month starting sunday", date(2024, time.September, 10), date(2024, time.September, 1), date(2024, time.October, 5)},
		// February 2026: 28 days, 1st is a Sunday, 28th a Saturday — exact fit.
		{"exact four weeks", date(2026, time.February, 14), date(2026, time.February, 1), date(2026, time.February, 28)},
		// December: padding crosses the year boundary.
		{"year boundary", date(2025, time.December, 25), date(2025, time.November, 30), date(2026, time.January, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := MonthGridRange(tt.ref)
			if !start.Equal(tt.wantStart) {
				t.Errorf("start: got %v, want %v", start, tt.wantStart)
			}
			if !end.Equal(tt.wantEnd) {
				t.Errorf("end: got %v, want %v", end, tt.wantEnd)
			}
		})
	}
}

func TestMonthGridWholeWeeks(t *testing.T) {
	// Sweep two years of reference dates: the grid must always start on a
	// Sunday, end on a Saturday, and span a multiple of 7 days.
	for ref := date(2024, time.January, 1); ref.Year() < 2026; ref = ref.AddDate(0, 0, 11) {
		start, end := MonthGridRange(ref)
		if start.Weekday() != time.Sunday {
			t.Fatalf("%v: grid start %v is not a Sunday", ref, start)
		}
		if end.Weekday() != time.Saturday {
			t.Fatalf("%v: grid end %v is not a Saturday", ref, end)
		}
		days := int(end.Sub(start).Hours()/24) + 1
		if days%7 != 0 {
			t.Fatalf("%v: grid spans %d days, not a multiple of 7", ref, days)
		}
		if days := GridDays(ref); len(days) < 28 || len(days) > 42 {
			t.Fatalf("%v: unexpected grid day count %d", ref, len(days))
		}
	}
}

func TestGridDaysContiguous(t *testing.T) {
	days := GridDays(date(2024, time.March, 1))
	for i := 1; i < len(days); i++ {
		if !days[i].Equal(days[i-1].AddDate(0, 0, 1)) {
			t.Fatalf("gap between %v and %v", days[i-1], days[i])
		}
	}
}

func TestSlotRange(t *testing.T) {
	// Sunday 2024-03-03.
	week := date(2024, time.March, 3)

	tests := []struct {
		name               string
		col, sRow, eRow    int
		wantStart, wantEnd time.Time
	}{
		{"single slot click", 0, 8, 8,
			time.Date(2024, time.March, 3, 9, 0, 0, 0, time.UTC),
			time.Date(2024, time.March, 3, 10, 0, 0, 0, time.UTC)},
		{"multi row drag", 2, 8, 10,
			time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC),
			time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)},
		{"reversed drag", 2, 10, 8,
			time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC),
			time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)},
		{"first row", 6, 0, 0,
			time.Date(2024, time.March, 9, 1, 0, 0, 0, time.UTC),
			time.Date(2024, time.March, 9, 2, 0, 0, 0, time.UTC)},
		{"last row rolls to next midnight", 0, 22, 22,
			time.Date(2024, time.March, 3, 23, 0, 0, 0, time.UTC),
			time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := SlotRange(week, tt.col, tt.sRow, tt.eRow)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !start.Equal(tt.wantStart) {
				t.Errorf("start: got %v, want %v", start, tt.wantStart)
			}
			if !end.Equal(tt.wantEnd) {
				t.Errorf("end: got %v, want %v", end, tt.wantEnd)
			}
		})
	}
}

func TestSlotRangeRejectsOffGrid(t *testing.T) {
	week := date(2024, time.March, 3)

	tests := []struct {
		name            string
		col, sRow, eRow int
	}{
		{"negative column", -1, 0, 0},
		{"column too large", 7, 0, 0},
		{"negative start row", 0, -1, 0},
		{"start row too large", 0, 23, 23},
		{"end row too large", 0, 0, 23},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := SlotRange(week, tt.col, tt.sRow, tt.eRow); err == nil {
				t.Error("expected error for off-grid selection")
			}
		})
	}
}

func TestLayout(t *testing.T) {
	day := func(h, m int) time.Time {
		return time.Date(2024, time.March, 1, h, m, 0, 0, time.UTC)
	}

	tests := []struct {
		name                string
		start, end          time.Time
		wantTop, wantHeight float64
	}{
		// On-the-hour block: 09:00-10:00 sits at (9-1)*60*(48/60)=384, one slot tall.
		{"nine to ten", day(9, 0), day(10, 0), 384, 48},
		{"half past with minutes", day(9, 30), day(10, 15), 408, 36},
		{"thirty minutes", day(13, 0), day(13, 30), 576, 24},
		{"before grid origin clamps top", day(0, 30), day(2, 0), 0, 72},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top, height := Layout(tt.start, tt.end)
			if top != tt.wantTop {
				t.Errorf("top: got %v, want %v", top, tt.wantTop)
			}
			if height != tt.wantHeight {
				t.Errorf("height: got %v, want %v", height, tt.wantHeight)
			}
		})
	}
}

func TestLayoutMinimumHeight(t *testing.T) {
	minHeight := MinBlockMinutes / 60 * SlotHeight

	start := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	for _, end := range []time.Time{
		start,                        // zero duration
		start.Add(-time.Hour),        // malformed: end before start
		start.Add(5 * time.Minute),   // shorter than the floor
		start.Add(14 * time.Minute),  // just under the floor
		start.Add(time.Minute * 200), // well over
	} {
		_, height := Layout(start, end)
		if height < minHeight {
			t.Errorf("end=%v: height %v below minimum %v", end, height, minHeight)
		}
	}
}
