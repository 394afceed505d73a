package timesheet

import (
	"testing"

	"github.com/rorfeny/workhours-api/pkg/models"
)

func TestWorkedHours(t *testing.T) {
	cases := []struct {
		name     string
		start    string
		end      string
		breakMin int
		want     float64
	}{
		{"plain day", "08:00", "14:30", 0, 6.5},
		{"break deducted", "08:00", "14:30", 30, 6.0},
		{"crosses midnight", "23:00", "01:00", 0, 2.0},
		{"zero length is not a full day", "09:00", "09:00", 0, 0.0},
		{"break longer than shift clamps to zero", "09:00", "09:30", 60, 0.0},
		{"midnight end", "18:00", "00:00", 0, 6.0},
	}
	for _, c := range cases {
		got, err := WorkedHours(c.start, c.end, c.breakMin)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", c.name, err)
			continue
		}
		if got != c.want {
			t.Errorf("%s: WorkedHours(%s, %s, %d) = %v, want %v", c.name, c.start, c.end, c.breakMin, got, c.want)
		}
	}
}

func TestWorkedHoursInvalidClock(t *testing.T) {
	for _, s := range []string{"25:00", "08:60", "0800", "", "ab:cd"} {
		if _, err := WorkedHours(s, "14:00", 0); err == nil {
			t.Errorf("expected error for start %q", s)
		}
		if _, err := WorkedHours("08:00", s, 0); err == nil {
			t.Errorf("expected error for end %q", s)
		}
	}
}

func TestDailyOvertimeIsSigned(t *testing.T) {
	if got := DailyOvertime(6.5); got != 0.5 {
		t.Errorf("expected +0.5 overtime, got %v", got)
	}
	if got := DailyOvertime(5.0); got != -1.0 {
		t.Errorf("expected -1.0 deficit, got %v", got)
	}
	if got := DailyOvertime(DailyThresholdHours); got != 0.0 {
		t.Errorf("expected 0 overtime at the threshold, got %v", got)
	}
}

func TestWeeklyTotalsGroupsByISOWeek(t *testing.T) {
	// 2025-01-05 is a Sunday (2025-W01), 2025-01-06 a Monday (2025-W02)
	shifts := []models.Shift{
		{WorkDate: "2025-01-05", HoursWorked: 6.0},
		{WorkDate: "2025-01-06", HoursWorked: 7.0},
		{WorkDate: "2025-01-07", HoursWorked: 5.5},
	}
	totals := WeeklyTotals(shifts)
	if got := totals[WeekKey{2025, 1}]; got != 6.0 {
		t.Errorf("week 1 total = %v, want 6.0", got)
	}
	if got := totals[WeekKey{2025, 2}]; got != 12.5 {
		t.Errorf("week 2 total = %v, want 12.5", got)
	}
}

func TestWeeklyTotalsISOYearBoundary(t *testing.T) {
	// 2024-12-30 belongs to ISO week 2025-W01
	totals := WeeklyTotals([]models.Shift{{WorkDate: "2024-12-30", HoursWorked: 4.0}})
	if got := totals[WeekKey{2025, 1}]; got != 4.0 {
		t.Errorf("expected 2024-12-30 grouped into 2025-W01, got %v", totals)
	}
}

func TestWeeklyOvertimeIsClamped(t *testing.T) {
	totals := map[WeekKey]float64{
		{2025, 1}: 25.0,
		{2025, 2}: 32.5,
	}
	ot := WeeklyOvertime(totals)
	if got := ot[WeekKey{2025, 1}]; got != 0.0 {
		t.Errorf("short week should clamp to 0, got %v", got)
	}
	if got := ot[WeekKey{2025, 2}]; got != 2.5 {
		t.Errorf("expected 2.5 h excess, got %v", got)
	}
}

func TestFormatMinutesSigned(t *testing.T) {
	cases := []struct {
		min  int
		want string
	}{
		{0, "0 min"},
		{45, "45 min"},
		{-45, "-45 min"},
		{60, "1 h"},
		{90, "1 h 30 min"},
		{-90, "-1 h 30 min"},
	}
	for _, c := range cases {
		if got := FormatMinutesSigned(c.min); got != c.want {
			t.Errorf("FormatMinutesSigned(%d) = %q, want %q", c.min, got, c.want)
		}
	}
}

func TestFormatHours(t *testing.T) {
	if got := FormatHours(6.5); got != "6 h 30 min" {
		t.Errorf("FormatHours(6.5) = %q", got)
	}
	if got := FormatHours(0); got != "0 min" {
		t.Errorf("FormatHours(0) = %q", got)
	}
}
