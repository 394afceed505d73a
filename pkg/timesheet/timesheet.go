package timesheet

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rorfeny/workhours-api/pkg/models"
)

// Contract parameters. The daily figure is a target (break already deducted),
// the weekly figure is the contracted 30 h/week.
const (
	DailyThresholdHours  = 6.0
	WeeklyThresholdHours = 30.0
	DefaultBreakMinutes  = 30
)

// DateLayout is the stored format of Shift.WorkDate
const DateLayout = "2006-01-02"

// WeekKey identifies an ISO calendar week
type WeekKey struct {
	Year int `json:"year"`
	Week int `json:"week"`
}

// ParseClock parses a "HH:MM" wall-clock string
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour, minute, nil
}

// WorkedHours returns the hours worked between two wall-clock times minus the
// break, rounded to 2 decimals and never negative. An end strictly before the
// start means the shift crossed midnight; start == end is a zero-length
// shift, not a 24 h one.
func WorkedHours(start, end string, breakMinutes int) (float64, error) {
	sh, sm, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	eh, em, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	startMin := sh*60 + sm
	endMin := eh*60 + em
	if endMin < startMin {
		endMin += 24 * 60
	}
	total := float64(endMin-startMin) / 60.0
	if breakMinutes > 0 {
		total -= float64(breakMinutes) / 60.0
	}
	return round2(math.Max(0, total)), nil
}

// DailyOvertime returns the signed delta against the daily target. A short
// day yields a negative value; it is deliberately not clamped.
func DailyOvertime(hoursWorked float64) float64 {
	return round2(hoursWorked - DailyThresholdHours)
}

// WeeklyTotals sums worked hours per ISO week. Shifts whose WorkDate does not
// parse are skipped.
func WeeklyTotals(shifts []models.Shift) map[WeekKey]float64 {
	totals := make(map[WeekKey]float64)
	for _, s := range shifts {
		d, err := time.Parse(DateLayout, s.WorkDate)
		if err != nil {
			continue
		}
		y, w := d.ISOWeek()
		totals[WeekKey{Year: y, Week: w}] += s.HoursWorked
	}
	return totals
}

// WeeklyOvertime returns the hours above the weekly contract per ISO week,
// clamped at zero. Unlike the daily delta, a short week is reported as 0.
func WeeklyOvertime(totals map[WeekKey]float64) map[WeekKey]float64 {
	overtime := make(map[WeekKey]float64, len(totals))
	for k, total := range totals {
		overtime[k] = round2(math.Max(0, total-WeeklyThresholdHours))
	}
	return overtime
}

// MinutesFromHours converts a fractional hour figure to whole minutes
func MinutesFromHours(hours float64) int {
	return int(math.Round(hours * 60))
}

// FormatMinutes renders a non-negative minute count as "2 h 15 min"
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	h := minutes / 60
	m := minutes % 60
	switch {
	case h == 0:
		return fmt.Sprintf("%d min", m)
	case m == 0:
		return fmt.Sprintf("%d h", h)
	default:
		return fmt.Sprintf("%d h %d min", h, m)
	}
}

// FormatMinutesSigned renders a signed minute count, e.g. "-1 h 30 min".
// Exactly zero renders "0 min".
func FormatMinutesSigned(minutes int) string {
	if minutes == 0 {
		return "0 min"
	}
	sign := ""
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return sign + FormatMinutes(minutes)
}

// FormatHours renders fractional hours as an "h/min" string
func FormatHours(hours float64) string {
	return FormatMinutes(MinutesFromHours(hours))
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
