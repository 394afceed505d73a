package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rorfeny/workhours-api/pkg/ledger"
	"github.com/rorfeny/workhours-api/pkg/timesheet"
)

// Salary figures shown in the report summary. Estimates only, not payroll.
const (
	HourlyGrossEUR = 13.30
	TaxEstimate    = 0.15
)

// AppTitle heads every report
const AppTitle = "Registro horas Rorfeny"

var spanishMonths = []string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

var spanishWeekdays = []string{
	"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo",
}

// Row is one report line for a recorded shift
type Row struct {
	ID            uint    `json:"id"`
	Date          string  `json:"date"`
	Weekday       string  `json:"weekday"`
	Start         string  `json:"start"`
	End           string  `json:"end"`
	BreakMinutes  int     `json:"break_minutes"`
	Hours         float64 `json:"hours"`
	ExtrasMinutes int     `json:"extras_minutes"`
	Extras        string  `json:"extras"`
	Notes         string  `json:"notes"`
}

// WeekSummary aggregates one ISO week of a month view
type WeekSummary struct {
	Year          int     `json:"year"`
	Week          int     `json:"week"`
	Monday        string  `json:"monday"`
	Sunday        string  `json:"sunday"`
	TotalHours    float64 `json:"total_hours"`
	TotalText     string  `json:"total_text"`
	ExtrasMinutes int     `json:"extras_minutes"`
	ExcessMinutes int     `json:"excess_minutes"` // above the weekly contract, never negative
}

// MonthRange returns the first and last day of a "YYYY-MM" month
func MonthRange(yyyymm string) (time.Time, time.Time, error) {
	first, err := time.Parse("2006-01", yyyymm)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM", yyyymm)
	}
	last := first.AddDate(0, 1, -1)
	return first, last, nil
}

// MonthKey formats a date as its "YYYY-MM" month key
func MonthKey(d time.Time) string {
	return d.Format("2006-01")
}

// MonthTitle renders the Spanish report heading for a month
func MonthTitle(yyyymm string) string {
	first, _, err := MonthRange(yyyymm)
	if err != nil {
		return fmt.Sprintf("%s — %s", AppTitle, yyyymm)
	}
	return fmt.Sprintf("%s — Mes de %s %d", AppTitle, spanishMonths[first.Month()-1], first.Year())
}

// BuildMonthTable loads a month of shifts and shapes them into report rows,
// most recent date first.
func BuildMonthTable(l *ledger.Ledger, yyyymm string) ([]Row, error) {
	first, last, err := MonthRange(yyyymm)
	if err != nil {
		return nil, err
	}
	shifts, err := l.ListRange(first.Format(timesheet.DateLayout), last.Format(timesheet.DateLayout))
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(shifts))
	for _, s := range shifts {
		d, err := time.Parse(timesheet.DateLayout, s.WorkDate)
		if err != nil {
			continue
		}
		deltaMin := timesheet.MinutesFromHours(s.HoursWorked - timesheet.DailyThresholdHours)
		rows = append(rows, Row{
			ID:            s.ID,
			Date:          s.WorkDate,
			Weekday:       spanishWeekdays[(int(d.Weekday())+6)%7],
			Start:         s.StartTime,
			End:           s.EndTime,
			BreakMinutes:  s.BreakMinutes,
			Hours:         s.HoursWorked,
			ExtrasMinutes: deltaMin,
			Extras:        timesheet.FormatMinutesSigned(deltaMin),
			Notes:         s.Notes,
		})
	}
	return rows, nil
}

// MonthTotals sums the table: total worked hours and the signed accumulated
// overtime minutes.
func MonthTotals(rows []Row) (totalHours float64, overtimeMinutes int) {
	for _, r := range rows {
		totalHours += r.Hours
		overtimeMinutes += r.ExtrasMinutes
	}
	return totalHours, overtimeMinutes
}

// WeeklySummary aggregates a month's shifts per ISO week, newest week first.
// The accumulated extras keep their sign; the excess over the weekly contract
// is clamped at zero.
func WeeklySummary(l *ledger.Ledger, yyyymm string) ([]WeekSummary, error) {
	first, last, err := MonthRange(yyyymm)
	if err != nil {
		return nil, err
	}
	shifts, err := l.ListRange(first.Format(timesheet.DateLayout), last.Format(timesheet.DateLayout))
	if err != nil {
		return nil, err
	}

	totals := make(map[timesheet.WeekKey]float64)
	extras := make(map[timesheet.WeekKey]int)
	mondays := make(map[timesheet.WeekKey]time.Time)
	for _, s := range shifts {
		d, err := time.Parse(timesheet.DateLayout, s.WorkDate)
		if err != nil {
			continue
		}
		y, w := d.ISOWeek()
		key := timesheet.WeekKey{Year: y, Week: w}
		totals[key] += s.HoursWorked
		extras[key] += timesheet.MinutesFromHours(s.HoursWorked - timesheet.DailyThresholdHours)
		if _, ok := mondays[key]; !ok {
			mondays[key] = d.AddDate(0, 0, -((int(d.Weekday()) + 6) % 7))
		}
	}

	keys := make([]timesheet.WeekKey, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Year != keys[j].Year {
			return keys[i].Year > keys[j].Year
		}
		return keys[i].Week > keys[j].Week
	})

	out := make([]WeekSummary, 0, len(keys))
	excess := timesheet.WeeklyOvertime(totals)
	for _, k := range keys {
		monday := mondays[k]
		out = append(out, WeekSummary{
			Year:          k.Year,
			Week:          k.Week,
			Monday:        monday.Format(timesheet.DateLayout),
			Sunday:        monday.AddDate(0, 0, 6).Format(timesheet.DateLayout),
			TotalHours:    totals[k],
			TotalText:     timesheet.FormatHours(totals[k]),
			ExtrasMinutes: extras[k],
			ExcessMinutes: timesheet.MinutesFromHours(excess[k]),
		})
	}
	return out, nil
}

// SummaryLines builds the two boxed summary lines of the monthly report:
// accumulated extras, then the gross and estimated net salary.
func SummaryLines(totalHours float64, overtimeMinutes int) (string, string) {
	gross := totalHours * HourlyGrossEUR
	net := gross * (1 - TaxEstimate)
	l1 := fmt.Sprintf("Horas extras acumuladas del mes: %s", timesheet.FormatMinutesSigned(overtimeMinutes))
	l2 := fmt.Sprintf("Total bruto del mes: %s € · Total neto estimado: %s €", FormatEuro(gross), FormatEuro(net))
	return l1, l2
}

// FormatEuro renders an amount in the Spanish convention, e.g. 1234.5 as
// "1.234,50".
func FormatEuro(x float64) string {
	s := strconv.FormatFloat(x, 'f', 2, 64)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	parts := strings.SplitN(s, ".", 2)
	intPart, frac := parts[0], parts[1]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	out := b.String() + "," + frac
	if neg {
		out = "-" + out
	}
	return out
}
