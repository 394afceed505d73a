package ledger

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/rorfeny/workhours-api/pkg/models"
	"github.com/rorfeny/workhours-api/pkg/timesheet"
)

// ErrDuplicateDate is returned when a shift already exists for a work date
var ErrDuplicateDate = errors.New("a shift is already recorded for that date")

// ErrNotFound is returned when an id does not resolve to a stored shift
var ErrNotFound = errors.New("shift not found")

// Ledger is the persistence boundary for shifts. Each call is its own
// transaction; there is no cross-call transaction spanning multiple edits.
type Ledger struct {
	DB *gorm.DB
}

// New wraps an open gorm handle
func New(db *gorm.DB) *Ledger {
	return &Ledger{DB: db}
}

// Exists reports whether a shift is already stored for the given date
func (l *Ledger) Exists(workDate string) (bool, error) {
	var count int64
	if err := l.DB.Model(&models.Shift{}).Where("work_date = ?", workDate).Count(&count).Error; err != nil {
		return false, fmt.Errorf("checking date %s: %w", workDate, err)
	}
	return count > 0, nil
}

// Add inserts a shift and assigns its id. Callers must check Exists first:
// Add itself is a plain insert and does not re-validate uniqueness.
func (l *Ledger) Add(s *models.Shift) error {
	if err := l.DB.Create(s).Error; err != nil {
		return fmt.Errorf("inserting shift for %s: %w", s.WorkDate, err)
	}
	return nil
}

// ListRange returns shifts with from <= work_date <= to, most recent date
// first and latest insert first within a date. If historical anomalies left
// duplicate rows for a date, only the first (latest-inserted) row per date
// survives.
func (l *Ledger) ListRange(from, to string) ([]models.Shift, error) {
	var rows []models.Shift
	err := l.DB.
		Where("work_date >= ? AND work_date <= ?", from, to).
		Order("work_date DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing shifts %s..%s: %w", from, to, err)
	}
	seen := make(map[string]bool, len(rows))
	dedup := rows[:0]
	for _, r := range rows {
		if seen[r.WorkDate] {
			continue
		}
		seen[r.WorkDate] = true
		dedup = append(dedup, r)
	}
	return dedup, nil
}

// GetByID fetches one shift by its surrogate id
func (l *Ledger) GetByID(id uint) (*models.Shift, error) {
	var s models.Shift
	err := l.DB.First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching shift %d: %w", id, err)
	}
	return &s, nil
}

// UpdateTimes replaces the start/end of a stored shift and re-derives its
// hours and overtime from the shift's existing break. A vanished id is
// reported as ErrNotFound so batch callers can skip the record and continue.
func (l *Ledger) UpdateTimes(id uint, newStart, newEnd string) (*models.Shift, error) {
	s, err := l.GetByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Printf("update skipped: shift %d no longer exists", id)
		}
		return nil, err
	}

	hours, err := timesheet.WorkedHours(newStart, newEnd, s.BreakMinutes)
	if err != nil {
		return nil, err
	}
	delta := timesheet.DailyOvertime(hours)

	err = l.DB.Model(s).Updates(map[string]any{
		"start_time":     newStart,
		"end_time":       newEnd,
		"hours_worked":   hours,
		"overtime_hours": delta,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("updating shift %d: %w", id, err)
	}

	s.StartTime = newStart
	s.EndTime = newEnd
	s.HoursWorked = hours
	s.OvertimeHours = delta
	return s, nil
}

// MonthsWithShifts returns the distinct YYYY-MM keys that have at least one
// shift. A full column scan is fine at single-user scale.
func (l *Ledger) MonthsWithShifts() ([]string, error) {
	var dates []string
	if err := l.DB.Model(&models.Shift{}).Pluck("work_date", &dates).Error; err != nil {
		return nil, fmt.Errorf("listing recorded months: %w", err)
	}
	seen := make(map[string]bool)
	var months []string
	for _, d := range dates {
		if len(d) < 7 {
			continue
		}
		m := d[:7]
		if !seen[m] {
			seen[m] = true
			months = append(months, m)
		}
	}
	return months, nil
}
