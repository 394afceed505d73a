package ledger

import (
	"errors"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rorfeny/workhours-api/pkg/models"
)

func testLedger(t *testing.T) *Ledger {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Shift{}); err != nil {
		t.Fatalf("migrating schema: %v", err)
	}
	return New(db)
}

func TestAddAndExists(t *testing.T) {
	l := testLedger(t)

	ok, err := l.Exists("2025-03-10")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if ok {
		t.Errorf("expected no shift for an empty ledger")
	}

	s := &models.Shift{WorkDate: "2025-03-10", StartTime: "08:00", EndTime: "14:30", BreakMinutes: 30, HoursWorked: 6.0}
	if err := l.Add(s); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if s.ID == 0 {
		t.Errorf("expected an id to be assigned on insert")
	}

	ok, err = l.Exists("2025-03-10")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !ok {
		t.Errorf("expected Exists to report the inserted date")
	}
}

func TestListRangeOrderAndDedup(t *testing.T) {
	l := testLedger(t)

	for _, s := range []*models.Shift{
		{WorkDate: "2025-03-03", StartTime: "08:00", EndTime: "14:00", HoursWorked: 6.0},
		{WorkDate: "2025-03-05", StartTime: "08:00", EndTime: "14:00", HoursWorked: 6.0},
		// historical anomaly: second row for the same date
		{WorkDate: "2025-03-03", StartTime: "09:00", EndTime: "15:00", HoursWorked: 6.0},
		{WorkDate: "2025-04-01", StartTime: "08:00", EndTime: "14:00", HoursWorked: 6.0},
	} {
		if err := l.Add(s); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	rows, err := l.ListRange("2025-03-01", "2025-03-31")
	if err != nil {
		t.Fatalf("ListRange: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 deduplicated rows, got %d", len(rows))
	}
	if rows[0].WorkDate != "2025-03-05" || rows[1].WorkDate != "2025-03-03" {
		t.Errorf("expected descending date order, got %s then %s", rows[0].WorkDate, rows[1].WorkDate)
	}
	// the later insert for 2025-03-03 wins
	if rows[1].StartTime != "09:00" {
		t.Errorf("expected latest-inserted duplicate to survive, got start %s", rows[1].StartTime)
	}
}

func TestUpdateTimesRederivesHours(t *testing.T) {
	l := testLedger(t)

	s := &models.Shift{WorkDate: "2025-03-10", StartTime: "08:00", EndTime: "14:30", BreakMinutes: 30, HoursWorked: 6.0, OvertimeHours: 0.0}
	if err := l.Add(s); err != nil {
		t.Fatalf("Add: %v", err)
	}

	updated, err := l.UpdateTimes(s.ID, "08:00", "16:00")
	if err != nil {
		t.Fatalf("UpdateTimes: %v", err)
	}
	if updated.HoursWorked != 7.5 {
		t.Errorf("expected 7.5 hours after edit, got %v", updated.HoursWorked)
	}
	if updated.OvertimeHours != 1.5 {
		t.Errorf("expected +1.5 overtime after edit, got %v", updated.OvertimeHours)
	}

	got, err := l.GetByID(s.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.EndTime != "16:00" || got.HoursWorked != 7.5 {
		t.Errorf("edit was not persisted: %+v", got)
	}
	if got.BreakMinutes != 30 {
		t.Errorf("break must stay immutable, got %d", got.BreakMinutes)
	}
}

func TestUpdateTimesMissingID(t *testing.T) {
	l := testLedger(t)
	if _, err := l.UpdateTimes(999, "08:00", "14:00"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for a vanished id, got %v", err)
	}
}

func TestMonthsWithShifts(t *testing.T) {
	l := testLedger(t)
	for _, d := range []string{"2025-01-10", "2025-01-20", "2025-03-05"} {
		if err := l.Add(&models.Shift{WorkDate: d, StartTime: "08:00", EndTime: "14:00"}); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	months, err := l.MonthsWithShifts()
	if err != nil {
		t.Fatalf("MonthsWithShifts: %v", err)
	}
	if len(months) != 2 {
		t.Fatalf("expected 2 months, got %v", months)
	}
	seen := map[string]bool{}
	for _, m := range months {
		seen[m] = true
	}
	if !seen["2025-01"] || !seen["2025-03"] {
		t.Errorf("unexpected month keys: %v", months)
	}
}
