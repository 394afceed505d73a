// Package archive decides which months are editable and snapshots a closed
// month's report into durable storage once its grace period ends.
package archive

import (
	"fmt"
	"log"
	"time"

	"github.com/rorfeny/workhours-api/pkg/ledger"
	"github.com/rorfeny/workhours-api/pkg/report"
)

// GraceDays is how many days into a new month the previous month stays
// editable. Archival fires from day GraceDays+1 on.
const GraceDays = 4

// MonthKey formats a date as "YYYY-MM"
func MonthKey(d time.Time) string {
	return d.Format("2006-01")
}

// PreviousMonthKey returns the month key before the given date's month
func PreviousMonthKey(d time.Time) string {
	firstOfMonth := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	return MonthKey(firstOfMonth.AddDate(0, 0, -1))
}

// EditWindow reports the current and previous month keys and whether the
// previous month is still inside its grace period.
func EditWindow(today time.Time) (current, previous string, previousEditable bool) {
	return MonthKey(today), PreviousMonthKey(today), today.Day() <= GraceDays
}

// CanEdit reports whether shifts in the given month may be added or edited:
// the current month always, the previous month only through day GraceDays of
// the current one, anything older never.
func CanEdit(yyyymm string, today time.Time) bool {
	current, previous, previousEditable := EditWindow(today)
	if yyyymm == current {
		return true
	}
	return yyyymm == previous && previousEditable
}

// RunMonthlyArchival snapshots the previous month's report once its grace
// period has passed. Re-running is safe: an existing artifact short-circuits,
// so the stored bytes are never overwritten. A month with no shifts is not
// archived. Failures are logged and returned for the operator; reports stay
// regenerable on demand from ledger data either way.
func RunMonthlyArchival(l *ledger.Ledger, store *Store, today time.Time) error {
	if today.Day() <= GraceDays {
		return nil
	}
	prev := PreviousMonthKey(today)
	if store.Has(prev) {
		return nil
	}

	rows, err := report.BuildMonthTable(l, prev)
	if err != nil {
		log.Printf("archival: could not load %s: %v", prev, err)
		return fmt.Errorf("archiving %s: %w", prev, err)
	}
	if len(rows) == 0 {
		return nil
	}

	hours, extrasMin := report.MonthTotals(rows)
	line1, line2 := report.SummaryLines(hours, extrasMin)
	payload, err := report.RenderPDF(report.MonthTitle(prev), rows, line1, line2)
	if err != nil {
		log.Printf("archival: rendering %s failed: %v", prev, err)
		return fmt.Errorf("archiving %s: %w", prev, err)
	}

	if err := store.Put(prev, payload); err != nil {
		log.Printf("archival: storing %s failed (report stays available on demand): %v", prev, err)
		return fmt.Errorf("archiving %s: %w", prev, err)
	}
	log.Printf("archived month %s (%d shifts)", prev, len(rows))
	return nil
}
