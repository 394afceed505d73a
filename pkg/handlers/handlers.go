package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rorfeny/workhours-api/pkg/archive"
	"github.com/rorfeny/workhours-api/pkg/ledger"
	"github.com/rorfeny/workhours-api/pkg/models"
	"github.com/rorfeny/workhours-api/pkg/report"
	"github.com/rorfeny/workhours-api/pkg/timesheet"
)

// Handler contains dependencies for the route handlers
type Handler struct {
	Ledger *ledger.Ledger
	Store  *archive.Store
	Now    func() time.Time // overridable in tests
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// AddShift records a new work day. The date must fall inside the edit window
// and must not already have a shift.
func (h *Handler) AddShift(c *gin.Context) {
	var input models.AddShiftInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	day, err := time.Parse(timesheet.DateLayout, input.WorkDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid work_date %q, expected YYYY-MM-DD", input.WorkDate)})
		return
	}
	today := h.now()
	if day.Format(timesheet.DateLayout) > today.Format(timesheet.DateLayout) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "work_date cannot be in the future"})
		return
	}
	if !archive.CanEdit(report.MonthKey(day), today) {
		c.JSON(http.StatusForbidden, gin.H{"error": "that month is closed for editing"})
		return
	}

	breakMin := timesheet.DefaultBreakMinutes
	if input.BreakMinutes != nil {
		breakMin = *input.BreakMinutes
	}
	if breakMin < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "break_minutes cannot be negative"})
		return
	}

	hours, err := timesheet.WorkedHours(input.StartTime, input.EndTime, breakMin)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	exists, err := h.Ledger.Exists(input.WorkDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{"error": ledger.ErrDuplicateDate.Error()})
		return
	}

	shift := models.Shift{
		WorkDate:      input.WorkDate,
		StartTime:     input.StartTime,
		EndTime:       input.EndTime,
		BreakMinutes:  breakMin,
		HoursWorked:   hours,
		OvertimeHours: timesheet.DailyOvertime(hours),
		Notes:         input.Notes,
	}
	if err := h.Ledger.Add(&shift); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, shift)
}

// GetMonth returns the month table with its totals
func (h *Handler) GetMonth(c *gin.Context) {
	month := c.Param("month")
	rows, err := report.BuildMonthTable(h.Ledger, month)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	hours, extrasMin := report.MonthTotals(rows)
	c.JSON(http.StatusOK, gin.H{
		"month":                  month,
		"editable":               archive.CanEdit(month, h.now()),
		"rows":                   rows,
		"total_hours":            hours,
		"total_hours_text":       timesheet.FormatHours(hours),
		"total_overtime_minutes": extrasMin,
		"total_overtime_text":    timesheet.FormatMinutesSigned(extrasMin),
	})
}

// UpdateShiftTimes edits the start/end of one shift inside its edit window
// and re-derives the stored hours and overtime.
func (h *Handler) UpdateShiftTimes(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shift id"})
		return
	}
	var input models.UpdateTimesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, _, err := timesheet.ParseClock(input.StartTime); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, _, err := timesheet.ParseClock(input.EndTime); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shift, err := h.Ledger.GetByID(uint(id))
	if errors.Is(err, ledger.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !archive.CanEdit(shift.WorkDate[:7], h.now()) {
		c.JSON(http.StatusForbidden, gin.H{"error": "that month is closed for editing"})
		return
	}

	updated, err := h.Ledger.UpdateTimes(uint(id), input.StartTime, input.EndTime)
	if errors.Is(err, ledger.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// GetWeeks returns the per-ISO-week summary of a month
func (h *Handler) GetWeeks(c *gin.Context) {
	month := c.Param("month")
	weeks, err := report.WeeklySummary(h.Ledger, month)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"month": month, "weeks": weeks})
}

// MonthPDF regenerates the month report on demand. Works for any month,
// archived or not: reports are pure functions of ledger data.
func (h *Handler) MonthPDF(c *gin.Context) {
	month := c.Param("month")
	data, err := h.renderMonth(month, report.RenderPDF)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=reporte_%s.pdf", month))
	c.Data(http.StatusOK, "application/pdf", data)
}

// MonthXLSX is the spreadsheet flavor of MonthPDF
func (h *Handler) MonthXLSX(c *gin.Context) {
	month := c.Param("month")
	data, err := h.renderMonth(month, report.RenderXLSX)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=reporte_%s.xlsx", month))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *Handler) renderMonth(month string, render func(string, []report.Row, string, string) ([]byte, error)) ([]byte, error) {
	rows, err := report.BuildMonthTable(h.Ledger, month)
	if err != nil {
		return nil, err
	}
	hours, extrasMin := report.MonthTotals(rows)
	line1, line2 := report.SummaryLines(hours, extrasMin)
	return render(report.MonthTitle(month), rows, line1, line2)
}

// ListArchived returns the archived month keys: only closed months that still
// have ledger data behind them.
func (h *Handler) ListArchived(c *gin.Context) {
	keys, err := h.Store.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	months, err := h.Ledger.MonthsWithShifts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	withData := make(map[string]bool, len(months))
	for _, m := range months {
		withData[m] = true
	}

	current := report.MonthKey(h.now())
	filtered := make([]string, 0, len(keys))
	for _, k := range keys {
		if k >= current || !withData[k] {
			continue
		}
		filtered = append(filtered, k)
	}
	c.JSON(http.StatusOK, gin.H{"archived": filtered})
}

// DownloadArchived streams a stored month artifact
func (h *Handler) DownloadArchived(c *gin.Context) {
	month := c.Param("month")
	if !h.Store.Has(month) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no archived report for " + month})
		return
	}
	data, err := h.Store.Open(month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=reporte_%s.pdf", month))
	c.Data(http.StatusOK, "application/pdf", data)
}
