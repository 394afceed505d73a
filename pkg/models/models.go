package models

// Shift is one recorded work day. WorkDate is the business key: at most one
// shift may exist per date, enforced before insert by the callers of the
// ledger. HoursWorked and OvertimeHours are persisted but always reproducible
// from StartTime/EndTime/BreakMinutes.
type Shift struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	WorkDate      string  `gorm:"index;not null" json:"work_date"` // YYYY-MM-DD
	StartTime     string  `gorm:"not null" json:"start_time"`      // HH:MM
	EndTime       string  `gorm:"not null" json:"end_time"`        // HH:MM
	BreakMinutes  int     `gorm:"default:0" json:"break_minutes"`
	HoursWorked   float64 `json:"hours_worked"`
	OvertimeHours float64 `json:"overtime_hours"` // signed: negative means a short day
	Notes         string  `json:"notes,omitempty"`
}

// AddShiftInput is the submitted form for creating a shift
type AddShiftInput struct {
	WorkDate     string `json:"work_date" binding:"required"`
	StartTime    string `json:"start_time" binding:"required"`
	EndTime      string `json:"end_time" binding:"required"`
	BreakMinutes *int   `json:"break_minutes"`
	Notes        string `json:"notes"`
}

// UpdateTimesInput carries an edit of the start/end of an existing shift.
// Break, notes and date are immutable after creation.
type UpdateTimesInput struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}
