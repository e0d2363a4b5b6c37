package model

// DayType classifies one employee's calendar day.
type DayType string

const (
	DayTypeWork        DayType = "WORK_DAY"
	DayTypeOff         DayType = "DAY_OFF"
	DayTypeVacation    DayType = "VACATION"
	DayTypeSickLeave   DayType = "SICK_LEAVE"
	DayTypeAbsence     DayType = "ABSENCE"
	DayTypeUnpaidLeave DayType = "UNPAID_LEAVE"
)

// DayTypes lists every valid day classification.
var DayTypes = []DayType{
	DayTypeWork,
	DayTypeOff,
	DayTypeVacation,
	DayTypeSickLeave,
	DayTypeAbsence,
	DayTypeUnpaidLeave,
}

// Valid reports whether d is one of the known day types.
func (d DayType) Valid() bool {
	for _, t := range DayTypes {
		if d == t {
			return true
		}
	}
	return false
}

// PayrollStatus defines the state of the downstream payroll export for a work day.
type PayrollStatus string

const (
	StatusPayrollPending    PayrollStatus = "PENDING"
	StatusPayrollProcessing PayrollStatus = "PROCESSING"
	StatusPayrollCompleted  PayrollStatus = "COMPLETED"
	StatusPayrollFailed     PayrollStatus = "FAILED"
)

// EmailStatus defines the state of the summary-email delivery for a work day.
type EmailStatus string

const (
	StatusEmailPending    EmailStatus = "PENDING"
	StatusEmailProcessing EmailStatus = "PROCESSING"
	StatusEmailCompleted  EmailStatus = "COMPLETED"
	StatusEmailFailed     EmailStatus = "FAILED"
)

// Employee is a roster entry. The ID is immutable; name and title are
// mutable by an administrator.
type Employee struct {
	ID       string `json:"employeeId"`
	Name     string `json:"name"`
	JobTitle string `json:"jobTitle,omitempty"`
}

// TimeEntry holds the shift bounds for a worked day. Each field is a
// time-of-day value or empty; raw values may arrive in any of the shapes
// the timeparse package accepts.
type TimeEntry struct {
	StartTime      string `json:"startTime,omitempty"`
	EndTime        string `json:"endTime,omitempty"`
	LunchStartTime string `json:"lunchStartTime,omitempty"`
	LunchEndTime   string `json:"lunchEndTime,omitempty"`
}

// Empty reports whether no shift bound is set at all.
func (t TimeEntry) Empty() bool {
	return t.StartTime == "" && t.EndTime == "" && t.LunchStartTime == "" && t.LunchEndTime == ""
}

// AttendanceRecord is one employee's classification and shift detail for one
// calendar day. Date is an opaque YYYY-MM-DD string: it is compared lexically
// and never parsed into a timezone-bearing instant. The (EmployeeID, Date)
// pair is the natural key; a save with an existing key replaces the prior
// record entirely.
type AttendanceRecord struct {
	ID          int64      `json:"id,omitempty"`
	EmployeeID  string     `json:"employeeId"`
	Date        string     `json:"date"`
	DayType     DayType    `json:"dayType"`
	TimeEntry   *TimeEntry `json:"timeEntry,omitempty"`
	Tasks       []string   `json:"tasks"`
	Connections []string   `json:"connections"`
	Comment     string     `json:"comment,omitempty"`

	PayrollStatus  PayrollStatus `json:"payrollStatus,omitempty"`
	EmailStatus    EmailStatus   `json:"emailStatus,omitempty"`
	PayrollRetries int           `json:"payrollRetries,omitempty"`
	EmailRetries   int           `json:"emailRetries,omitempty"`
}

// HasShift reports whether the record carries at least one shift bound.
func (r *AttendanceRecord) HasShift() bool {
	return r.TimeEntry != nil && !r.TimeEntry.Empty()
}

// PeriodSummary is the per-employee aggregate over a date range. It is
// derived on every report request, never stored.
type PeriodSummary struct {
	EmployeeID       string  `json:"employeeId"`
	WorkDays         int     `json:"workDays"`
	DaysOff          int     `json:"daysOff"`
	VacationDays     int     `json:"vacationDays"`
	SickLeaveDays    int     `json:"sickLeaveDays"`
	AbsenceDays      int     `json:"absenceDays"`
	UnpaidLeaveDays  int     `json:"unpaidLeaveDays"`
	TotalWorkHours   float64 `json:"totalWorkHours"`
	TotalTasks       int     `json:"totalTasks"`
	TotalConnections int     `json:"totalConnections"`
}

// RecordCount returns the number of attendance records folded into this summary.
func (s *PeriodSummary) RecordCount() int {
	return s.WorkDays + s.DaysOff + s.VacationDays + s.SickLeaveDays + s.AbsenceDays + s.UnpaidLeaveDays
}

// DayStats is the single-day dashboard aggregate. AverageWorkMinutes is nil
// when no record contributed a positive duration; presentation layers render
// that as a placeholder, not as zero.
type DayStats struct {
	Date               string   `json:"date"`
	TotalEmployees     int      `json:"totalEmployees"`
	PresentEmployees   int      `json:"presentEmployees"`
	AbsentEmployees    int      `json:"absentEmployees"`
	TotalWorkMinutes   float64  `json:"totalWorkMinutes"`
	AverageWorkMinutes *float64 `json:"averageWorkMinutes"`
}

// Period is an inclusive calendar-day range.
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Report is the period-scoped aggregated output handed to presentation
// layers. Employees with no matching records in the period are absent, not
// zero-filled.
type Report struct {
	Period    Period                    `json:"period"`
	Summaries map[string]*PeriodSummary `json:"perEmployeeSummaries"`
}
