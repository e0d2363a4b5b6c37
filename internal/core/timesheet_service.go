package core

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"worktime.service/internal/core/aggregate"
	"worktime.service/internal/core/duration"
	"worktime.service/internal/core/model"
	"worktime.service/internal/core/report"
	"worktime.service/internal/core/timeparse"
	"worktime.service/internal/ports/messaging"
	"worktime.service/internal/ports/repository"
)

var (
	// ErrUnknownDayType rejects a record whose classification is outside the
	// closed enumeration.
	ErrUnknownDayType = errors.New("unknown day type")
	// ErrShiftOnNonWorkDay rejects a non-worked day that carries shift times.
	// Stripping the shift silently would lose data on a full-replace save.
	ErrShiftOnNonWorkDay = errors.New("shift times are only valid on a work day")
	// ErrInvalidDate rejects a date key that is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("date must be YYYY-MM-DD")
	// ErrEmployeeNotFound signals an employee reference that is not on the roster.
	ErrEmployeeNotFound = errors.New("employee not found")
)

// TimesheetService is the main application service. It owns validation and
// persistence of attendance records and fronts the aggregation engine for
// dashboards and reports.
type TimesheetService struct {
	repo     repository.Repository
	producer messaging.EventProducer
}

// NewTimesheetService creates a new instance of our main application service,
// wiring up the database repository and the message queue producer.
func NewTimesheetService(repo repository.Repository, p messaging.EventProducer) *TimesheetService {
	return &TimesheetService{
		repo:     repo,
		producer: p,
	}
}

// RecordWorkDay validates and saves one complete attendance record,
// replacing any prior record for the same employee and day. For a worked day
// with computable hours it also publishes payroll and email events for
// asynchronous delivery.
func (s *TimesheetService) RecordWorkDay(ctx context.Context, rec *model.AttendanceRecord) (*model.AttendanceRecord, error) {
	if !validDateKey(rec.Date) {
		return nil, ErrInvalidDate
	}
	if !rec.DayType.Valid() {
		return nil, ErrUnknownDayType
	}
	if rec.DayType != model.DayTypeWork && rec.HasShift() {
		return nil, ErrShiftOnNonWorkDay
	}

	normalizeShift(rec)

	saved, err := s.repo.UpsertWorkDay(ctx, rec)
	if err != nil {
		return nil, errors.New("failed to save attendance record")
	}

	if saved.DayType == model.DayTypeWork && saved.HasShift() {
		s.publishWorkDayEvents(ctx, saved)
	}

	return saved, nil
}

// GetWorkDays returns every attendance record for one calendar day.
func (s *TimesheetService) GetWorkDays(ctx context.Context, date string) ([]*model.AttendanceRecord, error) {
	if !validDateKey(date) {
		return nil, ErrInvalidDate
	}
	records, err := s.repo.GetByDate(ctx, date)
	if err != nil {
		return nil, errors.New("failed to query attendance records")
	}
	return records, nil
}

// GetDayStats returns the dashboard aggregate for one calendar day.
func (s *TimesheetService) GetDayStats(ctx context.Context, date string) (model.DayStats, error) {
	if !validDateKey(date) {
		return model.DayStats{}, ErrInvalidDate
	}
	records, err := s.repo.GetByDate(ctx, date)
	if err != nil {
		return model.DayStats{}, errors.New("failed to query attendance records")
	}
	return aggregate.SummarizeDay(date, records), nil
}

// BuildReport fetches the period's records and hands them to the report
// builder. Period and filter violations surface as the builder's typed errors.
func (s *TimesheetService) BuildReport(ctx context.Context, period model.Period, filter report.Filter) (*model.Report, error) {
	if period.Start == "" || period.End == "" || period.End < period.Start {
		return nil, report.ErrInvalidPeriod
	}
	records, err := s.repo.GetByDateRange(ctx, period.Start, period.End)
	if err != nil {
		return nil, errors.New("failed to query attendance records")
	}
	return report.Build(records, period, filter)
}

// UpdateWorkDayPayrollStatus is a pass-through to the repository layer,
// mainly used by background workers to update the status of a job.
func (s *TimesheetService) UpdateWorkDayPayrollStatus(ctx context.Context, id int64, status model.PayrollStatus, retryCount int) error {
	return s.repo.UpdatePayrollStatus(ctx, id, status, retryCount)
}

// ListEmployees returns the roster.
func (s *TimesheetService) ListEmployees(ctx context.Context) ([]*model.Employee, error) {
	return s.repo.ListEmployees(ctx)
}

// CreateEmployee adds a roster entry with a generated immutable identity.
func (s *TimesheetService) CreateEmployee(ctx context.Context, name, jobTitle string) (*model.Employee, error) {
	emp := &model.Employee{
		ID:       uuid.NewString(),
		Name:     name,
		JobTitle: jobTitle,
	}
	if err := s.repo.CreateEmployee(ctx, emp); err != nil {
		return nil, errors.New("failed to create employee")
	}
	return emp, nil
}

// UpdateEmployee changes the mutable roster fields of an existing employee.
func (s *TimesheetService) UpdateEmployee(ctx context.Context, emp *model.Employee) (*model.Employee, error) {
	existing, err := s.repo.GetEmployee(ctx, emp.ID)
	if err != nil {
		return nil, errors.New("failed to query employee")
	}
	if existing == nil {
		return nil, ErrEmployeeNotFound
	}
	if err := s.repo.UpdateEmployee(ctx, emp); err != nil {
		return nil, errors.New("failed to update employee")
	}
	return emp, nil
}

// publishWorkDayEvents fans the saved day out to the payroll and email
// queues. Email delivery is best effort; a payroll publish failure is only
// logged because the record itself is already durable and the load-shedding
// path is the worker's retry loop, not the write path.
func (s *TimesheetService) publishWorkDayEvents(ctx context.Context, rec *model.AttendanceRecord) {
	entry := rec.TimeEntry
	net, ok := duration.NetMinutes(entry.StartTime, entry.EndTime, entry.LunchStartTime, entry.LunchEndTime)
	if !ok {
		return
	}

	emailEvent := messaging.DaySummaryEmailEvent{
		WorkDayID:  rec.ID,
		EmployeeID: rec.EmployeeID,
		Date:       rec.Date,
		NetHours:   net.Hours(),
		OccurredAt: time.Now(),
	}
	if err := s.producer.PublishEmail(ctx, emailEvent); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("Failed to publish email event")
	}

	payrollEvent := messaging.WorkDayRecordedEvent{
		WorkDayID:  rec.ID,
		EmployeeID: rec.EmployeeID,
		Date:       rec.Date,
		NetHours:   net.Hours(),
	}
	if err := s.producer.PublishPayroll(ctx, payrollEvent); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to publish payroll event")
	}
}

// normalizeShift rewrites every shift bound into canonical "HH:MM" form.
// Bounds that cannot be normalized are stored empty; "unknown" is a valid
// state and must not block the save.
func normalizeShift(rec *model.AttendanceRecord) {
	if rec.TimeEntry == nil {
		return
	}
	entry := rec.TimeEntry
	entry.StartTime = normalizeOrEmpty(entry.StartTime)
	entry.EndTime = normalizeOrEmpty(entry.EndTime)
	entry.LunchStartTime = normalizeOrEmpty(entry.LunchStartTime)
	entry.LunchEndTime = normalizeOrEmpty(entry.LunchEndTime)
	if entry.Empty() {
		rec.TimeEntry = nil
	}
}

func normalizeOrEmpty(raw string) string {
	hhmm, ok := timeparse.Normalize(raw)
	if !ok {
		return ""
	}
	return hhmm
}

// validDateKey checks the YYYY-MM-DD shape without ever turning the key
// into an instant.
func validDateKey(date string) bool {
	if len(date) != 10 {
		return false
	}
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}
