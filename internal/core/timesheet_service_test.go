package core

import (
	"context"
	"errors"
	"testing"

	"worktime.service/internal/core/model"
	"worktime.service/internal/core/report"
	"worktime.service/internal/ports/messaging"
	"worktime.service/internal/ports/repository"
)

type capturingProducer struct {
	payroll []interface{}
	email   []interface{}
}

func (p *capturingProducer) PublishPayroll(_ context.Context, body interface{}) error {
	p.payroll = append(p.payroll, body)
	return nil
}

func (p *capturingProducer) PublishEmail(_ context.Context, body interface{}) error {
	p.email = append(p.email, body)
	return nil
}

func newTestService() (*TimesheetService, *repository.MemoryRepository, *capturingProducer) {
	repo := repository.NewMemoryRepository()
	producer := &capturingProducer{}
	return NewTimesheetService(repo, producer), repo, producer
}

func TestRecordWorkDayNormalizesShiftTimes(t *testing.T) {
	svc, _, _ := newTestService()

	saved, err := svc.RecordWorkDay(context.Background(), &model.AttendanceRecord{
		EmployeeID: "e1",
		Date:       "2025-04-15",
		DayType:    model.DayTypeWork,
		TimeEntry: &model.TimeEntry{
			StartTime: "2025-04-15T09:00:00Z",
			EndTime:   "18:00",
		},
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if saved.TimeEntry.StartTime != "09:00" {
		t.Fatalf("expected ISO start normalized to 09:00, got %q", saved.TimeEntry.StartTime)
	}
}

func TestRecordWorkDayKeepsUnknownTimesEmpty(t *testing.T) {
	svc, _, producer := newTestService()

	saved, err := svc.RecordWorkDay(context.Background(), &model.AttendanceRecord{
		EmployeeID: "e1",
		Date:       "2025-04-15",
		DayType:    model.DayTypeWork,
		TimeEntry:  &model.TimeEntry{StartTime: "not a time", EndTime: "18:00"},
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if saved.TimeEntry.StartTime != "" {
		t.Fatalf("malformed time must be stored empty, got %q", saved.TimeEntry.StartTime)
	}
	if len(producer.payroll) != 0 {
		t.Fatalf("a day without computable hours must not publish payroll events")
	}
}

func TestRecordWorkDayRejectsContractViolations(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.RecordWorkDay(ctx, &model.AttendanceRecord{
		EmployeeID: "e1", Date: "15/04/2025", DayType: model.DayTypeWork,
	})
	if !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}

	_, err = svc.RecordWorkDay(ctx, &model.AttendanceRecord{
		EmployeeID: "e1", Date: "2025-04-15", DayType: "HOLIDAY",
	})
	if !errors.Is(err, ErrUnknownDayType) {
		t.Fatalf("expected ErrUnknownDayType, got %v", err)
	}

	_, err = svc.RecordWorkDay(ctx, &model.AttendanceRecord{
		EmployeeID: "e1", Date: "2025-04-15", DayType: model.DayTypeVacation,
		TimeEntry: &model.TimeEntry{StartTime: "09:00"},
	})
	if !errors.Is(err, ErrShiftOnNonWorkDay) {
		t.Fatalf("expected ErrShiftOnNonWorkDay, got %v", err)
	}
}

func TestRecordWorkDayPublishesEvents(t *testing.T) {
	svc, _, producer := newTestService()

	_, err := svc.RecordWorkDay(context.Background(), &model.AttendanceRecord{
		EmployeeID: "e1",
		Date:       "2025-04-15",
		DayType:    model.DayTypeWork,
		TimeEntry: &model.TimeEntry{
			StartTime: "09:00", EndTime: "18:00",
			LunchStartTime: "13:00", LunchEndTime: "14:00",
		},
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	if len(producer.payroll) != 1 || len(producer.email) != 1 {
		t.Fatalf("expected one payroll and one email event, got %d/%d", len(producer.payroll), len(producer.email))
	}
	event := producer.payroll[0].(messaging.WorkDayRecordedEvent)
	if event.NetHours != 8 {
		t.Fatalf("expected 8 net hours in event, got %v", event.NetHours)
	}
}

func TestGetDayStatsOverStore(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	days := []*model.AttendanceRecord{
		{EmployeeID: "e1", Date: "2025-04-15", DayType: model.DayTypeWork,
			TimeEntry: &model.TimeEntry{StartTime: "09:00", EndTime: "17:00"}},
		{EmployeeID: "e2", Date: "2025-04-15", DayType: model.DayTypeAbsence},
	}
	for _, d := range days {
		if _, err := svc.RecordWorkDay(ctx, d); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	stats, err := svc.GetDayStats(ctx, "2025-04-15")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalEmployees != 2 || stats.PresentEmployees != 1 || stats.TotalWorkMinutes != 480 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestBuildReportValidatesPeriodBeforeQuerying(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.BuildReport(context.Background(),
		model.Period{Start: "2025-04-30", End: "2025-04-01"}, report.Filter{})
	if !errors.Is(err, report.ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestBuildReportEndToEnd(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	records := []*model.AttendanceRecord{
		{EmployeeID: "e1", Date: "2025-04-10", DayType: model.DayTypeWork,
			TimeEntry: &model.TimeEntry{StartTime: "09:00", EndTime: "18:00", LunchStartTime: "13:00", LunchEndTime: "14:00"},
			Tasks:     []string{"t1"}},
		{EmployeeID: "e1", Date: "2025-04-11", DayType: model.DayTypeVacation},
		{EmployeeID: "e2", Date: "2025-05-02", DayType: model.DayTypeWork},
	}
	for _, r := range records {
		if _, err := svc.RecordWorkDay(ctx, r); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	rep, err := svc.BuildReport(ctx, model.Period{Start: "2025-04-01", End: "2025-04-30"}, report.Filter{})
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if len(rep.Summaries) != 1 {
		t.Fatalf("records outside the period must be absent: %+v", rep.Summaries)
	}
	e1 := rep.Summaries["e1"]
	if e1.WorkDays != 1 || e1.VacationDays != 1 || e1.TotalWorkHours != 8 || e1.TotalTasks != 1 {
		t.Fatalf("unexpected summary: %+v", e1)
	}
}

func TestEmployeeLifecycle(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	emp, err := svc.CreateEmployee(ctx, "Dana", "Dispatcher")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if emp.ID == "" {
		t.Fatalf("expected a generated employee ID")
	}

	updated, err := svc.UpdateEmployee(ctx, &model.Employee{ID: emp.ID, Name: "Dana R", JobTitle: "Senior Dispatcher"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Dana R" {
		t.Fatalf("unexpected updated employee: %+v", updated)
	}

	_, err = svc.UpdateEmployee(ctx, &model.Employee{ID: "ghost", Name: "X"})
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}
