package report

import (
	"errors"
	"testing"

	"worktime.service/internal/core/model"
)

func record(emp, date string, dt model.DayType) *model.AttendanceRecord {
	return &model.AttendanceRecord{EmployeeID: emp, Date: date, DayType: dt}
}

func TestBuildRejectsInvalidPeriod(t *testing.T) {
	_, err := Build(nil, model.Period{Start: "2025-04-30", End: "2025-04-01"}, Filter{})
	if !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}

	_, err = Build(nil, model.Period{Start: "", End: "2025-04-01"}, Filter{})
	if !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod for empty start, got %v", err)
	}
}

func TestBuildRejectsUnknownDayTypeFilter(t *testing.T) {
	_, err := Build(nil, model.Period{Start: "2025-04-01", End: "2025-04-30"}, Filter{DayType: "HOLIDAY"})
	if !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestBuildPeriodBoundsAreInclusive(t *testing.T) {
	records := []*model.AttendanceRecord{
		record("e1", "2025-03-31", model.DayTypeWork),
		record("e1", "2025-04-01", model.DayTypeWork),
		record("e1", "2025-04-30", model.DayTypeWork),
		record("e1", "2025-05-01", model.DayTypeWork),
	}

	rep, err := Build(records, model.Period{Start: "2025-04-01", End: "2025-04-30"}, Filter{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := rep.Summaries["e1"].WorkDays; got != 2 {
		t.Fatalf("expected both boundary days included and outside days excluded, got %d", got)
	}
}

func TestBuildEmployeeAndDayTypeFilters(t *testing.T) {
	records := []*model.AttendanceRecord{
		record("e1", "2025-04-01", model.DayTypeWork),
		record("e1", "2025-04-02", model.DayTypeVacation),
		record("e2", "2025-04-01", model.DayTypeWork),
	}
	period := model.Period{Start: "2025-04-01", End: "2025-04-30"}

	rep, err := Build(records, period, Filter{EmployeeID: "e1"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(rep.Summaries) != 1 || rep.Summaries["e1"].RecordCount() != 2 {
		t.Fatalf("employee filter failed: %+v", rep.Summaries)
	}

	rep, err = Build(records, period, Filter{DayType: model.DayTypeVacation})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(rep.Summaries) != 1 || rep.Summaries["e1"].VacationDays != 1 {
		t.Fatalf("day-type filter failed: %+v", rep.Summaries)
	}
}

func TestBuildHasTasksFilterExcludesEmptyLists(t *testing.T) {
	withTasks := record("e1", "2025-04-01", model.DayTypeWork)
	withTasks.Tasks = []string{"ticket-1"}
	withoutTasks := record("e2", "2025-04-01", model.DayTypeWork)
	withoutTasks.Tasks = []string{}

	period := model.Period{Start: "2025-04-01", End: "2025-04-30"}
	yes := true
	rep, err := Build([]*model.AttendanceRecord{withTasks, withoutTasks}, period, Filter{HasTasks: &yes})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, ok := rep.Summaries["e2"]; ok {
		t.Fatalf("record with empty task list must be excluded")
	}
	if _, ok := rep.Summaries["e1"]; !ok {
		t.Fatalf("record with tasks must be included")
	}

	no := false
	rep, err = Build([]*model.AttendanceRecord{withTasks, withoutTasks}, period, Filter{HasTasks: &no})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, ok := rep.Summaries["e1"]; ok {
		t.Fatalf("hasTasks=false must exclude records with tasks")
	}
}

func TestBuildHasConnectionsFilter(t *testing.T) {
	connected := record("e1", "2025-04-01", model.DayTypeWork)
	connected.Connections = []string{"client-a"}
	lonely := record("e2", "2025-04-01", model.DayTypeWork)

	yes := true
	rep, err := Build([]*model.AttendanceRecord{connected, lonely},
		model.Period{Start: "2025-04-01", End: "2025-04-30"}, Filter{HasConnections: &yes})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(rep.Summaries) != 1 || rep.Summaries["e1"] == nil {
		t.Fatalf("connections filter failed: %+v", rep.Summaries)
	}
}

func TestBuildSingleRecordRoundTrip(t *testing.T) {
	rec := &model.AttendanceRecord{
		EmployeeID:  "e1",
		Date:        "2025-04-15",
		DayType:     model.DayTypeWork,
		TimeEntry:   &model.TimeEntry{StartTime: "09:00", EndTime: "18:00", LunchStartTime: "13:00", LunchEndTime: "14:00"},
		Tasks:       []string{"t1", "t2"},
		Connections: []string{"c1"},
	}

	rep, err := Build([]*model.AttendanceRecord{rec}, model.Period{Start: "2025-04-01", End: "2025-04-30"}, Filter{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	s := rep.Summaries["e1"]
	if s == nil {
		t.Fatalf("expected a summary for e1")
	}
	if s.WorkDays != 1 || s.RecordCount() != 1 {
		t.Fatalf("expected exactly one work day counted: %+v", s)
	}
	if s.TotalWorkHours != 8 {
		t.Fatalf("expected 8 hours, got %v", s.TotalWorkHours)
	}
	if s.TotalTasks != 2 || s.TotalConnections != 1 {
		t.Fatalf("activity totals must match the record: %+v", s)
	}
}

func TestBuildOmitsEmployeesOutsidePeriod(t *testing.T) {
	records := []*model.AttendanceRecord{
		record("e1", "2025-03-01", model.DayTypeWork),
	}
	rep, err := Build(records, model.Period{Start: "2025-04-01", End: "2025-04-30"}, Filter{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(rep.Summaries) != 0 {
		t.Fatalf("employees with no matching records must be absent, not zero-filled: %+v", rep.Summaries)
	}
}
