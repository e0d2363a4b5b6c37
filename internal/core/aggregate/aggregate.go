// Package aggregate folds attendance records into per-employee period
// summaries and single-day dashboard stats. The folds are commutative:
// record order never changes the output. A record that cannot contribute a
// duration (malformed shift) keeps its day-type count and loses only the
// hour contribution; one bad record never aborts the rest.
package aggregate

import (
	"github.com/rs/zerolog/log"

	"worktime.service/internal/core/duration"
	"worktime.service/internal/core/model"
)

// Summarize folds records into one PeriodSummary per employee.
func Summarize(records []*model.AttendanceRecord) map[string]*model.PeriodSummary {
	summaries := make(map[string]*model.PeriodSummary)

	for _, rec := range records {
		summary, ok := summaries[rec.EmployeeID]
		if !ok {
			summary = &model.PeriodSummary{EmployeeID: rec.EmployeeID}
			summaries[rec.EmployeeID] = summary
		}

		countDayType(summary, rec.DayType)

		if rec.DayType == model.DayTypeWork && rec.HasShift() {
			if net, ok := shiftNet(rec); ok {
				summary.TotalWorkHours += net.Hours()
			}
		}

		summary.TotalTasks += len(rec.Tasks)
		summary.TotalConnections += len(rec.Connections)
	}

	return summaries
}

// SummarizeDay computes the dashboard stats for one calendar day's records.
// AverageWorkMinutes stays nil when no record contributed a positive
// duration; that is "unknown", not zero.
func SummarizeDay(date string, records []*model.AttendanceRecord) model.DayStats {
	stats := model.DayStats{Date: date, TotalEmployees: len(records)}

	contributing := 0
	for _, rec := range records {
		if rec.DayType != model.DayTypeWork || !rec.HasShift() {
			continue
		}
		stats.PresentEmployees++

		net, ok := shiftNet(rec)
		if !ok {
			continue
		}
		stats.TotalWorkMinutes += net.Minutes
		if net.Minutes > 0 {
			contributing++
		}
	}

	stats.AbsentEmployees = stats.TotalEmployees - stats.PresentEmployees
	if contributing > 0 {
		avg := stats.TotalWorkMinutes / float64(contributing)
		stats.AverageWorkMinutes = &avg
	}
	return stats
}

// shiftNet computes the net duration for a record's shift, emitting
// diagnostics for unknown and clamped results.
func shiftNet(rec *model.AttendanceRecord) (duration.Net, bool) {
	entry := rec.TimeEntry
	net, ok := duration.NetMinutes(entry.StartTime, entry.EndTime, entry.LunchStartTime, entry.LunchEndTime)
	if !ok {
		log.Warn().
			Str("employee_id", rec.EmployeeID).
			Str("date", rec.Date).
			Msg("Shift duration not computable, skipping hour contribution")
		return duration.Net{}, false
	}
	if net.Clamped {
		log.Debug().
			Str("employee_id", rec.EmployeeID).
			Str("date", rec.Date).
			Msg("Negative shift or lunch interval clamped to zero")
	}
	return net, true
}

func countDayType(s *model.PeriodSummary, dt model.DayType) {
	switch dt {
	case model.DayTypeWork:
		s.WorkDays++
	case model.DayTypeOff:
		s.DaysOff++
	case model.DayTypeVacation:
		s.VacationDays++
	case model.DayTypeSickLeave:
		s.SickLeaveDays++
	case model.DayTypeAbsence:
		s.AbsenceDays++
	case model.DayTypeUnpaidLeave:
		s.UnpaidLeaveDays++
	}
}
