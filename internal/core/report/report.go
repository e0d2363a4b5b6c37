// Package report assembles period-scoped, filtered, aggregated output for
// presentation layers.
package report

import (
	"errors"

	"worktime.service/internal/core/aggregate"
	"worktime.service/internal/core/model"
)

var (
	// ErrInvalidPeriod is returned when the period end precedes its start.
	ErrInvalidPeriod = errors.New("report: period end precedes start")
	// ErrInvalidFilter is returned for a filter that cannot be satisfied as
	// written, such as an unknown day type.
	ErrInvalidFilter = errors.New("report: invalid filter")
)

// Filter narrows the record set before aggregation. Zero values mean "no
// constraint"; HasTasks and HasConnections are tri-state so false can be
// requested explicitly.
type Filter struct {
	EmployeeID     string        `json:"employeeId,omitempty"`
	DayType        model.DayType `json:"dayType,omitempty"`
	HasTasks       *bool         `json:"hasTasks,omitempty"`
	HasConnections *bool         `json:"hasConnections,omitempty"`
}

// Build filters records to the inclusive period and the given constraints,
// then aggregates what remains into one summary per employee.
//
// Period bounds are compared lexically on the fixed-width YYYY-MM-DD key.
// Parsing them into timestamps would reintroduce the timezone drift this
// engine exists to avoid.
func Build(records []*model.AttendanceRecord, period model.Period, filter Filter) (*model.Report, error) {
	if period.Start == "" || period.End == "" || period.End < period.Start {
		return nil, ErrInvalidPeriod
	}
	if filter.DayType != "" && !filter.DayType.Valid() {
		return nil, ErrInvalidFilter
	}

	matched := make([]*model.AttendanceRecord, 0, len(records))
	for _, rec := range records {
		if !matches(rec, period, filter) {
			continue
		}
		matched = append(matched, rec)
	}

	return &model.Report{
		Period:    period,
		Summaries: aggregate.Summarize(matched),
	}, nil
}

func matches(rec *model.AttendanceRecord, period model.Period, filter Filter) bool {
	if rec.Date < period.Start || rec.Date > period.End {
		return false
	}
	if filter.EmployeeID != "" && rec.EmployeeID != filter.EmployeeID {
		return false
	}
	if filter.DayType != "" && rec.DayType != filter.DayType {
		return false
	}
	if filter.HasTasks != nil && (len(rec.Tasks) > 0) != *filter.HasTasks {
		return false
	}
	if filter.HasConnections != nil && (len(rec.Connections) > 0) != *filter.HasConnections {
		return false
	}
	return true
}
