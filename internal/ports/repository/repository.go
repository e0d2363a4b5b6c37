package repository

import (
	"context"

	"worktime.service/internal/core/model"
)

// Repository is the attendance record store contract. Upserts replace by
// the (employeeId, date) natural key, so at most one record exists per
// employee per day.
type Repository interface {
	UpsertWorkDay(ctx context.Context, rec *model.AttendanceRecord) (*model.AttendanceRecord, error)
	GetWorkDay(ctx context.Context, id int64) (*model.AttendanceRecord, error)
	GetByDate(ctx context.Context, date string) ([]*model.AttendanceRecord, error)
	GetByDateRange(ctx context.Context, start, end string) ([]*model.AttendanceRecord, error)
	UpdatePayrollStatus(ctx context.Context, id int64, status model.PayrollStatus, retryCount int) error
	UpdateEmailStatus(ctx context.Context, id int64, status model.EmailStatus, retryCount int) error

	ListEmployees(ctx context.Context) ([]*model.Employee, error)
	GetEmployee(ctx context.Context, employeeID string) (*model.Employee, error)
	CreateEmployee(ctx context.Context, emp *model.Employee) error
	UpdateEmployee(ctx context.Context, emp *model.Employee) error
}
