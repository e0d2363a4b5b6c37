package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"worktime.service/internal/core/model"
)

// WorkDayRepository is the concrete implementation for a PostgreSQL database.
type WorkDayRepository struct {
	DB *sql.DB
}

// NewWorkDayRepository create new instance
func NewWorkDayRepository(db *sql.DB) Repository {
	return &WorkDayRepository{DB: db}
}

const workDayColumns = `id, employee_id, work_date, day_type,
       start_time, end_time, lunch_start_time, lunch_end_time,
       tasks, connections, comment,
       payroll_status, payroll_retry_count, email_status, email_retry_count`

// UpsertWorkDay saves a complete attendance record, replacing any prior
// record with the same (employee_id, work_date) key. Delivery statuses
// reset to PENDING on every save so workers re-export replaced days.
func (r *WorkDayRepository) UpsertWorkDay(ctx context.Context, rec *model.AttendanceRecord) (*model.AttendanceRecord, error) {
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("app.employee_id", rec.EmployeeID),
		attribute.String("app.work_date", rec.Date),
	)

	var entry model.TimeEntry
	if rec.TimeEntry != nil {
		entry = *rec.TimeEntry
	}

	tasks, err := json.Marshal(orEmpty(rec.Tasks))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tasks: %w", err)
	}
	connections, err := json.Marshal(orEmpty(rec.Connections))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal connections: %w", err)
	}

	query := `INSERT INTO work_days (employee_id, work_date, day_type,
                  start_time, end_time, lunch_start_time, lunch_end_time,
                  tasks, connections, comment,
                  payroll_status, payroll_retry_count, email_status, email_retry_count)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 0, $12, 0)
              ON CONFLICT (employee_id, work_date) DO UPDATE SET
                  day_type = EXCLUDED.day_type,
                  start_time = EXCLUDED.start_time,
                  end_time = EXCLUDED.end_time,
                  lunch_start_time = EXCLUDED.lunch_start_time,
                  lunch_end_time = EXCLUDED.lunch_end_time,
                  tasks = EXCLUDED.tasks,
                  connections = EXCLUDED.connections,
                  comment = EXCLUDED.comment,
                  payroll_status = EXCLUDED.payroll_status,
                  payroll_retry_count = EXCLUDED.payroll_retry_count,
                  email_status = EXCLUDED.email_status,
                  email_retry_count = EXCLUDED.email_retry_count
              RETURNING id`

	var id int64
	err = r.DB.QueryRowContext(ctx, query,
		rec.EmployeeID, rec.Date, rec.DayType,
		entry.StartTime, entry.EndTime, entry.LunchStartTime, entry.LunchEndTime,
		tasks, connections, rec.Comment,
		model.StatusPayrollPending, model.StatusEmailPending,
	).Scan(&id)
	if err != nil {
		return nil, err
	}

	return r.GetWorkDay(ctx, id)
}

// GetWorkDay fetches a complete work_days record by its ID, nil when the
// row no longer exists.
func (r *WorkDayRepository) GetWorkDay(ctx context.Context, id int64) (*model.AttendanceRecord, error) {
	query := `SELECT ` + workDayColumns + ` FROM work_days WHERE id = $1`
	rec, err := scanWorkDay(r.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return rec, err
}

// GetByDate returns every record for one calendar day.
func (r *WorkDayRepository) GetByDate(ctx context.Context, date string) ([]*model.AttendanceRecord, error) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.work_date", date))

	query := `SELECT ` + workDayColumns + ` FROM work_days WHERE work_date = $1 ORDER BY employee_id`
	return r.queryWorkDays(ctx, query, date)
}

// GetByDateRange returns every record whose date lies within [start, end].
// work_date is a fixed-width YYYY-MM-DD text key, so BETWEEN compares it the
// same way the engine does.
func (r *WorkDayRepository) GetByDateRange(ctx context.Context, start, end string) ([]*model.AttendanceRecord, error) {
	query := `SELECT ` + workDayColumns + ` FROM work_days
              WHERE work_date BETWEEN $1 AND $2
              ORDER BY work_date, employee_id`
	return r.queryWorkDays(ctx, query, start, end)
}

// UpdatePayrollStatus updates the status and retry count for a payroll export job.
func (r *WorkDayRepository) UpdatePayrollStatus(ctx context.Context, id int64, status model.PayrollStatus, retryCount int) error {
	query := `UPDATE work_days SET payroll_status = $1, payroll_retry_count = $2 WHERE id = $3`
	_, err := r.DB.ExecContext(ctx, query, status, retryCount, id)
	return err
}

// UpdateEmailStatus updates the status and retry count for a summary email job.
func (r *WorkDayRepository) UpdateEmailStatus(ctx context.Context, id int64, status model.EmailStatus, retryCount int) error {
	query := `UPDATE work_days SET email_status = $1, email_retry_count = $2 WHERE id = $3`
	_, err := r.DB.ExecContext(ctx, query, status, retryCount, id)
	return err
}

// ListEmployees returns the full roster.
func (r *WorkDayRepository) ListEmployees(ctx context.Context) ([]*model.Employee, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, job_title FROM employees ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []*model.Employee
	for rows.Next() {
		emp := &model.Employee{}
		if err := rows.Scan(&emp.ID, &emp.Name, &emp.JobTitle); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// GetEmployee fetches one roster entry.
func (r *WorkDayRepository) GetEmployee(ctx context.Context, employeeID string) (*model.Employee, error) {
	emp := &model.Employee{}
	row := r.DB.QueryRowContext(ctx, `SELECT id, name, job_title FROM employees WHERE id = $1`, employeeID)
	if err := row.Scan(&emp.ID, &emp.Name, &emp.JobTitle); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return emp, nil
}

// CreateEmployee inserts a new roster entry.
func (r *WorkDayRepository) CreateEmployee(ctx context.Context, emp *model.Employee) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO employees (id, name, job_title) VALUES ($1, $2, $3)`,
		emp.ID, emp.Name, emp.JobTitle)
	return err
}

// UpdateEmployee updates the mutable roster fields. Identity never changes.
func (r *WorkDayRepository) UpdateEmployee(ctx context.Context, emp *model.Employee) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE employees SET name = $1, job_title = $2 WHERE id = $3`,
		emp.Name, emp.JobTitle, emp.ID)
	return err
}

func (r *WorkDayRepository) queryWorkDays(ctx context.Context, query string, args ...any) ([]*model.AttendanceRecord, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*model.AttendanceRecord
	for rows.Next() {
		rec, err := scanWorkDay(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkDay(row rowScanner) (*model.AttendanceRecord, error) {
	rec := &model.AttendanceRecord{}
	entry := model.TimeEntry{}
	var tasks, connections []byte

	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date, &rec.DayType,
		&entry.StartTime, &entry.EndTime, &entry.LunchStartTime, &entry.LunchEndTime,
		&tasks, &connections, &rec.Comment,
		&rec.PayrollStatus, &rec.PayrollRetries, &rec.EmailStatus, &rec.EmailRetries,
	)
	if err != nil {
		return nil, err
	}

	if !entry.Empty() {
		rec.TimeEntry = &entry
	}
	if err := json.Unmarshal(tasks, &rec.Tasks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tasks: %w", err)
	}
	if err := json.Unmarshal(connections, &rec.Connections); err != nil {
		return nil, fmt.Errorf("failed to unmarshal connections: %w", err)
	}
	return rec, nil
}

func orEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
