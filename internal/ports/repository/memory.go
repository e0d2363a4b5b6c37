package repository

import (
	"context"
	"sort"
	"sync"

	"worktime.service/internal/core/model"
)

// MemoryRepository is an in-memory Repository used by tests and local
// tooling. It honors the same natural-key replace semantics as the
// PostgreSQL implementation.
type MemoryRepository struct {
	mu        sync.RWMutex
	nextID    int64
	workDays  map[string]*model.AttendanceRecord // keyed by employeeID + "\x00" + date
	byID      map[int64]*model.AttendanceRecord
	employees map[string]*model.Employee
}

// NewMemoryRepository creates an empty in-memory store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		workDays:  make(map[string]*model.AttendanceRecord),
		byID:      make(map[int64]*model.AttendanceRecord),
		employees: make(map[string]*model.Employee),
	}
}

func naturalKey(employeeID, date string) string {
	return employeeID + "\x00" + date
}

// UpsertWorkDay replaces any record sharing the natural key. The replacing
// record keeps the prior row's ID, matching ON CONFLICT DO UPDATE.
func (m *MemoryRepository) UpsertWorkDay(_ context.Context, rec *model.AttendanceRecord) (*model.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *rec
	stored.PayrollStatus = model.StatusPayrollPending
	stored.EmailStatus = model.StatusEmailPending
	stored.PayrollRetries = 0
	stored.EmailRetries = 0

	key := naturalKey(rec.EmployeeID, rec.Date)
	if prior, ok := m.workDays[key]; ok {
		stored.ID = prior.ID
	} else {
		m.nextID++
		stored.ID = m.nextID
	}

	m.workDays[key] = &stored
	m.byID[stored.ID] = &stored

	out := stored
	return &out, nil
}

// GetWorkDay fetches a record by row ID.
func (m *MemoryRepository) GetWorkDay(_ context.Context, id int64) (*model.AttendanceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	out := *rec
	return &out, nil
}

// GetByDate returns every record for one calendar day.
func (m *MemoryRepository) GetByDate(ctx context.Context, date string) ([]*model.AttendanceRecord, error) {
	return m.GetByDateRange(ctx, date, date)
}

// GetByDateRange returns records whose date lies within [start, end],
// compared lexically.
func (m *MemoryRepository) GetByDateRange(_ context.Context, start, end string) ([]*model.AttendanceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var records []*model.AttendanceRecord
	for _, rec := range m.workDays {
		if rec.Date < start || rec.Date > end {
			continue
		}
		out := *rec
		records = append(records, &out)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date < records[j].Date
		}
		return records[i].EmployeeID < records[j].EmployeeID
	})
	return records, nil
}

// UpdatePayrollStatus updates the payroll delivery state for a row.
func (m *MemoryRepository) UpdatePayrollStatus(_ context.Context, id int64, status model.PayrollStatus, retryCount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok := m.byID[id]; ok {
		rec.PayrollStatus = status
		rec.PayrollRetries = retryCount
	}
	return nil
}

// UpdateEmailStatus updates the email delivery state for a row.
func (m *MemoryRepository) UpdateEmailStatus(_ context.Context, id int64, status model.EmailStatus, retryCount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok := m.byID[id]; ok {
		rec.EmailStatus = status
		rec.EmailRetries = retryCount
	}
	return nil
}

// ListEmployees returns the roster sorted by name.
func (m *MemoryRepository) ListEmployees(_ context.Context) ([]*model.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	employees := make([]*model.Employee, 0, len(m.employees))
	for _, emp := range m.employees {
		out := *emp
		employees = append(employees, &out)
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].Name < employees[j].Name })
	return employees, nil
}

// GetEmployee fetches one roster entry, nil when absent.
func (m *MemoryRepository) GetEmployee(_ context.Context, employeeID string) (*model.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	emp, ok := m.employees[employeeID]
	if !ok {
		return nil, nil
	}
	out := *emp
	return &out, nil
}

// CreateEmployee inserts a roster entry.
func (m *MemoryRepository) CreateEmployee(_ context.Context, emp *model.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *emp
	m.employees[emp.ID] = &stored
	return nil
}

// UpdateEmployee replaces the mutable roster fields.
func (m *MemoryRepository) UpdateEmployee(_ context.Context, emp *model.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.employees[emp.ID]; ok {
		existing.Name = emp.Name
		existing.JobTitle = emp.JobTitle
	}
	return nil
}
