package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	core "worktime.service/internal/core"
	"worktime.service/internal/core/model"
	"worktime.service/internal/core/report"
	"worktime.service/pkg/export"
)

// TimesheetHandler exposes the attendance and reporting operations over HTTP.
type TimesheetHandler struct {
	Service  *core.TimesheetService
	Validate *validator.Validate
}

func NewTimesheetHandler(service *core.TimesheetService) *TimesheetHandler {
	return &TimesheetHandler{
		Service:  service,
		Validate: validator.New(),
	}
}

type upsertWorkDayRequest struct {
	DayType     model.DayType    `json:"dayType" validate:"required"`
	TimeEntry   *model.TimeEntry `json:"timeEntry"`
	Tasks       []string         `json:"tasks"`
	Connections []string         `json:"connections"`
	Comment     string           `json:"comment"`
}

// UpsertWorkDay saves a complete attendance record for the employee and date
// in the path, replacing any prior record for that pair.
func (h *TimesheetHandler) UpsertWorkDay(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req upsertWorkDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec := &model.AttendanceRecord{
		EmployeeID:  vars["employeeId"],
		Date:        vars["date"],
		DayType:     req.DayType,
		TimeEntry:   req.TimeEntry,
		Tasks:       req.Tasks,
		Connections: req.Connections,
		Comment:     req.Comment,
	}

	saved, err := h.Service.RecordWorkDay(r.Context(), rec)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(saved)
}

// GetWorkDays lists every record for one calendar day.
func (h *TimesheetHandler) GetWorkDays(w http.ResponseWriter, r *http.Request) {
	records, err := h.Service.GetWorkDays(r.Context(), mux.Vars(r)["date"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if records == nil {
		records = []*model.AttendanceRecord{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}

// GetDayStats serves the single-day dashboard aggregate.
func (h *TimesheetHandler) GetDayStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.GetDayStats(r.Context(), mux.Vars(r)["date"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

type reportRequest struct {
	Period  model.Period  `json:"period" validate:"required"`
	Filters report.Filter `json:"filters"`
}

// BuildReport produces the period report for the requested filters.
func (h *TimesheetHandler) BuildReport(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.buildReportFromRequest(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rep)
}

// ExportReport produces the same report as an Excel workbook.
func (h *TimesheetHandler) ExportReport(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.buildReportFromRequest(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="worktime-report.xlsx"`)
	if err := export.WriteReport(w, rep); err != nil {
		http.Error(w, "Failed to render workbook", http.StatusInternalServerError)
	}
}

func (h *TimesheetHandler) buildReportFromRequest(w http.ResponseWriter, r *http.Request) (*model.Report, bool) {
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil, false
	}
	if err := h.Validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	rep, err := h.Service.BuildReport(r.Context(), req.Period, req.Filters)
	if err != nil {
		h.writeServiceError(w, err)
		return nil, false
	}
	return rep, true
}

// ListEmployees returns the roster.
func (h *TimesheetHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.ListEmployees(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if employees == nil {
		employees = []*model.Employee{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(employees)
}

type createEmployeeRequest struct {
	Name     string `json:"name" validate:"required"`
	JobTitle string `json:"jobTitle"`
}

// CreateEmployee adds a roster entry.
func (h *TimesheetHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req createEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	emp, err := h.Service.CreateEmployee(r.Context(), req.Name, req.JobTitle)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(emp)
}

type updateEmployeeRequest struct {
	Name     string `json:"name" validate:"required"`
	JobTitle string `json:"jobTitle"`
}

// UpdateEmployee changes the mutable roster fields.
func (h *TimesheetHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req updateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	emp, err := h.Service.UpdateEmployee(r.Context(), &model.Employee{
		ID:       mux.Vars(r)["employeeId"],
		Name:     req.Name,
		JobTitle: req.JobTitle,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(emp)
}

// writeServiceError maps service errors onto HTTP statuses. Contract
// violations by the caller are 4xx; everything else is a 500.
func (h *TimesheetHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrUnknownDayType),
		errors.Is(err, core.ErrShiftOnNonWorkDay),
		errors.Is(err, report.ErrInvalidPeriod),
		errors.Is(err, report.ErrInvalidFilter):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, core.ErrEmployeeNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, "Service error processing request", http.StatusInternalServerError)
	}
}
