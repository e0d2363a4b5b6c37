package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"worktime.service/internal/api/handler"
	core "worktime.service/internal/core"
)

// NewRouter sets up the gorilla/mux router and defines all API routes.
func NewRouter(service *core.TimesheetService) *mux.Router {

	timesheetHandler := handler.NewTimesheetHandler(service)

	r := mux.NewRouter()

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/employees", timesheetHandler.ListEmployees).Methods(http.MethodGet)
	api.HandleFunc("/employees", timesheetHandler.CreateEmployee).Methods(http.MethodPost)
	api.HandleFunc("/employees/{employeeId}", timesheetHandler.UpdateEmployee).Methods(http.MethodPatch)
	api.HandleFunc("/employees/{employeeId}/workdays/{date}", timesheetHandler.UpsertWorkDay).Methods(http.MethodPut)
	api.HandleFunc("/workdays/{date}", timesheetHandler.GetWorkDays).Methods(http.MethodGet)
	api.HandleFunc("/workdays/{date}/stats", timesheetHandler.GetDayStats).Methods(http.MethodGet)
	api.HandleFunc("/reports", timesheetHandler.BuildReport).Methods(http.MethodPost)
	api.HandleFunc("/reports/export", timesheetHandler.ExportReport).Methods(http.MethodPost)
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Service is operational."))
	}).Methods(http.MethodGet)

	return r
}
