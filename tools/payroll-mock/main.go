package main

import (
	"encoding/json"
	"log"
	"net/http"
)

// A simple struct to capture the incoming event data
type WorkDayRecordedEvent struct {
	WorkDayID  int64   `json:"workDayId"`
	EmployeeID string  `json:"employeeId"`
	Date       string  `json:"date"`
	NetHours   float64 `json:"netHours"`
}

func exportHandler(w http.ResponseWriter, r *http.Request) {
	var event WorkDayRecordedEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	log.Printf("Received work day for EmployeeID: %s, Date: %s, Hours: %.2f", event.EmployeeID, event.Date, event.NetHours)
	w.WriteHeader(http.StatusOK)
}

func main() {
	http.HandleFunc("/", exportHandler)
	log.Println("Payroll API mock server starting on port 8081...")
	log.Fatal(http.ListenAndServe(":8081", nil))
}
