// Package export renders reports into Excel workbooks for download.
package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"

	"worktime.service/internal/core/model"
)

const reportSheet = "Report"

var reportHeader = []interface{}{
	"Employee", "Work Days", "Days Off", "Vacation", "Sick Leave",
	"Absence", "Unpaid Leave", "Total Hours", "Tasks", "Connections",
}

// WriteReport renders a report as an xlsx workbook: one header row, one row
// per employee, sorted by employee ID for stable output.
func WriteReport(w io.Writer, rep *model.Report) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(reportSheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	title := fmt.Sprintf("Period %s to %s", rep.Period.Start, rep.Period.End)
	if err := f.SetCellValue(reportSheet, "A1", title); err != nil {
		return err
	}
	if err := f.SetSheetRow(reportSheet, "A2", &reportHeader); err != nil {
		return err
	}

	ids := make([]string, 0, len(rep.Summaries))
	for id := range rep.Summaries {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for i, id := range ids {
		s := rep.Summaries[id]
		row := []interface{}{
			s.EmployeeID, s.WorkDays, s.DaysOff, s.VacationDays, s.SickLeaveDays,
			s.AbsenceDays, s.UnpaidLeaveDays, s.TotalWorkHours, s.TotalTasks, s.TotalConnections,
		}
		cell := fmt.Sprintf("A%d", i+3)
		if err := f.SetSheetRow(reportSheet, cell, &row); err != nil {
			return err
		}
	}

	return f.Write(w)
}
