package attendance

import (
	"context"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/attendance"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/user"
)

const (
	exportSheet    = "Attendance"
	exportPageSize = 100
	maxExportRows  = 10000
)

var exportHeaders = []interface{}{
	"Date", "User ID", "Branch ID", "Clock In", "Clock Out", "Hours Worked",
	"Status", "Late", "Late Reason", "Notes", "Latitude", "Longitude",
}

// ExportAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ExportAttendance(ctx context.Context, identity user.Identity, filter attendance.AttendanceFilter) ([]byte, error) {
	companyID, err := companyScope(identity)
	if err != nil {
		return nil, err
	}

	filter.Page = 1
	filter.Limit = exportPageSize
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var rows []attendance.Attendance
	for {
		page, total, err := a.AttendanceRepository.List(ctx, filter, companyID)
		if err != nil {
			return nil, fmt.Errorf("failed to list attendance for export: %w", err)
		}
		if total > maxExportRows {
			return nil, attendance.ErrExportTooLarge
		}
		rows = append(rows, page...)
		if len(page) < filter.Limit || int64(len(rows)) >= total {
			break
		}
		filter.Page++
	}

	return a.renderWorkbook(rows)
}

func (a *AttendanceServiceImpl) renderWorkbook(rows []attendance.Attendance) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeaders); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	if err := f.SetCellStyle(exportSheet, "A1", lastHeader, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header row: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			r.Date,
			r.UserID,
			deref(r.BranchID),
			r.ClockIn.In(a.location).Format("2006-01-02 15:04:05"),
			"",
			"",
			string(r.Status),
			strconv.FormatBool(r.IsLate),
			deref(r.LateReason),
			deref(r.Notes),
			"",
			"",
		}
		if r.ClockOut != nil {
			row[4] = r.ClockOut.In(a.location).Format("2006-01-02 15:04:05")
		}
		if r.HoursWorked != nil {
			row[5] = *r.HoursWorked
		}
		if r.Location != nil {
			row[10] = r.Location.Lat
			row[11] = r.Location.Lng
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
