package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/attendance"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/database"
)

const openSessionIndex = "attendances_open_session_idx"

const attendanceColumns = `
	a.id, a.user_id, a.company_id, a.branch_id, a.date::text,
	a.clock_in, a.clock_out,
	a.clock_in_latitude, a.clock_in_longitude,
	a.clock_out_latitude, a.clock_out_longitude,
	a.is_late, a.late_reason, a.notes, a.status, a.hours_worked,
	a.created_at, a.updated_at`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var (
		att            attendance.Attendance
		inLat, inLng   *float64
		outLat, outLng *float64
		status         string
	)
	err := row.Scan(
		&att.ID, &att.UserID, &att.CompanyID, &att.BranchID, &att.Date,
		&att.ClockIn, &att.ClockOut,
		&inLat, &inLng,
		&outLat, &outLng,
		&att.IsLate, &att.LateReason, &att.Notes, &status, &att.HoursWorked,
		&att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}

	att.Status = attendance.Status(status)
	if att.Location, err = pointFrom(inLat, inLng); err != nil {
		return attendance.Attendance{}, err
	}
	if att.ClockOutLocation, err = pointFrom(outLat, outLng); err != nil {
		return attendance.Attendance{}, err
	}
	return att, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	date, err := parseDate(newAttendance.Date)
	if err != nil {
		return attendance.Attendance{}, err
	}
	lat, lng := coordinates(newAttendance.Location)

	query := `
		INSERT INTO attendances (
			user_id, company_id, branch_id, date, clock_in,
			clock_in_latitude, clock_in_longitude,
			is_late, late_reason, notes, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		newAttendance.UserID,
		newAttendance.CompanyID,
		newAttendance.BranchID,
		date,
		newAttendance.ClockIn,
		lat,
		lng,
		newAttendance.IsLate,
		newAttendance.LateReason,
		newAttendance.Notes,
		string(newAttendance.Status),
	).Scan(&newAttendance.ID, &newAttendance.CreatedAt, &newAttendance.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err, openSessionIndex) {
			return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// GetOpenSession implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetOpenSession(ctx context.Context, userID string, date string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	day, err := parseDate(date)
	if err != nil {
		return attendance.Attendance{}, err
	}

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.user_id = $1
		  AND a.date = $2
		  AND a.clock_out IS NULL
		ORDER BY a.clock_in DESC
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, userID, day))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get open session: %w", err)
	}

	return att, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.user_id = $1
		  AND a.date = $2
		ORDER BY a.clock_in DESC
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, userID, day))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No attendance today
		}
		return nil, fmt.Errorf("failed to get attendance by user and date: %w", err)
	}

	return &att, nil
}

// CloseSession implements attendance.AttendanceRepository.
func (a *attendanceRepository) CloseSession(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	lat, lng := coordinates(att.ClockOutLocation)

	query := `
		UPDATE attendances SET
			clock_out = $2,
			clock_out_latitude = $3,
			clock_out_longitude = $4,
			hours_worked = $5,
			notes = $6,
			status = $7,
			updated_at = NOW()
		WHERE id = $1
		  AND clock_out IS NULL
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		att.ID,
		att.ClockOut,
		lat,
		lng,
		att.HoursWorked,
		att.Notes,
		string(att.Status),
	).Scan(&att.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to close attendance: %w", err)
	}

	return att, nil
}

// filterBuilder accumulates WHERE conditions with numbered placeholders.
type filterBuilder struct {
	conditions []string
	args       []interface{}
}

func (f *filterBuilder) add(condition string, arg interface{}) {
	f.args = append(f.args, arg)
	f.conditions = append(f.conditions, fmt.Sprintf(condition, len(f.args)))
}

func (f *filterBuilder) where() string {
	return strings.Join(f.conditions, " AND ")
}

func (f *filterBuilder) addDates(date, startDate, endDate *string) error {
	for _, d := range []struct {
		condition string
		value     *string
	}{
		{"a.date = $%d", date},
		{"a.date >= $%d", startDate},
		{"a.date <= $%d", endDate},
	} {
		if d.value == nil || *d.value == "" {
			continue
		}
		day, err := parseDate(*d.value)
		if err != nil {
			return err
		}
		f.add(d.condition, day)
	}
	return nil
}

func orderBy(sortBy, sortOrder string) string {
	field := "a.date"
	switch sortBy {
	case "clock_in_time":
		field = "a.clock_in"
	case "clock_out_time":
		field = "a.clock_out"
	case "status":
		field = "a.status"
	}
	order := "DESC"
	if strings.ToLower(sortOrder) == "asc" {
		order = "ASC"
	}
	return field + " " + order + ", a.clock_in " + order
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter, companyID string) ([]attendance.Attendance, int64, error) {
	fb := &filterBuilder{}
	fb.add("a.company_id = $%d", companyID)

	if filter.UserID != nil && *filter.UserID != "" {
		fb.add("a.user_id = $%d", *filter.UserID)
	}
	if filter.BranchID != nil && *filter.BranchID != "" {
		fb.add("a.branch_id = $%d", *filter.BranchID)
	}
	if err := fb.addDates(filter.Date, filter.StartDate, filter.EndDate); err != nil {
		return nil, 0, err
	}
	if filter.Status != nil && *filter.Status != "" {
		fb.add("a.status = $%d", *filter.Status)
	}
	if filter.IsLate != nil {
		fb.add("a.is_late = $%d", *filter.IsLate)
	}

	return a.page(ctx, fb, filter.Page, filter.Limit, orderBy(filter.SortBy, filter.SortOrder))
}

// GetMyAttendance implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetMyAttendance(ctx context.Context, userID string, filter attendance.MyAttendanceFilter) ([]attendance.Attendance, int64, error) {
	fb := &filterBuilder{}
	fb.add("a.user_id = $%d", userID)

	if err := fb.addDates(filter.Date, filter.StartDate, filter.EndDate); err != nil {
		return nil, 0, err
	}
	if filter.Status != nil && *filter.Status != "" {
		fb.add("a.status = $%d", *filter.Status)
	}

	return a.page(ctx, fb, filter.Page, filter.Limit, orderBy(filter.SortBy, filter.SortOrder))
}

func (a *attendanceRepository) page(ctx context.Context, fb *filterBuilder, page, limit int, order string) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	countQuery := `SELECT COUNT(*) FROM attendances a WHERE ` + fb.where()
	var total int64
	if err := q.QueryRow(ctx, countQuery, fb.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	args := append(fb.args, limit, (page-1)*limit)

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM attendances a
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, fb.where(), order, len(fb.args)+1, len(fb.args)+2)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return attendances, total, nil
}
