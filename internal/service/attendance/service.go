package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/attendance"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/company"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/master/branch"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/user"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/clock"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/geo"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/logging"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/metrics"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	branch.BranchRepository
	company.CompanyRepository
	clock    clock.Clock
	location *time.Location
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	branchRepo branch.BranchRepository,
	companyRepo company.CompanyRepository,
	clk clock.Clock,
	location *time.Location,
) attendance.AttendanceService {
	if location == nil {
		location = time.UTC
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		BranchRepository:     branchRepo,
		CompanyRepository:    companyRepo,
		clock:                clk,
		location:             location,
	}
}

// now returns the current time in the attendance time zone and the calendar day it falls on.
func (a *AttendanceServiceImpl) now() (time.Time, string) {
	now := a.clock.Now().In(a.location)
	return now, now.Format(attendance.DateLayout)
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, identity user.Identity, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !user.Can(identity, user.CapabilityAttendanceClock) {
		return attendance.AttendanceResponse{}, user.ErrInsufficientPermissions
	}

	logger := logging.FromContext(ctx).With("user_id", identity.UserID)
	nowLocal, today := a.now()

	_, err := a.AttendanceRepository.GetOpenSession(ctx, identity.UserID, today)
	if err == nil {
		metrics.RecordClockIn("conflict")
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedIn
	}
	if !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check open attendance: %w", err)
	}

	policy, err := a.resolvePolicy(ctx, identity, req.BranchID)
	if err != nil {
		metrics.RecordClockIn("rejected")
		return attendance.AttendanceResponse{}, err
	}

	if policy.RequiresLocation() {
		if req.Location == nil {
			metrics.RecordClockIn("rejected")
			return attendance.AttendanceResponse{}, attendance.ErrLocationRequired
		}

		meters := geo.Distance(*req.Location, *policy.Location)
		if math.IsNaN(meters) || math.IsInf(meters, 0) {
			meters = geo.MaxDistance
		}
		distance := int(math.Round(meters))
		allowed := policy.Settings.Radius()
		if distance > allowed {
			metrics.RecordClockIn("out_of_range")
			logger.Info("Clock-in outside geofence", "distance", distance, "allowed_radius", allowed, "policy", policy.Source)
			return attendance.AttendanceResponse{}, &attendance.OutOfRangeError{
				Distance:      distance,
				AllowedRadius: allowed,
			}
		}
	}

	notes := trimmedOrNil(req.Notes)

	isLate := false
	if policy.HasLatePolicy() {
		late, err := a.isLate(nowLocal, policy.Settings.StartTime)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		if late && notes == nil {
			metrics.RecordClockIn("rejected")
			return attendance.AttendanceResponse{}, attendance.ErrLateReasonRequired
		}
		isLate = late
	}

	record := attendance.Attendance{
		UserID:    identity.UserID,
		CompanyID: policy.CompanyID,
		BranchID:  policy.BranchID,
		Date:      today,
		ClockIn:   nowLocal.UTC(),
		Location:  req.Location,
		IsLate:    isLate,
		Notes:     notes,
		Status:    attendance.StatusActive,
	}
	if record.CompanyID == nil {
		record.CompanyID = identity.CompanyID
	}
	if isLate {
		record.LateReason = notes
	}

	created, err := a.AttendanceRepository.Create(ctx, record)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyClockedIn) {
			metrics.RecordClockIn("conflict")
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	if isLate {
		metrics.RecordClockIn("late")
	} else {
		metrics.RecordClockIn("accepted")
	}
	logger.Info("Clocked in", "attendance_id", created.ID, "policy", policy.Source, "is_late", isLate)

	return attendance.NewAttendanceResponse(created), nil
}

// resolvePolicy picks the attendance policy for a clock-in. First match wins:
// explicit branch, the single assigned branch, the caller's company, none.
func (a *AttendanceServiceImpl) resolvePolicy(ctx context.Context, identity user.Identity, branchID *string) (attendance.Policy, error) {
	if branchID != nil && *branchID != "" {
		if identity.IsStaff() && !identity.HasBranch(*branchID) {
			return attendance.Policy{}, attendance.ErrBranchForbidden
		}
		return a.branchPolicy(ctx, *branchID)
	}

	if len(identity.BranchIDs) == 1 {
		return a.branchPolicy(ctx, identity.BranchIDs[0])
	}

	if identity.CompanyID != nil {
		c, err := a.CompanyRepository.GetByID(ctx, *identity.CompanyID)
		if err != nil {
			if errors.Is(err, company.ErrCompanyNotFound) {
				logging.FromContext(ctx).Warn("Company of identity not found, no attendance policy applied", "company_id", *identity.CompanyID)
				return attendance.Policy{Source: attendance.PolicySourceNone, CompanyID: identity.CompanyID}, nil
			}
			return attendance.Policy{}, fmt.Errorf("failed to get company: %w", err)
		}
		return attendance.Policy{
			Source:    attendance.PolicySourceCompany,
			CompanyID: &c.ID,
			Settings:  c.AttendanceSettings,
			Location:  c.Location,
		}, nil
	}

	return attendance.Policy{Source: attendance.PolicySourceNone}, nil
}

func (a *AttendanceServiceImpl) branchPolicy(ctx context.Context, id string) (attendance.Policy, error) {
	b, err := a.BranchRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, branch.ErrBranchNotFound) {
			return attendance.Policy{}, branch.ErrBranchNotFound
		}
		return attendance.Policy{}, fmt.Errorf("failed to get branch: %w", err)
	}

	settings := b.AttendanceSettings
	return attendance.Policy{
		Source:    attendance.PolicySourceBranch,
		BranchID:  &b.ID,
		CompanyID: &b.CompanyID,
		Settings:  &settings,
		Location:  b.Location,
	}, nil
}

// isLate compares now with startTime ("HH:MM") on the same calendar day.
func (a *AttendanceServiceImpl) isLate(nowLocal time.Time, startTime string) (bool, error) {
	start, ok := validator.IsValidClock(startTime)
	if !ok {
		return false, fmt.Errorf("%w: start_time %q", attendance.ErrMalformedDocument, startTime)
	}
	startAt := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), start.Hour(), start.Minute(), 0, 0, a.location)
	return nowLocal.After(startAt), nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, identity user.Identity, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowLocal, today := a.now()

	open, err := a.AttendanceRepository.GetOpenSession(ctx, identity.UserID, today)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrNotClockedIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get open attendance: %w", err)
	}

	clockOut := nowLocal.UTC()
	hoursWorked := math.Round(clockOut.Sub(open.ClockIn).Hours()*100) / 100

	open.ClockOut = &clockOut
	open.ClockOutLocation = req.Location
	open.HoursWorked = &hoursWorked
	open.Notes = appendNotes(open.Notes, req.Notes)
	open.Status = attendance.StatusCompleted

	closed, err := a.AttendanceRepository.CloseSession(ctx, open)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrNotClockedIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to close attendance record: %w", err)
	}

	logging.FromContext(ctx).Info("Clocked out", "user_id", identity.UserID, "attendance_id", closed.ID, "hours_worked", hoursWorked)

	return attendance.NewAttendanceResponse(closed), nil
}

// GetTodayStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetTodayStatus(ctx context.Context, identity user.Identity) (attendance.TodayStatusResponse, error) {
	_, today := a.now()

	record, err := a.AttendanceRepository.GetByUserAndDate(ctx, identity.UserID, today)
	if err != nil {
		return attendance.TodayStatusResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	status := attendance.TodayStatusResponse{
		Date:       today,
		CanClockIn: true,
	}
	if record != nil {
		resp := attendance.NewAttendanceResponse(*record)
		status.Today = &resp
		status.HasClockedIn = true
		status.HasOpenSession = record.IsOpen()
		status.CanClockIn = !record.IsOpen()
		status.CanClockOut = record.IsOpen()
	}
	return status, nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, identity user.Identity, filter attendance.MyAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := a.AttendanceRepository.GetMyAttendance(ctx, identity.UserID, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to get attendance history: %w", err)
	}

	return newListResponse(records, total, filter.Page, filter.Limit), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, identity user.Identity, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	companyID, err := companyScope(identity)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := a.AttendanceRepository.List(ctx, filter, companyID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	return newListResponse(records, total, filter.Page, filter.Limit), nil
}

// companyScope returns the company whose records the caller may list.
func companyScope(identity user.Identity) (string, error) {
	if !user.Can(identity, user.CapabilityAttendanceViewAll) {
		return "", user.ErrInsufficientPermissions
	}
	if identity.CompanyID == nil {
		return "", user.ErrCompanyIDRequired
	}
	return *identity.CompanyID, nil
}

func newListResponse(records []attendance.Attendance, total int64, page, limit int) attendance.ListAttendanceResponse {
	items := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		items = append(items, attendance.NewAttendanceResponse(r))
	}

	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		Attendances: items,
	}
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// appendNotes joins clock-out notes to the existing notes on a new line.
func appendNotes(existing, added *string) *string {
	add := trimmedOrNil(added)
	if add == nil {
		return existing
	}
	if existing == nil || strings.TrimSpace(*existing) == "" {
		return add
	}
	joined := *existing + "\n" + *add
	return &joined
}
