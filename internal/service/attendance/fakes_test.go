package attendance

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/attendance"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/company"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/master/branch"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/geo"
)

// memoryAttendanceRepo mirrors the partial unique index on open records per user and day.
type memoryAttendanceRepo struct {
	mu      sync.Mutex
	records []attendance.Attendance
	seq     int
}

func (m *memoryAttendanceRepo) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.records {
		if r.UserID == a.UserID && r.Date == a.Date && r.IsOpen() {
			return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
		}
	}
	m.seq++
	a.ID = fmt.Sprintf("att-%d", m.seq)
	a.CreatedAt = a.ClockIn
	a.UpdatedAt = a.ClockIn
	m.records = append(m.records, a)
	return a, nil
}

func (m *memoryAttendanceRepo) GetOpenSession(ctx context.Context, userID, date string) (attendance.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.records {
		if r.UserID == userID && r.Date == date && r.IsOpen() {
			return r, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (m *memoryAttendanceRepo) GetByUserAndDate(ctx context.Context, userID, date string) (*attendance.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := len(m.records) - 1; i >= 0; i-- {
		r := m.records[i]
		if r.UserID == userID && r.Date == date {
			return &r, nil
		}
	}
	return nil, nil
}

func (m *memoryAttendanceRepo) CloseSession(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, r := range m.records {
		if r.ID == a.ID && r.IsOpen() {
			m.records[i] = a
			return a, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (m *memoryAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter, companyID string) ([]attendance.Attendance, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []attendance.Attendance
	for _, r := range m.records {
		if r.CompanyID == nil || *r.CompanyID != companyID {
			continue
		}
		if filter.UserID != nil && r.UserID != *filter.UserID {
			continue
		}
		matched = append(matched, r)
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].ClockIn.Before(matched[j].ClockIn) })
	return paginate(matched, filter.Page, filter.Limit), int64(len(matched)), nil
}

func (m *memoryAttendanceRepo) GetMyAttendance(ctx context.Context, userID string, filter attendance.MyAttendanceFilter) ([]attendance.Attendance, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []attendance.Attendance
	for _, r := range m.records {
		if r.UserID == userID {
			matched = append(matched, r)
		}
	}
	return paginate(matched, filter.Page, filter.Limit), int64(len(matched)), nil
}

func (m *memoryAttendanceRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

func paginate(records []attendance.Attendance, page, limit int) []attendance.Attendance {
	start := (page - 1) * limit
	if start >= len(records) {
		return nil
	}
	end := start + limit
	if end > len(records) {
		end = len(records)
	}
	return records[start:end]
}

type memoryBranchRepo struct {
	branches map[string]branch.Branch
}

func (m *memoryBranchRepo) GetByID(ctx context.Context, id string) (branch.Branch, error) {
	b, ok := m.branches[id]
	if !ok {
		return branch.Branch{}, branch.ErrBranchNotFound
	}
	return b, nil
}

func (m *memoryBranchRepo) GetByCompanyID(ctx context.Context, companyID string) ([]branch.Branch, error) {
	var out []branch.Branch
	for _, b := range m.branches {
		if b.CompanyID == companyID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memoryBranchRepo) List(ctx context.Context) ([]branch.Branch, error) {
	var out []branch.Branch
	for _, b := range m.branches {
		out = append(out, b)
	}
	return out, nil
}

func (m *memoryBranchRepo) UpdateAttendanceSettings(ctx context.Context, id string, settings attendance.Settings, location *geo.Point) (branch.Branch, error) {
	b, ok := m.branches[id]
	if !ok {
		return branch.Branch{}, branch.ErrBranchNotFound
	}
	b.AttendanceSettings = settings
	if location != nil {
		b.Location = location
	}
	b.UpdatedAt = time.Now()
	m.branches[id] = b
	return b, nil
}

type memoryCompanyRepo struct {
	companies map[string]company.Company
}

func (m *memoryCompanyRepo) GetByID(ctx context.Context, id string) (company.Company, error) {
	c, ok := m.companies[id]
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return c, nil
}
