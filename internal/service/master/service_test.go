package master

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/attendance"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/master/branch"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/user"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/geo"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/validator"
)

type memoryBranchRepo struct {
	branches map[string]branch.Branch
	order    []string
}

func newMemoryBranchRepo(branches ...branch.Branch) *memoryBranchRepo {
	repo := &memoryBranchRepo{branches: map[string]branch.Branch{}}
	for _, b := range branches {
		repo.branches[b.ID] = b
		repo.order = append(repo.order, b.ID)
	}
	return repo
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
	for _, id := range m.order {
		if m.branches[id].CompanyID == companyID {
			out = append(out, m.branches[id])
		}
	}
	return out, nil
}

func (m *memoryBranchRepo) List(ctx context.Context) ([]branch.Branch, error) {
	var out []branch.Branch
	for _, id := range m.order {
		out = append(out, m.branches[id])
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
	m.branches[id] = b
	return b, nil
}

func seededRepo() *memoryBranchRepo {
	return newMemoryBranchRepo(
		branch.Branch{ID: "b1", CompanyID: "c1", Name: "Lagos"},
		branch.Branch{ID: "b2", CompanyID: "c1", Name: "Abuja"},
		branch.Branch{ID: "b3", CompanyID: "c2", Name: "Accra"},
	)
}

func identityFor(role user.Role, companyID string, branchIDs ...string) user.Identity {
	id := user.Identity{UserID: "u1", Role: role, BranchIDs: branchIDs}
	if companyID != "" {
		id.CompanyID = &companyID
	}
	return id
}

// ===== BRANCH SERVICE TESTS =====

func TestListBranches_Visibility(t *testing.T) {
	t.Parallel()
	svc := NewBranchService(seededRepo())
	ctx := context.Background()

	all, err := svc.ListBranches(ctx, identityFor(user.RoleSuperAdmin, ""))
	require.NoError(t, err)
	assert.Len(t, all, 3)

	company, err := svc.ListBranches(ctx, identityFor(user.RoleCompanyAdmin, "c1"))
	require.NoError(t, err)
	assert.Len(t, company, 2)

	assigned, err := svc.ListBranches(ctx, identityFor(user.RoleStaff, "c1", "b2"))
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, "b2", assigned[0].ID)

	_, err = svc.ListBranches(ctx, identityFor(user.RoleRecruiter, ""))
	assert.ErrorIs(t, err, user.ErrCompanyIDRequired)
}

func TestGetBranch_OtherCompany_Unauthorized(t *testing.T) {
	t.Parallel()
	svc := NewBranchService(seededRepo())

	_, err := svc.GetBranch(context.Background(), identityFor(user.RoleCompanyAdmin, "c1"), "b3")

	assert.ErrorIs(t, err, branch.ErrUnauthorizedAccess)
}

func TestGetBranch_NotFound(t *testing.T) {
	t.Parallel()
	svc := NewBranchService(seededRepo())

	_, err := svc.GetBranch(context.Background(), identityFor(user.RoleCompanyAdmin, "c1"), "missing")

	assert.ErrorIs(t, err, branch.ErrBranchNotFound)
}

func TestUpdateAttendanceSettings_Success(t *testing.T) {
	t.Parallel()
	repo := seededRepo()
	svc := NewBranchService(repo)

	resp, err := svc.UpdateAttendanceSettings(context.Background(), identityFor(user.RoleCompanyAdmin, "c1"), branch.UpdateAttendanceSettingsRequest{
		ID:              "b1",
		StartTime:       "09:00",
		RequireLocation: true,
		LocationRadius:  150,
		IsActive:        true,
		Location:        &geo.Point{Lat: 6.5244, Lng: 3.3792},
	})

	require.NoError(t, err)
	assert.Equal(t, "09:00", resp.AttendanceSettings.StartTime)
	assert.Equal(t, 150, resp.AttendanceSettings.LocationRadius)
	require.NotNil(t, resp.Location)
	assert.Equal(t, 6.5244, resp.Location.Lat)
	assert.True(t, repo.branches["b1"].AttendanceSettings.RequireLocation)
}

func TestUpdateAttendanceSettings_RequiresCapability(t *testing.T) {
	t.Parallel()
	svc := NewBranchService(seededRepo())

	_, err := svc.UpdateAttendanceSettings(context.Background(), identityFor(user.RoleStaff, "c1", "b1"), branch.UpdateAttendanceSettingsRequest{ID: "b1"})

	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}

func TestUpdateAttendanceSettings_InvalidStartTime(t *testing.T) {
	t.Parallel()
	svc := NewBranchService(seededRepo())

	_, err := svc.UpdateAttendanceSettings(context.Background(), identityFor(user.RoleCompanyAdmin, "c1"), branch.UpdateAttendanceSettingsRequest{
		ID:        "b1",
		StartTime: "9am",
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "start_time")
}

func TestUpdateAttendanceSettings_OtherCompany(t *testing.T) {
	t.Parallel()
	svc := NewBranchService(seededRepo())

	_, err := svc.UpdateAttendanceSettings(context.Background(), identityFor(user.RoleCompanyAdmin, "c1"), branch.UpdateAttendanceSettingsRequest{ID: "b3"})

	assert.ErrorIs(t, err, branch.ErrUnauthorizedAccess)
}
