package master

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/master/branch"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/user"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/logging"
)

type branchServiceImpl struct {
	branchRepo branch.BranchRepository
}

func NewBranchService(branchRepo branch.BranchRepository) branch.BranchService {
	return &branchServiceImpl{
		branchRepo: branchRepo,
	}
}

// ==================== BRANCH OPERATIONS ====================

func (s *branchServiceImpl) ListBranches(ctx context.Context, identity user.Identity) ([]branch.BranchResponse, error) {
	var (
		branches []branch.Branch
		err      error
	)
	switch {
	case identity.IsSuperAdmin():
		branches, err = s.branchRepo.List(ctx)
	case identity.CompanyID != nil:
		branches, err = s.branchRepo.GetByCompanyID(ctx, *identity.CompanyID)
	default:
		return nil, user.ErrCompanyIDRequired
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}

	responses := make([]branch.BranchResponse, 0, len(branches))
	for _, b := range branches {
		// Staff only see the branches they are assigned to
		if identity.IsStaff() && !identity.HasBranch(b.ID) {
			continue
		}
		responses = append(responses, branch.NewBranchResponse(b))
	}
	return responses, nil
}

func (s *branchServiceImpl) GetBranch(ctx context.Context, identity user.Identity, id string) (branch.BranchResponse, error) {
	b, err := s.visibleBranch(ctx, identity, id)
	if err != nil {
		return branch.BranchResponse{}, err
	}
	return branch.NewBranchResponse(b), nil
}

func (s *branchServiceImpl) UpdateAttendanceSettings(ctx context.Context, identity user.Identity, req branch.UpdateAttendanceSettingsRequest) (branch.BranchResponse, error) {
	if !user.Can(identity, user.CapabilityBranchManage) {
		return branch.BranchResponse{}, user.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return branch.BranchResponse{}, err
	}

	if _, err := s.visibleBranch(ctx, identity, req.ID); err != nil {
		return branch.BranchResponse{}, err
	}

	updated, err := s.branchRepo.UpdateAttendanceSettings(ctx, req.ID, req.Settings(), req.Location)
	if err != nil {
		if errors.Is(err, branch.ErrBranchNotFound) {
			return branch.BranchResponse{}, branch.ErrBranchNotFound
		}
		return branch.BranchResponse{}, fmt.Errorf("failed to update attendance settings: %w", err)
	}

	logging.FromContext(ctx).Info("Branch attendance settings updated",
		"branch_id", updated.ID,
		"require_location", updated.AttendanceSettings.RequireLocation,
		"location_radius", updated.AttendanceSettings.Radius(),
		"start_time", updated.AttendanceSettings.StartTime,
	)

	return branch.NewBranchResponse(updated), nil
}

// visibleBranch loads a branch and checks that the caller's company owns it.
func (s *branchServiceImpl) visibleBranch(ctx context.Context, identity user.Identity, id string) (branch.Branch, error) {
	b, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, branch.ErrBranchNotFound) {
			return branch.Branch{}, branch.ErrBranchNotFound
		}
		return branch.Branch{}, fmt.Errorf("failed to get branch: %w", err)
	}

	companyID := b.CompanyID
	if !identity.SameCompany(&companyID) {
		return branch.Branch{}, branch.ErrUnauthorizedAccess
	}
	if identity.IsStaff() && !identity.HasBranch(b.ID) {
		return branch.Branch{}, branch.ErrUnauthorizedAccess
	}
	return b, nil
}
