package branch

import (
	"context"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/user"
)

type BranchService interface {
	// ListBranches returns the branches visible to the caller
	ListBranches(ctx context.Context, identity user.Identity) ([]BranchResponse, error)
	GetBranch(ctx context.Context, identity user.Identity, id string) (BranchResponse, error)
	// UpdateAttendanceSettings replaces the geofence and late policy of a branch (branch.manage)
	UpdateAttendanceSettings(ctx context.Context, identity user.Identity, req UpdateAttendanceSettingsRequest) (BranchResponse, error)
}
