package branch

import (
	"context"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/attendance"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/geo"
)

type BranchRepository interface {
	// GetByID returns ErrBranchNotFound when no branch has the id.
	GetByID(ctx context.Context, id string) (Branch, error)
	GetByCompanyID(ctx context.Context, companyID string) ([]Branch, error)
	List(ctx context.Context) ([]Branch, error)
	UpdateAttendanceSettings(ctx context.Context, id string, settings attendance.Settings, location *geo.Point) (Branch, error)
}
