package company

import "context"

type CompanyRepository interface {
	// GetByID returns ErrCompanyNotFound when no company has the id.
	GetByID(ctx context.Context, id string) (Company, error)
}
