package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/company"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/database"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

// GetByID implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, name, latitude, longitude, attendance_settings, created_at, updated_at
		FROM companies
		WHERE id = $1
	`

	var (
		result   company.Company
		lat, lng *float64
		settings []byte
	)
	err := q.QueryRow(ctx, query, id).Scan(
		&result.ID,
		&result.Name,
		&lat,
		&lng,
		&settings,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company: %w", err)
	}

	if result.Location, err = pointFrom(lat, lng); err != nil {
		return company.Company{}, fmt.Errorf("company %s: %w", result.ID, err)
	}
	if result.AttendanceSettings, err = decodeSettings(settings); err != nil {
		return company.Company{}, fmt.Errorf("company %s: %w", result.ID, err)
	}

	return result, nil
}
