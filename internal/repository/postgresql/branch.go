package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/attendance"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/master/branch"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/database"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/geo"
)

const branchColumns = `id, company_id, name, address, latitude, longitude, attendance_settings, created_at, updated_at`

type branchRepositoryImpl struct {
	db *database.DB
}

func NewBranchRepository(db *database.DB) branch.BranchRepository {
	return &branchRepositoryImpl{db: db}
}

func scanBranch(row pgx.Row) (branch.Branch, error) {
	var (
		result   branch.Branch
		lat, lng *float64
		settings []byte
	)
	err := row.Scan(
		&result.ID,
		&result.CompanyID,
		&result.Name,
		&result.Address,
		&lat,
		&lng,
		&settings,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		return branch.Branch{}, err
	}

	if result.Location, err = pointFrom(lat, lng); err != nil {
		return branch.Branch{}, fmt.Errorf("branch %s: %w", result.ID, err)
	}
	decoded, err := decodeSettings(settings)
	if err != nil {
		return branch.Branch{}, fmt.Errorf("branch %s: %w", result.ID, err)
	}
	if decoded != nil {
		result.AttendanceSettings = *decoded
	}
	return result, nil
}

// GetByID implements branch.BranchRepository.
func (r *branchRepositoryImpl) GetByID(ctx context.Context, id string) (branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + branchColumns + ` FROM branches WHERE id = $1`

	result, err := scanBranch(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return branch.Branch{}, branch.ErrBranchNotFound
		}
		return branch.Branch{}, fmt.Errorf("failed to get branch: %w", err)
	}

	return result, nil
}

// GetByCompanyID implements branch.BranchRepository.
func (r *branchRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string) ([]branch.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches WHERE company_id = $1 ORDER BY name ASC`
	return r.query(ctx, query, companyID)
}

// List implements branch.BranchRepository.
func (r *branchRepositoryImpl) List(ctx context.Context) ([]branch.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches ORDER BY company_id, name ASC`
	return r.query(ctx, query)
}

func (r *branchRepositoryImpl) query(ctx context.Context, query string, args ...interface{}) ([]branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query branches: %w", err)
	}
	defer rows.Close()

	var branches []branch.Branch
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan branch: %w", err)
		}
		branches = append(branches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate branches: %w", err)
	}

	return branches, nil
}

// UpdateAttendanceSettings implements branch.BranchRepository. A nil
// location keeps the stored coordinates.
func (r *branchRepositoryImpl) UpdateAttendanceSettings(ctx context.Context, id string, settings attendance.Settings, location *geo.Point) (branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	lat, lng := coordinates(location)

	query := `
		UPDATE branches SET
			attendance_settings = $2,
			latitude = COALESCE($3, latitude),
			longitude = COALESCE($4, longitude),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + branchColumns

	result, err := scanBranch(q.QueryRow(ctx, query, id, settings, lat, lng))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return branch.Branch{}, branch.ErrBranchNotFound
		}
		return branch.Branch{}, fmt.Errorf("failed to update branch attendance settings: %w", err)
	}

	return result, nil
}
