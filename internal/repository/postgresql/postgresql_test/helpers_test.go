package postgresql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// setupTestDatabase returns a clean database or skips the test when none is configured.
func setupTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()
	ctx := context.Background()

	setup, err := NewTestDatabase(ctx)
	if errors.Is(err, ErrNoTestDatabase) {
		t.Skip("TEST_DATABASE_URL not set; skipping repository test")
	}
	require.NoError(t, err)

	require.NoError(t, setup.TruncateAllTables(ctx))
	t.Cleanup(func() {
		_ = setup.TruncateAllTables(context.Background())
		setup.Close()
	})
	return setup
}

func createTestCompany(t *testing.T, setup *TestDatabaseSetup, settings string) string {
	t.Helper()
	var id string
	err := setup.DB.QueryRow(context.Background(), `
		INSERT INTO companies (name, latitude, longitude, attendance_settings)
		VALUES ('Acme', 6.524379, 3.379206, $1::jsonb)
		RETURNING id
	`, settings).Scan(&id)
	require.NoError(t, err)
	return id
}

func createTestBranch(t *testing.T, setup *TestDatabaseSetup, companyID, settings string) string {
	t.Helper()
	var id string
	err := setup.DB.QueryRow(context.Background(), `
		INSERT INTO branches (company_id, name, latitude, longitude, attendance_settings)
		VALUES ($1, 'Lagos', 6.524379, 3.379206, $2::jsonb)
		RETURNING id
	`, companyID, settings).Scan(&id)
	require.NoError(t, err)
	return id
}

func strPtr(s string) *string { return &s }
