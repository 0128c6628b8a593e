package postgresql_test

import (
	"context"
	"fmt"
	"os"

	"github.com/qanda-labs/engage-backend-go/internal/pkg/database"
	"github.com/qanda-labs/engage-backend-go/internal/repository/postgresql"
)

// TestDatabaseSetup holds the connection to the test database
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to the test database. Returns (nil, nil) when
// TEST_DATABASE_URL is not set, so callers can skip.
func NewTestDatabase() (*TestDatabaseSetup, error) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		return nil, nil
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	return &TestDatabaseSetup{DB: db}, nil
}

// TruncateAllTables removes all data from the tables inside one transaction
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tables := []string{
		"subscribers",
		"notifications",
		"posts",
	}

	return postgresql.WithTransaction(ctx, t.DB, func(ctx context.Context) error {
		q := postgresql.GetQuerier(ctx, t.DB)
		for _, table := range tables {
			if _, err := q.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
				return fmt.Errorf("failed to truncate table %s: %w", table, err)
			}
		}
		return nil
	})
}

// Close closes the database connection
func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
