package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/Aniket760/E-Coomarse/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) (*Repository, *sql.DB) {
	if testing.Short() {
		t.Skip("skipping Postgres integration test in -short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%d user=testuser password=testpass dbname=testdb sslmode=disable", host, port.Int())
	db, err := storage.Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, storage.RunMigrations(db, "../../migrations"))

	return NewRepository(db), db
}

func insertProduct(t *testing.T, db *sql.DB, name, price string, featured, active bool) int64 {
	var id int64
	err := db.QueryRow(
		`INSERT INTO products (name, description, price, image_url, is_featured, is_active)
		 VALUES ($1, '', $2, '', $3, $4) RETURNING id`,
		name, price, featured, active,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestRepository_GetActive(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()

	activeID := insertProduct(t, db, "ztest active", "100.00", false, true)
	inactiveID := insertProduct(t, db, "ztest retired", "50.00", false, false)

	p, err := repo.GetActive(ctx, activeID)
	require.NoError(t, err)
	assert.Equal(t, "ztest active", p.Name)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("100.00")))

	_, err = repo.GetActive(ctx, inactiveID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = repo.GetActive(ctx, 999999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestRepository_FindActiveByIDs(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()

	bID := insertProduct(t, db, "ztest b", "10.00", false, true)
	aID := insertProduct(t, db, "ztest a", "20.00", false, true)
	goneID := insertProduct(t, db, "ztest gone", "30.00", false, false)

	products, err := repo.FindActiveByIDs(ctx, []int64{bID, aID, goneID, 999999})
	require.NoError(t, err)
	require.Len(t, products, 2)

	// Catalog order is by name; inactive and unknown ids are absent.
	assert.Equal(t, aID, products[0].ID)
	assert.Equal(t, bID, products[1].ID)
}

func TestRepository_FindActiveByIDs_EmptyInput(t *testing.T) {
	repo, _ := setupTestDB(t)

	products, err := repo.FindActiveByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestRepository_ListActiveOrderedByName(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()

	insertProduct(t, db, "zz later", "10.00", false, true)
	insertProduct(t, db, "aa earlier", "10.00", false, true)
	insertProduct(t, db, "zz hidden", "10.00", false, false)

	products, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, products)

	names := make([]string, 0, len(products))
	for _, p := range products {
		assert.True(t, p.IsActive)
		names = append(names, p.Name)
	}
	assert.True(t, sort.StringsAreSorted(names), "expected catalog order by name: %v", names)
	assert.NotContains(t, names, "zz hidden")
}

func TestRepository_ListFeatured(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()

	featuredID := insertProduct(t, db, "ztest featured", "10.00", true, true)
	insertProduct(t, db, "ztest plain", "10.00", false, true)

	products, err := repo.ListFeatured(ctx)
	require.NoError(t, err)

	var found bool
	for _, p := range products {
		assert.True(t, p.IsFeatured)
		if p.ID == featuredID {
			found = true
		}
	}
	assert.True(t, found, "inserted featured product missing from listing")
}
