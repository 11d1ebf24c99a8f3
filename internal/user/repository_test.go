package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Aniket760/E-Coomarse/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) *Repository {
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

	return NewRepository(db)
}

func TestCreateAndAuthenticate(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "rahul", "hunter2hunter2")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "rahul", created.Username)

	authed, err := repo.Authenticate(ctx, "rahul", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, created.ID, authed.ID)

	_, err = repo.Authenticate(ctx, "rahul", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = repo.Authenticate(ctx, "nobody", "hunter2hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreate_DuplicateUsername(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "rahul", "hunter2hunter2")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "rahul", "otherpassword")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthenticate_ByEmail(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "rahul", "hunter2hunter2")
	require.NoError(t, err)
	require.NoError(t, repo.UpdateIdentity(ctx, created.ID, "Rahul", "Sharma", "rahul@example.com"))

	authed, err := repo.Authenticate(ctx, "rahul@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, created.ID, authed.ID)
	assert.Equal(t, "Rahul Sharma", authed.FullName())
}

func TestGetByID_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetByID(context.Background(), 999999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestProfileLifecycle(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "rahul", "hunter2hunter2")
	require.NoError(t, err)

	// First access creates an empty profile.
	profile, err := repo.GetOrCreateProfile(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, profile.UserID)
	assert.Empty(t, profile.Address)

	profile.Phone = "9876543210"
	profile.Address = "12 MG Road"
	profile.City = "Pune"
	profile.State = "MH"
	profile.PostalCode = "411001"
	require.NoError(t, repo.SaveProfile(ctx, profile))

	reloaded, err := repo.GetOrCreateProfile(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "12 MG Road", reloaded.Address)
	assert.Equal(t, "9876543210", reloaded.Phone)

	// SaveAddress overwrites only the address line.
	require.NoError(t, repo.SaveAddress(ctx, created.ID, "77 FC Road"))
	reloaded, err = repo.GetOrCreateProfile(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "77 FC Road", reloaded.Address)
	assert.Equal(t, "Pune", reloaded.City)
}

func TestSaveAddress_WithoutExistingProfile(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "fresh", "hunter2hunter2")
	require.NoError(t, err)

	require.NoError(t, repo.SaveAddress(ctx, created.ID, "1 First Street"))

	profile, err := repo.GetOrCreateProfile(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "1 First Street", profile.Address)
}

var _ Store = (*Repository)(nil)
