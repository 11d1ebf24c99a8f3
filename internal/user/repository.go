package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Aniket760/E-Coomarse/internal/domain"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Store is what handlers and checkout need from user persistence.
// Consumers define this interface, not the Postgres implementation.
type Store interface {
	Create(ctx context.Context, username, password string) (*domain.User, error)
	Authenticate(ctx context.Context, login, password string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateIdentity(ctx context.Context, id int64, firstName, lastName, email string) error
	GetOrCreateProfile(ctx context.Context, userID int64) (*domain.Profile, error)
	SaveProfile(ctx context.Context, profile *domain.Profile) error
	SaveAddress(ctx context.Context, userID int64, address string) error
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create registers a new account with a bcrypt password hash. A taken
// username maps the unique violation to ErrUsernameTaken.
func (r *Repository) Create(ctx context.Context, username, password string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{Username: username}
	query := `INSERT INTO users (username, password_hash)
	          VALUES ($1, $2)
	          RETURNING id, created_at`

	err = r.db.QueryRowContext(ctx, query, username, string(hash)).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

// Authenticate matches login against username or email and verifies the
// password. Every failure mode comes back as ErrInvalidCredentials.
func (r *Repository) Authenticate(ctx context.Context, login, password string) (*domain.User, error) {
	query := `SELECT id, username, email, first_name, last_name, password_hash, created_at
	          FROM users
	          WHERE username = $1 OR (email = $1 AND email <> '')`

	var user domain.User
	var hash string
	err := r.db.QueryRowContext(ctx, query, login).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&hash,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("query user by login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT id, username, email, first_name, last_name, created_at
	          FROM users WHERE id = $1`

	var user domain.User
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user by id: %w", err)
	}

	return &user, nil
}

// UpdateIdentity stores the name and email a user typed on the profile
// page.
func (r *Repository) UpdateIdentity(ctx context.Context, id int64, firstName, lastName, email string) error {
	query := `UPDATE users SET first_name = $2, last_name = $3, email = $4 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, firstName, lastName, email)
	if err != nil {
		return fmt.Errorf("update user identity: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// GetOrCreateProfile returns the user's profile, creating an empty row
// on first access.
func (r *Repository) GetOrCreateProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	ensure := `INSERT INTO profiles (user_id) VALUES ($1)
	           ON CONFLICT (user_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, ensure, userID); err != nil {
		return nil, fmt.Errorf("ensure profile: %w", err)
	}

	query := `SELECT user_id, phone, address, city, state, postal_code, updated_at
	          FROM profiles WHERE user_id = $1`

	var p domain.Profile
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID,
		&p.Phone,
		&p.Address,
		&p.City,
		&p.State,
		&p.PostalCode,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}

	return &p, nil
}

func (r *Repository) SaveProfile(ctx context.Context, profile *domain.Profile) error {
	query := `INSERT INTO profiles (user_id, phone, address, city, state, postal_code, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, NOW())
	          ON CONFLICT (user_id) DO UPDATE SET
	              phone = EXCLUDED.phone,
	              address = EXCLUDED.address,
	              city = EXCLUDED.city,
	              state = EXCLUDED.state,
	              postal_code = EXCLUDED.postal_code,
	              updated_at = NOW()`

	_, err := r.db.ExecContext(ctx, query,
		profile.UserID,
		profile.Phone,
		profile.Address,
		profile.City,
		profile.State,
		profile.PostalCode,
	)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// SaveAddress overwrites just the address line. Checkout calls it
// best-effort when the shopper submits a fresh address.
func (r *Repository) SaveAddress(ctx context.Context, userID int64, address string) error {
	query := `INSERT INTO profiles (user_id, address, updated_at)
	          VALUES ($1, $2, NOW())
	          ON CONFLICT (user_id) DO UPDATE SET
	              address = EXCLUDED.address,
	              updated_at = NOW()`

	if _, err := r.db.ExecContext(ctx, query, userID, address); err != nil {
		return fmt.Errorf("save address: %w", err)
	}
	return nil
}
