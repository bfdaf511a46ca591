package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rfalmeida/facility-control/internal/models"
)

// UserRepo persists user profiles.
type UserRepo struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

const userColumns = `id, email, full_name, COALESCE(password_hash, ''), role, COALESCE(department, ''), created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.UserProfile, error) {
	u := &models.UserProfile{}
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &u.Role, &u.Department, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Create inserts a profile and returns it with id and timestamps set.
func (r *UserRepo) Create(ctx context.Context, email, fullName, passwordHash string, role models.Role, department string) (*models.UserProfile, error) {
	query := `
		INSERT INTO user_profiles (email, full_name, password_hash, role, department)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		RETURNING ` + userColumns
	return scanUser(r.DB.QueryRowContext(ctx, query, email, fullName, passwordHash, role, department))
}

// GetByID returns one profile. A missing row is models.ErrNotFound.
func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.UserProfile, error) {
	query := `SELECT ` + userColumns + ` FROM user_profiles WHERE id = $1`
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	return u, err
}

// GetByEmail returns one profile by email. A missing row is models.ErrNotFound.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	query := `SELECT ` + userColumns + ` FROM user_profiles WHERE email = $1`
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	return u, err
}

// List returns profiles ordered by id. limit/offset for pagination.
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]models.UserProfile, error) {
	query := `SELECT ` + userColumns + ` FROM user_profiles ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.UserProfile
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// Count returns the total number of profiles.
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_profiles`).Scan(&n)
	return n, err
}

// UpdateRole changes a user's role. Administrator action only; the handler
// enforces that.
func (r *UserRepo) UpdateRole(ctx context.Context, id int, role models.Role) (*models.UserProfile, error) {
	query := `
		UPDATE user_profiles
		SET role = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + userColumns
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, role, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	return u, err
}
