package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rfalmeida/facility-control/internal/models"
)

// AreaRepo persists restricted areas.
type AreaRepo struct {
	DB *sql.DB
}

func NewAreaRepo(db *sql.DB) *AreaRepo {
	return &AreaRepo{DB: db}
}

const areaColumns = `id, name, COALESCE(description, ''), required_access_level, is_active, created_at, updated_at`

func scanArea(row interface{ Scan(...any) error }) (models.RestrictedArea, error) {
	var a models.RestrictedArea
	err := row.Scan(&a.ID, &a.Name, &a.Description, &a.RequiredAccessLevel, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// Create inserts an area and returns the stored row.
func (r *AreaRepo) Create(ctx context.Context, name, description string, level models.Role, active bool) (models.RestrictedArea, error) {
	query := `
		INSERT INTO restricted_areas (name, description, required_access_level, is_active)
		VALUES ($1, NULLIF($2, ''), $3, $4)
		RETURNING ` + areaColumns
	return scanArea(r.DB.QueryRowContext(ctx, query, name, description, level, active))
}

// Get returns one area. A missing row is models.ErrNotFound.
func (r *AreaRepo) Get(ctx context.Context, id int) (models.RestrictedArea, error) {
	query := `SELECT ` + areaColumns + ` FROM restricted_areas WHERE id = $1`
	a, err := scanArea(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.RestrictedArea{}, models.ErrNotFound
	}
	return a, err
}

// List returns all areas, newest first.
func (r *AreaRepo) List(ctx context.Context) ([]models.RestrictedArea, error) {
	query := `SELECT ` + areaColumns + ` FROM restricted_areas ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var areas []models.RestrictedArea
	for rows.Next() {
		a, err := scanArea(rows)
		if err != nil {
			return nil, err
		}
		areas = append(areas, a)
	}
	return areas, rows.Err()
}

// Update replaces the mutable fields of an area and bumps updated_at.
// A missing row is models.ErrNotFound.
func (r *AreaRepo) Update(ctx context.Context, id int, name, description string, level models.Role, active bool) (models.RestrictedArea, error) {
	query := `
		UPDATE restricted_areas
		SET name = $1, description = NULLIF($2, ''), required_access_level = $3, is_active = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING ` + areaColumns
	a, err := scanArea(r.DB.QueryRowContext(ctx, query, name, description, level, active, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.RestrictedArea{}, models.ErrNotFound
	}
	return a, err
}

// Delete removes an area. Access logs that reference it are kept; the
// foreign key restricts the delete while logs exist, which surfaces as a
// constraint error to the caller.
func (r *AreaRepo) Delete(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM restricted_areas WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}
