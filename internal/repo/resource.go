package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rfalmeida/facility-control/internal/models"
)

// ResourceRepo persists catalog resources.
type ResourceRepo struct {
	DB *sql.DB
}

func NewResourceRepo(db *sql.DB) *ResourceRepo {
	return &ResourceRepo{DB: db}
}

const resourceColumns = `id, type, name, status, COALESCE(description, ''), COALESCE(location, ''), created_by, created_at, updated_at`

func scanResource(row interface{ Scan(...any) error }) (models.Resource, error) {
	var res models.Resource
	err := row.Scan(&res.ID, &res.Type, &res.Name, &res.Status, &res.Description, &res.Location, &res.CreatedBy, &res.CreatedAt, &res.UpdatedAt)
	return res, err
}

// Create inserts a resource owned by createdBy and returns the stored row.
func (r *ResourceRepo) Create(ctx context.Context, typ models.ResourceType, name string, status models.ResourceStatus, description, location string, createdBy int) (models.Resource, error) {
	query := `
		INSERT INTO resources (type, name, status, description, location, created_by)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6)
		RETURNING ` + resourceColumns
	return scanResource(r.DB.QueryRowContext(ctx, query, typ, name, status, description, location, createdBy))
}

// Get returns one resource. A missing row is models.ErrNotFound.
func (r *ResourceRepo) Get(ctx context.Context, id int) (models.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE id = $1`
	res, err := scanResource(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Resource{}, models.ErrNotFound
	}
	return res, err
}

// ListFilter narrows a List call. Zero values mean no filtering.
type ListFilter struct {
	Type   models.ResourceType
	Status models.ResourceStatus
	Search string
}

// List returns resources matching the filter, ordered by id, paginated.
// Equality filters are combined with AND; Search matches name or
// description case-insensitively.
func (r *ResourceRepo) List(ctx context.Context, f ListFilter, limit, offset int) ([]models.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE 1=1`
	args := []any{}
	if f.Type != "" {
		args = append(args, f.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		query += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", len(args), len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resources []models.Resource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		resources = append(resources, res)
	}
	return resources, rows.Err()
}

// Update replaces the mutable fields of a resource and bumps updated_at.
// created_by is deliberately not part of the SET list. A missing row is
// models.ErrNotFound.
func (r *ResourceRepo) Update(ctx context.Context, id int, typ models.ResourceType, name string, status models.ResourceStatus, description, location string) (models.Resource, error) {
	query := `
		UPDATE resources
		SET type = $1, name = $2, status = $3, description = NULLIF($4, ''), location = NULLIF($5, ''), updated_at = NOW()
		WHERE id = $6
		RETURNING ` + resourceColumns
	res, err := scanResource(r.DB.QueryRowContext(ctx, query, typ, name, status, description, location, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Resource{}, models.ErrNotFound
	}
	return res, err
}

// Delete removes a resource. Deleting a row that does not exist returns
// models.ErrNotFound rather than silent success.
func (r *ResourceRepo) Delete(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM resources WHERE id = $1`, id)
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
