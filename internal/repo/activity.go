package repo

import (
	"context"
	"database/sql"

	"github.com/rfalmeida/facility-control/internal/models"
)

// ActivityRepo appends to and reads the free-text audit trail. Append-only,
// same as the access log; the two trails are kept separate because their
// consumers and schemas differ.
type ActivityRepo struct {
	DB *sql.DB
}

func NewActivityRepo(db *sql.DB) *ActivityRepo {
	return &ActivityRepo{DB: db}
}

// Log appends one activity row attributed to userID. resourceID may be nil
// for events that do not concern a catalog resource.
func (r *ActivityRepo) Log(ctx context.Context, userID int, resourceID *int, actionType, description string) (models.Activity, error) {
	query := `
		INSERT INTO activities (user_id, resource_id, action_type, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, resource_id, action_type, description, ts`
	var a models.Activity
	err := r.DB.QueryRowContext(ctx, query, userID, resourceID, actionType, description).
		Scan(&a.ID, &a.UserID, &a.ResourceID, &a.ActionType, &a.Description, &a.Timestamp)
	return a, err
}

// ListRecent returns the latest activities, newest first, with the actor's
// display fields joined in a single query.
func (r *ActivityRepo) ListRecent(ctx context.Context, limit, offset int) ([]models.ActivityDetail, error) {
	query := `
		SELECT a.id, a.user_id, a.resource_id, a.action_type, a.description, a.ts,
		       u.full_name, u.email
		FROM activities a
		JOIN user_profiles u ON u.id = a.user_id
		ORDER BY a.ts DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []models.ActivityDetail
	for rows.Next() {
		var d models.ActivityDetail
		if err := rows.Scan(&d.ID, &d.UserID, &d.ResourceID, &d.ActionType, &d.Description, &d.Timestamp,
			&d.UserName, &d.UserEmail); err != nil {
			return nil, err
		}
		activities = append(activities, d)
	}
	return activities, rows.Err()
}
