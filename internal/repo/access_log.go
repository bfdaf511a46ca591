package repo

import (
	"context"
	"database/sql"

	"github.com/rfalmeida/facility-control/internal/models"
)

// AccessLogRepo appends to and reads the structured access trail. There is
// deliberately no update or delete here: the table is append-only.
type AccessLogRepo struct {
	DB *sql.DB
}

func NewAccessLogRepo(db *sql.DB) *AccessLogRepo {
	return &AccessLogRepo{DB: db}
}

// Insert appends one access log row with a server-assigned timestamp and
// returns the stored row. A foreign key violation (unknown user or area)
// comes back as the driver's error.
func (r *AccessLogRepo) Insert(ctx context.Context, userID, areaID int, action models.AccessAction, notes string) (models.AccessLog, error) {
	query := `
		INSERT INTO access_logs (user_id, area_id, action, notes)
		VALUES ($1, $2, $3, NULLIF($4, ''))
		RETURNING id, user_id, area_id, action, ts, COALESCE(notes, '')`
	var l models.AccessLog
	err := r.DB.QueryRowContext(ctx, query, userID, areaID, action, notes).
		Scan(&l.ID, &l.UserID, &l.AreaID, &l.Action, &l.Timestamp, &l.Notes)
	return l, err
}

// ListRecent returns the latest access logs, newest first, with actor and
// area display fields joined in a single query.
func (r *AccessLogRepo) ListRecent(ctx context.Context, limit, offset int) ([]models.AccessLogDetail, error) {
	query := `
		SELECT l.id, l.user_id, l.area_id, l.action, l.ts, COALESCE(l.notes, ''),
		       u.full_name, u.email, u.role, a.name
		FROM access_logs l
		JOIN user_profiles u ON u.id = l.user_id
		JOIN restricted_areas a ON a.id = l.area_id
		ORDER BY l.ts DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.AccessLogDetail
	for rows.Next() {
		var d models.AccessLogDetail
		if err := rows.Scan(&d.ID, &d.UserID, &d.AreaID, &d.Action, &d.Timestamp, &d.Notes,
			&d.UserName, &d.UserEmail, &d.UserRole, &d.AreaName); err != nil {
			return nil, err
		}
		logs = append(logs, d)
	}
	return logs, rows.Err()
}
