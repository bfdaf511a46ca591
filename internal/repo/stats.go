package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/rfalmeida/facility-control/internal/models"
)

// StatsRepo holds the read-only aggregation queries behind the dashboard
// and security pages. Every method is side-effect free and independent of
// the others; callers decide how to combine them and how to degrade when
// one fails.
type StatsRepo struct {
	DB *sql.DB
}

func NewStatsRepo(db *sql.DB) *StatsRepo {
	return &StatsRepo{DB: db}
}

// LocalMidnight returns the start of t's day in t's location. "Today's"
// counts are everything at or after this instant.
func LocalMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// CountResources returns the number of resources, optionally filtered by
// status ("" means all).
func (r *StatsRepo) CountResources(ctx context.Context, status models.ResourceStatus) (int, error) {
	var n int
	var err error
	if status == "" {
		err = r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM resources`).Scan(&n)
	} else {
		err = r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM resources WHERE status = $1`, status).Scan(&n)
	}
	return n, err
}

// CountResourcesByType returns per-type counts in one GROUP BY query.
// Types with no rows are present in the result with a zero count, so the
// per-type counts always sum to the total.
func (r *StatsRepo) CountResourcesByType(ctx context.Context) (map[models.ResourceType]int, error) {
	counts := make(map[models.ResourceType]int, len(models.ResourceTypes))
	for _, t := range models.ResourceTypes {
		counts[t] = 0
	}
	rows, err := r.DB.QueryContext(ctx, `SELECT type, COUNT(*) FROM resources GROUP BY type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var t models.ResourceType
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, err
		}
		counts[t] = n
	}
	return counts, rows.Err()
}

// CountUsers returns the number of user profiles.
func (r *StatsRepo) CountUsers(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_profiles`).Scan(&n)
	return n, err
}

// CountActiveAreas returns the number of areas currently accepting entries.
func (r *StatsRepo) CountActiveAreas(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM restricted_areas WHERE is_active = true`).Scan(&n)
	return n, err
}

// CountAccessLogsSince counts access logs with ts >= since, optionally
// filtered by action ("" means all actions).
func (r *StatsRepo) CountAccessLogsSince(ctx context.Context, since time.Time, action models.AccessAction) (int, error) {
	var n int
	var err error
	if action == "" {
		err = r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM access_logs WHERE ts >= $1`, since).Scan(&n)
	} else {
		err = r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM access_logs WHERE ts >= $1 AND action = $2`, since, action).Scan(&n)
	}
	return n, err
}

// CountAccessLogsBetween counts access logs with from <= ts < to,
// optionally filtered by action. Used by the daily summary job.
func (r *StatsRepo) CountAccessLogsBetween(ctx context.Context, from, to time.Time, action models.AccessAction) (int, error) {
	var n int
	var err error
	if action == "" {
		err = r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM access_logs WHERE ts >= $1 AND ts < $2`, from, to).Scan(&n)
	} else {
		err = r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM access_logs WHERE ts >= $1 AND ts < $2 AND action = $3`, from, to, action).Scan(&n)
	}
	return n, err
}
