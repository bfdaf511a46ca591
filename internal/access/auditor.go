package access

import (
	"context"
	"log/slog"

	"github.com/rfalmeida/facility-control/internal/metrics"
	"github.com/rfalmeida/facility-control/internal/repo"
)

// Auditor writes the free-text activity trail on behalf of every mutating
// operation. Writes are best-effort: a failed audit insert is logged and
// counted but never fails or rolls back the mutation it describes.
type Auditor struct {
	Activities *repo.ActivityRepo
	Logger     *slog.Logger
}

func NewAuditor(activities *repo.ActivityRepo, logger *slog.Logger) *Auditor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Auditor{Activities: activities, Logger: logger}
}

// Record appends one activity row. resourceID may be nil for events not
// tied to a catalog resource.
func (a *Auditor) Record(ctx context.Context, actorID int, actionType, description string, resourceID *int) {
	if _, err := a.Activities.Log(ctx, actorID, resourceID, actionType, description); err != nil {
		metrics.IncAuditWriteFailure()
		a.Logger.Warn("activity write failed",
			"actor_id", actorID,
			"action_type", actionType,
			"error", err)
	}
}
