package access

import (
	"context"
	"fmt"

	"github.com/rfalmeida/facility-control/internal/metrics"
	"github.com/rfalmeida/facility-control/internal/models"
	"github.com/rfalmeida/facility-control/internal/repo"
)

// Recorder evaluates access attempts and persists the outcome. Every
// evaluated attempt produces exactly one access log row (entry or denied)
// and one best-effort activity row; the access log insert is the primary
// mutation and its failure propagates to the caller.
type Recorder struct {
	Logs    *repo.AccessLogRepo
	Auditor *Auditor
}

func NewRecorder(logs *repo.AccessLogRepo, auditor *Auditor) *Recorder {
	return &Recorder{Logs: logs, Auditor: auditor}
}

// Attempt evaluates user against area and records the decision. The
// returned error is only for the access log insert; the decision itself is
// a normal outcome either way.
func (r *Recorder) Attempt(ctx context.Context, user *models.UserProfile, area models.RestrictedArea, notes string) (Decision, models.AccessLog, error) {
	decision := Evaluate(user, area)

	logRow, err := r.Logs.Insert(ctx, user.ID, area.ID, decision.Action, notes)
	if err != nil {
		return decision, models.AccessLog{}, fmt.Errorf("record access %s: %w", decision.Action, err)
	}
	metrics.IncAccessDecision(string(decision.Action))

	actionType := models.ActivityAccessGranted
	description := fmt.Sprintf("%s entered area %q", user.FullName, area.Name)
	if !decision.Granted {
		actionType = models.ActivityAccessDenied
		description = fmt.Sprintf("%s was denied entry to area %q (%s)", user.FullName, area.Name, decision.Reason)
	}
	r.Auditor.Record(ctx, user.ID, actionType, description, nil)

	return decision, logRow, nil
}

// Exit records a user-declared exit from an area. Exits are not subject to
// policy evaluation, so only the access log row is written.
func (r *Recorder) Exit(ctx context.Context, user *models.UserProfile, area models.RestrictedArea, notes string) (models.AccessLog, error) {
	logRow, err := r.Logs.Insert(ctx, user.ID, area.ID, models.ActionExit, notes)
	if err != nil {
		return models.AccessLog{}, fmt.Errorf("record access exit: %w", err)
	}
	metrics.IncAccessDecision(string(models.ActionExit))
	return logRow, nil
}
