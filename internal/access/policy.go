// Package access implements the entry authorization policy for restricted
// areas and the append-only recording of access decisions and audit
// activities.
package access

import "github.com/rfalmeida/facility-control/internal/models"

// Reason explains a denial. Granted decisions carry ReasonOK.
type Reason string

const (
	ReasonOK               Reason = "ok"
	ReasonAreaInactive     Reason = "area_inactive"
	ReasonInsufficientRole Reason = "insufficient_role"
)

// Decision is the outcome of evaluating a user against an area. Action is
// the access log action the decision maps to: entry when granted, denied
// otherwise.
type Decision struct {
	Granted bool                `json:"granted"`
	Action  models.AccessAction `json:"action"`
	Reason  Reason              `json:"reason"`
}

// Evaluate decides whether user may enter area. Pure function of its
// inputs: an inactive area denies every role, otherwise entry is granted
// exactly when the user's role ranks at or above the area's required
// level. Exit events are user-declared and never pass through here.
func Evaluate(user *models.UserProfile, area models.RestrictedArea) Decision {
	if !area.IsActive {
		return Decision{Granted: false, Action: models.ActionDenied, Reason: ReasonAreaInactive}
	}
	if !user.Role.AtLeast(area.RequiredAccessLevel) {
		return Decision{Granted: false, Action: models.ActionDenied, Reason: ReasonInsufficientRole}
	}
	return Decision{Granted: true, Action: models.ActionEntry, Reason: ReasonOK}
}
