package models

import "time"

// Activity action type tags used by the built-in operations. The column is
// free-form so new tags can appear without a migration.
const (
	ActivityCreateResource = "create_resource"
	ActivityUpdateResource = "update_resource"
	ActivityDeleteResource = "delete_resource"
	ActivityAccessGranted  = "access_granted"
	ActivityAccessDenied   = "access_denied"
	ActivityCreateArea     = "create_area"
	ActivityUpdateArea     = "update_area"
	ActivityDeleteArea     = "delete_area"
	ActivityCreateUser     = "create_user"
	ActivityUpdateUser     = "update_user"
	ActivityDailySummary   = "daily_summary"
)

// Activity is one append-only row in the free-text audit trail. It always
// names the acting user and optionally the resource it concerns.
type Activity struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	ResourceID  *int      `json:"resource_id,omitempty"`
	ActionType  string    `json:"action_type"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// ActivityDetail is an activity row with the actor's display fields joined
// from user_profiles.
type ActivityDetail struct {
	Activity
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}
