package models

import "time"

// AccessAction is the kind of event recorded in the access log.
type AccessAction string

const (
	ActionEntry  AccessAction = "entry"
	ActionExit   AccessAction = "exit"
	ActionDenied AccessAction = "denied"
)

func (a AccessAction) Valid() bool {
	switch a {
	case ActionEntry, ActionExit, ActionDenied:
		return true
	}
	return false
}

// AccessLog is one append-only row in the structured access trail. Rows are
// never updated or deleted.
type AccessLog struct {
	ID        int          `json:"id"`
	UserID    int          `json:"user_id"`
	AreaID    int          `json:"area_id"`
	Action    AccessAction `json:"action"`
	Timestamp time.Time    `json:"timestamp"`
	Notes     string       `json:"notes,omitempty"`
}

// AccessLogDetail is an access log row with display fields joined from the
// related user profile and area, for list views.
type AccessLogDetail struct {
	AccessLog
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
	UserRole  Role   `json:"user_role"`
	AreaName  string `json:"area_name"`
}
