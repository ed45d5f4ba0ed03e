package repository

import "time"

// Role is a team membership role
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleMember Role = "MEMBER"
)

// Team groups activities; ownership of an activity is checked through the
// caller's OWNER membership of its team.
type Team struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// TeamMembership links a user to a team
type TeamMembership struct {
	TeamID    string
	UserID    string
	Role      Role
	CreatedAt time.Time
}

// Activity row
type Activity struct {
	ID               string
	Name             string
	Description      *string
	UserID           string
	TeamID           string
	SourceActivityID *string
	CompletedAt      *time.Time
	DeletedAt        *time.Time
	CreatedAt        time.Time
}

// Task row. Durations are persisted in milliseconds.
type Task struct {
	ID          string
	ActivityID  string
	Name        string
	DurationMs  int64
	Position    int
	CompletedAt *time.Time
	DeletedAt   *time.Time
	CreatedAt   time.Time
}

// TimeEntry row. A nil StoppedAt marks the entry as open.
type TimeEntry struct {
	ID        string
	TaskID    string
	StartedAt time.Time
	StoppedAt *time.Time
}

// ActivityFilter narrows ListOwnedActivities. A nil Completed lists both.
type ActivityFilter struct {
	Completed *bool
}

// SourceCount is a template activity together with how many live activities
// were cloned from it.
type SourceCount struct {
	Activity Activity
	Clones   int
}
