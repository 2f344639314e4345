package database

import "database/sql"

const (
	MembershipPending = "pending"
	MembershipMember  = "member"
)

type User struct {
	ID           string
	Username     string
	Firstname    string
	Lastname     string
	Email        string
	PasswordHash string
	Avatar       string
}

type Team struct {
	ID         string
	Name       string
	Sport      string
	ManagerID  string
	InviteCode string
}

type TeamMembership struct {
	TeamID string
	UserID string
	State  string
}

type TeamActivity struct {
	TeamID     string
	ActivityID string
}

type Activity struct {
	ID             string
	Subject        string
	ActivityType   string
	HostingTeamID  string
	OpponentTeamID string
	Date           sql.NullTime
	Location       string
}

type ActivityGuest struct {
	ActivityID string
	UserID     string
	Attendance bool
	Position   int32
}
