package domain

import "time"

// UserProfile - публичные поля пользователя для ответов API.
type UserProfile struct {
	ID        string
	Username  string
	Firstname string
	Lastname  string
	Email     string
	Avatar    string
}

// ToProfile отбрасывает приватные поля пользователя.
func (u *User) ToProfile() UserProfile {
	return UserProfile{
		ID:        u.ID,
		Username:  u.Username,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Email:     u.Email,
		Avatar:    u.Avatar,
	}
}

// TeamRef - ссылка на команду с её названием.
type TeamRef struct {
	ID   string
	Name string
}

// GuestView - гость активности с профилем.
type GuestView struct {
	UserProfile
	Attendance bool
}

// ActivityView - активность с раскрытыми ссылками на команды и гостей.
type ActivityView struct {
	ID          string
	Subject     string
	Type        ActivityType
	HostingTeam TeamRef
	Opponent    TeamRef
	Date        time.Time
	Location    string
	Guests      []GuestView
}

// TeamView - команда с раскрытыми профилями и активностями.
type TeamView struct {
	ID             string
	Name           string
	Sport          string
	Manager        UserProfile
	Members        []UserProfile
	PendingMembers []UserProfile
	Activities     []*ActivityView
	InviteCode     string
}
