package domain

import "context"

// UpdateTeamInput - изменяемые поля команды; nil означает "без изменений".
type UpdateTeamInput struct {
	Name  *string
	Sport *string
}

// CreateActivityInput - данные для создания активности.
type CreateActivityInput struct {
	Team         string
	Opponent     string
	Subject      string
	ActivityType string
	Date         string
	Location     string
}

// GuestInput - запись списка гостей, пришедшая от клиента.
type GuestInput struct {
	UserID     string
	Attendance *bool
}

// UpdateActivityInput - изменяемые поля активности; nil означает "без изменений".
// Guests == nil оставляет список гостей как есть, пустой срез очищает его.
type UpdateActivityInput struct {
	Team         string
	ActivityID   string
	Opponent     *string
	Subject      *string
	ActivityType *string
	Date         *string
	Location     *string
	Guests       []GuestInput
}

// RegisterInput - данные регистрации пользователя.
type RegisterInput struct {
	Username   string
	Firstname  string
	Lastname   string
	Email      string
	Password   string
	Avatar     string
	InviteCode string
}

// UpdateUserInput - изменяемые поля профиля.
type UpdateUserInput struct {
	Username  *string
	Firstname *string
	Lastname  *string
	Email     *string
	Password  *string
	Avatar    *string
}

// LoginResult - результат успешного входа.
type LoginResult struct {
	User  UserProfile
	Token string
}

// TeamUseCase определяет бизнес-логику управления командами и членством.
type TeamUseCase interface {
	CreateTeam(ctx context.Context, callerID, name, sport string) (*TeamView, error)
	GetTeam(ctx context.Context, name string) (*TeamView, error)
	ListTeams(ctx context.Context) ([]*TeamView, error)
	ListTeamsByUser(ctx context.Context, userID string) ([]*TeamView, error)
	GetTeamByManager(ctx context.Context, callerID string) (*TeamView, error)
	UpdateTeam(ctx context.Context, callerID, teamID string, input UpdateTeamInput) (*TeamView, error)
	DeleteTeam(ctx context.Context, callerID, teamName string) error
	RequestJoin(ctx context.Context, userID, inviteCode string) (*TeamView, error)
	ConfirmMember(ctx context.Context, callerID, teamName, userID string) (*TeamView, error)
	RemoveMember(ctx context.Context, callerID, teamName, userID string) (*TeamView, error)
}

// ActivityUseCase определяет бизнес-логику активностей и посещаемости.
type ActivityUseCase interface {
	CreateActivity(ctx context.Context, callerID string, input CreateActivityInput) ([]*ActivityView, error)
	ListActivities(ctx context.Context, callerID, teamName string) ([]*ActivityView, error)
	AddActivity(ctx context.Context, callerID, teamName, activityID string) ([]*ActivityView, error)
	UpdateActivity(ctx context.Context, callerID string, input UpdateActivityInput) ([]*ActivityView, error)
	SetAttendance(ctx context.Context, callerID, activityID, userID string, attendance *bool) (*ActivityView, error)
	DeleteActivity(ctx context.Context, callerID, teamName, activityID string) error
}

// UserUseCase определяет бизнес-логику пользователей.
type UserUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*UserProfile, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	GetUsers(ctx context.Context) ([]UserProfile, error)
	GetUser(ctx context.Context, username string) (*UserProfile, error)
	UpdateUser(ctx context.Context, callerID, username string, input UpdateUserInput) (*UserProfile, error)
}
