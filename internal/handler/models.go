package handler

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Запросы

type CreateTeamRequest struct {
	Name  string `json:"name"`
	Sport string `json:"sport"`
}

type UpdateTeamRequest struct {
	Name  *string `json:"name"`
	Sport *string `json:"sport"`
}

type DeleteTeamRequest struct {
	Name string `json:"name"`
}

type JoinTeamRequest struct {
	UserID     string `json:"userId"`
	InviteCode string `json:"inviteCode"`
}

type TeamMemberRequest struct {
	TeamName string `json:"teamName"`
	UserID   string `json:"userId"`
}

type CreateActivityRequest struct {
	Team         string `json:"team"`
	Opponent     string `json:"opponent"`
	Subject      string `json:"subject"`
	ActivityType string `json:"activityType"`
	Date         string `json:"date"`
	Location     string `json:"location"`
}

type GuestRequest struct {
	ID         string `json:"_id"`
	Attendance *bool  `json:"attendance"`
}

type UpdateActivityRequest struct {
	Team         string         `json:"team"`
	ActivityID   string         `json:"activity"`
	Opponent     *string        `json:"opponent"`
	Subject      *string        `json:"subject"`
	ActivityType *string        `json:"activityType"`
	Date         *string        `json:"date"`
	Location     *string        `json:"location"`
	Guests       []GuestRequest `json:"listOfGuests"`
}

type AttendanceRequest struct {
	ActivityID  string `json:"activityId"`
	GuestUserID string `json:"guestUserId"`
	Attendance  *bool  `json:"attendance"`
}

// TeamActivityRequest адресует активность в списке команды (удаление, привязка).
type TeamActivityRequest struct {
	Team       string `json:"team"`
	ActivityID string `json:"activity"`
}

type RegisterRequest struct {
	Username   string              `json:"username"`
	Firstname  string              `json:"firstname"`
	Lastname   string              `json:"lastname"`
	Email      openapi_types.Email `json:"email"`
	Password   string              `json:"password"`
	Avatar     string              `json:"avatar"`
	InviteCode string              `json:"inviteCode"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UpdateUserRequest struct {
	Username  *string              `json:"username"`
	Firstname *string              `json:"firstname"`
	Lastname  *string              `json:"lastname"`
	Email     *openapi_types.Email `json:"email"`
	Password  *string              `json:"password"`
	Avatar    *string              `json:"avatar"`
}

// Ответы

type ErrorResponse struct {
	Error string `json:"error"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email,omitempty"`
	Avatar    string `json:"avatar"`
}

type TeamRefResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type GuestResponse struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Firstname  string `json:"firstname"`
	Lastname   string `json:"lastname"`
	Avatar     string `json:"avatar"`
	Attendance bool   `json:"attendance"`
}

type ActivityResponse struct {
	ID           string          `json:"id"`
	Subject      string          `json:"subject"`
	ActivityType string          `json:"activityType"`
	HostingTeam  TeamRefResponse `json:"hostingTeam"`
	Opponent     TeamRefResponse `json:"opponent"`
	Date         *time.Time      `json:"date"`
	Location     string          `json:"location"`
	Guests       []GuestResponse `json:"guests"`
}

type TeamResponse struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Sport          string             `json:"sport"`
	Manager        UserResponse       `json:"manager"`
	Members        []UserResponse     `json:"members"`
	PendingMembers []UserResponse     `json:"pendingMembers"`
	Activities     []ActivityResponse `json:"activities"`
	InviteCode     string             `json:"inviteCode"`
}

type LoginResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expiresIn"`
}
