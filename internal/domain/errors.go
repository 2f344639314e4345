package domain

import "errors"

// ErrorKind классифицирует доменные ошибки для транспортного слоя.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

// Domain errors (для бизнес-логики)
var (
	// Validation errors
	ErrInvalidUserID     = errors.New("invalid user id")
	ErrInvalidTeamID     = errors.New("invalid team id")
	ErrInvalidTeamName   = errors.New("invalid team name")
	ErrInvalidSport      = errors.New("invalid sport")
	ErrInvalidActivityID = errors.New("invalid activity id")
	ErrInvalidInviteCode = errors.New("invalid invite code")
	ErrInvalidAttendance = errors.New("attendance must be a boolean")
	ErrInvalidGuest      = errors.New("invalid guest entry")
	ErrDuplicateGuest    = errors.New("duplicate guest entry")
	ErrInvalidDate       = errors.New("invalid date")
	ErrSubjectRequired   = errors.New("subject is required")
	ErrUsernameRequired  = errors.New("username is required")
	ErrEmailRequired     = errors.New("email is required")
	ErrInvalidEmail      = errors.New("email address format incorrect")
	ErrPasswordRequired  = errors.New("password is required")

	// Membership errors
	ErrUserNotPending      = errors.New("user is not in the pending members list")
	ErrUserNotInTeam       = errors.New("user is not part of the team's members or pending members list")
	ErrCannotRemoveManager = errors.New("the manager cannot be removed from the team")
	ErrAlreadyMember       = errors.New("user is already a member of this team")

	// Not found errors
	ErrUserNotFound     = errors.New("user not found")
	ErrTeamNotFound     = errors.New("team not found")
	ErrActivityNotFound = errors.New("activity not found")
	ErrGuestNotFound    = errors.New("guest not found in activity")
	ErrNoTeamsForUser   = errors.New("no teams found for this user")

	// Conflict errors
	ErrTeamAlreadyExists = errors.New("a team with this name already exists")
	ErrUserAlreadyExists = errors.New("there is already an user with the same email or username")

	// Access errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("incorrect password")
	ErrForbidden          = errors.New("current user is not the manager of the team")
	ErrNotTeamMember      = errors.New("you are not a member or manager of this team")
	ErrNotProfileOwner    = errors.New("you can only update your own profile")

	// Store errors
	ErrInviteCodeTaken     = errors.New("invite code already taken")
	ErrInviteCodeExhausted = errors.New("could not generate a unique invite code")
)

var errorKinds = map[error]ErrorKind{
	ErrInvalidUserID:     KindBadRequest,
	ErrInvalidTeamID:     KindBadRequest,
	ErrInvalidTeamName:   KindBadRequest,
	ErrInvalidSport:      KindBadRequest,
	ErrInvalidActivityID: KindBadRequest,
	ErrInvalidInviteCode: KindBadRequest,
	ErrInvalidAttendance: KindBadRequest,
	ErrInvalidGuest:      KindBadRequest,
	ErrDuplicateGuest:    KindBadRequest,
	ErrInvalidDate:       KindBadRequest,
	ErrSubjectRequired:   KindBadRequest,
	ErrUsernameRequired:  KindBadRequest,
	ErrEmailRequired:     KindBadRequest,
	ErrInvalidEmail:      KindBadRequest,
	ErrPasswordRequired:  KindBadRequest,

	ErrUserNotPending:      KindBadRequest,
	ErrUserNotInTeam:       KindBadRequest,
	ErrCannotRemoveManager: KindBadRequest,
	ErrAlreadyMember:       KindConflict,

	ErrUserNotFound:     KindNotFound,
	ErrTeamNotFound:     KindNotFound,
	ErrActivityNotFound: KindNotFound,
	ErrGuestNotFound:    KindNotFound,
	ErrNoTeamsForUser:   KindNotFound,

	ErrTeamAlreadyExists: KindConflict,
	ErrUserAlreadyExists: KindConflict,

	ErrUnauthorized:       KindUnauthorized,
	ErrInvalidCredentials: KindUnauthorized,
	ErrForbidden:          KindForbidden,
	ErrNotTeamMember:      KindForbidden,
	ErrNotProfileOwner:    KindForbidden,
}

// KindOf возвращает категорию ошибки; всё неизвестное считается внутренней ошибкой.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindInternal
	}
	for sentinel, kind := range errorKinds {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return KindInternal
}
