package domain

import (
	"context"
	"strings"
	"time"
)

// ActivityType классифицирует активность команды.
type ActivityType int

const (
	ActivityOther ActivityType = iota
	ActivityTraining
	ActivityGame
)

func (t ActivityType) String() string {
	switch t {
	case ActivityTraining:
		return "Training"
	case ActivityGame:
		return "Game"
	default:
		return "Other"
	}
}

// ParseActivityType распознаёт тип активности без учёта регистра.
// Любое нераспознанное значение, включая пустую строку, становится ActivityOther.
func ParseActivityType(s string) ActivityType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "training":
		return ActivityTraining
	case "game":
		return ActivityGame
	default:
		return ActivityOther
	}
}

// Guest - участник активности и отметка о его присутствии.
type Guest struct {
	UserID     string
	Attendance bool
}

// Activity представляет тренировку, игру или другое событие команды.
type Activity struct {
	ID             string
	Subject        string
	Type           ActivityType
	HostingTeamID  string
	OpponentTeamID string
	Date           time.Time
	Location       string
	Guests         []Guest
}

// IsSelfHosted сообщает, что у активности нет отдельного соперника.
func (a *Activity) IsSelfHosted() bool {
	return a.OpponentTeamID == "" || a.OpponentTeamID == a.HostingTeamID
}

// GuestIndex возвращает позицию гостя в списке или -1.
func (a *Activity) GuestIndex(userID string) int {
	for i, g := range a.Guests {
		if g.UserID == userID {
			return i
		}
	}
	return -1
}

// ParseActivityDate принимает дату в формате RFC3339 или YYYY-MM-DD.
func ParseActivityDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t.UTC(), nil
}

// ActivityRepository определяет контракт для работы с хранилищем активностей.
type ActivityRepository interface {
	// Create сохраняет активность и добавляет её в список принимающей команды
	// и, если она отличается, команды соперника.
	Create(ctx context.Context, activity *Activity) error
	GetByID(ctx context.Context, activityID string) (*Activity, error)
	// GetByIDs возвращает активности в порядке переданных ID, отсутствующие пропускаются.
	GetByIDs(ctx context.Context, activityIDs []string) ([]*Activity, error)
	// Update перезаписывает поля и список гостей; при смене соперника
	// переносит ссылку из списка previousOpponentID в список нового соперника.
	Update(ctx context.Context, activity *Activity, previousOpponentID string) error
	// Link добавляет активность в список команды; повторная привязка ничего не меняет.
	Link(ctx context.Context, activityID, teamID string) error
	// SetAttendance меняет отметку одного гостя, иначе ErrGuestNotFound.
	SetAttendance(ctx context.Context, activityID, userID string, attendance bool) error
	// Delete убирает активность из списков обеих команд и удаляет её.
	Delete(ctx context.Context, activity *Activity) error
}
