package domain

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"
)

const (
	InviteCodeLength   = 6
	inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Team представляет команду с менеджером, участниками и заявками на вступление.
type Team struct {
	ID             string
	Name           string
	Sport          string
	ManagerID      string
	Members        []string
	PendingMembers []string
	Activities     []string
	InviteCode     string
}

// MembershipState описывает отношение пользователя к команде.
type MembershipState int

const (
	NonMember MembershipState = iota
	Pending
	Member
)

// StateOf возвращает состояние членства пользователя в команде.
func (t *Team) StateOf(userID string) MembershipState {
	for _, id := range t.Members {
		if id == userID {
			return Member
		}
	}
	for _, id := range t.PendingMembers {
		if id == userID {
			return Pending
		}
	}
	return NonMember
}

// GenerateInviteCode генерирует случайный код приглашения из заглавных букв и цифр.
func GenerateInviteCode() (string, error) {
	max := big.NewInt(int64(len(inviteCodeAlphabet)))
	var sb strings.Builder
	sb.Grow(InviteCodeLength)
	for i := 0; i < InviteCodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(inviteCodeAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

// NormalizeInviteCode приводит введённый пользователем код к формату хранения.
func NormalizeInviteCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// TeamRepository определяет контракт для работы с хранилищем команд.
// Переходы членства выполняются атомарно на стороне хранилища.
type TeamRepository interface {
	// Create сохраняет команду вместе с менеджером в качестве единственного участника.
	Create(ctx context.Context, team *Team) error
	GetByID(ctx context.Context, teamID string) (*Team, error)
	GetByName(ctx context.Context, name string) (*Team, error)
	GetByInviteCode(ctx context.Context, code string) (*Team, error)
	GetByManager(ctx context.Context, managerID string) (*Team, error)
	GetByIDs(ctx context.Context, teamIDs []string) ([]*Team, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	ExistsByInviteCode(ctx context.Context, code string) (bool, error)
	List(ctx context.Context) ([]*Team, error)
	ListByMember(ctx context.Context, userID string) ([]*Team, error)
	UpdateDetails(ctx context.Context, teamID, name, sport string) error
	Delete(ctx context.Context, teamID string) error

	// AddPending переводит пользователя NonMember -> Pending.
	AddPending(ctx context.Context, teamID, userID string) error
	// ConfirmPending переводит Pending -> Member, иначе ErrUserNotPending.
	ConfirmPending(ctx context.Context, teamID, userID string) error
	// RemoveMembership переводит Pending|Member -> NonMember, иначе ErrUserNotInTeam.
	RemoveMembership(ctx context.Context, teamID, userID string) error
}
