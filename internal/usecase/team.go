package usecase

import (
	"context"
	"errors"
	"time"

	"team-roster-service/internal/domain"
)

// inviteCodeAttempts ограничивает цикл генерации уникального кода приглашения.
const inviteCodeAttempts = 10

// TeamUseCase реализует бизнес-логику команд и переходов членства.
type TeamUseCase struct {
	teamRepo  domain.TeamRepository
	userRepo  domain.UserRepository
	publisher domain.EventPublisher
	projector *projector
}

// NewTeamUseCase создает новый экземпляр TeamUseCase.
func NewTeamUseCase(
	teamRepo domain.TeamRepository,
	userRepo domain.UserRepository,
	activityRepo domain.ActivityRepository,
	publisher domain.EventPublisher,
) domain.TeamUseCase {
	return &TeamUseCase{
		teamRepo:  teamRepo,
		userRepo:  userRepo,
		publisher: publisher,
		projector: newProjector(userRepo, teamRepo, activityRepo),
	}
}

// CreateTeam создает команду; вызывающий становится менеджером и единственным участником.
func (uc *TeamUseCase) CreateTeam(ctx context.Context, callerID, name, sport string) (*domain.TeamView, error) {
	if callerID == "" {
		return nil, domain.ErrUnauthorized
	}

	name = domain.CanonicalName(name)
	if name == "" {
		return nil, domain.ErrInvalidTeamName
	}
	sport = domain.CanonicalName(sport)
	if sport == "" {
		return nil, domain.ErrInvalidSport
	}

	exists, err := uc.teamRepo.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrTeamAlreadyExists
	}

	if _, err := uc.userRepo.GetByID(ctx, callerID); err != nil {
		return nil, err
	}

	team := &domain.Team{
		ID:             domain.NewID(),
		Name:           name,
		Sport:          sport,
		ManagerID:      callerID,
		Members:        []string{callerID},
		PendingMembers: []string{},
		Activities:     []string{},
	}

	// Генерация с проверкой без резервирования: уникальный индекс хранилища
	// отсекает гонку двух одновременных созданий, тогда пробуем снова.
	for attempt := 0; attempt < inviteCodeAttempts; attempt++ {
		code, err := domain.GenerateInviteCode()
		if err != nil {
			return nil, err
		}

		taken, err := uc.teamRepo.ExistsByInviteCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if taken {
			continue
		}

		team.InviteCode = code
		err = uc.teamRepo.Create(ctx, team)
		if errors.Is(err, domain.ErrInviteCodeTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}

		uc.publish(ctx, domain.EventTeamCreated, callerID, team.ID, "")
		return uc.projector.team(ctx, team)
	}

	return nil, domain.ErrInviteCodeExhausted
}

// GetTeam возвращает команду по названию.
func (uc *TeamUseCase) GetTeam(ctx context.Context, name string) (*domain.TeamView, error) {
	name = domain.CanonicalName(name)
	if name == "" {
		return nil, domain.ErrInvalidTeamName
	}

	team, err := uc.teamRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return uc.projector.team(ctx, team)
}

// ListTeams возвращает все команды.
func (uc *TeamUseCase) ListTeams(ctx context.Context) ([]*domain.TeamView, error) {
	teams, err := uc.teamRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return uc.projector.teams(ctx, teams)
}

// ListTeamsByUser возвращает команды, в которых пользователь является участником.
func (uc *TeamUseCase) ListTeamsByUser(ctx context.Context, userID string) ([]*domain.TeamView, error) {
	if !domain.ValidID(userID) {
		return nil, domain.ErrInvalidUserID
	}

	teams, err := uc.teamRepo.ListByMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, domain.ErrNoTeamsForUser
	}
	return uc.projector.teams(ctx, teams)
}

// GetTeamByManager возвращает команду, которой управляет вызывающий.
func (uc *TeamUseCase) GetTeamByManager(ctx context.Context, callerID string) (*domain.TeamView, error) {
	if callerID == "" {
		return nil, domain.ErrUnauthorized
	}

	team, err := uc.teamRepo.GetByManager(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return uc.projector.team(ctx, team)
}

// UpdateTeam меняет название и вид спорта. Код приглашения не меняется никогда.
func (uc *TeamUseCase) UpdateTeam(ctx context.Context, callerID, teamID string, input domain.UpdateTeamInput) (*domain.TeamView, error) {
	if !domain.ValidID(teamID) {
		return nil, domain.ErrInvalidTeamID
	}

	team, err := uc.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !domain.RequireManager(team, callerID) {
		return nil, domain.ErrForbidden
	}

	name, sport := team.Name, team.Sport
	if input.Name != nil {
		if candidate := domain.CanonicalName(*input.Name); candidate != "" && candidate != team.Name {
			exists, err := uc.teamRepo.ExistsByName(ctx, candidate)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, domain.ErrTeamAlreadyExists
			}
			name = candidate
		}
	}
	if input.Sport != nil {
		if candidate := domain.CanonicalName(*input.Sport); candidate != "" {
			sport = candidate
		}
	}

	if name != team.Name || sport != team.Sport {
		if err := uc.teamRepo.UpdateDetails(ctx, team.ID, name, sport); err != nil {
			return nil, err
		}
		uc.publish(ctx, domain.EventTeamUpdated, callerID, team.ID, "")
	}

	return uc.reload(ctx, team.ID)
}

// DeleteTeam удаляет команду. Активности, ссылающиеся на неё, не удаляются.
func (uc *TeamUseCase) DeleteTeam(ctx context.Context, callerID, teamName string) error {
	team, err := uc.managedTeam(ctx, callerID, teamName)
	if err != nil {
		return err
	}

	if err := uc.teamRepo.Delete(ctx, team.ID); err != nil {
		return err
	}

	uc.publish(ctx, domain.EventTeamDeleted, callerID, team.ID, "")
	return nil
}

// RequestJoin добавляет пользователя в список ожидающих по коду приглашения.
// Авторизация менеджера не требуется.
func (uc *TeamUseCase) RequestJoin(ctx context.Context, userID, inviteCode string) (*domain.TeamView, error) {
	if !domain.ValidID(userID) {
		return nil, domain.ErrInvalidUserID
	}
	code := domain.NormalizeInviteCode(inviteCode)
	if code == "" {
		return nil, domain.ErrInvalidInviteCode
	}

	team, err := uc.teamRepo.GetByInviteCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	switch team.StateOf(userID) {
	case domain.Member:
		return nil, domain.ErrAlreadyMember
	case domain.Pending:
		return uc.projector.team(ctx, team)
	}

	if err := uc.teamRepo.AddPending(ctx, team.ID, userID); err != nil {
		return nil, err
	}

	uc.publish(ctx, domain.EventMemberRequested, userID, team.ID, userID)
	return uc.reload(ctx, team.ID)
}

// ConfirmMember переводит пользователя из ожидающих в участники.
func (uc *TeamUseCase) ConfirmMember(ctx context.Context, callerID, teamName, userID string) (*domain.TeamView, error) {
	team, err := uc.managedTeam(ctx, callerID, teamName)
	if err != nil {
		return nil, err
	}
	if !domain.ValidID(userID) {
		return nil, domain.ErrInvalidUserID
	}
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	if err := uc.teamRepo.ConfirmPending(ctx, team.ID, userID); err != nil {
		return nil, err
	}

	uc.publish(ctx, domain.EventMemberConfirmed, callerID, team.ID, userID)
	return uc.reload(ctx, team.ID)
}

// RemoveMember удаляет пользователя из участников или ожидающих.
// Менеджера удалить нельзя: передача управления не поддерживается.
func (uc *TeamUseCase) RemoveMember(ctx context.Context, callerID, teamName, userID string) (*domain.TeamView, error) {
	team, err := uc.managedTeam(ctx, callerID, teamName)
	if err != nil {
		return nil, err
	}
	if !domain.ValidID(userID) {
		return nil, domain.ErrInvalidUserID
	}
	if userID == team.ManagerID {
		return nil, domain.ErrCannotRemoveManager
	}
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	if err := uc.teamRepo.RemoveMembership(ctx, team.ID, userID); err != nil {
		return nil, err
	}

	uc.publish(ctx, domain.EventMemberRemoved, callerID, team.ID, userID)
	return uc.reload(ctx, team.ID)
}

// managedTeam находит команду по названию и проверяет, что вызывающий - её менеджер.
func (uc *TeamUseCase) managedTeam(ctx context.Context, callerID, teamName string) (*domain.Team, error) {
	if callerID == "" {
		return nil, domain.ErrUnauthorized
	}
	name := domain.CanonicalName(teamName)
	if name == "" {
		return nil, domain.ErrInvalidTeamName
	}

	team, err := uc.teamRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if !domain.RequireManager(team, callerID) {
		return nil, domain.ErrForbidden
	}
	return team, nil
}

func (uc *TeamUseCase) reload(ctx context.Context, teamID string) (*domain.TeamView, error) {
	team, err := uc.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return uc.projector.team(ctx, team)
}

func (uc *TeamUseCase) publish(ctx context.Context, eventType domain.EventType, actorID, teamID, userID string) {
	uc.publisher.Publish(ctx, domain.Event{
		Type:       eventType,
		ActorID:    actorID,
		TeamID:     teamID,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
	})
}
