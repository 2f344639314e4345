package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"team-roster-service/internal/database"
	"team-roster-service/internal/domain"
)

const (
	teamNameConstraint       = "teams_name_key"
	teamInviteCodeConstraint = "teams_invite_code_key"
)

// TeamRepository реализует взаимодействие с данными команд в PostgreSQL.
type TeamRepository struct {
	db      *sql.DB
	queries *database.Queries
}

// NewTeamRepository создает новый экземпляр TeamRepository.
func NewTeamRepository(db *sql.DB, queries *database.Queries) domain.TeamRepository {
	return &TeamRepository{
		db:      db,
		queries: queries,
	}
}

// Create создает команду и записывает менеджера первым участником.
func (r *TeamRepository) Create(ctx context.Context, team *domain.Team) error {
	err := inTx(ctx, r.db, r.queries, func(q *database.Queries) error {
		// 1. Создаем команду
		err := q.CreateTeam(ctx, database.CreateTeamParams{
			ID:         team.ID,
			Name:       team.Name,
			Sport:      team.Sport,
			ManagerID:  team.ManagerID,
			InviteCode: team.InviteCode,
		})
		if err != nil {
			return err
		}

		// 2. Менеджер - участник с момента создания
		_, err = q.AddMembership(ctx, database.AddMembershipParams{
			TeamID: team.ID,
			UserID: team.ManagerID,
			State:  database.MembershipMember,
		})
		return err
	})

	if constraint, ok := uniqueConstraint(err); ok {
		switch constraint {
		case teamInviteCodeConstraint:
			return domain.ErrInviteCodeTaken
		default:
			return domain.ErrTeamAlreadyExists
		}
	}
	if isForeignKeyViolation(err) {
		return domain.ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

// GetByID возвращает команду по ID.
func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (*domain.Team, error) {
	dbTeam, err := r.queries.GetTeamByID(ctx, teamID)
	return r.single(ctx, dbTeam, err)
}

// GetByName возвращает команду по названию.
func (r *TeamRepository) GetByName(ctx context.Context, name string) (*domain.Team, error) {
	dbTeam, err := r.queries.GetTeamByName(ctx, name)
	return r.single(ctx, dbTeam, err)
}

// GetByInviteCode возвращает команду по коду приглашения.
func (r *TeamRepository) GetByInviteCode(ctx context.Context, code string) (*domain.Team, error) {
	dbTeam, err := r.queries.GetTeamByInviteCode(ctx, code)
	return r.single(ctx, dbTeam, err)
}

// GetByManager возвращает первую созданную команду менеджера.
func (r *TeamRepository) GetByManager(ctx context.Context, managerID string) (*domain.Team, error) {
	dbTeam, err := r.queries.GetTeamByManager(ctx, managerID)
	return r.single(ctx, dbTeam, err)
}

// GetByIDs возвращает команды в порядке переданных ID.
func (r *TeamRepository) GetByIDs(ctx context.Context, teamIDs []string) ([]*domain.Team, error) {
	if len(teamIDs) == 0 {
		return []*domain.Team{}, nil
	}

	dbTeams, err := r.queries.GetTeamsByIDs(ctx, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get teams by ids: %w", err)
	}
	teams, err := r.hydrate(ctx, dbTeams)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Team, len(teams))
	for _, team := range teams {
		byID[team.ID] = team
	}

	ordered := make([]*domain.Team, 0, len(teamIDs))
	for _, id := range teamIDs {
		if team, ok := byID[id]; ok {
			ordered = append(ordered, team)
		}
	}
	return ordered, nil
}

// ExistsByName проверяет существование команды с таким названием.
func (r *TeamRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	exists, err := r.queries.TeamExistsByName(ctx, name)
	if err != nil {
		return false, fmt.Errorf("failed to check team existence: %w", err)
	}
	return exists, nil
}

// ExistsByInviteCode проверяет, занят ли код приглашения.
func (r *TeamRepository) ExistsByInviteCode(ctx context.Context, code string) (bool, error) {
	exists, err := r.queries.TeamExistsByInviteCode(ctx, code)
	if err != nil {
		return false, fmt.Errorf("failed to check invite code: %w", err)
	}
	return exists, nil
}

// List возвращает все команды.
func (r *TeamRepository) List(ctx context.Context) ([]*domain.Team, error) {
	dbTeams, err := r.queries.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return r.hydrate(ctx, dbTeams)
}

// ListByMember возвращает команды, где пользователь является участником.
func (r *TeamRepository) ListByMember(ctx context.Context, userID string) ([]*domain.Team, error) {
	dbTeams, err := r.queries.ListTeamsByMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams by member: %w", err)
	}
	return r.hydrate(ctx, dbTeams)
}

// UpdateDetails меняет название и вид спорта.
func (r *TeamRepository) UpdateDetails(ctx context.Context, teamID, name, sport string) error {
	rows, err := r.queries.UpdateTeamDetails(ctx, teamID, name, sport)
	if constraint, ok := uniqueConstraint(err); ok && constraint == teamNameConstraint {
		return domain.ErrTeamAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("failed to update team: %w", err)
	}
	if rows == 0 {
		return domain.ErrTeamNotFound
	}
	return nil
}

// Delete удаляет команду вместе с её членством и ссылками на активности.
func (r *TeamRepository) Delete(ctx context.Context, teamID string) error {
	rows, err := r.queries.DeleteTeam(ctx, teamID)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	if rows == 0 {
		return domain.ErrTeamNotFound
	}
	return nil
}

// AddPending добавляет заявку. Уже существующая запись не меняется.
func (r *TeamRepository) AddPending(ctx context.Context, teamID, userID string) error {
	_, err := r.queries.AddMembership(ctx, database.AddMembershipParams{
		TeamID: teamID,
		UserID: userID,
		State:  database.MembershipPending,
	})
	if isForeignKeyViolation(err) {
		return domain.ErrTeamNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to add pending member: %w", err)
	}
	return nil
}

// ConfirmPending переводит заявку в участники.
func (r *TeamRepository) ConfirmPending(ctx context.Context, teamID, userID string) error {
	rows, err := r.queries.ConfirmMembership(ctx, teamID, userID)
	if err != nil {
		return fmt.Errorf("failed to confirm member: %w", err)
	}
	if rows == 0 {
		return domain.ErrUserNotPending
	}
	return nil
}

// RemoveMembership удаляет участника или заявку. Менеджер не удаляется.
func (r *TeamRepository) RemoveMembership(ctx context.Context, teamID, userID string) error {
	rows, err := r.queries.DeleteMembership(ctx, teamID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	if rows == 0 {
		return domain.ErrUserNotInTeam
	}
	return nil
}

func (r *TeamRepository) single(ctx context.Context, dbTeam database.Team, err error) (*domain.Team, error) {
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	teams, err := r.hydrate(ctx, []database.Team{dbTeam})
	if err != nil {
		return nil, err
	}
	return teams[0], nil
}

// hydrate дополняет команды списками участников, заявок и активностей.
func (r *TeamRepository) hydrate(ctx context.Context, dbTeams []database.Team) ([]*domain.Team, error) {
	teams := make([]*domain.Team, 0, len(dbTeams))
	if len(dbTeams) == 0 {
		return teams, nil
	}

	ids := make([]string, 0, len(dbTeams))
	byID := make(map[string]*domain.Team, len(dbTeams))
	for _, dbTeam := range dbTeams {
		team := &domain.Team{
			ID:             dbTeam.ID,
			Name:           dbTeam.Name,
			Sport:          dbTeam.Sport,
			ManagerID:      dbTeam.ManagerID,
			Members:        []string{},
			PendingMembers: []string{},
			Activities:     []string{},
			InviteCode:     dbTeam.InviteCode,
		}
		teams = append(teams, team)
		ids = append(ids, team.ID)
		byID[team.ID] = team
	}

	memberships, err := r.queries.GetTeamMemberships(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get team memberships: %w", err)
	}
	for _, m := range memberships {
		team := byID[m.TeamID]
		if m.State == database.MembershipMember {
			team.Members = append(team.Members, m.UserID)
		} else {
			team.PendingMembers = append(team.PendingMembers, m.UserID)
		}
	}

	links, err := r.queries.GetTeamActivities(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get team activities: %w", err)
	}
	for _, link := range links {
		byID[link.TeamID].Activities = append(byID[link.TeamID].Activities, link.ActivityID)
	}

	return teams, nil
}
