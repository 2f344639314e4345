package usecase

import (
	"context"

	"team-roster-service/internal/domain"
)

// projector раскрывает идентификаторы в данные для отображения.
// Используется только на стороне чтения и ничего не изменяет.
type projector struct {
	userRepo     domain.UserRepository
	teamRepo     domain.TeamRepository
	activityRepo domain.ActivityRepository
}

func newProjector(userRepo domain.UserRepository, teamRepo domain.TeamRepository, activityRepo domain.ActivityRepository) *projector {
	return &projector{
		userRepo:     userRepo,
		teamRepo:     teamRepo,
		activityRepo: activityRepo,
	}
}

// team возвращает команду с профилями участников и раскрытыми активностями.
func (p *projector) team(ctx context.Context, team *domain.Team) (*domain.TeamView, error) {
	ids := make([]string, 0, 1+len(team.Members)+len(team.PendingMembers))
	ids = append(ids, team.ManagerID)
	ids = append(ids, team.Members...)
	ids = append(ids, team.PendingMembers...)

	profiles, err := p.profiles(ctx, ids)
	if err != nil {
		return nil, err
	}

	activities, err := p.activities(ctx, team.Activities)
	if err != nil {
		return nil, err
	}

	return &domain.TeamView{
		ID:             team.ID,
		Name:           team.Name,
		Sport:          team.Sport,
		Manager:        profileOrID(profiles, team.ManagerID),
		Members:        pick(profiles, team.Members),
		PendingMembers: pick(profiles, team.PendingMembers),
		Activities:     activities,
		InviteCode:     team.InviteCode,
	}, nil
}

func (p *projector) teams(ctx context.Context, teams []*domain.Team) ([]*domain.TeamView, error) {
	views := make([]*domain.TeamView, 0, len(teams))
	for _, team := range teams {
		view, err := p.team(ctx, team)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// activities раскрывает активности в порядке переданных идентификаторов.
func (p *projector) activities(ctx context.Context, activityIDs []string) ([]*domain.ActivityView, error) {
	if len(activityIDs) == 0 {
		return []*domain.ActivityView{}, nil
	}

	activities, err := p.activityRepo.GetByIDs(ctx, activityIDs)
	if err != nil {
		return nil, err
	}

	teamIDs := make([]string, 0, 2*len(activities))
	userIDs := make([]string, 0)
	for _, a := range activities {
		teamIDs = append(teamIDs, a.HostingTeamID, a.OpponentTeamID)
		for _, g := range a.Guests {
			userIDs = append(userIDs, g.UserID)
		}
	}

	names, err := p.teamNames(ctx, teamIDs)
	if err != nil {
		return nil, err
	}
	profiles, err := p.profiles(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	views := make([]*domain.ActivityView, 0, len(activities))
	for _, a := range activities {
		views = append(views, activityView(a, names, profiles))
	}
	return views, nil
}

// activity раскрывает одну активность.
func (p *projector) activity(ctx context.Context, activity *domain.Activity) (*domain.ActivityView, error) {
	names, err := p.teamNames(ctx, []string{activity.HostingTeamID, activity.OpponentTeamID})
	if err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(activity.Guests))
	for _, g := range activity.Guests {
		userIDs = append(userIDs, g.UserID)
	}
	profiles, err := p.profiles(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	return activityView(activity, names, profiles), nil
}

func (p *projector) profiles(ctx context.Context, userIDs []string) (map[string]domain.UserProfile, error) {
	result := make(map[string]domain.UserProfile, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	users, err := p.userRepo.GetByIDs(ctx, unique(userIDs))
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		result[u.ID] = u.ToProfile()
	}
	return result, nil
}

// teamNames возвращает названия команд; удалённые команды остаются без названия.
func (p *projector) teamNames(ctx context.Context, teamIDs []string) (map[string]string, error) {
	result := make(map[string]string, len(teamIDs))
	if len(teamIDs) == 0 {
		return result, nil
	}

	teams, err := p.teamRepo.GetByIDs(ctx, unique(teamIDs))
	if err != nil {
		return nil, err
	}
	for _, t := range teams {
		result[t.ID] = t.Name
	}
	return result, nil
}

func activityView(a *domain.Activity, names map[string]string, profiles map[string]domain.UserProfile) *domain.ActivityView {
	opponentID := a.OpponentTeamID
	if opponentID == "" {
		opponentID = a.HostingTeamID
	}

	guests := make([]domain.GuestView, 0, len(a.Guests))
	for _, g := range a.Guests {
		guests = append(guests, domain.GuestView{
			UserProfile: profileOrID(profiles, g.UserID),
			Attendance:  g.Attendance,
		})
	}

	return &domain.ActivityView{
		ID:          a.ID,
		Subject:     a.Subject,
		Type:        a.Type,
		HostingTeam: domain.TeamRef{ID: a.HostingTeamID, Name: names[a.HostingTeamID]},
		Opponent:    domain.TeamRef{ID: opponentID, Name: names[opponentID]},
		Date:        a.Date,
		Location:    a.Location,
		Guests:      guests,
	}
}

func profileOrID(profiles map[string]domain.UserProfile, userID string) domain.UserProfile {
	if p, ok := profiles[userID]; ok {
		return p
	}
	return domain.UserProfile{ID: userID}
}

func pick(profiles map[string]domain.UserProfile, userIDs []string) []domain.UserProfile {
	result := make([]domain.UserProfile, 0, len(userIDs))
	for _, id := range userIDs {
		result = append(result, profileOrID(profiles, id))
	}
	return result
}

func unique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
