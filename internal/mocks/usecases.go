package mocks

import (
	"context"

	"team-roster-service/internal/domain"

	"github.com/stretchr/testify/mock"
)

// TeamUseCase - мок domain.TeamUseCase.
type TeamUseCase struct {
	mock.Mock
}

func (m *TeamUseCase) CreateTeam(ctx context.Context, callerID, name, sport string) (*domain.TeamView, error) {
	args := m.Called(ctx, callerID, name, sport)
	return teamViewResult(args)
}

func (m *TeamUseCase) GetTeam(ctx context.Context, name string) (*domain.TeamView, error) {
	args := m.Called(ctx, name)
	return teamViewResult(args)
}

func (m *TeamUseCase) ListTeams(ctx context.Context) ([]*domain.TeamView, error) {
	args := m.Called(ctx)
	return teamViewsResult(args)
}

func (m *TeamUseCase) ListTeamsByUser(ctx context.Context, userID string) ([]*domain.TeamView, error) {
	args := m.Called(ctx, userID)
	return teamViewsResult(args)
}

func (m *TeamUseCase) GetTeamByManager(ctx context.Context, callerID string) (*domain.TeamView, error) {
	args := m.Called(ctx, callerID)
	return teamViewResult(args)
}

func (m *TeamUseCase) UpdateTeam(ctx context.Context, callerID, teamID string, input domain.UpdateTeamInput) (*domain.TeamView, error) {
	args := m.Called(ctx, callerID, teamID, input)
	return teamViewResult(args)
}

func (m *TeamUseCase) DeleteTeam(ctx context.Context, callerID, teamName string) error {
	args := m.Called(ctx, callerID, teamName)
	return args.Error(0)
}

func (m *TeamUseCase) RequestJoin(ctx context.Context, userID, inviteCode string) (*domain.TeamView, error) {
	args := m.Called(ctx, userID, inviteCode)
	return teamViewResult(args)
}

func (m *TeamUseCase) ConfirmMember(ctx context.Context, callerID, teamName, userID string) (*domain.TeamView, error) {
	args := m.Called(ctx, callerID, teamName, userID)
	return teamViewResult(args)
}

func (m *TeamUseCase) RemoveMember(ctx context.Context, callerID, teamName, userID string) (*domain.TeamView, error) {
	args := m.Called(ctx, callerID, teamName, userID)
	return teamViewResult(args)
}

func teamViewResult(args mock.Arguments) (*domain.TeamView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamView), args.Error(1)
}

func teamViewsResult(args mock.Arguments) ([]*domain.TeamView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TeamView), args.Error(1)
}

// ActivityUseCase - мок domain.ActivityUseCase.
type ActivityUseCase struct {
	mock.Mock
}

func (m *ActivityUseCase) CreateActivity(ctx context.Context, callerID string, input domain.CreateActivityInput) ([]*domain.ActivityView, error) {
	args := m.Called(ctx, callerID, input)
	return activityViewsResult(args)
}

func (m *ActivityUseCase) ListActivities(ctx context.Context, callerID, teamName string) ([]*domain.ActivityView, error) {
	args := m.Called(ctx, callerID, teamName)
	return activityViewsResult(args)
}

func (m *ActivityUseCase) AddActivity(ctx context.Context, callerID, teamName, activityID string) ([]*domain.ActivityView, error) {
	args := m.Called(ctx, callerID, teamName, activityID)
	return activityViewsResult(args)
}

func (m *ActivityUseCase) UpdateActivity(ctx context.Context, callerID string, input domain.UpdateActivityInput) ([]*domain.ActivityView, error) {
	args := m.Called(ctx, callerID, input)
	return activityViewsResult(args)
}

func (m *ActivityUseCase) SetAttendance(ctx context.Context, callerID, activityID, userID string, attendance *bool) (*domain.ActivityView, error) {
	args := m.Called(ctx, callerID, activityID, userID, attendance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivityView), args.Error(1)
}

func (m *ActivityUseCase) DeleteActivity(ctx context.Context, callerID, teamName, activityID string) error {
	args := m.Called(ctx, callerID, teamName, activityID)
	return args.Error(0)
}

func activityViewsResult(args mock.Arguments) ([]*domain.ActivityView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ActivityView), args.Error(1)
}

// UserUseCase - мок domain.UserUseCase.
type UserUseCase struct {
	mock.Mock
}

func (m *UserUseCase) Register(ctx context.Context, input domain.RegisterInput) (*domain.UserProfile, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *UserUseCase) Login(ctx context.Context, username, password string) (*domain.LoginResult, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoginResult), args.Error(1)
}

func (m *UserUseCase) GetUsers(ctx context.Context) ([]domain.UserProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserProfile), args.Error(1)
}

func (m *UserUseCase) GetUser(ctx context.Context, username string) (*domain.UserProfile, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *UserUseCase) UpdateUser(ctx context.Context, callerID, username string, input domain.UpdateUserInput) (*domain.UserProfile, error) {
	args := m.Called(ctx, callerID, username, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}
