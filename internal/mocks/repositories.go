// Package mocks содержит testify-моки интерфейсов domain.
package mocks

import (
	"context"

	"team-roster-service/internal/domain"

	"github.com/stretchr/testify/mock"
)

// UserRepository - мок domain.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) GetByIDs(ctx context.Context, userIDs []string) ([]*domain.User, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// TeamRepository - мок domain.TeamRepository.
type TeamRepository struct {
	mock.Mock
}

func (m *TeamRepository) Create(ctx context.Context, team *domain.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *TeamRepository) GetByID(ctx context.Context, teamID string) (*domain.Team, error) {
	args := m.Called(ctx, teamID)
	return teamResult(args)
}

func (m *TeamRepository) GetByName(ctx context.Context, name string) (*domain.Team, error) {
	args := m.Called(ctx, name)
	return teamResult(args)
}

func (m *TeamRepository) GetByInviteCode(ctx context.Context, code string) (*domain.Team, error) {
	args := m.Called(ctx, code)
	return teamResult(args)
}

func (m *TeamRepository) GetByManager(ctx context.Context, managerID string) (*domain.Team, error) {
	args := m.Called(ctx, managerID)
	return teamResult(args)
}

func (m *TeamRepository) GetByIDs(ctx context.Context, teamIDs []string) ([]*domain.Team, error) {
	args := m.Called(ctx, teamIDs)
	return teamsResult(args)
}

func (m *TeamRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *TeamRepository) ExistsByInviteCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *TeamRepository) List(ctx context.Context) ([]*domain.Team, error) {
	args := m.Called(ctx)
	return teamsResult(args)
}

func (m *TeamRepository) ListByMember(ctx context.Context, userID string) ([]*domain.Team, error) {
	args := m.Called(ctx, userID)
	return teamsResult(args)
}

func (m *TeamRepository) UpdateDetails(ctx context.Context, teamID, name, sport string) error {
	args := m.Called(ctx, teamID, name, sport)
	return args.Error(0)
}

func (m *TeamRepository) Delete(ctx context.Context, teamID string) error {
	args := m.Called(ctx, teamID)
	return args.Error(0)
}

func (m *TeamRepository) AddPending(ctx context.Context, teamID, userID string) error {
	args := m.Called(ctx, teamID, userID)
	return args.Error(0)
}

func (m *TeamRepository) ConfirmPending(ctx context.Context, teamID, userID string) error {
	args := m.Called(ctx, teamID, userID)
	return args.Error(0)
}

func (m *TeamRepository) RemoveMembership(ctx context.Context, teamID, userID string) error {
	args := m.Called(ctx, teamID, userID)
	return args.Error(0)
}

func teamResult(args mock.Arguments) (*domain.Team, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

func teamsResult(args mock.Arguments) ([]*domain.Team, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Team), args.Error(1)
}

// ActivityRepository - мок domain.ActivityRepository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *ActivityRepository) GetByID(ctx context.Context, activityID string) (*domain.Activity, error) {
	args := m.Called(ctx, activityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Activity), args.Error(1)
}

func (m *ActivityRepository) GetByIDs(ctx context.Context, activityIDs []string) ([]*domain.Activity, error) {
	args := m.Called(ctx, activityIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Activity), args.Error(1)
}

func (m *ActivityRepository) Update(ctx context.Context, activity *domain.Activity, previousOpponentID string) error {
	args := m.Called(ctx, activity, previousOpponentID)
	return args.Error(0)
}

func (m *ActivityRepository) Link(ctx context.Context, activityID, teamID string) error {
	args := m.Called(ctx, activityID, teamID)
	return args.Error(0)
}

func (m *ActivityRepository) SetAttendance(ctx context.Context, activityID, userID string, attendance bool) error {
	args := m.Called(ctx, activityID, userID, attendance)
	return args.Error(0)
}

func (m *ActivityRepository) Delete(ctx context.Context, activity *domain.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}
