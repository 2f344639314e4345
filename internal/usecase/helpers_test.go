package usecase_test

import (
	"team-roster-service/internal/domain"
	"team-roster-service/internal/mocks"

	"github.com/stretchr/testify/mock"
)

const (
	managerID  = "0b6f6b0e-7a4e-4c1e-9a57-6f4f0f3b0a01"
	memberID   = "0b6f6b0e-7a4e-4c1e-9a57-6f4f0f3b0a02"
	pendingID  = "0b6f6b0e-7a4e-4c1e-9a57-6f4f0f3b0a03"
	outsiderID = "0b6f6b0e-7a4e-4c1e-9a57-6f4f0f3b0a04"
	rivalMgrID = "0b6f6b0e-7a4e-4c1e-9a57-6f4f0f3b0a05"
	rivalPlyID = "0b6f6b0e-7a4e-4c1e-9a57-6f4f0f3b0a06"

	teamID     = "5d1c2a4e-1111-4b7a-8c3d-000000000001"
	rivalID    = "5d1c2a4e-1111-4b7a-8c3d-000000000002"
	activityID = "9a8b7c6d-2222-4e5f-8a9b-000000000001"
)

type fixture struct {
	teamRepo     *mocks.TeamRepository
	userRepo     *mocks.UserRepository
	activityRepo *mocks.ActivityRepository
	publisher    *mocks.EventPublisher
}

func newFixture() *fixture {
	return &fixture{
		teamRepo:     &mocks.TeamRepository{},
		userRepo:     &mocks.UserRepository{},
		activityRepo: &mocks.ActivityRepository{},
		publisher:    &mocks.EventPublisher{},
	}
}

// expectEvent ожидает публикацию события указанного типа.
func (f *fixture) expectEvent(eventType domain.EventType) {
	f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == eventType
	})).Return().Once()
}

// allowProjection разрешает чтения, которые выполняет проекция ответа.
func (f *fixture) allowProjection(users ...*domain.User) {
	f.userRepo.On("GetByIDs", mock.Anything, mock.Anything).Return(users, nil).Maybe()
	f.teamRepo.On("GetByIDs", mock.Anything, mock.Anything).Return([]*domain.Team{homeTeam(), rivalTeam()}, nil).Maybe()
}

func homeTeam() *domain.Team {
	return &domain.Team{
		ID:             teamID,
		Name:           "Eagles",
		Sport:          "Football",
		ManagerID:      managerID,
		Members:        []string{managerID, memberID},
		PendingMembers: []string{pendingID},
		Activities:     []string{},
		InviteCode:     "ABC123",
	}
}

func rivalTeam() *domain.Team {
	return &domain.Team{
		ID:             rivalID,
		Name:           "Hawks",
		Sport:          "Football",
		ManagerID:      rivalMgrID,
		Members:        []string{rivalMgrID, rivalPlyID},
		PendingMembers: []string{},
		Activities:     []string{},
		InviteCode:     "XYZ789",
	}
}

func user(id, username string) *domain.User {
	return &domain.User{ID: id, Username: username, Email: username + "@example.com"}
}

func boolPtr(v bool) *bool {
	return &v
}

func strPtr(v string) *string {
	return &v
}
