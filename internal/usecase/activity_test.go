package usecase_test

import (
	"context"
	"testing"
	"time"

	"team-roster-service/internal/domain"
	"team-roster-service/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func storedActivity() *domain.Activity {
	return &domain.Activity{
		ID:             activityID,
		Subject:        "Derby",
		Type:           domain.ActivityGame,
		HostingTeamID:  teamID,
		OpponentTeamID: rivalID,
		Guests: []domain.Guest{
			{UserID: managerID, Attendance: true},
			{UserID: memberID, Attendance: false},
			{UserID: rivalMgrID, Attendance: false},
		},
	}
}

func withActivity(team *domain.Team) *domain.Team {
	team.Activities = []string{activityID}
	return team
}

func TestActivityUseCase_CreateActivity_SelfHosted(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	uc := usecase.NewActivityUseCase(f.activityRepo, f.teamRepo, f.userRepo, f.publisher)

	f.teamRepo.On("GetByName", ctx, "Eagles").Return(homeTeam(), nil)

	var created *domain.Activity
	f.activityRepo.On("Create", ctx, mock.AnythingOfType("*domain.Activity")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*domain.Activity) }).
		Return(nil)
	f.teamRepo.On("GetByID", ctx, teamID).Return(withActivity(homeTeam()), nil)
	f.activityRepo.On("GetByIDs", ctx, []string{activityID}).Return([]*domain.Activity{{
		ID:             activityID,
		Subject:        "Practice",
		HostingTeamID:  teamID,
		OpponentTeamID: teamID,
	}}, nil)
	f.expectEvent(domain.EventActivityCreated)
	f.allowProjection(user(managerID, "boss"), user(memberID, "m"))

	_, err := uc.CreateActivity(ctx, managerID, domain.CreateActivityInput{
		Team:         "eagles",
		Subject:      " Practice ",
		ActivityType: "TRAINING",
		Date:         "2026-11-02",
		Location:     "Main field",
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "Practice", created.Subject)
	assert.Equal(t, domain.ActivityTraining, created.Type)
	assert.Equal(t, teamID, created.HostingTeamID)
	assert.Equal(t, teamID, created.OpponentTeamID)
	assert.True(t, created.IsSelfHosted())
	assert.Equal(t, time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC), created.Date)
	// Ожидающие участники не попадают в список гостей.
	assert.Equal(t, []domain.Guest{
		{UserID: managerID, Attendance: true},
		{UserID: memberID, Attendance: false},
	}, created.Guests)
}

func TestActivityUseCase_CreateActivity_AgainstOpponent(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	uc := usecase.NewActivityUseCase(f.activityRepo, f.teamRepo, f.userRepo, f.publisher)

	f.teamRepo.On("GetByName", ctx, "Eagles").Return(homeTeam(), nil)
	f.teamRepo.On("GetByName", ctx, "Hawks").Return(rivalTeam(), nil)

	var created *domain.Activity
	f.activityRepo.On("Create", ctx, mock.Anything).
		Run(func(args mock.Arguments) { created = args.Get(1).(*domain.Activity) }).
		Return(nil)
	f.teamRepo.On("GetByID", ctx, teamID).Return(withActivity(homeTeam()), nil)
	f.activityRepo.On("GetByIDs", ctx, []string{activityID}).Return([]*domain.Activity{storedActivity()}, nil)
	f.expectEvent(domain.EventActivityCreated)
	f.allowProjection(user(managerID, "boss"), user(memberID, "m"), user(rivalMgrID, "rival"))

	views, err := uc.CreateActivity(ctx, managerID, domain.CreateActivityInput{
		Team:         "Eagles",
		Opponent:     "hawks",
		Subject:      "Derby",
		ActivityType: "game",
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, rivalID, created.OpponentTeamID)
	assert.True(t, created.Date.IsZero())
	assert.Equal(t, []domain.Guest{
		{UserID: managerID, Attendance: true},
		{UserID: memberID, Attendance: false},
		{UserID: rivalMgrID, Attendance: false},
		{UserID: rivalPlyID, Attendance: false},
	}, created.Guests)

	require.Len(t, views, 1)
	assert.Equal(t, "Eagles", views[0].HostingTeam.Name)
	assert.Equal(t, "Hawks", views[0].Opponent.Name)
}

func TestActivityUseCase_CreateActivity_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("Anonymous caller", func(t *testing.T) {
		f := newFixture()
		uc := usecase.NewActivityUseCase(f.activityRepo, f.teamRepo, f.userRepo, f.publisher)

		_, err := uc.CreateActivity(ctx, "", domain.CreateActivityInput{Team: "Eagles", Subject: "x"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("Unknown team", func(t *testing.T) {
		f := newFixture()
		uc := usecase.NewActivityUseCase(f.activityRepo, f.teamRepo, f.userRepo, f.publisher)
		f.teamRepo.On("GetByName", ctx, "Ghosts").Return(nil, domain.ErrTeamNotFound)

		_, err := uc.CreateActivity(ctx, managerID, domain.CreateActivityInput{Team: "ghosts", Subject: "x"})
		assert.ErrorIs(t, err, domain.ErrTeamNotFound)
	})

	t.Run("Not the manager", func(t *testing.T) {
		f := newFixture()
		uc := usecase.NewActivityUseCase(f.activityRepo, f.teamRepo, f.userRepo, f.publisher)
		f.teamRepo.On("GetByName", ctx, "Eagles").Return(homeTeam(), nil)

		_, err := uc.CreateActivity(ctx, memberID, domain.CreateActivityInput{Team: "Eagles", Subject: "x"})
		assert.ErrorIs(t, err, domain.ErrForbidden)
		f.activityRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Missing subject", func(t *testing.T) {
		f := newFixture()
		uc := usecase.NewActivityUseCase(f.activityRepo, f.teamRepo, f.userRepo, f.publisher)
		f.teamRepo.On("GetByName", ctx, "Eagles").Return(homeTeam(), nil)

		_, err := uc.CreateActivity(ctx, managerID, domain.CreateActivityInput{Team: "Eagles", Subject: "  "})
		assert.ErrorIs(t, err, domain.ErrSubjectRequired)
	})

	t.Run("Bad date", func(t *testing.T) {
		f := newFixture()
		uc := usecase.NewActivityUseCase(f.activityRepo, f.teamRepo, f.userRepo, f.publisher)
		f.teamRepo.On("GetByName", ctx, "Eagles").Return(homeTeam(), nil)

		_, err := uc.CreateActivity(ctx, managerID, domain.CreateActivityInput{Team: "Eagles", Subject: "x", Date: "next friday"})
		assert.ErrorIs(t, err, domain.ErrInvalidDate)
	})
}

func TestActivityUseCase_ListActivities(t *testing.T) {
	ctx := context.Background()

	t.Run("Member sees activities", func(t *testing.T) {
		f := newFixture()
		uc := usecase.NewActivityUseCase(f.activityRepo, f.teamRepo, f.userRepo, f.publisher)
		f.teamRepo.On("GetByName", ctx, "Eagles").Return(withActivity(homeTeam()), nil)
		f.activityRepo.On("GetByIDs", ctx, []string{activityID}).Return([]*domain.Activity{storedActivity()}, nil)
		f.allowProjection(user(managerID, "boss"), user(memberID, "m"), user(rivalMgrID, "rival"))

		views, err := uc.ListActivities(ctx, memberID, "Eagles")

		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Len(t, views[0].Guests, 3)
	})

	t.Run("Pending member is rejected", func(t *testing.T) {
		f := newFixture()
		uc := usecase.NewActivityUseCase(f.activityRepo, f.teamRepo, f.userRepo, f.publisher)
		f.teamRepo.On("GetByName", ctx, "Eagles").Return(withActivity(homeTeam()), nil)

		_, err := uc.ListActivities(ctx, pendingID, "Eagles")
		assert.ErrorIs(t, err, domain.ErrNotTeamMember)
	})

	t.Run("Outsider is rejected", func(t *testing.T) {
		f := newFixture()
		uc := usecase.NewActivityUseCase(f.activityRepo, f.teamRepo, f.userRepo, f.publisher)
		f.teamRepo.On("GetByName", ctx, "Eagles").Return(withActivity(homeTeam()), nil)

		_, err := uc.ListActivities(ctx, outsiderID, "Eagles")
		assert.ErrorIs(t, err, domain.ErrNotTeamMember)
		assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
	})
}

func TestActivityUseCase_UpdateActivity_ReplacesGuests(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	uc := usecase.NewActivityUseCase(f.activityRepo, f.teamRepo, f.userRepo, f.publisher)

	f.teamRepo.On("GetByName", ctx, "Eagles").Return(withActivity(homeTeam()), nil)
	f.activityRepo.On("GetByID", ctx, activityID).Return(storedActivity(), nil)
	f.userRepo.On("GetByIDs", ctx, []string{memberID, outsiderID}).
		Return([]*domain.User{user(memberID, "m"), user(outsiderID, "o")}, nil).Once()

	var updated *domain.Activity
	f.activityRepo.On("Update", ctx, mock.Anything, rivalID).
		Run(func(args mock.Arguments) { updated = args.Get(1).(*domain.Activity) }).
		Return(nil)
	f.teamRepo.On("GetByID", ctx, teamID).Return(withActivity(homeTeam()), nil)
	f.activityRepo.On("GetByIDs", ctx, []string{activityID}).Return([]*domain.Activity{storedActivity()}, nil)
	f.expectEvent(domain.EventActivityUpdated)
	f.allowProjection(user(managerID, "boss"), user(memberID, "m"), user(rivalMgrID, "rival"))

	_, err := uc.UpdateActivity(ctx, managerID, domain.UpdateActivityInput{
		Team:       "Eagles",
		ActivityID: activityID,
		Subject:    strPtr("Cup final"),
		Location:   strPtr(" Stadium "),
		Guests: []domain.GuestInput{
			{UserID: memberID, Attendance: boolPtr(true)},
			{UserID: outsiderID, Attendance: boolPtr(false)},
		},
	})

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Cup final", updated.Subject)
	assert.Equal(t, "Stadium", updated.Location)
	assert.Equal(t, rivalID, updated.OpponentTeamID)
	assert.Equal(t, []domain.Guest{
		{UserID: memberID, Attendance: true},
		{UserID: outsiderID, Attendance: false},
	}, updated.Guests)
}

func TestActivityUseCase_UpdateActivity_ClearsOpponent(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	uc := usecase.NewActivityUseCase(f.activityRepo, f.teamRepo, f.userRepo, f.publisher)

	f.teamRepo.On("GetByName", ctx, "Eagles").Return(withActivity(homeTeam()), nil)
	f.activityRepo.On("GetByID", ctx, activityID).Return(storedActivity(), nil)

	var updated *domain.Activity
	f.activityRepo.On("Update", ctx, mock.Anything, rivalID).
		Run(func(args mock.Arguments) { updated = args.Get(1).(*domain.Activity) }).
		Return(nil)
	f.teamRepo.On("GetByID", ctx, teamID).Return(withActivity(homeTeam()), nil)
	f.activityRepo.On("GetByIDs", ctx, []string{activityID}).Return([]*domain.Activity{storedActivity()}, nil)
	f.expectEvent(domain.EventActivityUpdated)
	f.allowProjection()

	_, err := uc.UpdateActivity(ctx, managerID, domain.UpdateActivityInput{
		Team:       "Eagles",
		ActivityID: activityID,
		Opponent:   strPtr(""),
	})

	require.NoError(t, err)
	assert.Equal(t, teamID, updated.OpponentTeamID)
	// Список гостей без явного ввода не меняется.
	assert.Len(t, updated.Guests, 3)
}

func TestActivityUseCase_UpdateActivity_GuestValidation(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name     string
		guests   []domain.GuestInput
		expected error
	}{
		{
			name:     "Malformed user id",
			guests:   []domain.GuestInput{{UserID: "bogus", Attendance: boolPtr(true)}},
			expected: domain.ErrInvalidGuest,
		},
		{
			name:     "Missing attendance",
			guests:   []domain.GuestInput{{UserID: memberID}},
			expected: domain.ErrInvalidAttendance,
		},
		{
			name: "Duplicate guest",
			guests: []domain.GuestInput{
				{UserID: memberID, Attendance: boolPtr(true)},
				{UserID: memberID, Attendance: boolPtr(false)},
			},
			expected: domain.ErrDuplicateGuest,
		},
		{
			name:     "Unknown user",
			guests:   []domain.GuestInput{{UserID: outsiderID, Attendance: boolPtr(true)}},
			expected: domain.ErrUserNotFound,
		},
		{
			// Первая некорректная запись определяет ошибку.
			name: "First failure wins",
			guests: []domain.GuestInput{
				{UserID: outsiderID, Attendance: boolPtr(true)},
				{UserID: "bogus", Attendance: boolPtr(true)},
			},
			expected: domain.ErrUserNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			uc := usecase.NewActivityUseCase(f.activityRepo, f.teamRepo, f.userRepo, f.publisher)
			f.teamRepo.On("GetByName", ctx, "Eagles").Return(withActivity(homeTeam()), nil)
			f.activityRepo.On("GetByID", ctx, activityID).Return(storedActivity(), nil)
			f.userRepo.On("GetByIDs", ctx, mock.Anything).Return([]*domain.User{user(memberID, "m")}, nil).Maybe()

			_, err := uc.UpdateActivity(ctx, managerID, domain.UpdateActivityInput{
				Team:       "Eagles",
				ActivityID: activityID,
				Subject:    strPtr("Changed"),
				Guests:     tc.guests,
			})

			assert.ErrorIs(t, err, tc.expected)
			assert.Equal(t, domain.KindOf(tc.expected), domain.KindOf(err))
			f.activityRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
			f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		})
	}
}

func TestActivityUseCase_UpdateActivity_ForeignActivity(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	uc := usecase.NewActivityUseCase(f.activityRepo, f.teamRepo, f.userRepo, f.publisher)

	hostedByRival := storedActivity()
	hostedByRival.HostingTeamID = rivalID

	f.teamRepo.On("GetByName", ctx, "Eagles").Return(homeTeam(), nil)
	f.activityRepo.On("GetByID", ctx, activityID).Return(hostedByRival, nil)

	_, err := uc.UpdateActivity(ctx, managerID, domain.UpdateActivityInput{Team: "Eagles", ActivityID: activityID})

	assert.ErrorIs(t, err, domain.ErrActivityNotFound)
}

func TestActivityUseCase_SetAttendance(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	uc := usecase.NewActivityUseCase(f.activityRepo, f.teamRepo, f.userRepo, f.publisher)

	after := storedActivity()
	after.Guests[1].Attendance = true

	f.activityRepo.On("GetByID", ctx, activityID).Return(storedActivity(), nil).Once()
	f.activityRepo.On("SetAttendance", ctx, activityID, memberID, true).Return(nil)
	f.activityRepo.On("GetByID", ctx, activityID).Return(after, nil).Once()
	f.expectEvent(domain.EventAttendanceUpdated)
	f.allowProjection(user(managerID, "boss"), user(memberID, "m"), user(rivalMgrID, "rival"))

	view, err := uc.SetAttendance(ctx, outsiderID, activityID, memberID, boolPtr(true))

	require.NoError(t, err)
	require.Len(t, view.Guests, 3)
	assert.True(t, view.Guests[0].Attendance)
	assert.True(t, view.Guests[1].Attendance)
	assert.False(t, view.Guests[2].Attendance)
	assert.Equal(t, "m", view.Guests[1].Username)
}

func TestActivityUseCase_SetAttendance_Errors(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		activityID string
		userID     string
		attendance *bool
		expected   error
	}{
		{name: "Malformed activity id", activityID: "x", userID: memberID, attendance: boolPtr(true), expected: domain.ErrInvalidActivityID},
		{name: "Malformed user id", activityID: activityID, userID: "x", attendance: boolPtr(true), expected: domain.ErrInvalidUserID},
		{name: "Missing attendance", activityID: activityID, userID: memberID, attendance: nil, expected: domain.ErrInvalidAttendance},
		{name: "Not a guest", activityID: activityID, userID: outsiderID, attendance: boolPtr(true), expected: domain.ErrGuestNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			uc := usecase.NewActivityUseCase(f.activityRepo, f.teamRepo, f.userRepo, f.publisher)
			f.activityRepo.On("GetByID", ctx, activityID).Return(storedActivity(), nil).Maybe()

			_, err := uc.SetAttendance(ctx, managerID, tc.activityID, tc.userID, tc.attendance)

			assert.ErrorIs(t, err, tc.expected)
			f.activityRepo.AssertNotCalled(t, "SetAttendance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestActivityUseCase_SetAttendance_UnknownActivity(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	uc := usecase.NewActivityUseCase(f.activityRepo, f.teamRepo, f.userRepo, f.publisher)

	f.activityRepo.On("GetByID", ctx, activityID).Return(nil, domain.ErrActivityNotFound)

	_, err := uc.SetAttendance(ctx, managerID, activityID, memberID, boolPtr(false))

	assert.ErrorIs(t, err, domain.ErrActivityNotFound)
}

func TestActivityUseCase_DeleteActivity(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFixture()
		uc := usecase.NewActivityUseCase(f.activityRepo, f.teamRepo, f.userRepo, f.publisher)
		activity := storedActivity()
		f.teamRepo.On("GetByName", ctx, "Eagles").Return(withActivity(homeTeam()), nil)
		f.activityRepo.On("GetByID", ctx, activityID).Return(activity, nil)
		f.activityRepo.On("Delete", ctx, activity).Return(nil)
		f.expectEvent(domain.EventActivityDeleted)

		err := uc.DeleteActivity(ctx, managerID, "Eagles", activityID)

		require.NoError(t, err)
		f.activityRepo.AssertExpectations(t)
		f.publisher.AssertExpectations(t)
	})

	t.Run("Opponent manager cannot delete", func(t *testing.T) {
		f := newFixture()
		uc := usecase.NewActivityUseCase(f.activityRepo, f.teamRepo, f.userRepo, f.publisher)
		f.teamRepo.On("GetByName", ctx, "Eagles").Return(withActivity(homeTeam()), nil)

		err := uc.DeleteActivity(ctx, rivalMgrID, "Eagles", activityID)

		assert.ErrorIs(t, err, domain.ErrForbidden)
		f.activityRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestActivityUseCase_AddActivity(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	uc := usecase.NewActivityUseCase(f.activityRepo, f.teamRepo, f.userRepo, f.publisher)

	hawksPractice := &domain.Activity{
		ID:             activityID,
		Subject:        "Open practice",
		HostingTeamID:  rivalID,
		OpponentTeamID: rivalID,
		Guests:         []domain.Guest{{UserID: rivalMgrID, Attendance: true}},
	}
	f.teamRepo.On("GetByName", ctx, "Eagles").Return(homeTeam(), nil)
	f.activityRepo.On("GetByID", ctx, activityID).Return(hawksPractice, nil)
	f.activityRepo.On("Link", ctx, activityID, teamID).Return(nil).Once()
	f.teamRepo.On("GetByID", ctx, teamID).Return(withActivity(homeTeam()), nil)
	f.activityRepo.On("GetByIDs", ctx, []string{activityID}).Return([]*domain.Activity{hawksPractice}, nil)
	f.allowProjection(user(rivalMgrID, "hawk"))
	f.expectEvent(domain.EventActivityLinked)

	views, err := uc.AddActivity(ctx, managerID, "eagles", activityID)

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Hawks", views[0].HostingTeam.Name)
	require.Len(t, views[0].Guests, 1)
	assert.Equal(t, rivalMgrID, views[0].Guests[0].ID)
	f.activityRepo.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestActivityUseCase_AddActivity_Errors(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		callerID   string
		activityID string
		setup      func(f *fixture)
		expected   error
	}{
		{
			name:       "Not manager",
			callerID:   memberID,
			activityID: activityID,
			expected:   domain.ErrForbidden,
		},
		{
			name:       "Malformed activity id",
			callerID:   managerID,
			activityID: "42",
			expected:   domain.ErrInvalidActivityID,
		},
		{
			name:       "Unknown activity",
			callerID:   managerID,
			activityID: activityID,
			setup: func(f *fixture) {
				f.activityRepo.On("GetByID", ctx, activityID).Return(nil, domain.ErrActivityNotFound)
			},
			expected: domain.ErrActivityNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			uc := usecase.NewActivityUseCase(f.activityRepo, f.teamRepo, f.userRepo, f.publisher)
			f.teamRepo.On("GetByName", ctx, "Eagles").Return(homeTeam(), nil)
			if tc.setup != nil {
				tc.setup(f)
			}

			_, err := uc.AddActivity(ctx, tc.callerID, "Eagles", tc.activityID)

			assert.ErrorIs(t, err, tc.expected)
			f.activityRepo.AssertNotCalled(t, "Link", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
