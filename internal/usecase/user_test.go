package usecase_test

import (
	"context"
	"errors"
	"testing"

	"team-roster-service/internal/domain"
	"team-roster-service/internal/mocks"
	"team-roster-service/internal/usecase"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type userFixture struct {
	*fixture
	hasher *mocks.PasswordHasher
	tokens *mocks.TokenIssuer
	logs   *logtest.Hook
}

func newUserFixture() (*userFixture, domain.UserUseCase) {
	logger, hook := logtest.NewNullLogger()
	f := &userFixture{
		fixture: newFixture(),
		hasher:  &mocks.PasswordHasher{},
		tokens:  &mocks.TokenIssuer{},
		logs:    hook,
	}
	uc := usecase.NewUserUseCase(f.userRepo, f.teamRepo, f.hasher, f.tokens, f.publisher, logger)
	return f, uc
}

func validRegistration() domain.RegisterInput {
	return domain.RegisterInput{
		Username:  "jdoe",
		Firstname: "John",
		Lastname:  "Doe",
		Email:     "jdoe@example.com",
		Password:  "secret",
	}
}

func TestUserUseCase_Register_Success(t *testing.T) {
	ctx := context.Background()
	f, uc := newUserFixture()

	f.userRepo.On("ExistsByUsernameOrEmail", ctx, "jdoe", "jdoe@example.com").Return(false, nil)
	f.hasher.On("Hash", "secret").Return("hashed", nil)

	var created *domain.User
	f.userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*domain.User) }).
		Return(nil)
	f.expectEvent(domain.EventUserRegistered)

	profile, err := uc.Register(ctx, validRegistration())

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "hashed", created.PasswordHash)
	assert.True(t, domain.ValidID(created.ID))
	assert.Contains(t, created.Avatar, "loremflickr.com")
	assert.Equal(t, created.ID, profile.ID)
	assert.Equal(t, "jdoe", profile.Username)
	f.teamRepo.AssertNotCalled(t, "GetByInviteCode", mock.Anything, mock.Anything)
}

func TestUserUseCase_Register_WithInviteCode(t *testing.T) {
	ctx := context.Background()
	f, uc := newUserFixture()

	input := validRegistration()
	input.InviteCode = "abc123"

	f.userRepo.On("ExistsByUsernameOrEmail", ctx, "jdoe", "jdoe@example.com").Return(false, nil)
	f.hasher.On("Hash", "secret").Return("hashed", nil)
	f.userRepo.On("Create", ctx, mock.Anything).Return(nil)
	f.teamRepo.On("GetByInviteCode", ctx, "ABC123").Return(homeTeam(), nil)
	f.teamRepo.On("AddPending", ctx, teamID, mock.AnythingOfType("string")).Return(nil)
	f.expectEvent(domain.EventUserRegistered)
	f.expectEvent(domain.EventMemberRequested)

	profile, err := uc.Register(ctx, input)

	require.NoError(t, err)
	f.teamRepo.AssertCalled(t, "AddPending", ctx, teamID, profile.ID)
	f.publisher.AssertExpectations(t)
}

func TestUserUseCase_Register_UnknownInviteCodeIgnored(t *testing.T) {
	ctx := context.Background()
	f, uc := newUserFixture()

	input := validRegistration()
	input.InviteCode = "ZZZZZZ"

	f.userRepo.On("ExistsByUsernameOrEmail", ctx, "jdoe", "jdoe@example.com").Return(false, nil)
	f.hasher.On("Hash", "secret").Return("hashed", nil)
	f.userRepo.On("Create", ctx, mock.Anything).Return(nil)
	f.teamRepo.On("GetByInviteCode", ctx, "ZZZZZZ").Return(nil, domain.ErrTeamNotFound)
	f.expectEvent(domain.EventUserRegistered)

	_, err := uc.Register(ctx, input)

	require.NoError(t, err)
	f.teamRepo.AssertNotCalled(t, "AddPending", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserUseCase_Register_JoinRequestFailureKeepsUser(t *testing.T) {
	ctx := context.Background()
	f, uc := newUserFixture()

	input := validRegistration()
	input.InviteCode = "ABC123"

	f.userRepo.On("ExistsByUsernameOrEmail", ctx, "jdoe", "jdoe@example.com").Return(false, nil)
	f.teamRepo.On("GetByInviteCode", ctx, "ABC123").Return(homeTeam(), nil)
	f.hasher.On("Hash", "secret").Return("hashed", nil)
	f.userRepo.On("Create", ctx, mock.Anything).Return(nil)
	f.teamRepo.On("AddPending", ctx, teamID, mock.AnythingOfType("string")).Return(errors.New("connection reset"))
	f.expectEvent(domain.EventUserRegistered)

	profile, err := uc.Register(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "jdoe", profile.Username)
	f.publisher.AssertExpectations(t)
	f.publisher.AssertNumberOfCalls(t, "Publish", 1)

	entry := f.logs.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, profile.ID, entry.Data["user_id"])
	assert.Equal(t, teamID, entry.Data["team_id"])
}

func TestUserUseCase_Register_InviteLookupFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	f, uc := newUserFixture()

	input := validRegistration()
	input.InviteCode = "ABC123"
	storeErr := errors.New("connection reset")

	f.userRepo.On("ExistsByUsernameOrEmail", ctx, "jdoe", "jdoe@example.com").Return(false, nil)
	f.teamRepo.On("GetByInviteCode", ctx, "ABC123").Return(nil, storeErr)

	_, err := uc.Register(ctx, input)

	assert.ErrorIs(t, err, storeErr)
	f.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestUserUseCase_Register_Validation(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name     string
		mutate   func(in *domain.RegisterInput)
		expected error
	}{
		{name: "Missing username", mutate: func(in *domain.RegisterInput) { in.Username = " " }, expected: domain.ErrUsernameRequired},
		{name: "Missing email", mutate: func(in *domain.RegisterInput) { in.Email = "" }, expected: domain.ErrEmailRequired},
		{name: "Malformed email", mutate: func(in *domain.RegisterInput) { in.Email = "not-an-email" }, expected: domain.ErrInvalidEmail},
		{name: "Missing password", mutate: func(in *domain.RegisterInput) { in.Password = "" }, expected: domain.ErrPasswordRequired},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, uc := newUserFixture()
			input := validRegistration()
			tc.mutate(&input)

			_, err := uc.Register(ctx, input)

			assert.ErrorIs(t, err, tc.expected)
			f.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestUserUseCase_Register_Duplicate(t *testing.T) {
	ctx := context.Background()
	f, uc := newUserFixture()

	f.userRepo.On("ExistsByUsernameOrEmail", ctx, "jdoe", "jdoe@example.com").Return(true, nil)

	_, err := uc.Register(ctx, validRegistration())

	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}

func TestUserUseCase_Login(t *testing.T) {
	ctx := context.Background()
	stored := &domain.User{ID: memberID, Username: "jdoe", PasswordHash: "hashed"}

	t.Run("Success", func(t *testing.T) {
		f, uc := newUserFixture()
		f.userRepo.On("GetByUsername", ctx, "jdoe").Return(stored, nil)
		f.hasher.On("Compare", "hashed", "secret").Return(nil)
		f.tokens.On("Issue", stored).Return("token-value", nil)

		result, err := uc.Login(ctx, " jdoe ", "secret")

		require.NoError(t, err)
		assert.Equal(t, "token-value", result.Token)
		assert.Equal(t, memberID, result.User.ID)
	})

	t.Run("Wrong password", func(t *testing.T) {
		f, uc := newUserFixture()
		f.userRepo.On("GetByUsername", ctx, "jdoe").Return(stored, nil)
		f.hasher.On("Compare", "hashed", "wrong").Return(errors.New("mismatch"))

		_, err := uc.Login(ctx, "jdoe", "wrong")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		f.tokens.AssertNotCalled(t, "Issue", mock.Anything)
	})

	t.Run("Unknown user", func(t *testing.T) {
		f, uc := newUserFixture()
		f.userRepo.On("GetByUsername", ctx, "ghost").Return(nil, domain.ErrUserNotFound)

		_, err := uc.Login(ctx, "ghost", "secret")

		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("Missing password", func(t *testing.T) {
		_, uc := newUserFixture()

		_, err := uc.Login(ctx, "jdoe", "")

		assert.ErrorIs(t, err, domain.ErrPasswordRequired)
	})
}

func TestUserUseCase_UpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner updates profile", func(t *testing.T) {
		f, uc := newUserFixture()
		stored := &domain.User{ID: memberID, Username: "jdoe", Email: "jdoe@example.com", Firstname: "John"}
		f.userRepo.On("GetByUsername", ctx, "jdoe").Return(stored, nil)
		f.userRepo.On("ExistsByUsernameOrEmail", ctx, "", "john@example.com").Return(false, nil)
		f.hasher.On("Hash", "new-secret").Return("new-hash", nil)
		f.userRepo.On("Update", ctx, stored).Return(nil)

		profile, err := uc.UpdateUser(ctx, memberID, "jdoe", domain.UpdateUserInput{
			Email:     strPtr("john@example.com"),
			Firstname: strPtr(" "),
			Lastname:  strPtr("Doe"),
			Password:  strPtr("new-secret"),
		})

		require.NoError(t, err)
		assert.Equal(t, "john@example.com", profile.Email)
		assert.Equal(t, "John", profile.Firstname)
		assert.Equal(t, "Doe", profile.Lastname)
		assert.Equal(t, "new-hash", stored.PasswordHash)
	})

	t.Run("Someone else's profile", func(t *testing.T) {
		f, uc := newUserFixture()
		f.userRepo.On("GetByUsername", ctx, "jdoe").Return(&domain.User{ID: memberID, Username: "jdoe"}, nil)

		_, err := uc.UpdateUser(ctx, outsiderID, "jdoe", domain.UpdateUserInput{Lastname: strPtr("X")})

		assert.ErrorIs(t, err, domain.ErrNotProfileOwner)
		assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
		f.userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Username taken", func(t *testing.T) {
		f, uc := newUserFixture()
		f.userRepo.On("GetByUsername", ctx, "jdoe").Return(&domain.User{ID: memberID, Username: "jdoe"}, nil)
		f.userRepo.On("ExistsByUsernameOrEmail", ctx, "boss", "").Return(true, nil)

		_, err := uc.UpdateUser(ctx, memberID, "jdoe", domain.UpdateUserInput{Username: strPtr("boss")})

		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
	})
}

func TestUserUseCase_GetUsers(t *testing.T) {
	ctx := context.Background()
	f, uc := newUserFixture()

	f.userRepo.On("List", ctx).Return([]*domain.User{
		{ID: managerID, Username: "boss", PasswordHash: "h1"},
		{ID: memberID, Username: "m", PasswordHash: "h2"},
	}, nil)

	profiles, err := uc.GetUsers(ctx)

	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "boss", profiles[0].Username)
	assert.Equal(t, "m", profiles[1].Username)
}
