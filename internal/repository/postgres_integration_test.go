package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"team-roster-service/internal/config"
	"team-roster-service/internal/database"
	"team-roster-service/internal/domain"
	"team-roster-service/internal/repository"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
)

type stores struct {
	users      domain.UserRepository
	teams      domain.TeamRepository
	activities domain.ActivityRepository
}

func TestPostgresRepositories(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	ctx := context.Background()

	db := setupPostgres(t)
	queries := database.New(db)
	s := stores{
		users:      repository.NewUserRepository(queries),
		teams:      repository.NewTeamRepository(db, queries),
		activities: repository.NewActivityRepository(db, queries),
	}

	manager := newUser(t, ctx, s, "manager")
	player := newUser(t, ctx, s, "player")
	applicant := newUser(t, ctx, s, "applicant")
	rivalManager := newUser(t, ctx, s, "rival")

	// Пользователи
	err := s.users.Create(ctx, &domain.User{ID: domain.NewID(), Username: "manager", Email: "other@example.com"})
	require.ErrorIs(t, err, domain.ErrUserAlreadyExists)

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, "", "player@example.com")
	require.NoError(t, err)
	require.True(t, exists)

	found, err := s.users.GetByIDs(ctx, []string{player.ID, domain.NewID(), manager.ID})
	require.NoError(t, err)
	require.Len(t, found, 2)
	require.Equal(t, player.ID, found[0].ID)
	require.Equal(t, manager.ID, found[1].ID)

	// Команда и переходы членства
	team := &domain.Team{ID: domain.NewID(), Name: "Eagles", Sport: "Football", ManagerID: manager.ID, InviteCode: "EAGLE1"}
	require.NoError(t, s.teams.Create(ctx, team))

	err = s.teams.Create(ctx, &domain.Team{ID: domain.NewID(), Name: "Hawks", Sport: "Football", ManagerID: rivalManager.ID, InviteCode: "EAGLE1"})
	require.ErrorIs(t, err, domain.ErrInviteCodeTaken)
	err = s.teams.Create(ctx, &domain.Team{ID: domain.NewID(), Name: "Eagles", Sport: "Rugby", ManagerID: rivalManager.ID, InviteCode: "OTHER1"})
	require.ErrorIs(t, err, domain.ErrTeamAlreadyExists)

	rival := &domain.Team{ID: domain.NewID(), Name: "Hawks", Sport: "Football", ManagerID: rivalManager.ID, InviteCode: "HAWKS1"}
	require.NoError(t, s.teams.Create(ctx, rival))

	require.NoError(t, s.teams.AddPending(ctx, team.ID, player.ID))
	require.NoError(t, s.teams.AddPending(ctx, team.ID, applicant.ID))
	require.NoError(t, s.teams.AddPending(ctx, team.ID, applicant.ID))
	require.NoError(t, s.teams.ConfirmPending(ctx, team.ID, player.ID))
	require.ErrorIs(t, s.teams.ConfirmPending(ctx, team.ID, player.ID), domain.ErrUserNotPending)

	loaded, err := s.teams.GetByInviteCode(ctx, "EAGLE1")
	require.NoError(t, err)
	require.Equal(t, []string{manager.ID, player.ID}, loaded.Members)
	require.Equal(t, []string{applicant.ID}, loaded.PendingMembers)
	require.Equal(t, domain.Pending, loaded.StateOf(applicant.ID))

	require.ErrorIs(t, s.teams.RemoveMembership(ctx, team.ID, manager.ID), domain.ErrUserNotInTeam)
	require.NoError(t, s.teams.RemoveMembership(ctx, team.ID, applicant.ID))
	require.ErrorIs(t, s.teams.RemoveMembership(ctx, team.ID, applicant.ID), domain.ErrUserNotInTeam)

	managed, err := s.teams.GetByManager(ctx, manager.ID)
	require.NoError(t, err)
	require.Equal(t, team.ID, managed.ID)

	memberOf, err := s.teams.ListByMember(ctx, player.ID)
	require.NoError(t, err)
	require.Len(t, memberOf, 1)

	// Активности
	activity := &domain.Activity{
		ID:             domain.NewID(),
		Subject:        "Derby",
		Type:           domain.ActivityGame,
		HostingTeamID:  team.ID,
		OpponentTeamID: rival.ID,
		Date:           time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		Guests: []domain.Guest{
			{UserID: manager.ID, Attendance: true},
			{UserID: player.ID},
			{UserID: rivalManager.ID},
		},
	}
	require.NoError(t, s.activities.Create(ctx, activity))

	hosting, err := s.teams.GetByID(ctx, team.ID)
	require.NoError(t, err)
	require.Equal(t, []string{activity.ID}, hosting.Activities)
	opponent, err := s.teams.GetByID(ctx, rival.ID)
	require.NoError(t, err)
	require.Equal(t, []string{activity.ID}, opponent.Activities)

	require.NoError(t, s.activities.SetAttendance(ctx, activity.ID, player.ID, true))
	require.ErrorIs(t, s.activities.SetAttendance(ctx, activity.ID, applicant.ID, true), domain.ErrGuestNotFound)

	stored, err := s.activities.GetByID(ctx, activity.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ActivityGame, stored.Type)
	require.True(t, stored.Date.Equal(activity.Date))
	require.Equal(t, []domain.Guest{
		{UserID: manager.ID, Attendance: true},
		{UserID: player.ID, Attendance: true},
		{UserID: rivalManager.ID, Attendance: false},
	}, stored.Guests)

	// Смена соперника на саму команду убирает ссылку у бывшего соперника
	stored.OpponentTeamID = team.ID
	stored.Guests = []domain.Guest{{UserID: player.ID, Attendance: false}}
	require.NoError(t, s.activities.Update(ctx, stored, rival.ID))

	opponent, err = s.teams.GetByID(ctx, rival.ID)
	require.NoError(t, err)
	require.Empty(t, opponent.Activities)

	// Привязка существующей активности идемпотентна
	require.NoError(t, s.activities.Link(ctx, activity.ID, rival.ID))
	require.NoError(t, s.activities.Link(ctx, activity.ID, rival.ID))
	opponent, err = s.teams.GetByID(ctx, rival.ID)
	require.NoError(t, err)
	require.Equal(t, []string{activity.ID}, opponent.Activities)
	require.ErrorIs(t, s.activities.Link(ctx, domain.NewID(), rival.ID), domain.ErrActivityNotFound)

	reloaded, err := s.activities.GetByID(ctx, activity.ID)
	require.NoError(t, err)
	require.Equal(t, []domain.Guest{{UserID: player.ID, Attendance: false}}, reloaded.Guests)

	require.NoError(t, s.activities.Delete(ctx, reloaded))
	_, err = s.activities.GetByID(ctx, activity.ID)
	require.ErrorIs(t, err, domain.ErrActivityNotFound)

	hosting, err = s.teams.GetByID(ctx, team.ID)
	require.NoError(t, err)
	require.Empty(t, hosting.Activities)

	// Удаление команды
	require.NoError(t, s.teams.Delete(ctx, rival.ID))
	_, err = s.teams.GetByName(ctx, "Hawks")
	require.ErrorIs(t, err, domain.ErrTeamNotFound)
	require.ErrorIs(t, s.teams.Delete(ctx, rival.ID), domain.ErrTeamNotFound)
}

func newUser(t *testing.T, ctx context.Context, s stores, username string) *domain.User {
	t.Helper()

	user := &domain.User{
		ID:           domain.NewID(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
	}
	require.NoError(t, s.users.Create(ctx, user))
	return user
}

func setupPostgres(t *testing.T) *sql.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker is not available: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_PASSWORD=postgres",
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=team_roster_test",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Purge(resource) })

	cfg := config.Config{
		DBHost:     "localhost",
		DBPort:     resource.GetPort("5432/tcp"),
		DBUser:     "postgres",
		DBPassword: "postgres",
		DBName:     "team_roster_test",
	}

	var db *sql.DB
	pool.MaxWait = time.Minute
	require.NoError(t, pool.Retry(func() error {
		db, err = database.NewPostgresDB(cfg)
		return err
	}))
	t.Cleanup(func() { _ = db.Close() })

	return db
}
