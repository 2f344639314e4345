package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"team-roster-service/internal/domain"
)

// ActivityUseCase реализует создание активностей, формирование списка гостей и учет посещаемости.
type ActivityUseCase struct {
	activityRepo domain.ActivityRepository
	teamRepo     domain.TeamRepository
	userRepo     domain.UserRepository
	publisher    domain.EventPublisher
	projector    *projector
}

// NewActivityUseCase создает новый экземпляр ActivityUseCase.
func NewActivityUseCase(
	activityRepo domain.ActivityRepository,
	teamRepo domain.TeamRepository,
	userRepo domain.UserRepository,
	publisher domain.EventPublisher,
) domain.ActivityUseCase {
	return &ActivityUseCase{
		activityRepo: activityRepo,
		teamRepo:     teamRepo,
		userRepo:     userRepo,
		publisher:    publisher,
		projector:    newProjector(userRepo, teamRepo, activityRepo),
	}
}

// CreateActivity создает активность принимающей команды и возвращает все её активности.
func (uc *ActivityUseCase) CreateActivity(ctx context.Context, callerID string, input domain.CreateActivityInput) ([]*domain.ActivityView, error) {
	if callerID == "" {
		return nil, domain.ErrUnauthorized
	}

	// 1. Находим принимающую команду и соперника (по умолчанию - та же команда)
	hosting, err := uc.teamByName(ctx, input.Team)
	if err != nil {
		return nil, err
	}
	opponent := hosting
	if strings.TrimSpace(input.Opponent) != "" {
		opponent, err = uc.teamByName(ctx, input.Opponent)
		if err != nil {
			return nil, err
		}
	}

	// 2. Только менеджер принимающей команды
	if !domain.RequireManager(hosting, callerID) {
		return nil, domain.ErrForbidden
	}

	// 3. Валидация полей
	subject := strings.TrimSpace(input.Subject)
	if subject == "" {
		return nil, domain.ErrSubjectRequired
	}
	date, err := domain.ParseActivityDate(input.Date)
	if err != nil {
		return nil, err
	}

	// 4. Формируем список гостей
	activity := &domain.Activity{
		ID:             domain.NewID(),
		Subject:        subject,
		Type:           domain.ParseActivityType(input.ActivityType),
		HostingTeamID:  hosting.ID,
		OpponentTeamID: opponent.ID,
		Date:           date,
		Location:       strings.TrimSpace(input.Location),
		Guests:         domain.BuildRoster(hosting, opponent),
	}

	// 5. Сохраняем вместе со ссылками в списках команд
	if err := uc.activityRepo.Create(ctx, activity); err != nil {
		return nil, err
	}

	uc.publish(ctx, domain.EventActivityCreated, callerID, hosting.ID, activity.ID, "")
	return uc.teamActivities(ctx, hosting.ID)
}

// ListActivities возвращает активности команды её участникам и менеджеру.
func (uc *ActivityUseCase) ListActivities(ctx context.Context, callerID, teamName string) ([]*domain.ActivityView, error) {
	if callerID == "" {
		return nil, domain.ErrUnauthorized
	}

	team, err := uc.teamByName(ctx, teamName)
	if err != nil {
		return nil, err
	}
	if !domain.RequireManager(team, callerID) && team.StateOf(callerID) != domain.Member {
		return nil, domain.ErrNotTeamMember
	}

	return uc.projector.activities(ctx, team.Activities)
}

// AddActivity добавляет существующую активность в список команды. Список гостей не меняется.
func (uc *ActivityUseCase) AddActivity(ctx context.Context, callerID, teamName, activityID string) ([]*domain.ActivityView, error) {
	if callerID == "" {
		return nil, domain.ErrUnauthorized
	}

	team, err := uc.teamByName(ctx, teamName)
	if err != nil {
		return nil, err
	}
	if !domain.RequireManager(team, callerID) {
		return nil, domain.ErrForbidden
	}
	if !domain.ValidID(activityID) {
		return nil, domain.ErrInvalidActivityID
	}

	if _, err := uc.activityRepo.GetByID(ctx, activityID); err != nil {
		return nil, err
	}
	if err := uc.activityRepo.Link(ctx, activityID, team.ID); err != nil {
		return nil, err
	}

	uc.publish(ctx, domain.EventActivityLinked, callerID, team.ID, activityID, "")
	return uc.teamActivities(ctx, team.ID)
}

// UpdateActivity меняет поля активности. Новый список гостей проверяется
// целиком до любых изменений; первая некорректная запись прерывает операцию.
func (uc *ActivityUseCase) UpdateActivity(ctx context.Context, callerID string, input domain.UpdateActivityInput) ([]*domain.ActivityView, error) {
	if callerID == "" {
		return nil, domain.ErrUnauthorized
	}

	hosting, err := uc.teamByName(ctx, input.Team)
	if err != nil {
		return nil, err
	}
	if !domain.RequireManager(hosting, callerID) {
		return nil, domain.ErrForbidden
	}

	activity, err := uc.hostedActivity(ctx, hosting, input.ActivityID)
	if err != nil {
		return nil, err
	}

	updated := *activity
	updated.Guests = append([]domain.Guest(nil), activity.Guests...)

	if input.Subject != nil {
		subject := strings.TrimSpace(*input.Subject)
		if subject == "" {
			return nil, domain.ErrSubjectRequired
		}
		updated.Subject = subject
	}
	if input.ActivityType != nil {
		updated.Type = domain.ParseActivityType(*input.ActivityType)
	}
	if input.Opponent != nil {
		updated.OpponentTeamID = hosting.ID
		if strings.TrimSpace(*input.Opponent) != "" {
			opponent, err := uc.teamByName(ctx, *input.Opponent)
			if err != nil {
				return nil, err
			}
			updated.OpponentTeamID = opponent.ID
		}
	}
	if input.Date != nil {
		date, err := domain.ParseActivityDate(*input.Date)
		if err != nil {
			return nil, err
		}
		updated.Date = date
	}
	if input.Location != nil {
		updated.Location = strings.TrimSpace(*input.Location)
	}
	if input.Guests != nil {
		guests, err := uc.validateGuests(ctx, input.Guests)
		if err != nil {
			return nil, err
		}
		updated.Guests = guests
	}

	if err := uc.activityRepo.Update(ctx, &updated, activity.OpponentTeamID); err != nil {
		return nil, err
	}

	uc.publish(ctx, domain.EventActivityUpdated, callerID, hosting.ID, activity.ID, "")
	return uc.teamActivities(ctx, hosting.ID)
}

// SetAttendance меняет отметку присутствия одного гостя, не затрагивая остальных.
func (uc *ActivityUseCase) SetAttendance(ctx context.Context, callerID, activityID, userID string, attendance *bool) (*domain.ActivityView, error) {
	if callerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if !domain.ValidID(activityID) {
		return nil, domain.ErrInvalidActivityID
	}
	if !domain.ValidID(userID) {
		return nil, domain.ErrInvalidUserID
	}
	if attendance == nil {
		return nil, domain.ErrInvalidAttendance
	}

	activity, err := uc.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if activity.GuestIndex(userID) < 0 {
		return nil, domain.ErrGuestNotFound
	}

	if err := uc.activityRepo.SetAttendance(ctx, activityID, userID, *attendance); err != nil {
		return nil, err
	}

	updated, err := uc.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, domain.EventAttendanceUpdated, callerID, updated.HostingTeamID, activityID, userID)
	return uc.projector.activity(ctx, updated)
}

// DeleteActivity удаляет активность принимающей команды.
func (uc *ActivityUseCase) DeleteActivity(ctx context.Context, callerID, teamName, activityID string) error {
	if callerID == "" {
		return domain.ErrUnauthorized
	}

	hosting, err := uc.teamByName(ctx, teamName)
	if err != nil {
		return err
	}
	if !domain.RequireManager(hosting, callerID) {
		return domain.ErrForbidden
	}

	activity, err := uc.hostedActivity(ctx, hosting, activityID)
	if err != nil {
		return err
	}

	if err := uc.activityRepo.Delete(ctx, activity); err != nil {
		return err
	}

	uc.publish(ctx, domain.EventActivityDeleted, callerID, hosting.ID, activity.ID, "")
	return nil
}

// validateGuests проверяет записи по порядку и возвращает ошибку первой некорректной.
func (uc *ActivityUseCase) validateGuests(ctx context.Context, input []domain.GuestInput) ([]domain.Guest, error) {
	ids := make([]string, 0, len(input))
	for _, g := range input {
		if domain.ValidID(g.UserID) {
			ids = append(ids, g.UserID)
		}
	}

	known := make(map[string]struct{}, len(ids))
	if len(ids) > 0 {
		users, err := uc.userRepo.GetByIDs(ctx, unique(ids))
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			known[u.ID] = struct{}{}
		}
	}

	seen := make(map[string]struct{}, len(input))
	guests := make([]domain.Guest, 0, len(input))
	for i, g := range input {
		if !domain.ValidID(g.UserID) {
			return nil, fmt.Errorf("guest %d: %w", i, domain.ErrInvalidGuest)
		}
		if g.Attendance == nil {
			return nil, fmt.Errorf("guest %d: %w", i, domain.ErrInvalidAttendance)
		}
		if _, ok := seen[g.UserID]; ok {
			return nil, fmt.Errorf("guest %d: %w", i, domain.ErrDuplicateGuest)
		}
		if _, ok := known[g.UserID]; !ok {
			return nil, fmt.Errorf("guest %d: %w", i, domain.ErrUserNotFound)
		}
		seen[g.UserID] = struct{}{}
		guests = append(guests, domain.Guest{UserID: g.UserID, Attendance: *g.Attendance})
	}
	return guests, nil
}

// hostedActivity находит активность и проверяет, что её принимает указанная команда.
func (uc *ActivityUseCase) hostedActivity(ctx context.Context, hosting *domain.Team, activityID string) (*domain.Activity, error) {
	if !domain.ValidID(activityID) {
		return nil, domain.ErrInvalidActivityID
	}

	activity, err := uc.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if activity.HostingTeamID != hosting.ID {
		return nil, domain.ErrActivityNotFound
	}
	return activity, nil
}

func (uc *ActivityUseCase) teamByName(ctx context.Context, name string) (*domain.Team, error) {
	name = domain.CanonicalName(name)
	if name == "" {
		return nil, domain.ErrInvalidTeamName
	}
	return uc.teamRepo.GetByName(ctx, name)
}

// teamActivities возвращает раскрытый список активностей команды после изменения.
func (uc *ActivityUseCase) teamActivities(ctx context.Context, teamID string) ([]*domain.ActivityView, error) {
	team, err := uc.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return uc.projector.activities(ctx, team.Activities)
}

func (uc *ActivityUseCase) publish(ctx context.Context, eventType domain.EventType, actorID, teamID, activityID, userID string) {
	uc.publisher.Publish(ctx, domain.Event{
		Type:       eventType,
		ActorID:    actorID,
		TeamID:     teamID,
		ActivityID: activityID,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
	})
}
