package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"team-roster-service/internal/database"
	"team-roster-service/internal/domain"
)

// ActivityRepository реализует взаимодействие с данными активностей в PostgreSQL.
type ActivityRepository struct {
	db      *sql.DB
	queries *database.Queries
}

// NewActivityRepository создает новый экземпляр ActivityRepository.
func NewActivityRepository(db *sql.DB, queries *database.Queries) domain.ActivityRepository {
	return &ActivityRepository{
		db:      db,
		queries: queries,
	}
}

// Create сохраняет активность, её гостей и ссылки из списков команд.
func (r *ActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	err := inTx(ctx, r.db, r.queries, func(q *database.Queries) error {
		err := q.CreateActivity(ctx, database.CreateActivityParams{
			ID:             activity.ID,
			Subject:        activity.Subject,
			ActivityType:   activity.Type.String(),
			HostingTeamID:  activity.HostingTeamID,
			OpponentTeamID: activity.OpponentTeamID,
			Date:           nullTime(activity),
			Location:       activity.Location,
		})
		if err != nil {
			return err
		}

		if err := insertGuests(ctx, q, activity); err != nil {
			return err
		}

		if err := q.LinkTeamActivity(ctx, activity.HostingTeamID, activity.ID); err != nil {
			return err
		}
		if !activity.IsSelfHosted() {
			return q.LinkTeamActivity(ctx, activity.OpponentTeamID, activity.ID)
		}
		return nil
	})
	if isForeignKeyViolation(err) {
		return domain.ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

// GetByID возвращает активность вместе с гостями.
func (r *ActivityRepository) GetByID(ctx context.Context, activityID string) (*domain.Activity, error) {
	dbActivity, err := r.queries.GetActivityByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrActivityNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	activities, err := r.withGuests(ctx, []database.Activity{dbActivity})
	if err != nil {
		return nil, err
	}
	return activities[0], nil
}

// GetByIDs возвращает активности в порядке переданных ID.
func (r *ActivityRepository) GetByIDs(ctx context.Context, activityIDs []string) ([]*domain.Activity, error) {
	if len(activityIDs) == 0 {
		return []*domain.Activity{}, nil
	}

	dbActivities, err := r.queries.GetActivitiesByIDs(ctx, activityIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get activities by ids: %w", err)
	}
	activities, err := r.withGuests(ctx, dbActivities)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Activity, len(activities))
	for _, activity := range activities {
		byID[activity.ID] = activity
	}

	ordered := make([]*domain.Activity, 0, len(activityIDs))
	for _, id := range activityIDs {
		if activity, ok := byID[id]; ok {
			ordered = append(ordered, activity)
		}
	}
	return ordered, nil
}

// Update перезаписывает поля и гостей; при смене соперника переносит ссылку.
func (r *ActivityRepository) Update(ctx context.Context, activity *domain.Activity, previousOpponentID string) error {
	err := inTx(ctx, r.db, r.queries, func(q *database.Queries) error {
		rows, err := q.UpdateActivity(ctx, database.UpdateActivityParams{
			ID:             activity.ID,
			Subject:        activity.Subject,
			ActivityType:   activity.Type.String(),
			OpponentTeamID: activity.OpponentTeamID,
			Date:           nullTime(activity),
			Location:       activity.Location,
		})
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrActivityNotFound
		}

		if err := q.DeleteActivityGuests(ctx, activity.ID); err != nil {
			return err
		}
		if err := insertGuests(ctx, q, activity); err != nil {
			return err
		}

		if previousOpponentID == activity.OpponentTeamID {
			return nil
		}
		if previousOpponentID != "" && previousOpponentID != activity.HostingTeamID {
			if err := q.UnlinkTeamActivity(ctx, previousOpponentID, activity.ID); err != nil {
				return err
			}
		}
		if !activity.IsSelfHosted() {
			return q.LinkTeamActivity(ctx, activity.OpponentTeamID, activity.ID)
		}
		return nil
	})
	if errors.Is(err, domain.ErrActivityNotFound) {
		return err
	}
	if isForeignKeyViolation(err) {
		return domain.ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}
	return nil
}

// Link добавляет активность в конец списка команды.
func (r *ActivityRepository) Link(ctx context.Context, activityID, teamID string) error {
	if err := r.queries.LinkTeamActivity(ctx, teamID, activityID); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrActivityNotFound
		}
		return fmt.Errorf("failed to link activity: %w", err)
	}
	return nil
}

// SetAttendance меняет отметку присутствия одного гостя одним запросом.
func (r *ActivityRepository) SetAttendance(ctx context.Context, activityID, userID string, attendance bool) error {
	rows, err := r.queries.SetGuestAttendance(ctx, activityID, userID, attendance)
	if err != nil {
		return fmt.Errorf("failed to set attendance: %w", err)
	}
	if rows == 0 {
		return domain.ErrGuestNotFound
	}
	return nil
}

// Delete удаляет активность; ссылки команд и гости удаляются каскадно.
func (r *ActivityRepository) Delete(ctx context.Context, activity *domain.Activity) error {
	rows, err := r.queries.DeleteActivity(ctx, activity.ID)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	if rows == 0 {
		return domain.ErrActivityNotFound
	}
	return nil
}

func (r *ActivityRepository) withGuests(ctx context.Context, dbActivities []database.Activity) ([]*domain.Activity, error) {
	activities := make([]*domain.Activity, 0, len(dbActivities))
	if len(dbActivities) == 0 {
		return activities, nil
	}

	ids := make([]string, 0, len(dbActivities))
	byID := make(map[string]*domain.Activity, len(dbActivities))
	for _, a := range dbActivities {
		activity := &domain.Activity{
			ID:             a.ID,
			Subject:        a.Subject,
			Type:           domain.ParseActivityType(a.ActivityType),
			HostingTeamID:  a.HostingTeamID,
			OpponentTeamID: a.OpponentTeamID,
			Location:       a.Location,
			Guests:         []domain.Guest{},
		}
		if a.Date.Valid {
			activity.Date = a.Date.Time.UTC()
		}
		activities = append(activities, activity)
		ids = append(ids, a.ID)
		byID[a.ID] = activity
	}

	guests, err := r.queries.GetActivityGuests(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity guests: %w", err)
	}
	for _, g := range guests {
		activity := byID[g.ActivityID]
		activity.Guests = append(activity.Guests, domain.Guest{UserID: g.UserID, Attendance: g.Attendance})
	}

	return activities, nil
}

func insertGuests(ctx context.Context, q *database.Queries, activity *domain.Activity) error {
	for i, guest := range activity.Guests {
		err := q.InsertActivityGuest(ctx, database.InsertActivityGuestParams{
			ActivityID: activity.ID,
			UserID:     guest.UserID,
			Attendance: guest.Attendance,
			Position:   int32(i),
		})
		if err != nil {
			return fmt.Errorf("failed to insert guest %s: %w", guest.UserID, err)
		}
	}
	return nil
}

func nullTime(activity *domain.Activity) sql.NullTime {
	if activity.Date.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: activity.Date, Valid: true}
}
