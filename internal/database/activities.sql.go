package database

import (
	"context"
	"database/sql"
)

const activityColumns = `id, subject, activity_type, hosting_team_id, opponent_team_id, date, location`

const createActivity = `
INSERT INTO activities (id, subject, activity_type, hosting_team_id, opponent_team_id, date, location)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

type CreateActivityParams struct {
	ID             string
	Subject        string
	ActivityType   string
	HostingTeamID  string
	OpponentTeamID string
	Date           sql.NullTime
	Location       string
}

func (q *Queries) CreateActivity(ctx context.Context, arg CreateActivityParams) error {
	_, err := q.db.ExecContext(ctx, createActivity,
		arg.ID,
		arg.Subject,
		arg.ActivityType,
		arg.HostingTeamID,
		arg.OpponentTeamID,
		arg.Date,
		arg.Location,
	)
	return err
}

const updateActivity = `
UPDATE activities
SET subject = $2, activity_type = $3, opponent_team_id = $4, date = $5, location = $6
WHERE id = $1
`

type UpdateActivityParams struct {
	ID             string
	Subject        string
	ActivityType   string
	OpponentTeamID string
	Date           sql.NullTime
	Location       string
}

func (q *Queries) UpdateActivity(ctx context.Context, arg UpdateActivityParams) (int64, error) {
	return q.exec(ctx, updateActivity,
		arg.ID,
		arg.Subject,
		arg.ActivityType,
		arg.OpponentTeamID,
		arg.Date,
		arg.Location,
	)
}

const getActivityByID = `SELECT ` + activityColumns + ` FROM activities WHERE id = $1`

func (q *Queries) GetActivityByID(ctx context.Context, id string) (Activity, error) {
	row := q.db.QueryRowContext(ctx, getActivityByID, id)
	var i Activity
	err := row.Scan(&i.ID, &i.Subject, &i.ActivityType, &i.HostingTeamID, &i.OpponentTeamID, &i.Date, &i.Location)
	return i, err
}

const getActivitiesByIDs = `SELECT ` + activityColumns + ` FROM activities WHERE id = ANY($1::text[])`

func (q *Queries) GetActivitiesByIDs(ctx context.Context, ids []string) ([]Activity, error) {
	rows, err := q.db.QueryContext(ctx, getActivitiesByIDs, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Activity
	for rows.Next() {
		var i Activity
		if err := rows.Scan(&i.ID, &i.Subject, &i.ActivityType, &i.HostingTeamID, &i.OpponentTeamID, &i.Date, &i.Location); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteActivity = `DELETE FROM activities WHERE id = $1`

func (q *Queries) DeleteActivity(ctx context.Context, id string) (int64, error) {
	return q.exec(ctx, deleteActivity, id)
}

// Ссылка добавляется только если команда ещё существует.
const linkTeamActivity = `
INSERT INTO team_activities (team_id, activity_id)
SELECT id, $2 FROM teams WHERE id = $1
ON CONFLICT (team_id, activity_id) DO NOTHING
`

func (q *Queries) LinkTeamActivity(ctx context.Context, teamID, activityID string) error {
	_, err := q.db.ExecContext(ctx, linkTeamActivity, teamID, activityID)
	return err
}

const unlinkTeamActivity = `DELETE FROM team_activities WHERE team_id = $1 AND activity_id = $2`

func (q *Queries) UnlinkTeamActivity(ctx context.Context, teamID, activityID string) error {
	_, err := q.db.ExecContext(ctx, unlinkTeamActivity, teamID, activityID)
	return err
}

const insertActivityGuest = `
INSERT INTO activity_guests (activity_id, user_id, attendance, position)
VALUES ($1, $2, $3, $4)
`

type InsertActivityGuestParams struct {
	ActivityID string
	UserID     string
	Attendance bool
	Position   int32
}

func (q *Queries) InsertActivityGuest(ctx context.Context, arg InsertActivityGuestParams) error {
	_, err := q.db.ExecContext(ctx, insertActivityGuest, arg.ActivityID, arg.UserID, arg.Attendance, arg.Position)
	return err
}

const deleteActivityGuests = `DELETE FROM activity_guests WHERE activity_id = $1`

func (q *Queries) DeleteActivityGuests(ctx context.Context, activityID string) error {
	_, err := q.db.ExecContext(ctx, deleteActivityGuests, activityID)
	return err
}

const getActivityGuests = `
SELECT activity_id, user_id, attendance, position
FROM activity_guests
WHERE activity_id = ANY($1::text[])
ORDER BY activity_id, position
`

func (q *Queries) GetActivityGuests(ctx context.Context, activityIDs []string) ([]ActivityGuest, error) {
	rows, err := q.db.QueryContext(ctx, getActivityGuests, activityIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ActivityGuest
	for rows.Next() {
		var i ActivityGuest
		if err := rows.Scan(&i.ActivityID, &i.UserID, &i.Attendance, &i.Position); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const setGuestAttendance = `
UPDATE activity_guests
SET attendance = $3
WHERE activity_id = $1 AND user_id = $2
`

func (q *Queries) SetGuestAttendance(ctx context.Context, activityID, userID string, attendance bool) (int64, error) {
	return q.exec(ctx, setGuestAttendance, activityID, userID, attendance)
}
