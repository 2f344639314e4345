package database

import "context"

const teamColumns = `id, name, sport, manager_id, invite_code`

const createTeam = `
INSERT INTO teams (id, name, sport, manager_id, invite_code)
VALUES ($1, $2, $3, $4, $5)
`

type CreateTeamParams struct {
	ID         string
	Name       string
	Sport      string
	ManagerID  string
	InviteCode string
}

func (q *Queries) CreateTeam(ctx context.Context, arg CreateTeamParams) error {
	_, err := q.db.ExecContext(ctx, createTeam, arg.ID, arg.Name, arg.Sport, arg.ManagerID, arg.InviteCode)
	return err
}

const getTeamByID = `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`

func (q *Queries) GetTeamByID(ctx context.Context, id string) (Team, error) {
	return q.queryTeam(ctx, getTeamByID, id)
}

const getTeamByName = `SELECT ` + teamColumns + ` FROM teams WHERE name = $1`

func (q *Queries) GetTeamByName(ctx context.Context, name string) (Team, error) {
	return q.queryTeam(ctx, getTeamByName, name)
}

const getTeamByInviteCode = `SELECT ` + teamColumns + ` FROM teams WHERE invite_code = $1`

func (q *Queries) GetTeamByInviteCode(ctx context.Context, inviteCode string) (Team, error) {
	return q.queryTeam(ctx, getTeamByInviteCode, inviteCode)
}

const getTeamByManager = `SELECT ` + teamColumns + ` FROM teams WHERE manager_id = $1 ORDER BY created_at LIMIT 1`

func (q *Queries) GetTeamByManager(ctx context.Context, managerID string) (Team, error) {
	return q.queryTeam(ctx, getTeamByManager, managerID)
}

const getTeamsByIDs = `SELECT ` + teamColumns + ` FROM teams WHERE id = ANY($1::text[])`

func (q *Queries) GetTeamsByIDs(ctx context.Context, ids []string) ([]Team, error) {
	return q.queryTeams(ctx, getTeamsByIDs, ids)
}

const listTeams = `SELECT ` + teamColumns + ` FROM teams ORDER BY created_at, name`

func (q *Queries) ListTeams(ctx context.Context) ([]Team, error) {
	return q.queryTeams(ctx, listTeams)
}

const listTeamsByMember = `
SELECT t.id, t.name, t.sport, t.manager_id, t.invite_code
FROM teams t
JOIN team_memberships m ON m.team_id = t.id
WHERE m.user_id = $1 AND m.state = 'member'
ORDER BY t.created_at, t.name
`

func (q *Queries) ListTeamsByMember(ctx context.Context, userID string) ([]Team, error) {
	return q.queryTeams(ctx, listTeamsByMember, userID)
}

const teamExistsByName = `SELECT EXISTS (SELECT 1 FROM teams WHERE name = $1)`

func (q *Queries) TeamExistsByName(ctx context.Context, name string) (bool, error) {
	row := q.db.QueryRowContext(ctx, teamExistsByName, name)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const teamExistsByInviteCode = `SELECT EXISTS (SELECT 1 FROM teams WHERE invite_code = $1)`

func (q *Queries) TeamExistsByInviteCode(ctx context.Context, inviteCode string) (bool, error) {
	row := q.db.QueryRowContext(ctx, teamExistsByInviteCode, inviteCode)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const updateTeamDetails = `UPDATE teams SET name = $2, sport = $3 WHERE id = $1`

func (q *Queries) UpdateTeamDetails(ctx context.Context, id, name, sport string) (int64, error) {
	return q.exec(ctx, updateTeamDetails, id, name, sport)
}

const deleteTeam = `DELETE FROM teams WHERE id = $1`

func (q *Queries) DeleteTeam(ctx context.Context, id string) (int64, error) {
	return q.exec(ctx, deleteTeam, id)
}

const getTeamMemberships = `
SELECT team_id, user_id, state
FROM team_memberships
WHERE team_id = ANY($1::text[])
ORDER BY position
`

func (q *Queries) GetTeamMemberships(ctx context.Context, teamIDs []string) ([]TeamMembership, error) {
	rows, err := q.db.QueryContext(ctx, getTeamMemberships, teamIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []TeamMembership
	for rows.Next() {
		var i TeamMembership
		if err := rows.Scan(&i.TeamID, &i.UserID, &i.State); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getTeamActivities = `
SELECT team_id, activity_id
FROM team_activities
WHERE team_id = ANY($1::text[])
ORDER BY position
`

func (q *Queries) GetTeamActivities(ctx context.Context, teamIDs []string) ([]TeamActivity, error) {
	rows, err := q.db.QueryContext(ctx, getTeamActivities, teamIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []TeamActivity
	for rows.Next() {
		var i TeamActivity
		if err := rows.Scan(&i.TeamID, &i.ActivityID); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const addMembership = `
INSERT INTO team_memberships (team_id, user_id, state)
VALUES ($1, $2, $3)
ON CONFLICT (team_id, user_id) DO NOTHING
`

type AddMembershipParams struct {
	TeamID string
	UserID string
	State  string
}

func (q *Queries) AddMembership(ctx context.Context, arg AddMembershipParams) (int64, error) {
	return q.exec(ctx, addMembership, arg.TeamID, arg.UserID, arg.State)
}

// Подтверждённый участник переносится в конец списка участников.
const confirmMembership = `
UPDATE team_memberships
SET state = 'member', position = nextval('membership_position_seq')
WHERE team_id = $1 AND user_id = $2 AND state = 'pending'
`

func (q *Queries) ConfirmMembership(ctx context.Context, teamID, userID string) (int64, error) {
	return q.exec(ctx, confirmMembership, teamID, userID)
}

const deleteMembership = `
DELETE FROM team_memberships m
USING teams t
WHERE m.team_id = t.id AND m.team_id = $1 AND m.user_id = $2 AND t.manager_id <> $2
`

func (q *Queries) DeleteMembership(ctx context.Context, teamID, userID string) (int64, error) {
	return q.exec(ctx, deleteMembership, teamID, userID)
}

func (q *Queries) queryTeam(ctx context.Context, query string, args ...interface{}) (Team, error) {
	row := q.db.QueryRowContext(ctx, query, args...)
	var i Team
	err := row.Scan(&i.ID, &i.Name, &i.Sport, &i.ManagerID, &i.InviteCode)
	return i, err
}

func (q *Queries) queryTeams(ctx context.Context, query string, args ...interface{}) ([]Team, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Team
	for rows.Next() {
		var i Team
		if err := rows.Scan(&i.ID, &i.Name, &i.Sport, &i.ManagerID, &i.InviteCode); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (q *Queries) exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	result, err := q.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
