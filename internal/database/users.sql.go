package database

import "context"

const userColumns = `id, username, firstname, lastname, email, password_hash, avatar`

const createUser = `
INSERT INTO users (id, username, firstname, lastname, email, password_hash, avatar)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

type CreateUserParams struct {
	ID           string
	Username     string
	Firstname    string
	Lastname     string
	Email        string
	PasswordHash string
	Avatar       string
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) error {
	_, err := q.db.ExecContext(ctx, createUser,
		arg.ID,
		arg.Username,
		arg.Firstname,
		arg.Lastname,
		arg.Email,
		arg.PasswordHash,
		arg.Avatar,
	)
	return err
}

const getUserByID = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

func (q *Queries) GetUserByID(ctx context.Context, id string) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByID, id)
	var i User
	err := row.Scan(&i.ID, &i.Username, &i.Firstname, &i.Lastname, &i.Email, &i.PasswordHash, &i.Avatar)
	return i, err
}

const getUserByUsername = `SELECT ` + userColumns + ` FROM users WHERE username = $1`

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByUsername, username)
	var i User
	err := row.Scan(&i.ID, &i.Username, &i.Firstname, &i.Lastname, &i.Email, &i.PasswordHash, &i.Avatar)
	return i, err
}

const getUsersByIDs = `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1::text[])`

func (q *Queries) GetUsersByIDs(ctx context.Context, ids []string) ([]User, error) {
	return q.queryUsers(ctx, getUsersByIDs, ids)
}

const listUsers = `SELECT ` + userColumns + ` FROM users ORDER BY created_at, username`

func (q *Queries) ListUsers(ctx context.Context) ([]User, error) {
	return q.queryUsers(ctx, listUsers)
}

const userExistsByUsernameOrEmail = `
SELECT EXISTS (
    SELECT 1 FROM users
    WHERE ($1 <> '' AND username = $1) OR ($2 <> '' AND email = $2)
)
`

func (q *Queries) UserExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	row := q.db.QueryRowContext(ctx, userExistsByUsernameOrEmail, username, email)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const updateUser = `
UPDATE users
SET username = $2, firstname = $3, lastname = $4, email = $5, password_hash = $6, avatar = $7
WHERE id = $1
`

type UpdateUserParams = CreateUserParams

func (q *Queries) UpdateUser(ctx context.Context, arg UpdateUserParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateUser,
		arg.ID,
		arg.Username,
		arg.Firstname,
		arg.Lastname,
		arg.Email,
		arg.PasswordHash,
		arg.Avatar,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (q *Queries) queryUsers(ctx context.Context, query string, args ...interface{}) ([]User, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []User
	for rows.Next() {
		var i User
		if err := rows.Scan(&i.ID, &i.Username, &i.Firstname, &i.Lastname, &i.Email, &i.PasswordHash, &i.Avatar); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
