package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"team-roster-service/internal/database"
	"team-roster-service/internal/domain"
)

// UserRepository реализует взаимодействие с данными пользователей в PostgreSQL.
type UserRepository struct {
	queries *database.Queries
}

// NewUserRepository создает новый экземпляр UserRepository.
func NewUserRepository(queries *database.Queries) domain.UserRepository {
	return &UserRepository{
		queries: queries,
	}
}

// Create сохраняет нового пользователя.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.queries.CreateUser(ctx, toUserParams(user))
	if _, ok := uniqueConstraint(err); ok {
		return domain.ErrUserAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID возвращает пользователя по ID.
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	dbUser, err := r.queries.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toDomainUser(dbUser), nil
}

// GetByUsername возвращает пользователя по имени.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	dbUser, err := r.queries.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return toDomainUser(dbUser), nil
}

// GetByIDs возвращает пользователей в порядке переданных ID.
func (r *UserRepository) GetByIDs(ctx context.Context, userIDs []string) ([]*domain.User, error) {
	if len(userIDs) == 0 {
		return []*domain.User{}, nil
	}

	dbUsers, err := r.queries.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get users by ids: %w", err)
	}

	byID := make(map[string]database.User, len(dbUsers))
	for _, dbUser := range dbUsers {
		byID[dbUser.ID] = dbUser
	}

	users := make([]*domain.User, 0, len(userIDs))
	for _, id := range userIDs {
		if dbUser, ok := byID[id]; ok {
			users = append(users, toDomainUser(dbUser))
		}
	}
	return users, nil
}

// ExistsByUsernameOrEmail проверяет, занято ли имя или email. Пустые значения не проверяются.
func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	exists, err := r.queries.UserExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

// List возвращает всех пользователей.
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	dbUsers, err := r.queries.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*domain.User, 0, len(dbUsers))
	for _, dbUser := range dbUsers {
		users = append(users, toDomainUser(dbUser))
	}
	return users, nil
}

// Update перезаписывает профиль пользователя.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	rows, err := r.queries.UpdateUser(ctx, toUserParams(user))
	if _, ok := uniqueConstraint(err); ok {
		return domain.ErrUserAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func toUserParams(user *domain.User) database.CreateUserParams {
	return database.CreateUserParams{
		ID:           user.ID,
		Username:     user.Username,
		Firstname:    user.Firstname,
		Lastname:     user.Lastname,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Avatar:       user.Avatar,
	}
}

func toDomainUser(dbUser database.User) *domain.User {
	return &domain.User{
		ID:           dbUser.ID,
		Username:     dbUser.Username,
		Firstname:    dbUser.Firstname,
		Lastname:     dbUser.Lastname,
		Email:        dbUser.Email,
		PasswordHash: dbUser.PasswordHash,
		Avatar:       dbUser.Avatar,
	}
}
