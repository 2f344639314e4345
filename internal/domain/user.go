package domain

import (
	"context"
	"fmt"
)

// User представляет зарегистрированного пользователя.
type User struct {
	ID           string
	Username     string
	Firstname    string
	Lastname     string
	Email        string
	PasswordHash string
	Avatar       string
}

// DefaultAvatarURL возвращает URL случайного аватара для нового пользователя.
func DefaultAvatarURL(lock int) string {
	return fmt.Sprintf("https://loremflickr.com/640/480/people?lock=%d", lock)
}

// UserRepository определяет контракт для работы с хранилищем пользователей.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	// GetByIDs возвращает найденных пользователей в порядке переданных ID, отсутствующие пропускаются.
	GetByIDs(ctx context.Context, userIDs []string) ([]*User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, user *User) error
}

// PasswordHasher скрывает алгоритм хеширования паролей.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer выпускает токены доступа для аутентифицированных пользователей.
type TokenIssuer interface {
	Issue(user *User) (string, error)
}
