package domain

import "github.com/google/uuid"

// NewID генерирует идентификатор для новой сущности.
func NewID() string {
	return uuid.NewString()
}

// ValidID проверяет, что идентификатор имеет корректный формат.
func ValidID(id string) bool {
	if id == "" {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
