package mocks

import (
	"context"

	"team-roster-service/internal/domain"

	"github.com/stretchr/testify/mock"
)

// EventPublisher - мок domain.EventPublisher.
type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) Publish(ctx context.Context, event domain.Event) {
	m.Called(ctx, event)
}

// PasswordHasher - мок domain.PasswordHasher.
type PasswordHasher struct {
	mock.Mock
}

func (m *PasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Compare(hash, password string) error {
	args := m.Called(hash, password)
	return args.Error(0)
}

// TokenIssuer - мок domain.TokenIssuer.
type TokenIssuer struct {
	mock.Mock
}

func (m *TokenIssuer) Issue(user *domain.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}
