package domain

import (
	"context"
	"time"
)

// EventType - тип доменного события.
type EventType string

const (
	EventTeamCreated       EventType = "team.created"
	EventTeamUpdated       EventType = "team.updated"
	EventTeamDeleted       EventType = "team.deleted"
	EventMemberRequested   EventType = "member.requested"
	EventMemberConfirmed   EventType = "member.confirmed"
	EventMemberRemoved     EventType = "member.removed"
	EventActivityCreated   EventType = "activity.created"
	EventActivityLinked    EventType = "activity.linked"
	EventActivityUpdated   EventType = "activity.updated"
	EventActivityDeleted   EventType = "activity.deleted"
	EventAttendanceUpdated EventType = "attendance.updated"
	EventUserRegistered    EventType = "user.registered"
)

// Event описывает зафиксированное изменение состояния.
type Event struct {
	Type       EventType
	ActorID    string
	TeamID     string
	ActivityID string
	UserID     string
	OccurredAt time.Time
}

// EventPublisher рассылает доменные события после успешной записи.
// Ошибки доставки не влияют на результат операции.
type EventPublisher interface {
	Publish(ctx context.Context, event Event)
}
