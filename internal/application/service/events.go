package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	ActionProfileCreated = "profile.created"
	ActionProfileUpdated = "profile.updated"
	ActionProjectAdded   = "project.added"
	ActionProjectUpdated = "project.updated"
	ActionProjectDeleted = "project.deleted"
)

// ProfileEvent is emitted after every successful mutation. Publishing is
// best-effort: a broker failure never fails the request.
type ProfileEvent struct {
	Action     string    `json:"action"`
	ProfileID  uuid.UUID `json:"profile_id"`
	Resource   string    `json:"resource"`
	ResourceID uuid.UUID `json:"resource_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type EventPublisher interface {
	PublishProfileEvent(ctx context.Context, ev ProfileEvent) error
}

// NopPublisher drops every event. Tests and broker-less deployments use it.
type NopPublisher struct{}

func (NopPublisher) PublishProfileEvent(context.Context, ProfileEvent) error { return nil }
