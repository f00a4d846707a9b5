// Package usecase implements the application services of the ad engine.
// Services orchestrate domain rules and the outbound ports; they hold no
// state of their own beyond their collaborators.
package usecase

import (
	"time"

	"github.com/google/uuid"

	"adserve/internal/core/domain"
)

func utcNow() time.Time {
	return time.Now().UTC()
}

// authorize returns a forbidden error unless actor may act for owner.
func authorize(actor domain.Actor, owner uuid.UUID, what string) error {
	if !actor.CanAccess(owner) {
		return domain.NewForbiddenError("not allowed to access this " + what)
	}
	return nil
}

func requireAdmin(actor domain.Actor) error {
	if !actor.IsAdmin() {
		return domain.NewForbiddenError("admin role required")
	}
	return nil
}

// scope limits listings to the actor's own rows unless the actor is admin.
func scope(actor domain.Actor) *uuid.UUID {
	if actor.IsAdmin() {
		return nil
	}
	id := actor.ID
	return &id
}
