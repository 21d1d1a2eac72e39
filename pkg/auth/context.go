package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type contextKey string

const actorKey contextKey = "actor"

// ErrActorNotFound is returned when the request carries no signed-in account.
// Handlers should return 401 when this error occurs.
var ErrActorNotFound = errors.New("actor not found in context")

// Actor is the signed-in account performing a request. Its email is recorded
// as changedBy on contract history.
type Actor struct {
	AccountID uuid.UUID
	Email     string
}

// ActorFromCtx returns the signed-in account, or ErrActorNotFound.
func ActorFromCtx(ctx context.Context) (Actor, error) {
	actor, ok := ctx.Value(actorKey).(Actor)
	if !ok || actor.Email == "" {
		return Actor{}, ErrActorNotFound
	}
	return actor, nil
}

// WithActor returns a new context carrying actor.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}
