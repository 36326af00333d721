package auth

import (
	"context"

	"github.com/posdenous/kinza-backend/internal/domain/enums"
	"github.com/posdenous/kinza-backend/internal/domain/model"
)

type identityContextKey string

const identityKey identityContextKey = "auth_identity"

type Identity struct {
	UserID string
	CityID string
	Role   enums.Role
}

// User maps the authenticated identity onto the shape the rule
// services consume.
func (i Identity) User() model.User {
	return model.User{ID: i.UserID, CityID: i.CityID, Role: i.Role}
}

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}
