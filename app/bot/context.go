package bot

import (
	"context"

	"github.com/jobnest/jobnest/app/store"
)

type userKey struct{}

func userFromContext(ctx context.Context) (store.User, bool) {
	u, ok := ctx.Value(userKey{}).(store.User)
	return u, ok
}

func contextWithUser(ctx context.Context, u store.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// mustUser returns the user registered by ensureRegistered.
func mustUser(ctx context.Context) store.User {
	u, ok := userFromContext(ctx)
	if !ok {
		panic("no user in context")
	}
	return u
}
