package api

import (
	"context"
	"fmt"
)

// Bootstrap seeds the administrator account through a short-lived session.
// It is safe to call on every start.
func Bootstrap(ctx context.Context, deps Dependencies) error {
	sess, err := deps.Sessions.Open(ctx)
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	defer func() { _ = sess.Close() }()

	if _, err := deps.Auth.Bootstrap(ctx, sess); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	return nil
}
