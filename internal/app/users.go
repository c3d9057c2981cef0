// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/quote-digest/internal/domain"
	"github.com/jsamuelsen/quote-digest/internal/platform/logging"
	"github.com/jsamuelsen/quote-digest/internal/ports"
)

// opCreateUser is the caller-facing operation name for user resolution failures.
const opCreateUser = "create user account"

// resolveUser finds the user for email or creates it.
//
// The lookup and insert are not atomic. When two first-time submissions race,
// the loser's insert hits the unique email constraint and comes back as
// domain.ErrConflict; that is treated as "someone else created it" and the
// user is read again. Any other failure is a StorageError.
func resolveUser(ctx context.Context, users ports.UserStore, logger *slog.Logger, email string) (*domain.User, error) {
	user, err := users.FindUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}

	if !domain.IsNotFound(err) {
		return nil, domain.NewStorageError(opCreateUser, err)
	}

	user, err = users.CreateUser(ctx, email)
	if err == nil {
		logger.InfoContext(ctx, "created user",
			slog.String("user_id", user.ID),
			slog.String("email", logging.MaskEmail(email)),
		)

		return user, nil
	}

	if !domain.IsConflict(err) {
		return nil, domain.NewStorageError(opCreateUser, err)
	}

	logger.DebugContext(ctx, "user created concurrently, reading it back",
		slog.String("email", logging.MaskEmail(email)),
	)

	user, err = users.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, domain.NewStorageError(opCreateUser, err)
	}

	return user, nil
}
