package database

import (
	"context"

	"restaurant_ordering/model"
	"restaurant_ordering/ordering"

	"go.uber.org/zap"
)

// SeedAdmin registers the configured administrator when no account exists
// yet. It goes through normal registration, so the first-account rule makes
// it an Admin.
func SeedAdmin(ctx context.Context, svc *ordering.Service, accounts ordering.AccountStore, email, name, password string, logger *zap.Logger) {
	if email == "" || password == "" {
		return
	}
	count, err := accounts.CountAccounts(ctx)
	if err != nil {
		logger.Warn("failed to count accounts for seeding", zap.Error(err))
		return
	}
	if count > 0 {
		return
	}
	account, err := svc.RegisterAccount(ctx, model.RegisterInput{
		Email:       email,
		DisplayName: name,
		Password:    password,
		Confirm:     password,
	})
	if err != nil {
		logger.Warn("failed to seed admin account", zap.String("email", email), zap.Error(err))
		return
	}
	logger.Info("seeded admin account", zap.Uint("account_id", account.ID), zap.String("role", string(account.Role)))
}
