package ordering

import (
	"context"
	"fmt"
	"strings"

	"restaurant_ordering/model"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RoleForNewAccount: the very first account administers the system.
func RoleForNewAccount(existing int64) model.Role {
	if existing == 0 {
		return model.RoleAdmin
	}
	return model.RoleCustomer
}

func (s *Service) RegisterAccount(ctx context.Context, in model.RegisterInput) (*model.Account, error) {
	if err := ValidateStruct(in); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.passwordCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	account := &model.Account{
		Email:        normalizeEmail(in.Email),
		DisplayName:  strings.TrimSpace(in.DisplayName),
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: string(hash),
	}

	err = s.accounts.AccountTransaction(ctx, func(tx AccountStore) error {
		if _, err := tx.FindAccountByEmail(ctx, account.Email); err == nil {
			return ErrEmailTaken
		} else if !isNotFound(err) {
			return err
		}
		count, err := tx.CountAccounts(ctx)
		if err != nil {
			return err
		}
		account.Role = RoleForNewAccount(count)
		return tx.CreateAccount(ctx, account)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("account registered", zap.Uint("account_id", account.ID), zap.String("role", string(account.Role)))
	return account, nil
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (*model.Account, error) {
	account, err := s.accounts.FindAccountByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return account, nil
}

func (s *Service) LookupAccount(ctx context.Context, id uint) (*model.Account, error) {
	return s.accounts.GetAccount(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
