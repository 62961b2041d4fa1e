package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/vturenko/brokerage-admin/internal/model"
	"github.com/vturenko/brokerage-admin/internal/repository"
)

var (
	ErrMissingField   = errors.New("missing required field")
	ErrInvalidBalance = errors.New("balance must be numeric")
	ErrNoFields       = errors.New("no valid fields to update")
)

type UserService interface {
	List(ctx context.Context, usernameFilter string) ([]*model.User, error)
	Create(ctx context.Context, username, password string, balance decimal.Decimal, broker string, isFrozen bool) (*model.User, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) (*model.User, error)
	ResetPassword(ctx context.Context, id int64, newPassword string) error
	Delete(ctx context.Context, id int64) error
	SetFrozen(ctx context.Context, id int64, frozen bool) error
	AssignBroker(ctx context.Context, id int64, broker string) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context, usernameFilter string) ([]*model.User, error) {
	return s.userRepo.List(ctx, usernameFilter)
}

func (s *userService) Create(ctx context.Context, username, password string, balance decimal.Decimal, broker string, isFrozen bool) (*model.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingField
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
		Balance:      balance,
		Broker:       broker,
		IsFrozen:     isFrozen,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Update builds a column patch from the request body, keeping only the four
// updatable fields. Anything else in the body is ignored; an empty result
// after filtering is reported as ErrNoFields.
func (s *userService) Update(ctx context.Context, id int64, fields map[string]interface{}) (*model.User, error) {
	patch := make(map[string]interface{})

	if raw, ok := fields["balance"]; ok {
		balance, err := coerceBalance(raw)
		if err != nil {
			return nil, ErrInvalidBalance
		}
		patch["balance"] = balance
	}
	if raw, ok := fields["username"]; ok {
		username, ok := raw.(string)
		if !ok || username == "" {
			return nil, ErrMissingField
		}
		patch["username"] = username
	}
	if raw, ok := fields["broker"]; ok {
		broker, ok := raw.(string)
		if !ok {
			return nil, ErrNoFields
		}
		patch["broker"] = broker
	}
	if raw, ok := fields["is_frozen"]; ok {
		frozen, ok := raw.(bool)
		if !ok {
			return nil, ErrNoFields
		}
		patch["is_frozen"] = frozen
	}

	if len(patch) == 0 {
		return nil, ErrNoFields
	}

	return s.userRepo.Update(ctx, id, patch)
}

func (s *userService) ResetPassword(ctx context.Context, id int64, newPassword string) error {
	if newPassword == "" {
		return ErrMissingField
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.SetPassword(ctx, id, string(hashedPassword))
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	return s.userRepo.Delete(ctx, id)
}

func (s *userService) SetFrozen(ctx context.Context, id int64, frozen bool) error {
	return s.userRepo.SetFrozen(ctx, id, frozen)
}

func (s *userService) AssignBroker(ctx context.Context, id int64, broker string) error {
	return s.userRepo.SetBroker(ctx, id, broker)
}

// coerceBalance accepts the number and string encodings the admin UI sends.
func coerceBalance(raw interface{}) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case json.Number:
		return decimal.NewFromString(v.String())
	case string:
		return decimal.NewFromString(v)
	default:
		return decimal.Zero, fmt.Errorf("unsupported balance type %T", raw)
	}
}
