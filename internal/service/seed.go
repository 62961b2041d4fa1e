package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/vturenko/brokerage-admin/internal/model"
	"github.com/vturenko/brokerage-admin/internal/repository"
)

const (
	seedUsername = "testuser"
	seedPassword = "test1234"
)

var seedBalance = decimal.NewFromInt(1000)

// Seeder makes sure a known test account exists at startup. It never fails
// the boot: every error is logged and swallowed.
type Seeder struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

func NewSeeder(userRepo repository.UserRepository, logger *zap.Logger) *Seeder {
	return &Seeder{userRepo: userRepo, logger: logger}
}

func (s *Seeder) EnsureTestAccount(ctx context.Context) {
	existing, err := s.userRepo.GetByUsername(ctx, seedUsername)
	if err != nil {
		s.logger.Warn("Seed lookup failed", zap.Error(err))
		return
	}
	if existing != nil {
		s.logger.Debug("Seed account already present",
			zap.String("username", seedUsername))
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Warn("Seed password hashing failed", zap.Error(err))
		return
	}

	user := &model.User{
		Username:     seedUsername,
		PasswordHash: string(hashedPassword),
		Balance:      seedBalance,
	}

	err = s.userRepo.Create(ctx, user)
	switch {
	case err == nil:
		s.logger.Info("Seed account created",
			zap.String("username", seedUsername),
			zap.Int64("user_id", user.ID))
	case errors.Is(err, repository.ErrUsernameTaken):
		// Another instance seeded first; that is the desired end state.
		s.logger.Debug("Seed account created concurrently",
			zap.String("username", seedUsername))
	default:
		s.logger.Warn("Seed insert failed", zap.Error(err))
	}
}
