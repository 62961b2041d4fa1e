package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/vturenko/brokerage-admin/internal/model"
	"github.com/vturenko/brokerage-admin/internal/repository"
)

type TransactionService interface {
	Add(ctx context.Context, userID int64, txType string, amount decimal.Decimal, description string) (*model.Transaction, error)
	List(ctx context.Context, userID *int64) ([]*model.Transaction, error)
	Delete(ctx context.Context, id int64) error
}

type transactionService struct {
	txnRepo repository.TransactionRepository
}

func NewTransactionService(txnRepo repository.TransactionRepository) TransactionService {
	return &transactionService{txnRepo: txnRepo}
}

func (s *transactionService) Add(ctx context.Context, userID int64, txType string, amount decimal.Decimal, description string) (*model.Transaction, error) {
	if userID == 0 || txType == "" {
		return nil, ErrMissingField
	}

	txn := &model.Transaction{
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Description: description,
	}

	if err := s.txnRepo.CreateIfActive(ctx, txn); err != nil {
		return nil, err
	}

	return txn, nil
}

func (s *transactionService) List(ctx context.Context, userID *int64) ([]*model.Transaction, error) {
	return s.txnRepo.List(ctx, userID)
}

func (s *transactionService) Delete(ctx context.Context, id int64) error {
	return s.txnRepo.Delete(ctx, id)
}
