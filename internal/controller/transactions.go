package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/render"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vturenko/brokerage-admin/internal/repository"
	"github.com/vturenko/brokerage-admin/internal/service"
)

type TransactionController struct {
	txnService service.TransactionService
	logger     *zap.Logger
}

func NewTransactionController(txnService service.TransactionService, logger *zap.Logger) *TransactionController {
	return &TransactionController{
		txnService: txnService,
		logger:     logger,
	}
}

func (c *TransactionController) List(w http.ResponseWriter, r *http.Request) {
	var userID *int64
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondErr(w, r, http.StatusBadRequest, "user_id must be an integer")
			return
		}
		userID = &id
	}

	txns, err := c.txnService.List(r.Context(), userID)
	if err != nil {
		c.logger.Error("Failed to list transactions", zap.Error(err))
		respondErr(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	respondOK(w, r, http.StatusOK, txns, "")
}

func (c *TransactionController) Create(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID      int64            `json:"user_id"`
		Type        string           `json:"type"`
		Amount      *decimal.Decimal `json:"amount"`
		Description string           `json:"description"`
	}

	if err := render.DecodeJSON(r.Body, &request); err != nil {
		respondErr(w, r, http.StatusBadRequest, "invalid request format")
		return
	}
	if request.UserID == 0 || request.Type == "" || request.Amount == nil {
		respondErr(w, r, http.StatusBadRequest, "user_id, type and amount are required")
		return
	}

	txn, err := c.txnService.Add(r.Context(), request.UserID, request.Type, *request.Amount, request.Description)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingField):
			respondErr(w, r, http.StatusBadRequest, "user_id, type and amount are required")
		case errors.Is(err, repository.ErrAccountFrozen):
			respondErr(w, r, http.StatusForbidden, "account frozen")
		case errors.Is(err, repository.ErrUserNotFound):
			respondErr(w, r, http.StatusNotFound, "user not found")
		default:
			c.logger.Error("Failed to create transaction",
				zap.Int64("user_id", request.UserID),
				zap.Error(err))
			respondErr(w, r, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.logger.Info("Transaction created",
		zap.Int64("transaction_id", txn.ID),
		zap.Int64("user_id", txn.UserID),
		zap.String("type", txn.Type))
	respondOK(w, r, http.StatusCreated, txn, "transaction created")
}

func (c *TransactionController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := c.txnService.Delete(r.Context(), id); err != nil {
		c.logger.Error("Failed to delete transaction",
			zap.Int64("transaction_id", id),
			zap.Error(err))
		respondErr(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	respondOK(w, r, http.StatusOK, nil, "transaction deleted")
}
