package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/vturenko/brokerage-admin/internal/repository"
	"github.com/vturenko/brokerage-admin/internal/service"
)

// AccountController carries the legacy account-admin routes: freeze/unfreeze
// toggles and broker assignment, responding with the human-readable status
// messages the admin console displays.
type AccountController struct {
	userService service.UserService
	logger      *zap.Logger
}

func NewAccountController(userService service.UserService, logger *zap.Logger) *AccountController {
	return &AccountController{
		userService: userService,
		logger:      logger,
	}
}

func (c *AccountController) Freeze(w http.ResponseWriter, r *http.Request) {
	c.setFrozen(w, r, true)
}

func (c *AccountController) Unfreeze(w http.ResponseWriter, r *http.Request) {
	c.setFrozen(w, r, false)
}

func (c *AccountController) setFrozen(w http.ResponseWriter, r *http.Request, frozen bool) {
	var request struct {
		AccountID int64 `json:"account_id"`
	}
	if err := render.DecodeJSON(r.Body, &request); err != nil {
		respondErr(w, r, http.StatusBadRequest, "invalid request format")
		return
	}
	if request.AccountID == 0 {
		respondErr(w, r, http.StatusBadRequest, "account_id is required")
		return
	}

	if err := c.userService.SetFrozen(r.Context(), request.AccountID, frozen); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			respondErr(w, r, http.StatusNotFound, "account not found")
			return
		}
		c.logger.Error("Failed to change frozen flag",
			zap.Int64("account_id", request.AccountID),
			zap.Bool("frozen", frozen),
			zap.Error(err))
		respondErr(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	verb := "unfrozen"
	if frozen {
		verb = "frozen"
	}
	c.logger.Info("Account frozen flag changed",
		zap.Int64("account_id", request.AccountID),
		zap.Bool("frozen", frozen))
	respondOK(w, r, http.StatusOK, nil, fmt.Sprintf("account %d %s", request.AccountID, verb))
}

func (c *AccountController) AssignBroker(w http.ResponseWriter, r *http.Request) {
	var request struct {
		AccountID  int64  `json:"account_id"`
		BrokerName string `json:"broker_name"`
	}
	if err := render.DecodeJSON(r.Body, &request); err != nil {
		respondErr(w, r, http.StatusBadRequest, "invalid request format")
		return
	}
	if request.AccountID == 0 || request.BrokerName == "" {
		respondErr(w, r, http.StatusBadRequest, "account_id and broker_name are required")
		return
	}

	if err := c.userService.AssignBroker(r.Context(), request.AccountID, request.BrokerName); err != nil {
		c.logger.Error("Failed to assign broker",
			zap.Int64("account_id", request.AccountID),
			zap.Error(err))
		respondErr(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	respondOK(w, r, http.StatusOK, nil,
		fmt.Sprintf("broker %s assigned to account %d", request.BrokerName, request.AccountID))
}
