package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vturenko/brokerage-admin/internal/repository"
	"github.com/vturenko/brokerage-admin/internal/service"
)

type UserController struct {
	userService service.UserService
	logger      *zap.Logger
}

func NewUserController(userService service.UserService, logger *zap.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("username")

	users, err := c.userService.List(r.Context(), filter)
	if err != nil {
		c.logger.Error("Failed to list users", zap.Error(err))
		respondErr(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	respondOK(w, r, http.StatusOK, users, "")
}

func (c *UserController) Create(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Username string           `json:"username"`
		Password string           `json:"password"`
		Balance  *decimal.Decimal `json:"balance"`
		Broker   string           `json:"broker"`
		IsFrozen bool             `json:"is_frozen"`
	}

	if err := render.DecodeJSON(r.Body, &request); err != nil {
		respondErr(w, r, http.StatusBadRequest, "invalid request format")
		return
	}

	balance := decimal.Zero
	if request.Balance != nil {
		balance = *request.Balance
	}

	user, err := c.userService.Create(r.Context(), request.Username, request.Password, balance, request.Broker, request.IsFrozen)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingField):
			respondErr(w, r, http.StatusBadRequest, "username and password are required")
		case errors.Is(err, repository.ErrUsernameTaken):
			respondErr(w, r, http.StatusConflict, "username already exists")
		default:
			c.logger.Error("Failed to create user", zap.Error(err))
			respondErr(w, r, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.logger.Info("User created",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username))
	respondOK(w, r, http.StatusOK, user, "user created")
}

func (c *UserController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	// Decode into a raw map so a numeric-string balance keeps its digits
	// until the service coerces it.
	var fields map[string]interface{}
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		respondErr(w, r, http.StatusBadRequest, "invalid request format")
		return
	}

	user, err := c.userService.Update(r.Context(), id, fields)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidBalance):
			respondErr(w, r, http.StatusBadRequest, "balance must be numeric")
		case errors.Is(err, service.ErrNoFields), errors.Is(err, service.ErrMissingField):
			respondErr(w, r, http.StatusBadRequest, "no valid fields to update")
		case errors.Is(err, repository.ErrUserNotFound):
			respondErr(w, r, http.StatusNotFound, "user not found")
		case errors.Is(err, repository.ErrUsernameTaken):
			respondErr(w, r, http.StatusConflict, "username already exists")
		default:
			c.logger.Error("Failed to update user",
				zap.Int64("user_id", id),
				zap.Error(err))
			respondErr(w, r, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respondOK(w, r, http.StatusOK, user, "user updated")
}

func (c *UserController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var request struct {
		NewPassword string `json:"new_password"`
	}
	if err := render.DecodeJSON(r.Body, &request); err != nil {
		respondErr(w, r, http.StatusBadRequest, "invalid request format")
		return
	}

	err := c.userService.ResetPassword(r.Context(), id, request.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingField):
			respondErr(w, r, http.StatusBadRequest, "new_password is required")
		case errors.Is(err, repository.ErrUserNotFound):
			respondErr(w, r, http.StatusNotFound, "user not found")
		default:
			c.logger.Error("Failed to reset password",
				zap.Int64("user_id", id),
				zap.Error(err))
			respondErr(w, r, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.logger.Info("Password reset", zap.Int64("user_id", id))
	respondOK(w, r, http.StatusOK, nil, "password reset")
}

func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := c.userService.Delete(r.Context(), id); err != nil {
		c.logger.Error("Failed to delete user",
			zap.Int64("user_id", id),
			zap.Error(err))
		respondErr(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	c.logger.Info("User deleted", zap.Int64("user_id", id))
	respondOK(w, r, http.StatusOK, nil, "user deleted")
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondErr(w, r, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
