package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/vturenko/brokerage-admin/internal/service"
)

type NotificationController struct {
	notificationService service.NotificationService
	logger              *zap.Logger
}

func NewNotificationController(notificationService service.NotificationService, logger *zap.Logger) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
		logger:              logger,
	}
}

func (c *NotificationController) List(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("user_id")
	if raw == "" {
		respondErr(w, r, http.StatusBadRequest, "user_id is required")
		return
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondErr(w, r, http.StatusBadRequest, "user_id must be an integer")
		return
	}

	notifications, err := c.notificationService.List(r.Context(), userID)
	if err != nil {
		c.logger.Error("Failed to list notifications",
			zap.Int64("user_id", userID),
			zap.Error(err))
		respondErr(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	respondOK(w, r, http.StatusOK, notifications, "")
}

func (c *NotificationController) Send(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID  int64  `json:"user_id"`
		Message string `json:"message"`
	}

	if err := render.DecodeJSON(r.Body, &request); err != nil {
		respondErr(w, r, http.StatusBadRequest, "invalid request format")
		return
	}

	n, err := c.notificationService.Send(r.Context(), request.UserID, request.Message)
	if err != nil {
		if errors.Is(err, service.ErrMissingField) {
			respondErr(w, r, http.StatusBadRequest, "user_id and message are required")
			return
		}
		c.logger.Error("Failed to send notification",
			zap.Int64("user_id", request.UserID),
			zap.Error(err))
		respondErr(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	respondOK(w, r, http.StatusCreated, n, "notification sent")
}
