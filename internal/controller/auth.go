package controller

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/vturenko/brokerage-admin/internal/service"
)

type AuthController struct {
	authService service.AuthService
	logger      *zap.Logger
}

func NewAuthController(authService service.AuthService, logger *zap.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Login accepts the admin credentials as JSON or as a classic login form and
// sets the session cookie on success.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			respondErr(w, r, http.StatusBadRequest, "invalid form body")
			return
		}
		request.Username = r.PostFormValue("username")
		request.Password = r.PostFormValue("password")
	} else {
		if err := render.DecodeJSON(r.Body, &request); err != nil {
			respondErr(w, r, http.StatusBadRequest, "invalid request format")
			return
		}
	}

	token, err := c.authService.Login(request.Username, request.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.logger.Warn("Admin login rejected",
				zap.String("username", request.Username))
			respondErr(w, r, http.StatusUnauthorized, "invalid credentials")
			return
		}
		respondErr(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	c.logger.Info("Admin logged in")

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(c.authService.SessionTTL()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respondOK(w, r, http.StatusOK, nil, "login successful")
}

// Logout expires the session cookie and sends the browser back to the login
// page.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/admin/login", http.StatusFound)
}
