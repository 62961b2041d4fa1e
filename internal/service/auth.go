package service

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

// AuthService authenticates the configured administrator and manages the
// signed session tokens carried in the admin_session cookie.
type AuthService interface {
	Login(username, password string) (string, error)
	ValidateSession(token string) error
	SessionTTL() time.Duration
}

type authService struct {
	adminUsername     string
	adminPasswordHash string
	sessionSecret     string
	sessionTTL        time.Duration
}

func NewAuthService(adminUsername, adminPasswordHash, sessionSecret string, sessionTTL time.Duration) AuthService {
	return &authService{
		adminUsername:     adminUsername,
		adminPasswordHash: adminPasswordHash,
		sessionSecret:     sessionSecret,
		sessionTTL:        sessionTTL,
	}
}

func (s *authService) Login(username, password string) (string, error) {
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.adminUsername)) == 1
	passwordErr := bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(password))
	if !usernameOK || passwordErr != nil {
		return "", ErrInvalidCredentials
	}
	return s.generateToken()
}

func (s *authService) ValidateSession(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.sessionSecret), nil
	})
	if err != nil {
		return ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return ErrInvalidSession
	}
	if admin, ok := claims["admin"].(bool); !ok || !admin {
		return ErrInvalidSession
	}
	return nil
}

func (s *authService) SessionTTL() time.Duration {
	return s.sessionTTL
}

func (s *authService) generateToken() (string, error) {
	claims := jwt.MapClaims{
		"admin": true,
		"jti":   uuid.NewString(),
		"exp":   time.Now().Add(s.sessionTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.sessionSecret))
}
