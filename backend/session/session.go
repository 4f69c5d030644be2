// Package session is the explicit current-user context. It replaces any
// process-wide user variable: flows and handlers receive a *Session and
// read or write the signed-in user through the storage gateway.
package session

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"coursehub/backend/models"
	"coursehub/backend/storage"
	"coursehub/backend/validation"
)

var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Session struct {
	gw *storage.Gateway
}

func New(gw *storage.Gateway) *Session {
	return &Session{gw: gw}
}

func (s *Session) Gateway() *storage.Gateway {
	return s.gw
}

// Current returns the signed-in user or nil.
func (s *Session) Current() *models.User {
	return s.gw.CurrentUser()
}

func (s *Session) IsLoggedIn() bool {
	return s.gw.CurrentUser() != nil
}

// Require returns the signed-in user or ErrNotAuthenticated.
func (s *Session) Require() (*models.User, error) {
	u := s.gw.CurrentUser()
	if u == nil {
		return nil, ErrNotAuthenticated
	}
	return u, nil
}

func (s *Session) SignIn(u models.User) error {
	return s.gw.SaveUser(u.Public())
}

func (s *Session) SignOut() error {
	return s.gw.Logout()
}

// Login checks the credential shape, then the stored bcrypt hash, and signs
// the user in. With remember set the email is kept for the next login form.
func (s *Session) Login(email, password string, remember bool) (models.User, error) {
	email = strings.TrimSpace(email)

	errs := validation.Errors{}
	if errs.Required(email, "email", "Email address is required") {
		errs.Check(validation.Email(email), "email", "Please enter a valid email address")
	}
	if errs.Required(password, "password", "Password is required") {
		errs.Check(validation.Password(password), "password", "Password must be at least 6 characters long")
		errs.Check(validation.PasswordFits(password), "password", "Password must be at most 72 bytes long")
	}
	if len(errs) > 0 {
		return models.User{}, errs
	}

	u, err := s.gw.UserByEmail(email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}

	if err := s.SignIn(*u); err != nil {
		return models.User{}, err
	}
	if remember {
		err = s.gw.RememberEmail(u.Email)
	} else {
		err = s.gw.ForgetEmail()
	}
	if err != nil {
		return models.User{}, err
	}
	return u.Public(), nil
}

// HashPassword returns the bcrypt hash stored for a new account.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
