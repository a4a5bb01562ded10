package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yukikurage/request-board/internal/constants"
	"github.com/yukikurage/request-board/internal/models"
	"github.com/yukikurage/request-board/internal/repository"
)

// AuthService handles sign-in for one session. Passwords are compared in
// clear text and offer no protection.
type AuthService struct {
	users   *UserDirectory
	admin   *AdminGate
	durable repository.KVRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(users *UserDirectory, admin *AdminGate, durable repository.KVRepository) *AuthService {
	return &AuthService{
		users:   users,
		admin:   admin,
		durable: durable,
	}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	// Input is either the user's name or email.
	Input      string
	Password   string
	RememberMe bool
}

// Login verifies credentials and makes the user current.
func (s *AuthService) Login(input LoginInput) (models.User, error) {
	if err := requireFields("input", input.Input, "password", input.Password); err != nil {
		return models.User{}, err
	}

	user, ok := s.users.findByLogin(strings.TrimSpace(input.Input))
	if !ok || user.Password != input.Password {
		return models.User{}, ErrInvalidCredentials
	}

	if err := s.users.SetCurrentUser(&user); err != nil {
		return models.User{}, fmt.Errorf("failed to set current user: %w", err)
	}
	if err := s.writeJSON(constants.StorageKeyUser, user); err != nil {
		return models.User{}, err
	}

	if input.RememberMe {
		remembered := models.RememberedLogin{Input: input.Input, Password: input.Password}
		if err := s.writeJSON(constants.StorageKeyRememberMeUser, remembered); err != nil {
			return models.User{}, err
		}
	} else if err := s.durable.Delete(constants.StorageKeyRememberMeUser); err != nil {
		return models.User{}, fmt.Errorf("failed to clear remembered login: %w", err)
	}

	return user, nil
}

// Logout clears the current user and leaves admin mode.
func (s *AuthService) Logout() error {
	if err := s.users.SetCurrentUser(nil); err != nil {
		return fmt.Errorf("failed to clear current user: %w", err)
	}
	if err := s.durable.Delete(constants.StorageKeyUser); err != nil {
		return fmt.Errorf("failed to clear last user: %w", err)
	}
	return s.admin.Revoke()
}

// RememberedLogin returns the saved login form values, if any.
func (s *AuthService) RememberedLogin() (models.RememberedLogin, bool) {
	var remembered models.RememberedLogin
	data, ok, err := s.durable.Get(constants.StorageKeyRememberMeUser)
	if err != nil || !ok {
		return remembered, false
	}
	if err := json.Unmarshal(data, &remembered); err != nil {
		return models.RememberedLogin{}, false
	}
	return remembered, remembered.Input != "" || remembered.Password != ""
}

func (s *AuthService) writeJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := s.durable.Set(key, data); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}
