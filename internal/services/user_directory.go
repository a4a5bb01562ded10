package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/request-board/internal/constants"
	"github.com/yukikurage/request-board/internal/models"
	"github.com/yukikurage/request-board/internal/repository"
	"github.com/yukikurage/request-board/internal/utils"
)

// userRegistry is the list of registered users shared by every session view.
type userRegistry struct {
	mu    sync.RWMutex
	repo  repository.KVRepository
	users []models.User
}

// UserDirectory exposes the registered users together with the current-user
// pointer of one session scope.
type UserDirectory struct {
	registry *userRegistry
	session  repository.KVRepository
	log      *logrus.Entry
}

// NewUserDirectory loads users from durable storage. Absent or malformed data
// yields an empty directory.
func NewUserDirectory(durable, session repository.KVRepository, log *logrus.Entry) *UserDirectory {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	log = log.WithField("component", "user_directory")

	registry := &userRegistry{repo: durable}
	if data, ok, err := durable.Get(constants.StorageKeyUsers); err != nil {
		log.WithError(err).Warn("Failed to read stored users")
	} else if ok {
		if err := json.Unmarshal(data, &registry.users); err != nil {
			log.WithError(fmt.Errorf("%w: %v", ErrCorruptState, err)).Warn("Stored users are unreadable, starting empty")
			registry.users = nil
		}
	}

	return &UserDirectory{
		registry: registry,
		session:  session,
		log:      log,
	}
}

// WithSession returns a view sharing the user list but reading and writing
// the current user in session.
func (d *UserDirectory) WithSession(session repository.KVRepository) *UserDirectory {
	return &UserDirectory{
		registry: d.registry,
		session:  session,
		log:      d.log,
	}
}

// List returns all users in registration order
func (d *UserDirectory) List() []models.User {
	d.registry.mu.RLock()
	defer d.registry.mu.RUnlock()
	return append([]models.User(nil), d.registry.users...)
}

// Register appends a user and makes it the current user. Nothing changes when
// a required field is empty or the email is already taken.
func (d *UserDirectory) Register(user models.User) (models.User, error) {
	user.Name = strings.TrimSpace(user.Name)
	user.Email = strings.TrimSpace(user.Email)
	if err := requireFields("name", user.Name, "email", user.Email); err != nil {
		return models.User{}, err
	}
	if user.ID == "" {
		user.ID = utils.GenerateID()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	r := d.registry
	r.mu.Lock()
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) {
			r.mu.Unlock()
			return models.User{}, ErrDuplicateEmail
		}
	}
	r.users = append(r.users, user)
	data, err := json.Marshal(r.users)
	if err == nil {
		err = r.repo.Set(constants.StorageKeyUsers, data)
	}
	r.mu.Unlock()
	if err != nil {
		d.log.WithError(err).Error("Failed to persist users")
	}

	if err := d.SetCurrentUser(&user); err != nil {
		d.log.WithError(err).Error("Failed to persist current user")
	}

	d.log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("User registered")
	return user, nil
}

// CurrentUser returns the session's user. A missing or unreadable pointer
// means nobody is signed in.
func (d *UserDirectory) CurrentUser() (models.User, bool) {
	data, ok, err := d.session.Get(constants.StorageKeyCurrentUser)
	if err != nil || !ok {
		return models.User{}, false
	}
	var user *models.User
	if err := json.Unmarshal(data, &user); err != nil || user == nil {
		return models.User{}, false
	}
	return *user, true
}

// SetCurrentUser replaces the session pointer; nil signs out. The password is
// never written to the session.
func (d *UserDirectory) SetCurrentUser(user *models.User) error {
	if user == nil {
		return d.session.Delete(constants.StorageKeyCurrentUser)
	}
	pointer := *user
	pointer.Password = ""
	data, err := json.Marshal(pointer)
	if err != nil {
		return err
	}
	return d.session.Set(constants.StorageKeyCurrentUser, data)
}

// FindByName matches names case-insensitively
func (d *UserDirectory) FindByName(name string) (models.User, bool) {
	d.registry.mu.RLock()
	defer d.registry.mu.RUnlock()
	for _, u := range d.registry.users {
		if strings.EqualFold(u.Name, name) {
			return u, true
		}
	}
	return models.User{}, false
}

// FindByID matches IDs exactly
func (d *UserDirectory) FindByID(id string) (models.User, bool) {
	d.registry.mu.RLock()
	defer d.registry.mu.RUnlock()
	for _, u := range d.registry.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// Lookup is FindByID reporting a miss as ErrUserNotFound. A session can point
// at a user the directory no longer holds, e.g. after the durable store was
// reset.
func (d *UserDirectory) Lookup(id string) (models.User, error) {
	if u, ok := d.FindByID(id); ok {
		return u, nil
	}
	return models.User{}, ErrUserNotFound
}

// ResolveName returns the user's name or the Unknown placeholder.
func (d *UserDirectory) ResolveName(id string) string {
	if u, ok := d.FindByID(id); ok {
		return u.Name
	}
	return constants.UnknownUserName
}

// findByLogin matches either name or email, case-insensitively.
func (d *UserDirectory) findByLogin(input string) (models.User, bool) {
	d.registry.mu.RLock()
	defer d.registry.mu.RUnlock()
	for _, u := range d.registry.users {
		if strings.EqualFold(u.Name, input) || strings.EqualFold(u.Email, input) {
			return u, true
		}
	}
	return models.User{}, false
}
