package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/request-board/internal/repository"
)

// BoardOptions configures NewBoard.
type BoardOptions struct {
	AdminSecret string
	// Drafter is optional; without it DraftRequests reports
	// ErrAIServiceNotConfigured.
	Drafter RequestDrafter
}

// Board holds the state shared by every session: the request store, the user
// list and the admin secret.
type Board struct {
	Requests *RequestStore

	durable repository.KVRepository
	users   *UserDirectory
	admin   *AdminGate
	drafter RequestDrafter
	log     *logrus.Entry
	now     func() time.Time
}

// NewBoard loads the board from durable storage. The returned board has no
// session of its own; use Session to bind one.
func NewBoard(durable repository.KVRepository, opts BoardOptions, log *logrus.Entry) (*Board, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	// Placeholder scope until a session is bound.
	unbound := repository.NewMemoryKVRepository()

	admin, err := NewAdminGate(opts.AdminSecret, unbound)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin gate: %w", err)
	}

	return &Board{
		Requests: NewRequestStore(durable, log),
		durable:  durable,
		users:    NewUserDirectory(durable, unbound, log),
		admin:    admin,
		drafter:  opts.Drafter,
		log:      log,
		now:      time.Now,
	}, nil
}

// Session groups the views bound to one session scope.
type Session struct {
	Users *UserDirectory
	Admin *AdminGate
	Auth  *AuthService
}

// Session binds the shared board to a session-scoped store.
func (b *Board) Session(scope repository.KVRepository) *Session {
	users := b.users.WithSession(scope)
	admin := b.admin.WithSession(scope)
	return &Session{
		Users: users,
		Admin: admin,
		Auth:  NewAuthService(users, admin, b.durable),
	}
}

// Summary computes the admin analytics for the current snapshot.
func (b *Board) Summary() Summary {
	return Summarize(b.Requests.List(), b.users.List(), b.now())
}

// DraftRequests extracts and cleans request drafts from text.
func (b *Board) DraftRequests(ctx context.Context, text string) ([]RequestDraft, error) {
	if b.drafter == nil {
		return nil, ErrAIServiceNotConfigured
	}

	drafts, err := b.drafter.DraftRequestsFromText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to draft requests: %w", err)
	}
	return cleanDrafts(drafts)
}
