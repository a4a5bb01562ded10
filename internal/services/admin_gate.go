package services

import (
	"encoding/json"
	"fmt"

	"github.com/yukikurage/request-board/internal/constants"
	"github.com/yukikurage/request-board/internal/models"
	"github.com/yukikurage/request-board/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// AdminGate is the per-session admin flag. It only decides which board
// affordances are shown and is not an authorization boundary.
type AdminGate struct {
	secretHash []byte
	session    repository.KVRepository
}

// NewAdminGate hashes the shared secret once so candidates are compared with
// bcrypt.
func NewAdminGate(secret string, session repository.KVRepository) (*AdminGate, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin secret: %w", err)
	}
	return &AdminGate{secretHash: hash, session: session}, nil
}

// WithSession returns a gate with the same secret bound to another session.
func (g *AdminGate) WithSession(session repository.KVRepository) *AdminGate {
	return &AdminGate{secretHash: g.secretHash, session: session}
}

func (g *AdminGate) State() models.AdminState {
	var state models.AdminState
	data, ok, err := g.session.Get(constants.StorageKeyAdminSession)
	if err != nil || !ok {
		return state
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return models.AdminState{}
	}
	return state
}

func (g *AdminGate) IsAdmin() bool {
	return g.State().Admin
}

func (g *AdminGate) PromptVisible() bool {
	return g.State().PromptVisible
}

// RequestElevation shows the password prompt without changing the flag.
func (g *AdminGate) RequestElevation() error {
	state := g.State()
	state.PromptVisible = true
	return g.save(state)
}

// SubmitPassword grants admin on a match. On a mismatch the flag is left as
// it was and ErrAdminDenied is returned. The prompt is cleared either way.
func (g *AdminGate) SubmitPassword(candidate string) error {
	state := g.State()
	state.PromptVisible = false

	if err := bcrypt.CompareHashAndPassword(g.secretHash, []byte(candidate)); err != nil {
		if saveErr := g.save(state); saveErr != nil {
			return saveErr
		}
		return ErrAdminDenied
	}

	state.Admin = true
	return g.save(state)
}

// Revoke leaves admin mode. No password is needed.
func (g *AdminGate) Revoke() error {
	return g.save(models.AdminState{})
}

func (g *AdminGate) save(state models.AdminState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return g.session.Set(constants.StorageKeyAdminSession, data)
}
