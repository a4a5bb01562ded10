package repository

import (
	"fmt"

	"github.com/gin-contrib/sessions"
)

// SessionKVRepository stores blobs in a gin session, giving them the lifetime
// of the browser session rather than the durable table.
type SessionKVRepository struct {
	session sessions.Session
}

// NewSessionKVRepository wraps a gin session
func NewSessionKVRepository(session sessions.Session) KVRepository {
	return &SessionKVRepository{session: session}
}

func (r *SessionKVRepository) Get(key string) ([]byte, bool, error) {
	switch v := r.session.Get(key).(type) {
	case nil:
		return nil, false, nil
	case string:
		return []byte(v), true, nil
	case []byte:
		return v, true, nil
	default:
		return nil, false, fmt.Errorf("session value %q has unexpected type %T", key, v)
	}
}

func (r *SessionKVRepository) Set(key string, value []byte) error {
	r.session.Set(key, string(value))
	if err := r.session.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *SessionKVRepository) Delete(key string) error {
	r.session.Delete(key)
	if err := r.session.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
