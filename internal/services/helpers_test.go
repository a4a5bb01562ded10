package services

import (
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/request-board/internal/models"
	"github.com/yukikurage/request-board/internal/repository"
)

func discardLogger() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}

// failingRepo reads like an empty store and rejects every write.
type failingRepo struct{}

func (failingRepo) Get(string) ([]byte, bool, error) { return nil, false, nil }
func (failingRepo) Set(string, []byte) error         { return errors.New("disk full") }
func (failingRepo) Delete(string) error              { return errors.New("disk full") }

type fixedAuthor struct {
	user models.User
	ok   bool
}

func (a fixedAuthor) CurrentUser() (models.User, bool) {
	return a.user, a.ok
}

type boardEnv struct {
	durable *repository.MemoryKVRepository
	board   *Board
}

func setupBoard(t *testing.T, opts BoardOptions) boardEnv {
	t.Helper()

	if opts.AdminSecret == "" {
		opts.AdminSecret = "admin123"
	}
	durable := repository.NewMemoryKVRepository()
	board, err := NewBoard(durable, opts, discardLogger())
	require.NoError(t, err)

	return boardEnv{durable: durable, board: board}
}
