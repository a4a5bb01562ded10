package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/request-board/internal/constants"
	"github.com/yukikurage/request-board/internal/models"
	"github.com/yukikurage/request-board/internal/repository"
	"github.com/yukikurage/request-board/internal/utils"
)

// Mutation names carried by store events.
const (
	OpAdd     = "add"
	OpAdvance = "advance"
	OpUpdate  = "update"
)

// Event is delivered to subscribers after every committed mutation. Seq
// increases with every commit; delivery order across concurrent mutations is
// not guaranteed, so subscribers compare Seq to discard stale snapshots.
type Event struct {
	Seq      uint64
	Op       string
	Request  models.Request
	Snapshot []models.Request
}

// CurrentUserProvider supplies the author of a new request.
type CurrentUserProvider interface {
	CurrentUser() (models.User, bool)
}

// RequestStore owns the authoritative list of requests.
type RequestStore struct {
	mu          sync.RWMutex
	repo        repository.KVRepository
	log         *logrus.Entry
	requests    []models.Request
	subscribers map[int]func(Event)
	nextSubID   int
	seq         uint64
	now         func() time.Time
}

// NewRequestStore loads the stored snapshot or falls back to the seed dataset.
// It never fails: a missing or corrupt snapshot is replaced by the seed.
func NewRequestStore(repo repository.KVRepository, log *logrus.Entry) *RequestStore {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	s := &RequestStore{
		repo:        repo,
		log:         log.WithField("component", "request_store"),
		subscribers: make(map[int]func(Event)),
		now:         time.Now,
	}
	s.requests = s.load()
	return s
}

func (s *RequestStore) load() []models.Request {
	data, ok, err := s.repo.Get(constants.StorageKeyRequests)
	if err != nil {
		s.log.WithError(err).Warn("Failed to read stored requests, using seed data")
		return SeedRequests()
	}
	if !ok {
		return SeedRequests()
	}

	var requests []models.Request
	if err := json.Unmarshal(data, &requests); err != nil || requests == nil {
		s.log.WithError(fmt.Errorf("%w: %v", ErrCorruptState, err)).
			Warn("Stored requests are unreadable, using seed data")
		return SeedRequests()
	}
	return requests
}

// List returns the current snapshot in insertion order
func (s *RequestStore) List() []models.Request {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRequests(s.requests)
}

// Get finds a request by ID
func (s *RequestStore) Get(id string) (models.Request, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.requests[i].Clone(), true
	}
	return models.Request{}, false
}

// Add validates and appends a new request. The author fills requestedBy when
// the caller left it empty; author may be nil. A caller-supplied ID that is
// already stored is rejected with ErrDuplicateRequest.
func (s *RequestStore) Add(req models.Request, author CurrentUserProvider) (models.Request, error) {
	if err := requireFields(
		"projectName", req.ProjectName,
		"description", req.Description,
		"team", string(req.Team),
	); err != nil {
		return models.Request{}, err
	}

	req = req.Clone()
	if req.ID == "" {
		req.ID = utils.GenerateID()
	}
	if strings.TrimSpace(req.RequestedBy) == "" {
		req.RequestedBy = constants.UnknownUserName
		if author != nil {
			if user, ok := author.CurrentUser(); ok && user.Name != "" {
				req.RequestedBy = user.Name
			}
		}
	}
	if req.Status == "" {
		req.Status = models.StatusNew
	}
	if req.Priority == "" {
		req.Priority = models.PriorityLow
	}
	if req.CreatedAt == nil {
		now := s.now().UTC()
		req.CreatedAt = &now
	}

	s.mu.Lock()
	if s.indexOf(req.ID) >= 0 {
		s.mu.Unlock()
		return models.Request{}, ErrDuplicateRequest
	}
	s.requests = append(s.requests, req)
	seq, snapshot := s.commit()
	s.mu.Unlock()

	s.publish(Event{Seq: seq, Op: OpAdd, Request: req.Clone(), Snapshot: snapshot})
	return req.Clone(), nil
}

// AdvanceStatus moves a request to the next status in the cycle.
func (s *RequestStore) AdvanceStatus(id string) (models.Request, error) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return models.Request{}, ErrRequestNotFound
	}
	s.requests[i].Status = s.requests[i].Status.Next()
	updated := s.requests[i].Clone()
	seq, snapshot := s.commit()
	s.mu.Unlock()

	s.publish(Event{Seq: seq, Op: OpAdvance, Request: updated.Clone(), Snapshot: snapshot})
	return updated, nil
}

// Update replaces the stored record with the same ID. Any status may be set
// directly.
func (s *RequestStore) Update(req models.Request) (models.Request, error) {
	req = req.Clone()
	if req.Status == "" {
		req.Status = models.StatusNew
	}

	s.mu.Lock()
	i := s.indexOf(req.ID)
	if i < 0 {
		s.mu.Unlock()
		return models.Request{}, ErrRequestNotFound
	}
	s.requests[i] = req
	seq, snapshot := s.commit()
	s.mu.Unlock()

	s.publish(Event{Seq: seq, Op: OpUpdate, Request: req.Clone(), Snapshot: snapshot})
	return req.Clone(), nil
}

// Subscribe registers fn for mutation events and returns its cancel func.
func (s *RequestStore) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// commit writes the full list to storage and returns the commit sequence
// number with a snapshot for subscribers. Must be called with mu held. A
// failed write is logged and the in-memory state is kept.
func (s *RequestStore) commit() (uint64, []models.Request) {
	s.seq++
	data, err := json.Marshal(s.requests)
	if err != nil {
		s.log.WithError(err).Error("Failed to encode requests")
	} else if err := s.repo.Set(constants.StorageKeyRequests, data); err != nil {
		s.log.WithError(err).Error("Failed to persist requests")
	}
	return s.seq, cloneRequests(s.requests)
}

func (s *RequestStore) publish(event Event) {
	s.mu.RLock()
	subscribers := make([]func(Event), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subscribers = append(subscribers, fn)
	}
	s.mu.RUnlock()

	s.log.WithFields(logrus.Fields{
		"op":         event.Op,
		"request_id": event.Request.ID,
		"status":     event.Request.Status,
	}).Info("Request committed")

	for _, fn := range subscribers {
		fn(event)
	}
}

func (s *RequestStore) indexOf(id string) int {
	for i := range s.requests {
		if s.requests[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneRequests(requests []models.Request) []models.Request {
	out := make([]models.Request, len(requests))
	for i, r := range requests {
		out[i] = r.Clone()
	}
	return out
}
