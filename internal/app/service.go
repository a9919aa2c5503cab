package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jaminalder/minimal-tic-tac-toe/internal/domain"
	"github.com/jaminalder/minimal-tic-tac-toe/internal/view"
)

// Errors exposed by the service layer.
var ErrNotFound = errors.New("session not found")

// GameState is a read-only copy of a session taken under the service lock.
type GameState struct {
	ID      string
	View    view.Model
	Outcome domain.Outcome
	Created time.Time
	Updated time.Time
}

type session struct {
	id      string
	engine  *domain.Engine
	created time.Time
	updated time.Time
}

func (s *session) state() GameState {
	return GameState{
		ID:      s.id,
		View:    view.Build(s.engine),
		Outcome: s.engine.Outcome(),
		Created: s.created,
		Updated: s.updated,
	}
}

type subscriber struct {
	ch        chan []byte
	closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// Service keeps one game engine per browser session and notifies that
// session's subscribers after every change.
type Service struct {
	mu       sync.Mutex
	sessions map[string]*session
	subs     map[string]map[*subscriber]struct{}
	render   func(GameState) []byte
	ttl      time.Duration
	now      func() time.Time
	log      *zap.Logger
}

// NewService creates a service whose idle sessions expire after ttl.
// A zero ttl keeps sessions forever.
func NewService(logger *zap.Logger, ttl time.Duration) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		sessions: make(map[string]*session),
		subs:     make(map[string]map[*subscriber]struct{}),
		render:   func(GameState) []byte { return nil },
		ttl:      ttl,
		now:      time.Now,
		log:      logger.With(zap.String("component", "sessions")),
	}
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(GameState) []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if renderer == nil {
		s.render = func(GameState) []byte { return nil }
		return
	}
	s.render = renderer
}

// Open returns the session for id, starting a new game under a fresh id
// when id is empty or unknown. The bool reports whether a session was created.
func (s *Service) Open(id string) (*GameState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if sess, ok := s.sessions[id]; ok {
		sess.updated = now
		st := sess.state()
		return &st, false
	}
	sess := &session{id: uuid.NewString(), engine: domain.New(), created: now, updated: now}
	s.sessions[sess.id] = sess
	s.log.Debug("session created", zap.String("session", sess.id))
	st := sess.state()
	return &st, true
}

// Get returns a copy of the session state if present.
func (s *Service) Get(id string) (*GameState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	st := sess.state()
	return &st, true
}

// Move plays the next symbol at idx. Illegal moves leave the game untouched
// and are not broadcast.
func (s *Service) Move(id string, idx int) (*GameState, error) {
	return s.update(id, func(e *domain.Engine) {
		e.ApplyMove(idx)
	})
}

// Reset starts the session's game over.
func (s *Service) Reset(id string) (*GameState, error) {
	return s.update(id, func(e *domain.Engine) {
		e.Reset()
	})
}

func (s *Service) update(id string, fn func(*domain.Engine)) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	beforeStep, beforeLen := sess.engine.Step(), sess.engine.Len()
	fn(sess.engine)
	sess.updated = s.now()
	st := sess.state()
	if sess.engine.Step() != beforeStep || sess.engine.Len() != beforeLen {
		s.broadcastLocked(id, s.render(st))
	}
	return &st, nil
}

// broadcastLocked fans out without blocking; slow subscribers are closed and dropped.
func (s *Service) broadcastLocked(id string, payload []byte) {
	set := s.subs[id]
	dropped := 0
	for sub := range set {
		select {
		case sub.ch <- payload:
		default:
			sub.close()
			delete(set, sub)
			dropped++
		}
	}
	if dropped > 0 {
		s.log.Debug("dropped slow subscribers", zap.String("session", id), zap.Int("count", dropped))
	}
}

// Subscribe registers a subscriber for a session. The channel is closed when
// ctx ends, the returned func is called, or the subscriber falls behind.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan []byte, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return nil, nil, ErrNotFound
	}
	set := s.subs[id]
	if set == nil {
		set = make(map[*subscriber]struct{})
		s.subs[id] = set
	}
	sub := &subscriber{ch: make(chan []byte, 1)}
	set[sub] = struct{}{}

	unsubOnce := &sync.Once{}
	unsub := func() {
		unsubOnce.Do(func() {
			s.mu.Lock()
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
				if len(set) == 0 {
					delete(s.subs, id)
				}
			}
			s.mu.Unlock()
			sub.close()
		})
	}
	go func() {
		<-ctx.Done()
		unsub()
	}()
	return sub.ch, unsub, nil
}

// Len returns the number of live sessions.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes sessions that have been idle for longer than the ttl and
// have no subscribers. It returns how many were removed.
func (s *Service) Sweep(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if len(s.subs[id]) > 0 || now.Sub(sess.updated) < s.ttl {
			continue
		}
		delete(s.sessions, id)
		delete(s.subs, id)
		removed++
	}
	if removed > 0 {
		s.log.Info("expired idle sessions", zap.Int("removed", removed), zap.Int("remaining", len(s.sessions)))
	}
	return removed
}

// Run sweeps idle sessions every interval until ctx is done.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 || s.ttl <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			s.Sweep(t)
		}
	}
}
