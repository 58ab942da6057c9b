// Package session keeps each browser session's uploaded file in memory.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/logger"
)

// Upload is the raw file a session uploaded. Data is never modified after Put.
type Upload struct {
	Filename   string
	Data       []byte
	UploadedAt time.Time
}

type entry struct {
	upload   *Upload
	lastSeen time.Time
}

// Store maps session ids to their upload. Sessions idle for longer than the
// TTL are removed by Sweep.
type Store struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[uuid.UUID]*entry
	now      func() time.Time
	log      *logger.Logger
}

// NewStore creates an empty store
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[uuid.UUID]*entry),
		now:      time.Now,
		log:      logger.Component("session"),
	}
}

// Resolve returns the session identified by raw and refreshes it. An empty,
// malformed or expired id starts a new session; created reports that case.
func (s *Store) Resolve(raw string) (id uuid.UUID, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if parsed, err := uuid.Parse(raw); err == nil {
		if e, ok := s.sessions[parsed]; ok && !s.expired(e, now) {
			e.lastSeen = now
			return parsed, false
		}
	}

	id = uuid.New()
	s.sessions[id] = &entry{lastSeen: now}
	return id, true
}

// Put stores the upload for a session, replacing any previous one
func (s *Store) Put(id uuid.UUID, upload Upload) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if upload.UploadedAt.IsZero() {
		upload.UploadedAt = s.now()
	}
	s.sessions[id] = &entry{upload: &upload, lastSeen: s.now()}
}

// Get returns the session's upload, if it has one
func (s *Store) Get(id uuid.UUID) (Upload, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.sessions[id]
	if !ok || e.upload == nil || s.expired(e, s.now()) {
		return Upload{}, false
	}
	return *e.upload, true
}

// Clear forgets the session's upload but keeps the session
func (s *Store) Clear(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.sessions[id]; ok {
		e.upload = nil
		e.lastSeen = s.now()
	}
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes expired sessions and returns how many were removed
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.sessions {
		if s.expired(e, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done
func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.log.Debug("Expired sessions removed", logger.Fields{
					"removed": n,
					"live":    s.Len(),
				})
			}
		}
	}
}

func (s *Store) expired(e *entry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.lastSeen) > s.ttl
}
