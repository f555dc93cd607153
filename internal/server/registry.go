package server

import (
	"errors"
	"net"
	"strings"
	"time"
)

// Admission rejection reasons, observable by the connecting client.
var (
	ErrEmptyName = errors.New("empty username")
	ErrNameInUse = errors.New("username already in use")
)

// Session tracks one admitted transport address: its stable entity id,
// display name and last-seen time for the liveness sweep.
type Session struct {
	ID       uint64
	Name     string
	Addr     *net.UDPAddr
	LastSeen time.Time
}

// Registry maps transport addresses to sessions. Ids are assigned
// monotonically and never reused within a match. Only the tick loop touches
// the registry, so it needs no locking.
type Registry struct {
	sessions map[string]*Session
	nextID   uint64
	timeout  time.Duration
}

// NewRegistry creates an empty registry with the given liveness timeout.
func NewRegistry(timeout time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		timeout:  timeout,
	}
}

// Lookup returns the session for an address, or nil if not admitted.
func (r *Registry) Lookup(addr *net.UDPAddr) *Session {
	return r.sessions[addr.String()]
}

// Admit validates the requested name and creates a session for the address.
// Names must be non-empty and unique case-insensitively; the two failure
// modes are distinct errors so the caller can report them separately.
func (r *Registry) Admit(addr *net.UDPAddr, name string, now time.Time) (*Session, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	lower := strings.ToLower(name)
	for _, s := range r.sessions {
		if strings.ToLower(s.Name) == lower {
			return nil, ErrNameInUse
		}
	}

	s := &Session{
		ID:       r.nextID,
		Name:     name,
		Addr:     addr,
		LastSeen: now,
	}
	r.nextID++
	r.sessions[addr.String()] = s
	return s, nil
}

// Touch refreshes the last-seen time for a known address. Unknown addresses
// are ignored.
func (r *Registry) Touch(addr *net.UDPAddr, now time.Time) {
	if s := r.sessions[addr.String()]; s != nil {
		s.LastSeen = now
	}
}

// SweepExpired evicts every session idle past the timeout and returns them.
func (r *Registry) SweepExpired(now time.Time) []*Session {
	var evicted []*Session
	for key, s := range r.sessions {
		if now.Sub(s.LastSeen) > r.timeout {
			evicted = append(evicted, s)
			delete(r.sessions, key)
		}
	}
	return evicted
}

// Each calls fn for every live session.
func (r *Registry) Each(fn func(*Session)) {
	for _, s := range r.sessions {
		fn(s)
	}
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	return len(r.sessions)
}
