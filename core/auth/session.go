package auth

import (
	"sync"
)

// Provider is the auth collaborator the data layer depends on.
type Provider interface {
	// CurrentUser returns the signed in user, if any.
	CurrentUser() (User, bool)
	// SchoolID returns the tenant of the signed in user, or "".
	SchoolID() string
	IsAuthenticated() bool
	// Ready is closed once a user is signed in.
	Ready() <-chan struct{}
}

// TokenSource is implemented by providers holding a bearer token for the API.
type TokenSource interface {
	Token() string
}

// Session is an in-memory Provider. Readiness is resolved exactly once per sign in.
type Session struct {
	mu    sync.RWMutex
	usr   *User
	token string
	ready chan struct{}
	once  *sync.Once
}

var (
	_ Provider    = (*Session)(nil) // interface compliance check
	_ TokenSource = (*Session)(nil)
)

func NewSession() *Session {
	return &Session{
		ready: make(chan struct{}),
		once:  new(sync.Once),
	}
}

// SignIn sets the current user (and its token) and resolves readiness.
func (s *Session) SignIn(usr User, token ...string) {
	s.mu.Lock()
	s.usr = &usr
	if len(token) > 0 {
		s.token = token[0]
	}
	ready, once := s.ready, s.once
	s.mu.Unlock()

	once.Do(func() { close(ready) })
}

// SignOut clears the current user and re-arms readiness.
func (s *Session) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.usr = nil
	s.token = ""
	select {
	case <-s.ready:
		s.ready = make(chan struct{})
		s.once = new(sync.Once)
	default: // still pending
	}
}

func (s *Session) CurrentUser() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.usr == nil {
		return User{}, false
	}
	return *s.usr, true
}

func (s *Session) SchoolID() string {
	usr, ok := s.CurrentUser()
	if !ok {
		return ""
	}
	return usr.SchoolID
}

func (s *Session) IsAuthenticated() bool {
	_, ok := s.CurrentUser()
	return ok
}

func (s *Session) Ready() <-chan struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}
