package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"atlas_travel/internal/domain"
)

// MsgInvalidCredentials is the exact text shown for a rejected login.
const MsgInvalidCredentials = "Invalid username or password"

var ErrInvalidCredentials = errors.New("invalid username or password")

// TokenSink receives the bearer token; implemented by the API client.
type TokenSink interface {
	SetToken(string)
	ClearToken()
}

// SessionManager is the explicit session object: hydrated from the
// persisted store at startup, set on login, cleared on logout. Nothing else
// touches the token.
type SessionManager struct {
	api   domain.AuthAPI
	store domain.SessionStore
	sink  TokenSink

	mu  sync.Mutex
	cur *domain.Session
}

func NewSessionManager(api domain.AuthAPI, store domain.SessionStore, sink TokenSink) *SessionManager {
	return &SessionManager{api: api, store: store, sink: sink}
}

// Init hydrates the session from the persisted store, if one exists.
func (m *SessionManager) Init() error {
	s, ok, err := m.store.Load()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	m.mu.Lock()
	m.cur = &s
	m.mu.Unlock()
	m.sink.SetToken(s.Token)
	return nil
}

// Login exchanges credentials for a session, persists it, and installs the
// token. A 401 maps to ErrInvalidCredentials; nothing is persisted on any
// failure.
func (m *SessionManager) Login(ctx context.Context, username, password string) (domain.Session, error) {
	s, err := m.api.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return domain.Session{}, ErrInvalidCredentials
		}
		return domain.Session{}, err
	}
	if err := m.store.Save(s); err != nil {
		return domain.Session{}, fmt.Errorf("persist session: %w", err)
	}
	m.sink.SetToken(s.Token)
	m.mu.Lock()
	m.cur = &s
	m.mu.Unlock()
	return s, nil
}

// Logout clears the token and the persisted session. This is the only
// client-side eviction path; there is no expiry handling.
func (m *SessionManager) Logout() error {
	m.sink.ClearToken()
	m.mu.Lock()
	m.cur = nil
	m.mu.Unlock()
	return m.store.Clear()
}

func (m *SessionManager) Current() (domain.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cur == nil {
		return domain.Session{}, false
	}
	return *m.cur, true
}

func (m *SessionManager) LoggedIn() bool {
	_, ok := m.Current()
	return ok
}

// LoginMessage maps a Login error to its display text.
func LoginMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidCredentials):
		return MsgInvalidCredentials
	default:
		return userMessage(err, "Login failed. Please try again.")
	}
}
