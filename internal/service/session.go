package service

import (
	"context"
	"fmt"
	"sync"

	"bulletin/internal/model"
	"bulletin/pkg/logger"

	"go.uber.org/zap"
)

// Session holds the requester identity for the lifetime of a client
// session. It is resolved once and then only changed by explicit sign-in and
// sign-out; callers read it and pass it along, nothing below reads it
// implicitly.
type Session struct {
	users UserRemote

	mu        sync.RWMutex
	resolved  bool
	current   *model.Identity
	listeners []func(*model.Identity)
}

func NewSession(users UserRemote) *Session {
	return &Session{users: users}
}

// Resolve verifies the session with the remote service the first time it is
// called. A failed check leaves the session anonymous and is not an error.
func (s *Session) Resolve(ctx context.Context) *model.Identity {
	s.mu.Lock()
	if s.resolved {
		cur := copyIdentity(s.current)
		s.mu.Unlock()
		return cur
	}
	s.resolved = true
	s.mu.Unlock()

	u, err := s.users.Me(ctx)
	if err != nil {
		logger.FromContext(ctx).Debug("session not authenticated", zap.Error(err))
		return nil
	}

	id := u.Identity()
	s.set(&id)
	return copyIdentity(&id)
}

func (s *Session) Current() *model.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyIdentity(s.current)
}

func (s *Session) SignIn(id model.Identity) {
	s.mu.Lock()
	s.resolved = true
	s.mu.Unlock()
	s.set(&id)
}

// Login verifies credentials remotely and signs the returned user in.
func (s *Session) Login(ctx context.Context, email, password string) (*model.Identity, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required: %w", ErrInvalidRequest)
	}
	u, err := s.users.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	id := u.Identity()
	s.SignIn(id)
	return copyIdentity(&id), nil
}

// SignOut always clears the local identity. The remote logout is best effort
// and its failure is only logged.
func (s *Session) SignOut(ctx context.Context) {
	s.set(nil)

	if err := s.users.Logout(ctx); err != nil {
		logger.FromContext(ctx).Warn("remote logout failed", zap.Error(err))
	}
}

// OnChange registers fn to run after every identity change.
func (s *Session) OnChange(fn func(*model.Identity)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Session) set(id *model.Identity) {
	s.mu.Lock()
	s.current = copyIdentity(id)
	listeners := make([]func(*model.Identity), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(copyIdentity(id))
	}
}

func copyIdentity(id *model.Identity) *model.Identity {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
