// Package inmemory is an in-process board that honours the remote contract.
// It keeps one client session, decides every request against that session's
// user and ignores the requester hints callers send along.
package inmemory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"bulletin/internal/access"
	"bulletin/internal/adapter/out/remote"
	"bulletin/internal/model"
	"bulletin/pkg/pagination"

	"golang.org/x/crypto/bcrypt"
)

const DefaultMaxFileSize = 10 << 20

type account struct {
	user model.User
	hash []byte
}

type storedFile struct {
	meta       model.Attachment
	storedName string
	data       []byte
}

type Board struct {
	mu          sync.RWMutex
	now         func() time.Time
	maxFileSize int64

	users    map[int64]*account
	posts    map[int64]model.Post
	comments map[int64]model.Comment
	files    map[int64]storedFile

	userSeq    int64
	postSeq    int64
	commentSeq int64
	fileSeq    int64

	session *int64
}

type Option func(*Board)

func WithClock(now func() time.Time) Option {
	return func(b *Board) { b.now = now }
}

// WithMaxFileSize rejects uploads larger than n bytes.
func WithMaxFileSize(n int64) Option {
	return func(b *Board) { b.maxFileSize = n }
}

func NewBoard(opts ...Option) *Board {
	b := &Board{
		now:         time.Now,
		maxFileSize: DefaultMaxFileSize,
		users:       make(map[int64]*account),
		posts:       make(map[int64]model.Post),
		comments:    make(map[int64]model.Comment),
		files:       make(map[int64]storedFile),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SeedUser creates an account with the given role. It is how the first
// admin gets onto a fresh board.
func (b *Board) SeedUser(username, email, password string, role model.Role) (model.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.createUserLocked(username, email, password, role)
}

func (b *Board) createUserLocked(username, email, password string, role model.Role) (model.User, error) {
	for _, a := range b.users {
		if strings.EqualFold(a.user.Email, email) {
			return model.User{}, fmt.Errorf("email %q: %w", email, remote.ErrConflict)
		}
		if a.user.Username == username {
			return model.User{}, fmt.Errorf("username %q: %w", username, remote.ErrConflict)
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("%w: %v", remote.ErrInternalError, err)
	}

	b.userSeq++
	u := model.User{ID: b.userSeq, Username: username, Email: email, Role: role}
	b.users[u.ID] = &account{user: u, hash: hash}
	return u, nil
}

// requesterLocked is the identity of the logged in session, nil when
// nobody is logged in.
func (b *Board) requesterLocked() *model.Identity {
	if b.session == nil {
		return nil
	}
	a, ok := b.users[*b.session]
	if !ok {
		return nil
	}
	id := a.user.Identity()
	return &id
}

func (b *Board) Me(_ context.Context) (model.User, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	id := b.requesterLocked()
	if id == nil {
		return model.User{}, remote.ErrAuthenticationRequired
	}
	return b.users[id.ID].user, nil
}

func (b *Board) Login(_ context.Context, email, password string) (model.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, a := range b.users {
		if !strings.EqualFold(a.user.Email, email) {
			continue
		}
		if bcrypt.CompareHashAndPassword(a.hash, []byte(password)) != nil {
			break
		}
		id := a.user.ID
		b.session = &id
		return a.user, nil
	}
	return model.User{}, fmt.Errorf("invalid credentials: %w", remote.ErrAuthenticationRequired)
}

func (b *Board) Logout(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.session = nil
	return nil
}

func (b *Board) Register(_ context.Context, params remote.RegisterParams) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if params.Username == "" || params.Email == "" || params.Password == "" {
		return fmt.Errorf("username, email and password are required: %w", remote.ErrInvalidRequest)
	}
	_, err := b.createUserLocked(params.Username, params.Email, params.Password, model.RoleMember)
	return err
}

func (b *Board) UpdateUser(_ context.Context, userID int64, params remote.UpdateUserParams) (model.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.requesterLocked()
	if id == nil {
		return model.User{}, remote.ErrAuthenticationRequired
	}
	if !access.CanEditProfile(id, userID) {
		return model.User{}, remote.ErrAccessDenied
	}
	if params.Password != nil && !access.CanChangePassword(id, userID) {
		return model.User{}, remote.ErrAccessDenied
	}
	return b.updateUserLocked(userID, params)
}

func (b *Board) updateUserLocked(userID int64, params remote.UpdateUserParams) (model.User, error) {
	a, ok := b.users[userID]
	if !ok {
		return model.User{}, fmt.Errorf("user %d: %w", userID, remote.ErrNotFound)
	}
	if params.Username != nil {
		for _, other := range b.users {
			if other.user.ID != userID && other.user.Username == *params.Username {
				return model.User{}, fmt.Errorf("username %q: %w", *params.Username, remote.ErrConflict)
			}
		}
		a.user.Username = *params.Username
		for pid, p := range b.posts {
			if p.AuthorID == userID {
				p.AuthorName = a.user.Username
				b.posts[pid] = p
			}
		}
		for cid, c := range b.comments {
			if c.AuthorID == userID {
				c.AuthorName = a.user.Username
				b.comments[cid] = c
			}
		}
	}
	if params.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*params.Password), bcrypt.DefaultCost)
		if err != nil {
			return model.User{}, fmt.Errorf("%w: %v", remote.ErrInternalError, err)
		}
		a.hash = hash
	}
	return a.user, nil
}

// adminLocked checks adminID against the stored role, like the admin
// endpoints do with their user id header.
func (b *Board) adminLocked(adminID int64) error {
	a, ok := b.users[adminID]
	if !ok {
		return fmt.Errorf("user %d: %w", adminID, remote.ErrNotFound)
	}
	if a.user.Role != model.RoleAdmin {
		return remote.ErrAccessDenied
	}
	return nil
}

func (b *Board) ListUsers(_ context.Context, adminID int64) ([]model.User, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.adminLocked(adminID); err != nil {
		return nil, err
	}
	out := make([]model.User, 0, len(b.users))
	for _, a := range b.users {
		out = append(out, a.user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (b *Board) RenameUser(_ context.Context, adminID, userID int64, username string) (model.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.adminLocked(adminID); err != nil {
		return model.User{}, err
	}
	return b.updateUserLocked(userID, remote.UpdateUserParams{Username: &username})
}

func (b *Board) ResetPassword(_ context.Context, adminID, userID int64, newPassword string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.adminLocked(adminID); err != nil {
		return err
	}
	_, err := b.updateUserLocked(userID, remote.UpdateUserParams{Password: &newPassword})
	return err
}

// ListAllPosts pages through every post, secret ones unredacted.
func (b *Board) ListAllPosts(_ context.Context, adminID int64, req pagination.PageRequest) (pagination.Page[model.Post], error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.adminLocked(adminID); err != nil {
		return pagination.Page[model.Post]{}, err
	}
	req = req.Normalize()
	req.Query = ""
	id := b.users[adminID].user.Identity()
	return pagination.Slice(b.newestFirstLocked("", &id), req), nil
}

// DeletePostAsAdmin removes any post with its comments and files.
func (b *Board) DeletePostAsAdmin(_ context.Context, adminID, postID int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.adminLocked(adminID); err != nil {
		return err
	}
	if _, err := b.postLocked(postID); err != nil {
		return err
	}
	b.deletePostLocked(postID)
	return nil
}

func denied(id *model.Identity) error {
	if id == nil {
		return remote.ErrAuthenticationRequired
	}
	return remote.ErrAccessDenied
}
