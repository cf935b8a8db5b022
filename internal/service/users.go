package service

import (
	"context"
	"fmt"
	"strings"

	"bulletin/internal/access"
	"bulletin/internal/adapter/out/remote"
	"bulletin/internal/model"
	"bulletin/pkg/pagination"
)

type UserService struct {
	users   UserRemote
	admin   AdminRemote
	session *Session
}

func NewUserService(users UserRemote, admin AdminRemote, session *Session) *UserService {
	return &UserService{
		users:   users,
		admin:   admin,
		session: session,
	}
}

// Register creates an account. It does not sign the new user in.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) error {
	req, err := req.normalize()
	if err != nil {
		return err
	}
	return s.users.Register(ctx, remote.RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
}

// UpdateProfile changes the display name and/or password of userID. When
// the requester edits itself the session picks up the new display name.
func (s *UserService) UpdateProfile(ctx context.Context, id *model.Identity, userID int64, patch ProfilePatch) (model.User, error) {
	if id == nil {
		return model.User{}, ErrAuthenticationRequired
	}
	patch, err := patch.normalize()
	if err != nil {
		return model.User{}, err
	}
	if !access.CanEditProfile(id, userID) {
		return model.User{}, ErrAccessDenied
	}
	if patch.Password != nil && !access.CanChangePassword(id, userID) {
		return model.User{}, fmt.Errorf("password can only be changed by its owner: %w", ErrAccessDenied)
	}

	u, err := s.users.UpdateUser(ctx, userID, remote.UpdateUserParams{
		Username: patch.Username,
		Password: patch.Password,
	})
	if err != nil {
		return model.User{}, err
	}

	if id.Is(u.ID) && s.session != nil {
		s.session.SignIn(u.Identity())
	}
	return u, nil
}

func (s *UserService) ListUsers(ctx context.Context, id *model.Identity) ([]model.User, error) {
	if err := administer(id); err != nil {
		return nil, err
	}
	return s.admin.ListUsers(ctx, id.ID)
}

func (s *UserService) RenameUser(ctx context.Context, id *model.Identity, userID int64, username string) (model.User, error) {
	if err := administer(id); err != nil {
		return model.User{}, err
	}
	username = strings.TrimSpace(username)
	if _, err := (ProfilePatch{Username: &username}).normalize(); err != nil {
		return model.User{}, err
	}
	return s.admin.RenameUser(ctx, id.ID, userID, username)
}

func (s *UserService) ResetPassword(ctx context.Context, id *model.Identity, userID int64, password string) error {
	if err := administer(id); err != nil {
		return err
	}
	if _, err := (ProfilePatch{Password: &password}).normalize(); err != nil {
		return err
	}
	return s.admin.ResetPassword(ctx, id.ID, userID, password)
}

// AllPosts is the admin listing: every post, secret ones readable.
func (s *UserService) AllPosts(ctx context.Context, id *model.Identity, req pagination.PageRequest) (pagination.Page[model.Post], error) {
	if err := administer(id); err != nil {
		return pagination.Page[model.Post]{}, err
	}
	return s.admin.ListAllPosts(ctx, id.ID, req.Normalize())
}

// PurgePost deletes any post through the admin endpoint and drops it from
// view.
func (s *UserService) PurgePost(ctx context.Context, view *Listing[model.Post], id *model.Identity, postID int64) error {
	if err := administer(id); err != nil {
		return err
	}
	if postID <= 0 {
		return fmt.Errorf("postID must be > 0: %w", ErrInvalidRequest)
	}
	if err := s.admin.DeletePostAsAdmin(ctx, id.ID, postID); err != nil {
		return err
	}
	if view != nil {
		view.Remove(ctx, postID)
	}
	return nil
}

func administer(id *model.Identity) error {
	if id == nil {
		return ErrAuthenticationRequired
	}
	if !access.CanAdminister(id) {
		return ErrAccessDenied
	}
	return nil
}
