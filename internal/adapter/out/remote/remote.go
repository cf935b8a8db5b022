package remote

import (
	"io"

	"bulletin/internal/model"
	"bulletin/pkg/pagination"
)

// SortCreatedAtDesc is the only ordering the listing contract supports.
const SortCreatedAtDesc = "createdAt,desc"

// AuthHint is the requester identity as the remote contract carries it on
// each call. The service treats it as a hint and authorizes on its own.
type AuthHint struct {
	CurrentUserID *int64
	IsAdmin       bool
}

func HintFor(id *model.Identity) AuthHint {
	if id == nil {
		return AuthHint{}
	}
	uid := id.ID
	return AuthHint{CurrentUserID: &uid, IsAdmin: id.IsAdmin()}
}

// Identity rebuilds the requester a hint describes. Only id and role survive
// the trip.
func (h AuthHint) Identity() *model.Identity {
	if h.CurrentUserID == nil {
		return nil
	}
	role := model.RoleMember
	if h.IsAdmin {
		role = model.RoleAdmin
	}
	return &model.Identity{ID: *h.CurrentUserID, Role: role}
}

type ListPostsParams struct {
	pagination.PageRequest
	Hint AuthHint
}

type CreatePostParams struct {
	AuthorID int64
	Title    string
	Body     string
	Secret   bool
}

type UpdatePostParams struct {
	Title  string
	Body   string
	Secret bool
}

type CreateCommentParams struct {
	PostID   int64
	AuthorID int64
	Body     string
}

type UploadParams struct {
	PostID      *int64
	FileName    string
	ContentType string
	Content     io.Reader
}

type RegisterParams struct {
	Username string
	Email    string
	Password string
}

// UpdateUserParams leaves a field untouched when it is nil.
type UpdateUserParams struct {
	Username *string
	Password *string
}
