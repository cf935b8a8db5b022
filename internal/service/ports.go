package service

import (
	"context"
	"io"

	"bulletin/internal/adapter/out/remote"
	"bulletin/internal/model"
	"bulletin/pkg/pagination"
)

//go:generate mockgen -source=ports.go -destination=./ports_mock.go -package=service
type PostRemote interface {
	ListPosts(ctx context.Context, params remote.ListPostsParams) (pagination.Page[model.Post], error)
	GetPost(ctx context.Context, postID int64, hint remote.AuthHint) (model.Post, error)
	CreatePost(ctx context.Context, params remote.CreatePostParams, hint remote.AuthHint) (model.Post, error)
	UpdatePost(ctx context.Context, postID int64, params remote.UpdatePostParams, hint remote.AuthHint) (model.Post, error)
	DeletePost(ctx context.Context, postID int64, hint remote.AuthHint) error
}

type CommentRemote interface {
	ListComments(ctx context.Context, postID int64, hint remote.AuthHint) ([]model.Comment, error)
	CreateComment(ctx context.Context, params remote.CreateCommentParams, hint remote.AuthHint) (model.Comment, error)
	UpdateComment(ctx context.Context, commentID int64, body string, hint remote.AuthHint) (model.Comment, error)
	DeleteComment(ctx context.Context, commentID int64, hint remote.AuthHint) error
}

type FileRemote interface {
	ListFiles(ctx context.Context, postID int64, hint remote.AuthHint) ([]model.Attachment, error)
	UploadFile(ctx context.Context, params remote.UploadParams, hint remote.AuthHint) (model.Attachment, error)
	DownloadFile(ctx context.Context, fileID int64, hint remote.AuthHint) (io.ReadCloser, error)
	DeleteFile(ctx context.Context, fileID int64, hint remote.AuthHint) error
}

type UserRemote interface {
	Me(ctx context.Context) (model.User, error)
	Login(ctx context.Context, email, password string) (model.User, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, params remote.RegisterParams) error
	UpdateUser(ctx context.Context, userID int64, params remote.UpdateUserParams) (model.User, error)
}

type AdminRemote interface {
	ListUsers(ctx context.Context, adminID int64) ([]model.User, error)
	// ListAllPosts pages through every post newest first, secret posts
	// included and unredacted.
	ListAllPosts(ctx context.Context, adminID int64, req pagination.PageRequest) (pagination.Page[model.Post], error)
	DeletePostAsAdmin(ctx context.Context, adminID, postID int64) error
	RenameUser(ctx context.Context, adminID, userID int64, username string) (model.User, error)
	ResetPassword(ctx context.Context, adminID, userID int64, newPassword string) error
}
