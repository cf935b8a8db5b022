package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"bulletin/internal/adapter/out/remote"
	"bulletin/internal/model"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func ptr[T any](v T) *T { return &v }

func openDetail(t *testing.T, post model.Post, comments []model.Comment, files []model.Attachment) (*Detail, postMocks) {
	t.Helper()
	svc, m := newPostService(t)
	m.posts.EXPECT().GetPost(gomock.Any(), post.ID, gomock.Any()).Return(post, nil)
	m.comments.EXPECT().ListComments(gomock.Any(), post.ID, gomock.Any()).Return(comments, nil)
	m.files.EXPECT().ListFiles(gomock.Any(), post.ID, gomock.Any()).Return(files, nil)

	d, err := svc.OpenDetail(context.Background(), member, post.ID)
	require.NoError(t, err)
	return d, m
}

func TestPostService_OpenDetail(t *testing.T) {
	t.Parallel()

	post := model.Post{ID: 5, Title: "t", AuthorID: 8}
	d, _ := openDetail(t, post,
		[]model.Comment{{ID: 1, PostID: 5}, {ID: 2, PostID: 6}},
		[]model.Attachment{{ID: 1, PostID: ptr(int64(5))}, {ID: 2}},
	)

	require.Equal(t, post, d.Post())
	require.Len(t, d.Comments(), 1)
	require.Equal(t, int64(1), d.Comments()[0].ID)
	require.Len(t, d.Attachments(), 1)
	require.Equal(t, int64(1), d.Attachments()[0].ID)
}

func TestPostService_OpenDetailSecret(t *testing.T) {
	t.Parallel()

	svc, m := newPostService(t)
	m.posts.EXPECT().GetPost(gomock.Any(), int64(5), gomock.Any()).Return(model.Post{ID: 5, AuthorID: 9, Secret: true}, nil)

	_, err := svc.OpenDetail(context.Background(), member, 5)
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestPostService_DeleteDetailPost(t *testing.T) {
	t.Parallel()

	post := model.Post{ID: 5, AuthorID: 7}
	svc, m := newPostService(t)
	m.posts.EXPECT().GetPost(gomock.Any(), int64(5), gomock.Any()).Return(post, nil)
	m.comments.EXPECT().ListComments(gomock.Any(), int64(5), gomock.Any()).Return([]model.Comment{{ID: 1, PostID: 5}}, nil)
	m.files.EXPECT().ListFiles(gomock.Any(), int64(5), gomock.Any()).Return(nil, nil)
	m.posts.EXPECT().DeletePost(gomock.Any(), int64(5), gomock.Any()).Return(nil)

	ctx := context.Background()
	view := loadedListing(t, post, model.Post{ID: 4})
	d, err := svc.OpenDetail(ctx, member, 5)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteDetailPost(ctx, view, d, member))
	require.True(t, d.Deleted())
	require.Empty(t, d.Comments())
	require.Equal(t, []int64{4}, ids(view.State().Page.Items))
}

func TestPostService_DeletedDetailRefusesChildren(t *testing.T) {
	t.Parallel()

	post := model.Post{ID: 5, Title: "t", Body: "b", AuthorID: 7}
	svc, m := newPostService(t)
	m.posts.EXPECT().GetPost(gomock.Any(), int64(5), gomock.Any()).Return(post, nil)
	m.comments.EXPECT().ListComments(gomock.Any(), int64(5), gomock.Any()).
		Return([]model.Comment{{ID: 1, PostID: 5, AuthorID: 7}}, nil)
	m.files.EXPECT().ListFiles(gomock.Any(), int64(5), gomock.Any()).
		Return([]model.Attachment{{ID: 2, PostID: ptr(int64(5))}}, nil)
	m.posts.EXPECT().DeletePost(gomock.Any(), int64(5), gomock.Any()).Return(nil)

	ctx := context.Background()
	d, err := svc.OpenDetail(ctx, member, 5)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteDetailPost(ctx, nil, d, member))

	// no remote expectations: any call below fails the mock controller
	ctrl := gomock.NewController(t)
	comments := NewCommentService(NewMockCommentRemote(ctrl))
	files := NewFileService(NewMockFileRemote(ctrl))

	_, err = comments.AddComment(ctx, d, member, CommentDraft{Body: "late"})
	require.ErrorIs(t, err, ErrNotFound)
	_, err = comments.EditComment(ctx, d, member, 1, CommentDraft{Body: "late"})
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, comments.DeleteComment(ctx, d, member, 1), ErrNotFound)

	_, err = files.Upload(ctx, d, member, FileUpload{FileName: "a.txt", Content: strings.NewReader("a")})
	require.ErrorIs(t, err, ErrNotFound)
	_, err = files.Download(ctx, d, member, 2)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, files.Delete(ctx, d, member, 2), ErrNotFound)

	_, err = svc.UpdateDetailPost(ctx, nil, d, member, PostPatch{Body: ptr("late")})
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, svc.DeleteDetailPost(ctx, nil, d, member), ErrNotFound)

	require.Empty(t, d.Comments())
	require.Empty(t, d.Attachments())
}

func TestPostService_UpdateDetailPost(t *testing.T) {
	t.Parallel()

	post := model.Post{ID: 5, Title: "a", Body: "b", AuthorID: 7}
	svc, m := newPostService(t)
	m.posts.EXPECT().GetPost(gomock.Any(), int64(5), gomock.Any()).Return(post, nil).Times(2)
	m.comments.EXPECT().ListComments(gomock.Any(), int64(5), gomock.Any()).Return(nil, nil)
	m.files.EXPECT().ListFiles(gomock.Any(), int64(5), gomock.Any()).Return(nil, nil)
	m.posts.EXPECT().
		UpdatePost(gomock.Any(), int64(5), remote.UpdatePostParams{Title: "a", Body: "c"}, gomock.Any()).
		Return(model.Post{ID: 5, Title: "a", Body: "c", AuthorID: 7}, nil)

	ctx := context.Background()
	d, err := svc.OpenDetail(ctx, member, 5)
	require.NoError(t, err)

	_, err = svc.UpdateDetailPost(ctx, nil, d, member, PostPatch{Body: ptr("c")})
	require.NoError(t, err)
	require.Equal(t, "c", d.Post().Body)
}

func TestCommentService_AddComment(t *testing.T) {
	t.Parallel()

	post := model.Post{ID: 5, AuthorID: 8}

	tests := []struct {
		name    string
		id      *model.Identity
		draft   CommentDraft
		setup   func(m *MockCommentRemote)
		wantErr error
	}{
		{
			name:    "anonymous",
			draft:   CommentDraft{Body: "hi"},
			setup:   func(_ *MockCommentRemote) {},
			wantErr: ErrAuthenticationRequired,
		},
		{
			name:    "empty body",
			id:      member,
			draft:   CommentDraft{Body: " "},
			setup:   func(_ *MockCommentRemote) {},
			wantErr: ErrInvalidRequest,
		},
		{
			name:  "member",
			id:    member,
			draft: CommentDraft{Body: "hi"},
			setup: func(m *MockCommentRemote) {
				m.EXPECT().
					CreateComment(gomock.Any(), remote.CreateCommentParams{PostID: 5, AuthorID: 7, Body: "hi"}, remote.HintFor(member)).
					Return(model.Comment{ID: 10, PostID: 5, AuthorID: 7, Body: "hi"}, nil)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			d, _ := openDetail(t, post, nil, nil)
			m := NewMockCommentRemote(gomock.NewController(t))
			tt.setup(m)

			_, err := NewCommentService(m).AddComment(context.Background(), d, tt.id, tt.draft)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Empty(t, d.Comments())
				return
			}
			require.NoError(t, err)
			require.Len(t, d.Comments(), 1)
		})
	}
}

func TestCommentService_EditAndDelete(t *testing.T) {
	t.Parallel()

	post := model.Post{ID: 5, AuthorID: 8}
	comments := []model.Comment{
		{ID: 1, PostID: 5, AuthorID: 7, Body: "mine"},
		{ID: 2, PostID: 5, AuthorID: 8, Body: "post author"},
	}

	t.Run("author edits", func(t *testing.T) {
		d, _ := openDetail(t, post, comments, nil)
		m := NewMockCommentRemote(gomock.NewController(t))
		m.EXPECT().
			UpdateComment(gomock.Any(), int64(1), "edited", remote.HintFor(member)).
			Return(model.Comment{ID: 1, PostID: 5, AuthorID: 7, Body: "edited"}, nil)

		_, err := NewCommentService(m).EditComment(context.Background(), d, member, 1, CommentDraft{Body: "edited"})
		require.NoError(t, err)
		require.Equal(t, "edited", d.Comments()[0].Body)
	})

	t.Run("not the author", func(t *testing.T) {
		d, _ := openDetail(t, post, comments, nil)
		m := NewMockCommentRemote(gomock.NewController(t))

		svc := NewCommentService(m)
		_, err := svc.EditComment(context.Background(), d, member, 2, CommentDraft{Body: "x"})
		require.ErrorIs(t, err, ErrAccessDenied)
		require.ErrorIs(t, svc.DeleteComment(context.Background(), d, member, 2), ErrAccessDenied)
		require.Len(t, d.Comments(), 2)
	})

	t.Run("unknown comment", func(t *testing.T) {
		d, _ := openDetail(t, post, comments, nil)
		m := NewMockCommentRemote(gomock.NewController(t))

		err := NewCommentService(m).DeleteComment(context.Background(), d, member, 99)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("author deletes", func(t *testing.T) {
		d, _ := openDetail(t, post, comments, nil)
		m := NewMockCommentRemote(gomock.NewController(t))
		m.EXPECT().DeleteComment(gomock.Any(), int64(1), gomock.Any()).Return(nil)

		require.NoError(t, NewCommentService(m).DeleteComment(context.Background(), d, member, 1))
		require.Len(t, d.Comments(), 1)
		require.Equal(t, int64(2), d.Comments()[0].ID)
	})

	t.Run("remote failure keeps comment", func(t *testing.T) {
		d, _ := openDetail(t, post, comments, nil)
		m := NewMockCommentRemote(gomock.NewController(t))
		m.EXPECT().DeleteComment(gomock.Any(), int64(1), gomock.Any()).Return(ErrTransient)

		require.ErrorIs(t, NewCommentService(m).DeleteComment(context.Background(), d, member, 1), ErrTransient)
		require.Len(t, d.Comments(), 2)
	})
}

func TestFileService(t *testing.T) {
	t.Parallel()

	own := model.Post{ID: 5, AuthorID: 7}
	foreign := model.Post{ID: 6, AuthorID: 8}

	t.Run("owner uploads", func(t *testing.T) {
		d, _ := openDetail(t, own, nil, nil)
		m := NewMockFileRemote(gomock.NewController(t))
		m.EXPECT().
			UploadFile(gomock.Any(), gomock.Any(), remote.HintFor(member)).
			Return(model.Attachment{ID: 3, FileName: "a.txt"}, nil)

		a, err := NewFileService(m).Upload(context.Background(), d, member, FileUpload{FileName: "a.txt", Content: strings.NewReader("a")})
		require.NoError(t, err)
		require.True(t, a.BelongsTo(5))
		require.Len(t, d.Attachments(), 1)
	})

	t.Run("upload to foreign post", func(t *testing.T) {
		d, _ := openDetail(t, foreign, nil, nil)
		m := NewMockFileRemote(gomock.NewController(t))

		_, err := NewFileService(m).Upload(context.Background(), d, member, FileUpload{FileName: "a.txt", Content: strings.NewReader("a")})
		require.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("reader downloads, only owner deletes", func(t *testing.T) {
		d, _ := openDetail(t, foreign, nil, []model.Attachment{{ID: 4, PostID: ptr(int64(6))}})
		m := NewMockFileRemote(gomock.NewController(t))
		m.EXPECT().DownloadFile(gomock.Any(), int64(4), gomock.Any()).Return(io.NopCloser(strings.NewReader("data")), nil)

		svc := NewFileService(m)
		rc, err := svc.Download(context.Background(), d, member, 4)
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		require.Equal(t, "data", string(body))

		require.ErrorIs(t, svc.Delete(context.Background(), d, member, 4), ErrAccessDenied)
		require.ErrorIs(t, svc.Delete(context.Background(), d, nil, 4), ErrAuthenticationRequired)
		require.Len(t, d.Attachments(), 1)
	})

	t.Run("owner deletes", func(t *testing.T) {
		d, _ := openDetail(t, own, nil, []model.Attachment{{ID: 4, PostID: ptr(int64(5))}})
		m := NewMockFileRemote(gomock.NewController(t))
		m.EXPECT().DeleteFile(gomock.Any(), int64(4), gomock.Any()).Return(nil)

		require.NoError(t, NewFileService(m).Delete(context.Background(), d, member, 4))
		require.Empty(t, d.Attachments())
	})
}
