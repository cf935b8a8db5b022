package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"bulletin/internal/adapter/out/remote"
	"bulletin/internal/model"
	"bulletin/pkg/pagination"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 9, 24, 12, 0, 0, 0, time.UTC)

const (
	postByID       = "FROM posts JOIN users ON users.id = posts.user_id WHERE posts.id = $1"
	postForUpdate  = postByID + " FOR UPDATE OF posts"
	commentByID    = "FROM comments JOIN users ON users.id = comments.user_id WHERE comments.id = $1"
	commentsByPost = "FROM comments JOIN users ON users.id = comments.user_id WHERE comments.post_id = $1 ORDER BY comments.id ASC"
)

func q(sql string) string {
	return regexp.QuoteMeta(sql)
}

func hint(id int64, admin bool) remote.AuthHint {
	return remote.AuthHint{CurrentUserID: &id, IsAdmin: admin}
}

func newTestSource(t *testing.T) (*Source, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	s := New(mock, trmpgx.DefaultCtxGetter, manager.Must(trmpgx.NewDefaultFactory(mock)))
	s.now = func() time.Time { return now }
	return s, mock
}

func postRows(posts ...model.Post) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{
		"id", "title", "content", "user_id", "username", "is_secret", "created_at", "updated_at",
	})
	for _, p := range posts {
		rows.AddRow(p.ID, p.Title, p.Body, p.AuthorID, p.AuthorName, p.Secret, p.CreatedAt, p.UpdatedAt)
	}
	return rows
}

func commentRows(comments ...model.Comment) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{
		"id", "post_id", "user_id", "username", "content", "created_at", "updated_at",
	})
	for _, c := range comments {
		rows.AddRow(c.ID, c.PostID, c.AuthorID, c.AuthorName, c.Body, c.CreatedAt, c.UpdatedAt)
	}
	return rows
}

func publicPost(id, author int64) model.Post {
	return model.Post{
		ID:         id,
		Title:      "title",
		Body:       "body",
		AuthorID:   author,
		AuthorName: "user",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func secretPost(id, author int64) model.Post {
	p := publicPost(id, author)
	p.Title = "secret title"
	p.Secret = true
	return p
}

func TestSource_ListPosts(t *testing.T) {
	s, mock := newTestSource(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT COUNT(*) FROM posts WHERE posts.title ILIKE $1")).
		WithArgs("%go%").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))
	mock.ExpectQuery(q("FROM posts JOIN users ON users.id = posts.user_id WHERE posts.title ILIKE $1 ORDER BY posts.created_at DESC, posts.id DESC LIMIT 2 OFFSET 2")).
		WithArgs("%go%").
		WillReturnRows(postRows(secretPost(1, 8)))
	mock.ExpectCommit()

	page, err := s.ListPosts(context.Background(), remote.ListPostsParams{
		PageRequest: pagination.PageRequest{Query: "go", Page: 1, Size: 2},
		Hint:        hint(7, false),
	})
	require.NoError(t, err)
	require.Equal(t, int64(3), page.TotalElements)
	require.Equal(t, 2, page.TotalPages)
	require.Equal(t, 1, page.PageNumber)
	require.Len(t, page.Items, 1)
	require.Equal(t, model.SecretTitlePlaceholder, page.Items[0].Title)
	require.Empty(t, page.Items[0].Body)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTitleFilter_EscapesWildcards(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{query: "go", want: "%go%"},
		{query: "100%", want: `%100\%%`},
		{query: "snake_case", want: `%snake\_case%`},
		{query: `a\b`, want: `%a\\b%`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.query, func(t *testing.T) {
			sql, args, err := titleFilter(tt.query).ToSql()
			require.NoError(t, err)
			require.Equal(t, "posts.title ILIKE ?", sql)
			require.Equal(t, []any{tt.want}, args)
		})
	}
	require.Nil(t, titleFilter(""))
}

func TestSource_ListPostsOwnerSeesSecret(t *testing.T) {
	s, mock := newTestSource(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT COUNT(*) FROM posts")).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))
	mock.ExpectQuery(q("ORDER BY posts.created_at DESC, posts.id DESC LIMIT 10 OFFSET 0")).
		WillReturnRows(postRows(secretPost(2, 8), publicPost(1, 7)))
	mock.ExpectCommit()

	page, err := s.ListPosts(context.Background(), remote.ListPostsParams{Hint: hint(8, false)})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.Equal(t, "secret title", page.Items[0].Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSource_ListPostsRollsBackOnError(t *testing.T) {
	s, mock := newTestSource(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT COUNT(*) FROM posts")).WillReturnError(boom)
	mock.ExpectRollback()

	_, err := s.ListPosts(context.Background(), remote.ListPostsParams{})
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSource_GetPost(t *testing.T) {
	tests := []struct {
		name    string
		hint    remote.AuthHint
		rows    *pgxmock.Rows
		rowErr  error
		wantErr error
	}{
		{
			name: "public post",
			rows: postRows(publicPost(5, 8)),
		},
		{
			name: "own secret post",
			hint: hint(8, false),
			rows: postRows(secretPost(5, 8)),
		},
		{
			name: "admin reads secret post",
			hint: hint(1, true),
			rows: postRows(secretPost(5, 8)),
		},
		{
			name:    "secret post of someone else",
			hint:    hint(7, false),
			rows:    postRows(secretPost(5, 8)),
			wantErr: remote.ErrAccessDenied,
		},
		{
			name:    "anonymous on secret post",
			rows:    postRows(secretPost(5, 8)),
			wantErr: remote.ErrAuthenticationRequired,
		},
		{
			name:    "missing",
			rowErr:  pgx.ErrNoRows,
			wantErr: remote.ErrNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newTestSource(t)

			exp := mock.ExpectQuery(q(postByID)).WithArgs(int64(5))
			if tt.rowErr != nil {
				exp.WillReturnError(tt.rowErr)
			} else {
				exp.WillReturnRows(tt.rows)
			}

			p, err := s.GetPost(context.Background(), 5, tt.hint)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, int64(5), p.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSource_CreatePost(t *testing.T) {
	s, mock := newTestSource(t)

	created := publicPost(11, 7)
	mock.ExpectBegin()
	mock.ExpectQuery(q("INSERT INTO posts (title,content,user_id,is_secret,created_at,updated_at) VALUES ($1,$2,$3,$4,$5,$6) RETURNING id")).
		WithArgs("title", "body", int64(7), false, now, now).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))
	mock.ExpectQuery(q(postByID)).
		WithArgs(int64(11)).
		WillReturnRows(postRows(created))
	mock.ExpectCommit()

	p, err := s.CreatePost(context.Background(), remote.CreatePostParams{
		AuthorID: 7,
		Title:    "title",
		Body:     "body",
	}, hint(7, false))
	require.NoError(t, err)
	require.Equal(t, created, p)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSource_CreatePostRejected(t *testing.T) {
	tests := []struct {
		name    string
		params  remote.CreatePostParams
		hint    remote.AuthHint
		wantErr error
	}{
		{
			name:    "anonymous",
			params:  remote.CreatePostParams{AuthorID: 7, Title: "t", Body: "b"},
			wantErr: remote.ErrAuthenticationRequired,
		},
		{
			name:    "author differs from requester",
			params:  remote.CreatePostParams{AuthorID: 8, Title: "t", Body: "b"},
			hint:    hint(7, false),
			wantErr: remote.ErrAccessDenied,
		},
		{
			name:    "blank title",
			params:  remote.CreatePostParams{AuthorID: 7, Title: "  ", Body: "b"},
			hint:    hint(7, false),
			wantErr: remote.ErrInvalidRequest,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newTestSource(t)

			_, err := s.CreatePost(context.Background(), tt.params, tt.hint)
			require.ErrorIs(t, err, tt.wantErr)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSource_UpdatePost(t *testing.T) {
	s, mock := newTestSource(t)

	updated := publicPost(5, 7)
	updated.Title = "new"
	updated.Secret = true

	mock.ExpectBegin()
	mock.ExpectQuery(q(postForUpdate)).
		WithArgs(int64(5)).
		WillReturnRows(postRows(publicPost(5, 7)))
	mock.ExpectExec(q("UPDATE posts SET title = $1, content = $2, is_secret = $3, updated_at = $4 WHERE id = $5")).
		WithArgs("new", "body", true, now, int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery(q(postByID)).
		WithArgs(int64(5)).
		WillReturnRows(postRows(updated))
	mock.ExpectCommit()

	p, err := s.UpdatePost(context.Background(), 5, remote.UpdatePostParams{
		Title:  "new",
		Body:   "body",
		Secret: true,
	}, hint(7, false))
	require.NoError(t, err)
	require.Equal(t, updated, p)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSource_UpdatePostDenied(t *testing.T) {
	s, mock := newTestSource(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q(postForUpdate)).
		WithArgs(int64(5)).
		WillReturnRows(postRows(publicPost(5, 8)))
	mock.ExpectRollback()

	_, err := s.UpdatePost(context.Background(), 5, remote.UpdatePostParams{
		Title: "new",
		Body:  "body",
	}, hint(7, false))
	require.ErrorIs(t, err, remote.ErrAccessDenied)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSource_DeletePost(t *testing.T) {
	s, mock := newTestSource(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q(postForUpdate)).
		WithArgs(int64(5)).
		WillReturnRows(postRows(secretPost(5, 8)))
	mock.ExpectExec(q("DELETE FROM comments WHERE post_id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec(q("DELETE FROM files WHERE post_id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(q("DELETE FROM posts WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	require.NoError(t, s.DeletePost(context.Background(), 5, hint(1, true)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSource_DeletePostMissing(t *testing.T) {
	s, mock := newTestSource(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q(postForUpdate)).
		WithArgs(int64(5)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	err := s.DeletePost(context.Background(), 5, hint(7, false))
	require.ErrorIs(t, err, remote.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSource_ListComments(t *testing.T) {
	s, mock := newTestSource(t)

	c := model.Comment{ID: 3, PostID: 5, AuthorID: 8, AuthorName: "lee", Body: "hi", CreatedAt: now, UpdatedAt: now}
	mock.ExpectQuery(q(postByID)).
		WithArgs(int64(5)).
		WillReturnRows(postRows(publicPost(5, 7)))
	mock.ExpectQuery(q(commentsByPost)).
		WithArgs(int64(5)).
		WillReturnRows(commentRows(c))

	got, err := s.ListComments(context.Background(), 5, remote.AuthHint{})
	require.NoError(t, err)
	require.Equal(t, []model.Comment{c}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSource_ListCommentsOfUnreadablePost(t *testing.T) {
	s, mock := newTestSource(t)

	mock.ExpectQuery(q(postByID)).
		WithArgs(int64(5)).
		WillReturnRows(postRows(secretPost(5, 8)))

	_, err := s.ListComments(context.Background(), 5, hint(7, false))
	require.ErrorIs(t, err, remote.ErrAccessDenied)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSource_CreateComment(t *testing.T) {
	t.Run("readable post", func(t *testing.T) {
		s, mock := newTestSource(t)

		c := model.Comment{ID: 9, PostID: 5, AuthorID: 7, AuthorName: "kim", Body: "hello", CreatedAt: now, UpdatedAt: now}
		mock.ExpectBegin()
		mock.ExpectQuery(q(postByID)).
			WithArgs(int64(5)).
			WillReturnRows(postRows(publicPost(5, 8)))
		mock.ExpectQuery(q("INSERT INTO comments (post_id,user_id,content,created_at,updated_at) VALUES ($1,$2,$3,$4,$5) RETURNING id")).
			WithArgs(int64(5), int64(7), "hello", now, now).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(9)))
		mock.ExpectQuery(q(commentByID)).
			WithArgs(int64(9)).
			WillReturnRows(commentRows(c))
		mock.ExpectCommit()

		got, err := s.CreateComment(context.Background(), remote.CreateCommentParams{
			PostID:   5,
			AuthorID: 7,
			Body:     "hello",
		}, hint(7, false))
		require.NoError(t, err)
		require.Equal(t, c, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("secret post of someone else", func(t *testing.T) {
		s, mock := newTestSource(t)

		mock.ExpectBegin()
		mock.ExpectQuery(q(postByID)).
			WithArgs(int64(5)).
			WillReturnRows(postRows(secretPost(5, 8)))
		mock.ExpectRollback()

		_, err := s.CreateComment(context.Background(), remote.CreateCommentParams{
			PostID:   5,
			AuthorID: 7,
			Body:     "hello",
		}, hint(7, false))
		require.ErrorIs(t, err, remote.ErrAccessDenied)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSource_UpdateComment(t *testing.T) {
	s, mock := newTestSource(t)

	c := model.Comment{ID: 9, PostID: 5, AuthorID: 7, AuthorName: "kim", Body: "hello", CreatedAt: now, UpdatedAt: now}
	edited := c
	edited.Body = "edited"

	mock.ExpectBegin()
	mock.ExpectQuery(q(commentByID)).
		WithArgs(int64(9)).
		WillReturnRows(commentRows(c))
	mock.ExpectQuery(q(postByID)).
		WithArgs(int64(5)).
		WillReturnRows(postRows(publicPost(5, 8)))
	mock.ExpectExec(q("UPDATE comments SET content = $1, updated_at = $2 WHERE id = $3")).
		WithArgs("edited", now, int64(9)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery(q(commentByID)).
		WithArgs(int64(9)).
		WillReturnRows(commentRows(edited))
	mock.ExpectCommit()

	got, err := s.UpdateComment(context.Background(), 9, "edited", hint(7, false))
	require.NoError(t, err)
	require.Equal(t, edited, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSource_DeleteComment(t *testing.T) {
	tests := []struct {
		name    string
		hint    remote.AuthHint
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name: "author deletes",
			hint: hint(7, false),
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(q(commentByID)).
					WithArgs(int64(9)).
					WillReturnRows(commentRows(model.Comment{ID: 9, PostID: 5, AuthorID: 7, CreatedAt: now, UpdatedAt: now}))
				mock.ExpectQuery(q(postByID)).
					WithArgs(int64(5)).
					WillReturnRows(postRows(publicPost(5, 8)))
				mock.ExpectExec(q("DELETE FROM comments WHERE id = $1")).
					WithArgs(int64(9)).
					WillReturnResult(pgxmock.NewResult("DELETE", 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "someone else",
			hint: hint(8, false),
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(q(commentByID)).
					WithArgs(int64(9)).
					WillReturnRows(commentRows(model.Comment{ID: 9, PostID: 5, AuthorID: 7, CreatedAt: now, UpdatedAt: now}))
				mock.ExpectQuery(q(postByID)).
					WithArgs(int64(5)).
					WillReturnRows(postRows(publicPost(5, 8)))
				mock.ExpectRollback()
			},
			wantErr: remote.ErrAccessDenied,
		},
		{
			name: "missing",
			hint: hint(7, false),
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(q(commentByID)).
					WithArgs(int64(9)).
					WillReturnError(pgx.ErrNoRows)
				mock.ExpectRollback()
			},
			wantErr: remote.ErrNotFound,
		},
		{
			name:    "anonymous",
			setup:   func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			wantErr: remote.ErrAuthenticationRequired,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newTestSource(t)
			tt.setup(mock)

			err := s.DeleteComment(context.Background(), 9, tt.hint)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
