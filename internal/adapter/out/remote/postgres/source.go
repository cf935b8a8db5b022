package postgres

import (
	"errors"
	"fmt"
	"time"

	"bulletin/internal/adapter/out/remote"
	"bulletin/internal/model"
	"bulletin/pkg/tableinfo"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

var ErrBuildingQuery = errors.New("error building sql-query")

// Source reads and writes posts and comments straight in the board
// database. It enforces the same visibility and ownership rules as the
// board service, taking the requester from the auth hint.
type Source struct {
	db      trmpgx.Tr
	getter  *trmpgx.CtxGetter
	manager trm.Manager
	now     func() time.Time
}

func New(db trmpgx.Tr, getter *trmpgx.CtxGetter, manager trm.Manager) *Source {
	return &Source{
		db:      db,
		getter:  getter,
		manager: manager,
		now:     time.Now,
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func postsTable(column string) string {
	return tableinfo.Qualified(tableinfo.PostsTableName, column)
}

func commentsTable(column string) string {
	return tableinfo.Qualified(tableinfo.CommentsTableName, column)
}

func authorJoin(ownerColumn string) string {
	return fmt.Sprintf("%s ON %s = %s",
		tableinfo.UsersTableName,
		tableinfo.Qualified(tableinfo.UsersTableName, tableinfo.UserIDColumn),
		ownerColumn,
	)
}

func selectPosts() sq.SelectBuilder {
	return sq.
		Select(
			postsTable(tableinfo.PostIDColumn),
			postsTable(tableinfo.PostTitleColumn),
			postsTable(tableinfo.PostContentColumn),
			postsTable(tableinfo.PostUserIDColumn),
			tableinfo.Qualified(tableinfo.UsersTableName, tableinfo.UserUsernameColumn),
			postsTable(tableinfo.PostSecretColumn),
			postsTable(tableinfo.PostCreatedAtColumn),
			fmt.Sprintf("COALESCE(%s, %s)",
				postsTable(tableinfo.PostUpdatedAtColumn),
				postsTable(tableinfo.PostCreatedAtColumn),
			),
		).
		From(tableinfo.PostsTableName).
		Join(authorJoin(postsTable(tableinfo.PostUserIDColumn))).
		PlaceholderFormat(sq.Dollar)
}

func scanPost(row scanner) (model.Post, error) {
	var p model.Post
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Body,
		&p.AuthorID,
		&p.AuthorName,
		&p.Secret,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func selectComments() sq.SelectBuilder {
	return sq.
		Select(
			commentsTable(tableinfo.CommentIDColumn),
			commentsTable(tableinfo.CommentPostIDColumn),
			commentsTable(tableinfo.CommentUserIDColumn),
			tableinfo.Qualified(tableinfo.UsersTableName, tableinfo.UserUsernameColumn),
			commentsTable(tableinfo.CommentContentColumn),
			commentsTable(tableinfo.CommentCreatedAtColumn),
			fmt.Sprintf("COALESCE(%s, %s)",
				commentsTable(tableinfo.CommentUpdatedAtColumn),
				commentsTable(tableinfo.CommentCreatedAtColumn),
			),
		).
		From(tableinfo.CommentsTableName).
		Join(authorJoin(commentsTable(tableinfo.CommentUserIDColumn))).
		PlaceholderFormat(sq.Dollar)
}

func scanComment(row scanner) (model.Comment, error) {
	var c model.Comment
	err := row.Scan(
		&c.ID,
		&c.PostID,
		&c.AuthorID,
		&c.AuthorName,
		&c.Body,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

func denied(id *model.Identity) error {
	if id == nil {
		return remote.ErrAuthenticationRequired
	}
	return remote.ErrAccessDenied
}
