package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bulletin/internal/access"
	"bulletin/internal/adapter/out/remote"
	"bulletin/internal/model"
	"bulletin/pkg/tableinfo"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// ListComments returns the comments of a readable post, oldest first.
func (s *Source) ListComments(ctx context.Context, postID int64, hint remote.AuthHint) ([]model.Comment, error) {
	query, args, err := selectComments().
		Where(sq.Eq{commentsTable(tableinfo.CommentPostIDColumn): postID}).
		OrderBy(commentsTable(tableinfo.CommentIDColumn) + " ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	if _, err := s.GetPost(ctx, postID, hint); err != nil {
		return nil, err
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	rows, err := tr.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("exec select comments: %w", err)
	}
	defer rows.Close()

	var out []model.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func (s *Source) getComment(ctx context.Context, commentID int64) (model.Comment, error) {
	query, args, err := selectComments().
		Where(sq.Eq{commentsTable(tableinfo.CommentIDColumn): commentID}).
		ToSql()
	if err != nil {
		return model.Comment{}, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	c, err := scanComment(tr.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Comment{}, fmt.Errorf("comment %d: %w", commentID, remote.ErrNotFound)
		}
		return model.Comment{}, fmt.Errorf("exec select comment by id: %w", err)
	}
	return c, nil
}

func (s *Source) writableComment(ctx context.Context, commentID int64, id *model.Identity) (model.Comment, error) {
	if id == nil {
		return model.Comment{}, remote.ErrAuthenticationRequired
	}
	c, err := s.getComment(ctx, commentID)
	if err != nil {
		return model.Comment{}, err
	}
	parent, err := s.getPost(ctx, c.PostID, false)
	if err != nil {
		return model.Comment{}, err
	}
	if !access.CanWriteComment(id, c, &parent) {
		return model.Comment{}, remote.ErrAccessDenied
	}
	return c, nil
}

func (s *Source) CreateComment(ctx context.Context, params remote.CreateCommentParams, hint remote.AuthHint) (model.Comment, error) {
	id := hint.Identity()
	if id == nil {
		return model.Comment{}, remote.ErrAuthenticationRequired
	}
	if id.ID != params.AuthorID {
		return model.Comment{}, remote.ErrAccessDenied
	}
	if strings.TrimSpace(params.Body) == "" {
		return model.Comment{}, fmt.Errorf("content is required: %w", remote.ErrInvalidRequest)
	}

	now := s.now()
	query, args, err := sq.
		Insert(tableinfo.CommentsTableName).
		Columns(
			tableinfo.CommentPostIDColumn,
			tableinfo.CommentUserIDColumn,
			tableinfo.CommentContentColumn,
			tableinfo.CommentCreatedAtColumn,
			tableinfo.CommentUpdatedAtColumn,
		).
		Values(params.PostID, params.AuthorID, params.Body, now, now).
		Suffix("RETURNING " + tableinfo.CommentIDColumn).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.Comment{}, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	var out model.Comment
	err = s.manager.Do(ctx, func(ctx context.Context) error {
		parent, err := s.getPost(ctx, params.PostID, false)
		if err != nil {
			return err
		}
		if !access.CanComment(id, &parent) {
			return remote.ErrAccessDenied
		}

		tr := s.getter.DefaultTrOrDB(ctx, s.db)
		var commentID int64
		if err := tr.QueryRow(ctx, query, args...).Scan(&commentID); err != nil {
			return fmt.Errorf("exec insert comment: %w", err)
		}

		c, err := s.getComment(ctx, commentID)
		out = c
		return err
	})
	if err != nil {
		return model.Comment{}, err
	}
	return out, nil
}

func (s *Source) UpdateComment(ctx context.Context, commentID int64, body string, hint remote.AuthHint) (model.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return model.Comment{}, fmt.Errorf("content is required: %w", remote.ErrInvalidRequest)
	}

	query, args, err := sq.
		Update(tableinfo.CommentsTableName).
		Set(tableinfo.CommentContentColumn, body).
		Set(tableinfo.CommentUpdatedAtColumn, s.now()).
		Where(sq.Eq{tableinfo.CommentIDColumn: commentID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.Comment{}, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	var out model.Comment
	err = s.manager.Do(ctx, func(ctx context.Context) error {
		if _, err := s.writableComment(ctx, commentID, hint.Identity()); err != nil {
			return err
		}

		tr := s.getter.DefaultTrOrDB(ctx, s.db)
		if _, err := tr.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("exec update comment: %w", err)
		}

		c, err := s.getComment(ctx, commentID)
		out = c
		return err
	})
	if err != nil {
		return model.Comment{}, err
	}
	return out, nil
}

func (s *Source) DeleteComment(ctx context.Context, commentID int64, hint remote.AuthHint) error {
	query, args, err := sq.
		Delete(tableinfo.CommentsTableName).
		Where(sq.Eq{tableinfo.CommentIDColumn: commentID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	return s.manager.Do(ctx, func(ctx context.Context) error {
		if _, err := s.writableComment(ctx, commentID, hint.Identity()); err != nil {
			return err
		}

		tr := s.getter.DefaultTrOrDB(ctx, s.db)
		if _, err := tr.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("exec delete comment: %w", err)
		}
		return nil
	})
}
