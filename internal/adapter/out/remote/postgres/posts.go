package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bulletin/internal/access"
	"bulletin/internal/adapter/out/remote"
	"bulletin/internal/model"
	"bulletin/pkg/pagination"
	"bulletin/pkg/tableinfo"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// likeEscaper makes the keyword match literally under the default LIKE
// escape character.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func titleFilter(query string) sq.Sqlizer {
	if query == "" {
		return nil
	}
	return sq.ILike{postsTable(tableinfo.PostTitleColumn): "%" + likeEscaper.Replace(query) + "%"}
}

// ListPosts counts and reads one page inside a single transaction so the
// total matches the rows.
func (s *Source) ListPosts(ctx context.Context, params remote.ListPostsParams) (pagination.Page[model.Post], error) {
	req := params.PageRequest.Normalize()
	id := params.Hint.Identity()

	countQB := sq.
		Select("COUNT(*)").
		From(tableinfo.PostsTableName).
		PlaceholderFormat(sq.Dollar)
	listQB := selectPosts().
		OrderBy(
			postsTable(tableinfo.PostCreatedAtColumn)+" DESC",
			postsTable(tableinfo.PostIDColumn)+" DESC",
		).
		Limit(uint64(req.Size)).
		Offset(uint64(req.Offset()))
	if f := titleFilter(req.Query); f != nil {
		countQB = countQB.Where(f)
		listQB = listQB.Where(f)
	}

	countSQL, countArgs, err := countQB.ToSql()
	if err != nil {
		return pagination.Page[model.Post]{}, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}
	listSQL, listArgs, err := listQB.ToSql()
	if err != nil {
		return pagination.Page[model.Post]{}, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	var (
		total int64
		items []model.Post
	)
	err = s.manager.Do(ctx, func(ctx context.Context) error {
		tr := s.getter.DefaultTrOrDB(ctx, s.db)

		if err := tr.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
			return fmt.Errorf("exec count posts: %w", err)
		}

		rows, err := tr.Query(ctx, listSQL, listArgs...)
		if err != nil {
			return fmt.Errorf("exec select posts: %w", err)
		}
		defer rows.Close()

		items = make([]model.Post, 0, req.Size)
		for rows.Next() {
			p, err := scanPost(rows)
			if err != nil {
				return fmt.Errorf("scan: %w", err)
			}
			if !access.CanRead(id, &p) {
				p = p.Redacted()
			}
			items = append(items, p)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return pagination.Page[model.Post]{}, err
	}

	return pagination.NewPage(items, req, total), nil
}

func (s *Source) GetPost(ctx context.Context, postID int64, hint remote.AuthHint) (model.Post, error) {
	p, err := s.getPost(ctx, postID, false)
	if err != nil {
		return model.Post{}, err
	}
	if id := hint.Identity(); !access.CanRead(id, &p) {
		return model.Post{}, denied(id)
	}
	return p, nil
}

func (s *Source) getPost(ctx context.Context, postID int64, forUpdate bool) (model.Post, error) {
	qb := selectPosts().Where(sq.Eq{postsTable(tableinfo.PostIDColumn): postID})
	if forUpdate {
		qb = qb.Suffix("FOR UPDATE OF " + tableinfo.PostsTableName)
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return model.Post{}, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	p, err := scanPost(tr.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Post{}, fmt.Errorf("post %d: %w", postID, remote.ErrNotFound)
		}
		return model.Post{}, fmt.Errorf("exec select post by id: %w", err)
	}
	return p, nil
}

// writablePost locks the post row for the rest of the transaction.
func (s *Source) writablePost(ctx context.Context, postID int64, id *model.Identity) (model.Post, error) {
	if id == nil {
		return model.Post{}, remote.ErrAuthenticationRequired
	}
	p, err := s.getPost(ctx, postID, true)
	if err != nil {
		return model.Post{}, err
	}
	if !access.CanWrite(id, &p) {
		return model.Post{}, remote.ErrAccessDenied
	}
	return p, nil
}

func (s *Source) CreatePost(ctx context.Context, params remote.CreatePostParams, hint remote.AuthHint) (model.Post, error) {
	id := hint.Identity()
	if id == nil {
		return model.Post{}, remote.ErrAuthenticationRequired
	}
	if id.ID != params.AuthorID {
		return model.Post{}, remote.ErrAccessDenied
	}
	if strings.TrimSpace(params.Title) == "" || strings.TrimSpace(params.Body) == "" {
		return model.Post{}, fmt.Errorf("title and content are required: %w", remote.ErrInvalidRequest)
	}

	now := s.now()
	query, args, err := sq.
		Insert(tableinfo.PostsTableName).
		Columns(
			tableinfo.PostTitleColumn,
			tableinfo.PostContentColumn,
			tableinfo.PostUserIDColumn,
			tableinfo.PostSecretColumn,
			tableinfo.PostCreatedAtColumn,
			tableinfo.PostUpdatedAtColumn,
		).
		Values(params.Title, params.Body, params.AuthorID, params.Secret, now, now).
		Suffix("RETURNING " + tableinfo.PostIDColumn).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.Post{}, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	var out model.Post
	err = s.manager.Do(ctx, func(ctx context.Context) error {
		tr := s.getter.DefaultTrOrDB(ctx, s.db)

		var postID int64
		if err := tr.QueryRow(ctx, query, args...).Scan(&postID); err != nil {
			return fmt.Errorf("exec insert post: %w", err)
		}

		p, err := s.getPost(ctx, postID, false)
		out = p
		return err
	})
	if err != nil {
		return model.Post{}, err
	}
	return out, nil
}

func (s *Source) UpdatePost(ctx context.Context, postID int64, params remote.UpdatePostParams, hint remote.AuthHint) (model.Post, error) {
	if strings.TrimSpace(params.Title) == "" || strings.TrimSpace(params.Body) == "" {
		return model.Post{}, fmt.Errorf("title and content are required: %w", remote.ErrInvalidRequest)
	}

	query, args, err := sq.
		Update(tableinfo.PostsTableName).
		Set(tableinfo.PostTitleColumn, params.Title).
		Set(tableinfo.PostContentColumn, params.Body).
		Set(tableinfo.PostSecretColumn, params.Secret).
		Set(tableinfo.PostUpdatedAtColumn, s.now()).
		Where(sq.Eq{tableinfo.PostIDColumn: postID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.Post{}, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	var out model.Post
	err = s.manager.Do(ctx, func(ctx context.Context) error {
		if _, err := s.writablePost(ctx, postID, hint.Identity()); err != nil {
			return err
		}

		tr := s.getter.DefaultTrOrDB(ctx, s.db)
		if _, err := tr.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("exec update post: %w", err)
		}

		p, err := s.getPost(ctx, postID, false)
		out = p
		return err
	})
	if err != nil {
		return model.Post{}, err
	}
	return out, nil
}

// DeletePost removes the post together with its comments and file rows.
func (s *Source) DeletePost(ctx context.Context, postID int64, hint remote.AuthHint) error {
	deletes := []sq.DeleteBuilder{
		sq.Delete(tableinfo.CommentsTableName).Where(sq.Eq{tableinfo.CommentPostIDColumn: postID}),
		sq.Delete(tableinfo.FilesTableName).Where(sq.Eq{tableinfo.FilePostIDColumn: postID}),
		sq.Delete(tableinfo.PostsTableName).Where(sq.Eq{tableinfo.PostIDColumn: postID}),
	}

	return s.manager.Do(ctx, func(ctx context.Context) error {
		if _, err := s.writablePost(ctx, postID, hint.Identity()); err != nil {
			return err
		}

		tr := s.getter.DefaultTrOrDB(ctx, s.db)
		for _, qb := range deletes {
			query, args, err := qb.PlaceholderFormat(sq.Dollar).ToSql()
			if err != nil {
				return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
			}
			if _, err := tr.Exec(ctx, query, args...); err != nil {
				return fmt.Errorf("exec delete: %w", err)
			}
		}
		return nil
	})
}
