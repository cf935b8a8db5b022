package service

import (
	"context"
	"fmt"

	"bulletin/internal/access"
	"bulletin/internal/adapter/out/remote"
	"bulletin/internal/model"
)

type CommentService struct {
	comments CommentRemote
}

func NewCommentService(comments CommentRemote) *CommentService {
	return &CommentService{
		comments: comments,
	}
}

// AddComment posts a comment under the opened post.
func (s *CommentService) AddComment(ctx context.Context, d *Detail, id *model.Identity, draft CommentDraft) (model.Comment, error) {
	parent := d.parent()
	if !access.CanComment(id, parent) {
		return model.Comment{}, d.refuse(id)
	}
	draft, err := draft.normalize()
	if err != nil {
		return model.Comment{}, err
	}

	c, err := s.comments.CreateComment(ctx, remote.CreateCommentParams{
		PostID:   parent.ID,
		AuthorID: id.ID,
		Body:     draft.Body,
	}, remote.HintFor(id))
	if err != nil {
		return model.Comment{}, err
	}

	d.addComment(c)
	return c, nil
}

func (s *CommentService) EditComment(ctx context.Context, d *Detail, id *model.Identity, commentID int64, draft CommentDraft) (model.Comment, error) {
	cur, err := s.writable(d, id, commentID)
	if err != nil {
		return model.Comment{}, err
	}
	draft, err = draft.normalize()
	if err != nil {
		return model.Comment{}, err
	}

	c, err := s.comments.UpdateComment(ctx, cur.ID, draft.Body, remote.HintFor(id))
	if err != nil {
		return model.Comment{}, err
	}

	d.replaceComment(c)
	return c, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, d *Detail, id *model.Identity, commentID int64) error {
	cur, err := s.writable(d, id, commentID)
	if err != nil {
		return err
	}
	if err := s.comments.DeleteComment(ctx, cur.ID, remote.HintFor(id)); err != nil {
		return err
	}
	d.removeComment(cur.ID)
	return nil
}

func (s *CommentService) writable(d *Detail, id *model.Identity, commentID int64) (model.Comment, error) {
	if commentID <= 0 {
		return model.Comment{}, fmt.Errorf("commentID must be > 0: %w", ErrInvalidRequest)
	}
	if id == nil {
		return model.Comment{}, ErrAuthenticationRequired
	}
	c, ok := d.comment(commentID)
	if !ok {
		return model.Comment{}, fmt.Errorf("comment %d: %w", commentID, ErrNotFound)
	}
	if !access.CanWriteComment(id, c, d.parent()) {
		return model.Comment{}, d.refuse(id)
	}
	return c, nil
}
