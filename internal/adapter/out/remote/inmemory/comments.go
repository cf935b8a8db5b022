package inmemory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"bulletin/internal/access"
	"bulletin/internal/adapter/out/remote"
	"bulletin/internal/model"
)

// ListComments returns the comments of a readable post, oldest first.
func (b *Board) ListComments(_ context.Context, postID int64, _ remote.AuthHint) ([]model.Comment, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if _, _, err := b.readablePostLocked(postID); err != nil {
		return nil, err
	}

	var out []model.Comment
	for _, c := range b.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (b *Board) CreateComment(_ context.Context, params remote.CreateCommentParams, _ remote.AuthHint) (model.Comment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.requesterLocked()
	if id == nil {
		return model.Comment{}, remote.ErrAuthenticationRequired
	}
	if strings.TrimSpace(params.Body) == "" {
		return model.Comment{}, fmt.Errorf("content is required: %w", remote.ErrInvalidRequest)
	}
	parent, _, err := b.readablePostLocked(params.PostID)
	if err != nil {
		return model.Comment{}, err
	}

	now := b.now()
	b.commentSeq++
	c := model.Comment{
		ID:         b.commentSeq,
		PostID:     parent.ID,
		AuthorID:   id.ID,
		AuthorName: id.DisplayName,
		Body:       params.Body,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	b.comments[c.ID] = c
	return c, nil
}

func (b *Board) UpdateComment(_ context.Context, commentID int64, body string, _ remote.AuthHint) (model.Comment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, err := b.writableCommentLocked(commentID)
	if err != nil {
		return model.Comment{}, err
	}
	if strings.TrimSpace(body) == "" {
		return model.Comment{}, fmt.Errorf("content is required: %w", remote.ErrInvalidRequest)
	}

	c.Body = body
	c.UpdatedAt = b.now()
	b.comments[c.ID] = c
	return c, nil
}

func (b *Board) DeleteComment(_ context.Context, commentID int64, _ remote.AuthHint) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, err := b.writableCommentLocked(commentID)
	if err != nil {
		return err
	}
	delete(b.comments, c.ID)
	return nil
}

func (b *Board) writableCommentLocked(commentID int64) (model.Comment, error) {
	id := b.requesterLocked()
	if id == nil {
		return model.Comment{}, remote.ErrAuthenticationRequired
	}
	c, ok := b.comments[commentID]
	if !ok {
		return model.Comment{}, fmt.Errorf("comment %d: %w", commentID, remote.ErrNotFound)
	}
	parent, err := b.postLocked(c.PostID)
	if err != nil {
		return model.Comment{}, err
	}
	if !access.CanWriteComment(id, c, &parent) {
		return model.Comment{}, remote.ErrAccessDenied
	}
	return c, nil
}
