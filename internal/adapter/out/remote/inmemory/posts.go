package inmemory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"bulletin/internal/access"
	"bulletin/internal/adapter/out/remote"
	"bulletin/internal/model"
	"bulletin/pkg/pagination"
)

// ListPosts pages through posts newest first. Secret posts the session may
// not read come back redacted.
func (b *Board) ListPosts(_ context.Context, params remote.ListPostsParams) (pagination.Page[model.Post], error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	req := params.PageRequest.Normalize()
	id := b.requesterLocked()
	return pagination.Slice(b.newestFirstLocked(req.Query, id), req), nil
}

// newestFirstLocked returns the posts whose title contains keyword, those
// id may not read redacted.
func (b *Board) newestFirstLocked(keyword string, id *model.Identity) []model.Post {
	keyword = strings.ToLower(keyword)

	all := make([]model.Post, 0, len(b.posts))
	for _, p := range b.posts {
		if keyword != "" && !strings.Contains(strings.ToLower(p.Title), keyword) {
			continue
		}
		if !access.CanRead(id, &p) {
			p = p.Redacted()
		}
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})
	return all
}

func (b *Board) GetPost(_ context.Context, postID int64, _ remote.AuthHint) (model.Post, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	p, err := b.postLocked(postID)
	if err != nil {
		return model.Post{}, err
	}
	if id := b.requesterLocked(); !access.CanRead(id, &p) {
		return model.Post{}, denied(id)
	}
	return p, nil
}

func (b *Board) CreatePost(_ context.Context, params remote.CreatePostParams, _ remote.AuthHint) (model.Post, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.requesterLocked()
	if id == nil {
		return model.Post{}, remote.ErrAuthenticationRequired
	}
	if strings.TrimSpace(params.Title) == "" || strings.TrimSpace(params.Body) == "" {
		return model.Post{}, fmt.Errorf("title and content are required: %w", remote.ErrInvalidRequest)
	}

	now := b.now()
	b.postSeq++
	p := model.Post{
		ID:         b.postSeq,
		Title:      params.Title,
		Body:       params.Body,
		AuthorID:   id.ID,
		AuthorName: id.DisplayName,
		Secret:     params.Secret,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	b.posts[p.ID] = p
	return p, nil
}

func (b *Board) UpdatePost(_ context.Context, postID int64, params remote.UpdatePostParams, _ remote.AuthHint) (model.Post, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, err := b.writablePostLocked(postID)
	if err != nil {
		return model.Post{}, err
	}
	if strings.TrimSpace(params.Title) == "" || strings.TrimSpace(params.Body) == "" {
		return model.Post{}, fmt.Errorf("title and content are required: %w", remote.ErrInvalidRequest)
	}

	p.Title = params.Title
	p.Body = params.Body
	p.Secret = params.Secret
	p.UpdatedAt = b.now()
	b.posts[p.ID] = p
	return p, nil
}

// DeletePost removes the post together with its comments and files.
func (b *Board) DeletePost(_ context.Context, postID int64, _ remote.AuthHint) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.writablePostLocked(postID); err != nil {
		return err
	}
	b.deletePostLocked(postID)
	return nil
}

func (b *Board) deletePostLocked(postID int64) {
	delete(b.posts, postID)
	for cid, c := range b.comments {
		if c.PostID == postID {
			delete(b.comments, cid)
		}
	}
	for fid, f := range b.files {
		if f.meta.BelongsTo(postID) {
			delete(b.files, fid)
		}
	}
}

func (b *Board) postLocked(postID int64) (model.Post, error) {
	p, ok := b.posts[postID]
	if !ok {
		return model.Post{}, fmt.Errorf("post %d: %w", postID, remote.ErrNotFound)
	}
	return p, nil
}

func (b *Board) writablePostLocked(postID int64) (model.Post, error) {
	id := b.requesterLocked()
	if id == nil {
		return model.Post{}, remote.ErrAuthenticationRequired
	}
	p, err := b.postLocked(postID)
	if err != nil {
		return model.Post{}, err
	}
	if !access.CanWrite(id, &p) {
		return model.Post{}, remote.ErrAccessDenied
	}
	return p, nil
}

// readablePostLocked returns the parent of a child resource when the
// session may read it.
func (b *Board) readablePostLocked(postID int64) (model.Post, *model.Identity, error) {
	id := b.requesterLocked()
	p, err := b.postLocked(postID)
	if err != nil {
		return model.Post{}, id, err
	}
	if !access.CanRead(id, &p) {
		return model.Post{}, id, denied(id)
	}
	return p, id, nil
}
