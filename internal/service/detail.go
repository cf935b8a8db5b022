package service

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"bulletin/internal/access"
	"bulletin/internal/adapter/out/remote"
	"bulletin/internal/model"
)

// Detail is one opened post with its comments and attachments. It belongs
// to a single detail surface and is patched by the comment and file
// operations after they succeed.
type Detail struct {
	mu       sync.RWMutex
	post     model.Post
	comments []model.Comment
	files    []model.Attachment
	deleted  bool
}

// OpenDetail loads a readable post and the children that belong to it.
func (s *PostService) OpenDetail(ctx context.Context, id *model.Identity, postID int64) (*Detail, error) {
	p, err := s.GetPost(ctx, id, postID)
	if err != nil {
		return nil, err
	}

	hint := remote.HintFor(id)
	comments, err := s.comments.ListComments(ctx, postID, hint)
	if err != nil {
		return nil, err
	}
	files, err := s.files.ListFiles(ctx, postID, hint)
	if err != nil {
		return nil, err
	}

	d := &Detail{post: p}
	for _, c := range comments {
		if access.CanReadComment(id, c, &p) {
			d.comments = append(d.comments, c)
		}
	}
	for _, f := range files {
		if access.CanReadAttachment(id, f, &p) {
			d.files = append(d.files, f)
		}
	}
	return d, nil
}

// DeleteDetailPost deletes the opened post. Its children go with it.
func (s *PostService) DeleteDetailPost(ctx context.Context, view *Listing[model.Post], d *Detail, id *model.Identity) error {
	if d.Deleted() {
		return d.refuse(id)
	}
	p := d.Post()
	if err := s.DeletePost(ctx, view, id, p.ID); err != nil {
		return err
	}
	d.mu.Lock()
	d.deleted = true
	d.comments = nil
	d.files = nil
	d.mu.Unlock()
	return nil
}

func (d *Detail) Post() model.Post {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.post
}

// parent is the post children resolve against. It is nil once the post is
// deleted, so every child check denies.
func (d *Detail) parent() *model.Post {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.deleted {
		return nil
	}
	p := d.post
	return &p
}

// refuse is the error for a child operation the access table denied.
func (d *Detail) refuse(id *model.Identity) error {
	if d.Deleted() {
		return fmt.Errorf("post %d: %w", d.Post().ID, ErrNotFound)
	}
	return denied(id)
}

func (d *Detail) Deleted() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.deleted
}

func (d *Detail) Comments() []model.Comment {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.comments)
}

func (d *Detail) Attachments() []model.Attachment {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.files)
}

func (d *Detail) comment(commentID int64) (model.Comment, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	i := slices.IndexFunc(d.comments, func(c model.Comment) bool { return c.ID == commentID })
	if i < 0 {
		return model.Comment{}, false
	}
	return d.comments[i], true
}

func (d *Detail) attachment(fileID int64) (model.Attachment, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	i := slices.IndexFunc(d.files, func(a model.Attachment) bool { return a.ID == fileID })
	if i < 0 {
		return model.Attachment{}, false
	}
	return d.files[i], true
}

func (d *Detail) setPost(p model.Post) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.post = p
}

func (d *Detail) addComment(c model.Comment) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.comments = append(d.comments, c)
}

func (d *Detail) replaceComment(c model.Comment) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i := slices.IndexFunc(d.comments, func(x model.Comment) bool { return x.ID == c.ID }); i >= 0 {
		d.comments = slices.Clone(d.comments)
		d.comments[i] = c
	}
}

func (d *Detail) removeComment(commentID int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.comments = slices.DeleteFunc(slices.Clone(d.comments), func(c model.Comment) bool { return c.ID == commentID })
}

func (d *Detail) addAttachment(a model.Attachment) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.files = append(d.files, a)
}

func (d *Detail) removeAttachment(fileID int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.files = slices.DeleteFunc(slices.Clone(d.files), func(a model.Attachment) bool { return a.ID == fileID })
}

// UpdateDetailPost edits the opened post and keeps view in step.
func (s *PostService) UpdateDetailPost(ctx context.Context, view *Listing[model.Post], d *Detail, id *model.Identity, patch PostPatch) (model.Post, error) {
	if d.Deleted() {
		return model.Post{}, d.refuse(id)
	}
	p, err := s.UpdatePost(ctx, view, id, d.Post().ID, patch)
	if err != nil {
		return model.Post{}, err
	}
	d.setPost(p)
	return p, nil
}
