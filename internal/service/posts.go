package service

import (
	"context"
	"fmt"

	"bulletin/internal/access"
	"bulletin/internal/adapter/out/remote"
	"bulletin/internal/model"
	"bulletin/pkg/logger"
	"bulletin/pkg/pagination"

	"go.uber.org/zap"
)

type PostService struct {
	posts    PostRemote
	comments CommentRemote
	files    FileRemote
}

func NewPostService(posts PostRemote, comments CommentRemote, files FileRemote) *PostService {
	return &PostService{
		posts:    posts,
		comments: comments,
		files:    files,
	}
}

func postKey(p model.Post) int64 { return p.ID }

// Fetcher lists posts for a listing. Rows the requester may not read are
// redacted again on this side whatever the remote returned.
func (s *PostService) Fetcher() PageFetcher[model.Post] {
	return func(ctx context.Context, q ListQuery) (pagination.Page[model.Post], error) {
		page, err := s.posts.ListPosts(ctx, remote.ListPostsParams{
			PageRequest: q.PageRequest,
			Hint:        remote.HintFor(q.Identity),
		})
		if err != nil {
			return pagination.Page[model.Post]{}, err
		}
		for i := range page.Items {
			if !access.CanRead(q.Identity, &page.Items[i]) {
				page.Items[i] = page.Items[i].Redacted()
			}
		}
		return page, nil
	}
}

func (s *PostService) NewListing(cfg ListingConfig) *Listing[model.Post] {
	return NewListing(cfg, s.Fetcher(), postKey)
}

// PostRow is one rendered line of a post listing.
type PostRow struct {
	Ordinal int64
	Post    model.Post
	Access  access.Affordances
}

func PostRows(page pagination.Page[model.Post], id *model.Identity) []PostRow {
	rows := make([]PostRow, 0, len(page.Items))
	for i, p := range page.Items {
		rows = append(rows, PostRow{
			Ordinal: page.Ordinal(i),
			Post:    p,
			Access:  access.ForPost(id, &p),
		})
	}
	return rows
}

func (s *PostService) GetPost(ctx context.Context, id *model.Identity, postID int64) (model.Post, error) {
	if postID <= 0 {
		return model.Post{}, fmt.Errorf("postID must be > 0: %w", ErrInvalidRequest)
	}
	p, err := s.posts.GetPost(ctx, postID, remote.HintFor(id))
	if err != nil {
		return model.Post{}, err
	}
	if !access.CanRead(id, &p) {
		return model.Post{}, denied(id)
	}
	return p, nil
}

// CreatePost publishes a post and puts it on top of view when view shows
// the unfiltered first page. view may be nil.
func (s *PostService) CreatePost(ctx context.Context, view *Listing[model.Post], id *model.Identity, draft PostDraft) (model.Post, error) {
	if id == nil {
		return model.Post{}, ErrAuthenticationRequired
	}
	draft, err := draft.normalize()
	if err != nil {
		return model.Post{}, err
	}

	p, err := s.posts.CreatePost(ctx, remote.CreatePostParams{
		AuthorID: id.ID,
		Title:    draft.Title,
		Body:     draft.Body,
		Secret:   draft.Secret,
	}, remote.HintFor(id))
	if err != nil {
		return model.Post{}, err
	}

	if view != nil {
		view.Prepend(ctx, p)
	}
	return p, nil
}

// CreatePostWithAttachments creates the post first and then uploads the
// files one by one. Upload failures do not undo the post: the saved post is
// returned together with a *PartialUploadError naming the failed files.
func (s *PostService) CreatePostWithAttachments(ctx context.Context, view *Listing[model.Post], id *model.Identity, draft PostDraft, uploads []FileUpload) (model.Post, error) {
	for _, u := range uploads {
		if err := u.validate(); err != nil {
			return model.Post{}, err
		}
	}

	p, err := s.CreatePost(ctx, view, id, draft)
	if err != nil {
		return model.Post{}, err
	}

	var failures []UploadFailure
	for _, u := range uploads {
		postID := p.ID
		_, err := s.files.UploadFile(ctx, remote.UploadParams{
			PostID:      &postID,
			FileName:    u.FileName,
			ContentType: u.ContentType,
			Content:     u.Content,
		}, remote.HintFor(id))
		if err != nil {
			logger.FromContext(ctx).Warn("attachment upload failed",
				zap.Int64("post_id", p.ID),
				zap.String("file", u.FileName),
				zap.Error(err),
			)
			failures = append(failures, UploadFailure{FileName: u.FileName, Err: err})
		}
	}

	if len(failures) > 0 {
		return p, &PartialUploadError{PostID: p.ID, Failures: failures}
	}
	return p, nil
}

// UpdatePost merges patch onto the current post and replaces the row in
// view on success.
func (s *PostService) UpdatePost(ctx context.Context, view *Listing[model.Post], id *model.Identity, postID int64, patch PostPatch) (model.Post, error) {
	if id == nil {
		return model.Post{}, ErrAuthenticationRequired
	}
	patch, err := patch.normalize()
	if err != nil {
		return model.Post{}, err
	}

	cur, err := s.mergeBase(ctx, view, id, postID)
	if err != nil {
		return model.Post{}, err
	}
	if !access.CanWrite(id, &cur) {
		return model.Post{}, denied(id)
	}

	updated, err := s.posts.UpdatePost(ctx, postID, patch.apply(cur), remote.HintFor(id))
	if err != nil {
		return model.Post{}, err
	}

	if view != nil {
		view.Replace(ctx, updated)
	}
	return updated, nil
}

// DeletePost removes the post remotely and then from view. A failed delete
// leaves view untouched.
func (s *PostService) DeletePost(ctx context.Context, view *Listing[model.Post], id *model.Identity, postID int64) error {
	if id == nil {
		return ErrAuthenticationRequired
	}
	cur, err := s.current(ctx, view, id, postID)
	if err != nil {
		return err
	}
	if !access.CanWrite(id, &cur) {
		return denied(id)
	}

	if err := s.posts.DeletePost(ctx, postID, remote.HintFor(id)); err != nil {
		return err
	}

	if view != nil {
		view.Remove(ctx, postID)
	}
	return nil
}

// current finds the post in view and asks the remote when it is not there.
func (s *PostService) current(ctx context.Context, view *Listing[model.Post], id *model.Identity, postID int64) (model.Post, error) {
	if postID <= 0 {
		return model.Post{}, fmt.Errorf("postID must be > 0: %w", ErrInvalidRequest)
	}
	if view != nil {
		if p, ok := view.Find(postID); ok {
			return p, nil
		}
	}
	return s.posts.GetPost(ctx, postID, remote.HintFor(id))
}

// mergeBase is current with full content. A row that id cannot read, or one
// redacted under an earlier identity, is fetched again.
func (s *PostService) mergeBase(ctx context.Context, view *Listing[model.Post], id *model.Identity, postID int64) (model.Post, error) {
	cur, err := s.current(ctx, view, id, postID)
	if err != nil {
		return model.Post{}, err
	}
	if access.CanRead(id, &cur) && !cur.IsRedacted() {
		return cur, nil
	}
	if !access.CanWrite(id, &cur) {
		return model.Post{}, denied(id)
	}
	fresh, err := s.posts.GetPost(ctx, postID, remote.HintFor(id))
	if err != nil {
		return model.Post{}, err
	}
	if fresh.IsRedacted() {
		return model.Post{}, fmt.Errorf("post %d came back redacted: %w", postID, ErrAccessDenied)
	}
	return fresh, nil
}

func denied(id *model.Identity) error {
	if id == nil {
		return ErrAuthenticationRequired
	}
	return ErrAccessDenied
}
