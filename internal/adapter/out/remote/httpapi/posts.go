package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"bulletin/internal/adapter/out/remote"
	"bulletin/internal/model"
	"bulletin/pkg/pagination"
)

func postPath(id int64) string {
	return "/posts/" + strconv.FormatInt(id, 10)
}

// ListPosts reads one page of the listing. A non-empty query goes to the
// title search endpoint.
func (c *Client) ListPosts(ctx context.Context, params remote.ListPostsParams) (pagination.Page[model.Post], error) {
	req := params.PageRequest.Normalize()

	var out pageDTO[postDTO]
	r := c.request(ctx, params.Hint).
		SetQueryParams(map[string]string{
			"page": strconv.Itoa(req.Page),
			"size": strconv.Itoa(req.Size),
			"sort": remote.SortCreatedAtDesc,
		}).
		SetResult(&out)

	path := "/posts"
	if req.Query != "" {
		path = "/posts/search"
		r.SetQueryParam("keyword", req.Query)
	}

	if _, err := send(r, http.MethodGet, path); err != nil {
		return pagination.Page[model.Post]{}, err
	}
	return toPage(out, postDTO.model), nil
}

func (c *Client) GetPost(ctx context.Context, postID int64, hint remote.AuthHint) (model.Post, error) {
	var out postDTO
	if _, err := send(c.request(ctx, hint).SetResult(&out), http.MethodGet, postPath(postID)); err != nil {
		return model.Post{}, err
	}
	return out.model(), nil
}

func (c *Client) CreatePost(ctx context.Context, params remote.CreatePostParams, hint remote.AuthHint) (model.Post, error) {
	var out postDTO
	r := c.request(ctx, hint).
		SetBody(postRequest{Title: params.Title, Content: params.Body, Secret: params.Secret}).
		SetResult(&out)
	if _, err := send(r, http.MethodPost, "/posts"); err != nil {
		return model.Post{}, err
	}

	p := out.model()
	if p.AuthorID == 0 {
		p.AuthorID = params.AuthorID
	}
	return p, nil
}

func (c *Client) UpdatePost(ctx context.Context, postID int64, params remote.UpdatePostParams, hint remote.AuthHint) (model.Post, error) {
	var out postDTO
	r := c.request(ctx, hint).
		SetBody(postRequest{Title: params.Title, Content: params.Body, Secret: params.Secret}).
		SetResult(&out)
	if _, err := send(r, http.MethodPut, postPath(postID)); err != nil {
		return model.Post{}, err
	}

	p := out.model()
	if p.AuthorID == 0 && hint.CurrentUserID != nil && !hint.IsAdmin {
		p.AuthorID = *hint.CurrentUserID
	}
	return p, nil
}

func (c *Client) DeletePost(ctx context.Context, postID int64, hint remote.AuthHint) error {
	if _, err := send(c.request(ctx, hint), http.MethodDelete, postPath(postID)); err != nil {
		return fmt.Errorf("delete post %d: %w", postID, err)
	}
	return nil
}
