package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"bulletin/internal/adapter/out/remote"
	"bulletin/internal/model"
)

func (c *Client) ListComments(ctx context.Context, postID int64, hint remote.AuthHint) ([]model.Comment, error) {
	var out []commentDTO
	r := c.request(ctx, hint).SetResult(&out)
	if _, err := send(r, http.MethodGet, "/comments/post/"+strconv.FormatInt(postID, 10)); err != nil {
		return nil, err
	}

	comments := make([]model.Comment, 0, len(out))
	for _, d := range out {
		comments = append(comments, d.model())
	}
	return comments, nil
}

func (c *Client) CreateComment(ctx context.Context, params remote.CreateCommentParams, hint remote.AuthHint) (model.Comment, error) {
	var out commentDTO
	r := c.request(ctx, hint).
		SetBody(commentRequest{Content: params.Body, PostID: params.PostID}).
		SetResult(&out)
	if _, err := send(r, http.MethodPost, "/comments"); err != nil {
		return model.Comment{}, err
	}
	return out.model(), nil
}

// UpdateComment sends the new body as plain text.
func (c *Client) UpdateComment(ctx context.Context, commentID int64, body string, hint remote.AuthHint) (model.Comment, error) {
	var out commentDTO
	r := c.request(ctx, hint).
		SetHeader("Content-Type", "text/plain; charset=utf-8").
		SetBody(body).
		SetResult(&out)
	if _, err := send(r, http.MethodPut, "/comments/"+strconv.FormatInt(commentID, 10)); err != nil {
		return model.Comment{}, err
	}
	return out.model(), nil
}

func (c *Client) DeleteComment(ctx context.Context, commentID int64, hint remote.AuthHint) error {
	_, err := send(c.request(ctx, hint), http.MethodDelete, "/comments/"+strconv.FormatInt(commentID, 10))
	return err
}
