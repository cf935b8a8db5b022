package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"bulletin/internal/adapter/out/remote"
	"bulletin/internal/model"
	"bulletin/pkg/pagination"

	"github.com/go-resty/resty/v2"
)

func (c *Client) Me(ctx context.Context) (model.User, error) {
	var out userDTO
	if _, err := send(c.http.R().SetContext(ctx).SetResult(&out), http.MethodGet, "/users/me"); err != nil {
		return model.User{}, err
	}
	return out.model(), nil
}

func (c *Client) Login(ctx context.Context, email, password string) (model.User, error) {
	var out userDTO
	r := c.http.R().SetContext(ctx).
		SetBody(loginRequest{Email: email, Password: password}).
		SetResult(&out)
	if _, err := send(r, http.MethodPost, "/users/login"); err != nil {
		return model.User{}, err
	}
	return out.model(), nil
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := send(c.http.R().SetContext(ctx), http.MethodPost, "/users/logout")
	return err
}

func (c *Client) Register(ctx context.Context, params remote.RegisterParams) error {
	r := c.http.R().SetContext(ctx).SetBody(registerRequest{
		Username: params.Username,
		Email:    params.Email,
		Password: params.Password,
	})
	_, err := send(r, http.MethodPost, "/users/register")
	return err
}

func (c *Client) UpdateUser(ctx context.Context, userID int64, params remote.UpdateUserParams) (model.User, error) {
	var out userDTO
	r := c.http.R().SetContext(ctx).
		SetBody(userUpdateRequest{Username: params.Username, Password: params.Password}).
		SetResult(&out)
	if _, err := send(r, http.MethodPut, "/users/"+strconv.FormatInt(userID, 10)); err != nil {
		return model.User{}, err
	}
	return out.model(), nil
}

func (c *Client) admin(ctx context.Context, adminID int64) *resty.Request {
	return c.http.R().SetContext(ctx).SetHeader(adminIDHeader, strconv.FormatInt(adminID, 10))
}

func (c *Client) ListUsers(ctx context.Context, adminID int64) ([]model.User, error) {
	var out []userDTO
	if _, err := send(c.admin(ctx, adminID).SetResult(&out), http.MethodGet, "/admin/users"); err != nil {
		return nil, err
	}
	users := make([]model.User, 0, len(out))
	for _, d := range out {
		users = append(users, d.model())
	}
	return users, nil
}

func (c *Client) RenameUser(ctx context.Context, adminID, userID int64, username string) (model.User, error) {
	var out userDTO
	r := c.admin(ctx, adminID).
		SetBody(userUpdateRequest{Username: &username}).
		SetResult(&out)
	if _, err := send(r, http.MethodPut, "/admin/users/"+strconv.FormatInt(userID, 10)); err != nil {
		return model.User{}, err
	}
	return out.model(), nil
}

func (c *Client) ResetPassword(ctx context.Context, adminID, userID int64, newPassword string) error {
	r := c.admin(ctx, adminID).SetBody(passwordResetRequest{NewPassword: newPassword})
	_, err := send(r, http.MethodPut, "/admin/users/"+strconv.FormatInt(userID, 10)+"/reset-password")
	return err
}

// ListAllPosts reads the admin listing, which never redacts.
func (c *Client) ListAllPosts(ctx context.Context, adminID int64, req pagination.PageRequest) (pagination.Page[model.Post], error) {
	req = req.Normalize()

	var out pageDTO[postDTO]
	r := c.admin(ctx, adminID).
		SetQueryParams(map[string]string{
			"page": strconv.Itoa(req.Page),
			"size": strconv.Itoa(req.Size),
			"sort": remote.SortCreatedAtDesc,
		}).
		SetResult(&out)
	if _, err := send(r, http.MethodGet, "/admin/posts"); err != nil {
		return pagination.Page[model.Post]{}, err
	}
	return toPage(out, postDTO.model), nil
}

func (c *Client) DeletePostAsAdmin(ctx context.Context, adminID, postID int64) error {
	if _, err := send(c.admin(ctx, adminID), http.MethodDelete, "/admin"+postPath(postID)); err != nil {
		return fmt.Errorf("delete post %d as admin: %w", postID, err)
	}
	return nil
}
