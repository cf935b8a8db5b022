package httpapi

import (
	"encoding/json"
	"fmt"
	"time"

	"bulletin/internal/model"
	"bulletin/pkg/pagination"
)

// The service serialises LocalDateTime values, which carry no zone. Those are
// read as local time.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

type wireTime struct {
	time.Time
}

func (t *wireTime) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if v, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			t.Time = v
			return nil
		}
	}
	return fmt.Errorf("timestamp %q: unknown format", s)
}

type pageDTO[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
}

func toPage[D any, T any](p pageDTO[D], conv func(D) T) pagination.Page[T] {
	items := make([]T, 0, len(p.Content))
	for _, d := range p.Content {
		items = append(items, conv(d))
	}
	return pagination.Page[T]{
		Items:         items,
		PageNumber:    p.Number,
		PageSize:      p.Size,
		TotalPages:    p.TotalPages,
		TotalElements: p.TotalElements,
	}
}

type postDTO struct {
	ID         int64    `json:"id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	AuthorID   *int64   `json:"authorId"`
	UserID     *int64   `json:"userId"`
	AuthorName string   `json:"authorName"`
	CreatedAt  wireTime `json:"createdAt"`
	UpdatedAt  wireTime `json:"updatedAt"`
	Secret     bool     `json:"secret"`
}

func (d postDTO) model() model.Post {
	p := model.Post{
		ID:         d.ID,
		Title:      d.Title,
		Body:       d.Content,
		AuthorName: d.AuthorName,
		Secret:     d.Secret,
		CreatedAt:  d.CreatedAt.Time,
		UpdatedAt:  d.UpdatedAt.Time,
	}
	switch {
	case d.AuthorID != nil:
		p.AuthorID = *d.AuthorID
	case d.UserID != nil:
		p.AuthorID = *d.UserID
	}
	return p
}

type postRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Secret  bool   `json:"secret"`
}

type commentDTO struct {
	ID         int64    `json:"id"`
	Content    string   `json:"content"`
	UserID     int64    `json:"userId"`
	AuthorName string   `json:"authorName"`
	PostID     int64    `json:"postId"`
	CreatedAt  wireTime `json:"createdAt"`
	UpdatedAt  wireTime `json:"updatedAt"`
}

func (d commentDTO) model() model.Comment {
	return model.Comment{
		ID:         d.ID,
		PostID:     d.PostID,
		AuthorID:   d.UserID,
		AuthorName: d.AuthorName,
		Body:       d.Content,
		CreatedAt:  d.CreatedAt.Time,
		UpdatedAt:  d.UpdatedAt.Time,
	}
}

type commentRequest struct {
	Content string `json:"content"`
	PostID  int64  `json:"postId"`
}

type fileDTO struct {
	ID              int64  `json:"id"`
	FileName        string `json:"fileName"`
	FileDownloadURI string `json:"fileDownloadUri"`
	FileType        string `json:"fileType"`
	FileSize        int64  `json:"fileSize"`
}

func (d fileDTO) model(postID *int64) model.Attachment {
	return model.Attachment{
		ID:          d.ID,
		PostID:      postID,
		FileName:    d.FileName,
		DownloadURL: d.FileDownloadURI,
		ContentType: d.FileType,
		Size:        d.FileSize,
	}
}

type userDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (d userDTO) model() model.User {
	return model.User{
		ID:       d.ID,
		Username: d.Username,
		Email:    d.Email,
		Role:     model.ParseRole(d.Role),
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userUpdateRequest struct {
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
}

type passwordResetRequest struct {
	NewPassword string `json:"newPassword"`
}
