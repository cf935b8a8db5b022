package service

import (
	"fmt"
	"html"
	"io"
	"strings"

	"bulletin/internal/adapter/out/remote"
	"bulletin/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var markup = bluemonday.StrictPolicy()

// sanitize strips markup from a plain text body. The policy escapes the text
// it keeps, so the entities are undone to send what the user typed.
func sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(markup.Sanitize(s)))
}

type PostDraft struct {
	Title  string `validate:"required,max=100"`
	Body   string `validate:"required"`
	Secret bool
}

// PostPatch changes only the fields that are set.
type PostPatch struct {
	Title  *string `validate:"omitnil,min=1,max=100"`
	Body   *string `validate:"omitnil,min=1"`
	Secret *bool
}

func (p PostPatch) Empty() bool {
	return p.Title == nil && p.Body == nil && p.Secret == nil
}

type CommentDraft struct {
	Body string `validate:"required,max=2000"`
}

type FileUpload struct {
	FileName    string    `validate:"required,max=255"`
	ContentType string    `validate:"max=255"`
	Content     io.Reader `validate:"required"`
}

type RegisterRequest struct {
	Username string `validate:"required,min=2,max=10"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=4"`
}

// ProfilePatch changes only the fields that are set.
type ProfilePatch struct {
	Username *string `validate:"omitnil,min=2,max=20"`
	Password *string `validate:"omitnil,min=8,max=20"`
}

func invalid(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
}

func (d PostDraft) normalize() (PostDraft, error) {
	d.Title = strings.TrimSpace(d.Title)
	d.Body = sanitize(d.Body)
	if err := validator.New().Struct(d); err != nil {
		return d, invalid(err)
	}
	return d, nil
}

func (p PostPatch) normalize() (PostPatch, error) {
	if p.Empty() {
		return p, fmt.Errorf("empty patch: %w", ErrInvalidRequest)
	}
	if p.Title != nil {
		t := strings.TrimSpace(*p.Title)
		p.Title = &t
	}
	if p.Body != nil {
		b := sanitize(*p.Body)
		p.Body = &b
	}
	if err := validator.New().Struct(p); err != nil {
		return p, invalid(err)
	}
	return p, nil
}

// apply merges the patch onto the current post and returns the full update
// the remote expects.
func (p PostPatch) apply(cur model.Post) remote.UpdatePostParams {
	out := remote.UpdatePostParams{Title: cur.Title, Body: cur.Body, Secret: cur.Secret}
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Body != nil {
		out.Body = *p.Body
	}
	if p.Secret != nil {
		out.Secret = *p.Secret
	}
	return out
}

func (d CommentDraft) normalize() (CommentDraft, error) {
	d.Body = sanitize(d.Body)
	if err := validator.New().Struct(d); err != nil {
		return d, invalid(err)
	}
	return d, nil
}

func (f FileUpload) validate() error {
	if err := validator.New().Struct(f); err != nil {
		return invalid(err)
	}
	return nil
}

func (r RegisterRequest) normalize() (RegisterRequest, error) {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	if err := validator.New().Struct(r); err != nil {
		return r, invalid(err)
	}
	return r, nil
}

func (p ProfilePatch) normalize() (ProfilePatch, error) {
	if p.Username == nil && p.Password == nil {
		return p, fmt.Errorf("empty patch: %w", ErrInvalidRequest)
	}
	if p.Username != nil {
		u := strings.TrimSpace(*p.Username)
		p.Username = &u
	}
	if err := validator.New().Struct(p); err != nil {
		return p, invalid(err)
	}
	return p, nil
}
