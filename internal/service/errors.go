package service

import (
	"errors"
	"fmt"
	"strings"

	"bulletin/internal/adapter/out/remote"

	"go.uber.org/multierr"
)

var (
	ErrAuthenticationRequired = remote.ErrAuthenticationRequired
	ErrAccessDenied           = remote.ErrAccessDenied
	ErrNotFound               = remote.ErrNotFound
	ErrTransient              = remote.ErrTransient
	ErrInvalidRequest         = remote.ErrInvalidRequest
	ErrConflict               = remote.ErrConflict
	ErrInternalError          = remote.ErrInternalError
)

// UserMessage is the text a view shows for err.
func UserMessage(err error) string {
	var partial *PartialUploadError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &partial):
		return partial.Error()
	case errors.Is(err, ErrAuthenticationRequired):
		return "please log in"
	case errors.Is(err, ErrAccessDenied):
		return "access denied"
	case errors.Is(err, ErrNotFound):
		return "not found"
	case errors.Is(err, ErrTransient):
		return "network error, please try again"
	case errors.Is(err, ErrInvalidRequest):
		return "invalid input"
	case errors.Is(err, ErrConflict):
		return "already in use"
	default:
		return "something went wrong"
	}
}

// UploadFailure is one file that could not be stored.
type UploadFailure struct {
	FileName string
	Err      error
}

// PartialUploadError is returned when a post was saved but some of its files
// were not. The post must not be created again.
type PartialUploadError struct {
	PostID   int64
	Failures []UploadFailure
}

func (e *PartialUploadError) Error() string {
	names := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		names = append(names, f.FileName)
	}
	return fmt.Sprintf("post saved; file upload failed: %s", strings.Join(names, ", "))
}

// Unwrap exposes the per-file causes to errors.Is.
func (e *PartialUploadError) Unwrap() []error {
	var err error
	for _, f := range e.Failures {
		err = multierr.Append(err, f.Err)
	}
	return multierr.Errors(err)
}
