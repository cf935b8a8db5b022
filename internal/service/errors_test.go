package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "auth", err: fmt.Errorf("get /users/me: %w", ErrAuthenticationRequired), want: "please log in"},
		{name: "denied", err: ErrAccessDenied, want: "access denied"},
		{name: "not found", err: fmt.Errorf("post 9: %w", ErrNotFound), want: "not found"},
		{name: "transient", err: ErrTransient, want: "network error, please try again"},
		{name: "invalid", err: ErrInvalidRequest, want: "invalid input"},
		{name: "conflict", err: ErrConflict, want: "already in use"},
		{name: "unknown", err: errors.New("boom"), want: "something went wrong"},
		{
			name: "partial upload",
			err: &PartialUploadError{PostID: 42, Failures: []UploadFailure{
				{FileName: "b.txt", Err: ErrTransient},
			}},
			want: "post saved; file upload failed: b.txt",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestPartialUploadError_Unwrap(t *testing.T) {
	err := &PartialUploadError{PostID: 42, Failures: []UploadFailure{
		{FileName: "a.txt", Err: ErrInvalidRequest},
		{FileName: "b.txt", Err: fmt.Errorf("upload: %w", ErrTransient)},
	}}

	require.ErrorIs(t, err, ErrTransient)
	require.ErrorIs(t, err, ErrInvalidRequest)
	require.NotErrorIs(t, err, ErrNotFound)

	var partial *PartialUploadError
	require.ErrorAs(t, fmt.Errorf("create post: %w", err), &partial)
	require.Equal(t, int64(42), partial.PostID)
}
