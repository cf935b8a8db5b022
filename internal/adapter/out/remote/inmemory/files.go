package inmemory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"sort"

	"bulletin/internal/access"
	"bulletin/internal/adapter/out/remote"
	"bulletin/internal/model"

	"github.com/google/uuid"
)

const filesPath = "/api/files/"

func (b *Board) ListFiles(_ context.Context, postID int64, _ remote.AuthHint) ([]model.Attachment, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if _, _, err := b.readablePostLocked(postID); err != nil {
		return nil, err
	}

	var out []model.Attachment
	for _, f := range b.files {
		if f.meta.BelongsTo(postID) {
			out = append(out, f.meta)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UploadFile stores the content under a generated name. Files sent with a
// post id may only be added by someone who may change that post.
func (b *Board) UploadFile(_ context.Context, params remote.UploadParams, _ remote.AuthHint) (model.Attachment, error) {
	if params.FileName == "" || params.Content == nil {
		return model.Attachment{}, fmt.Errorf("file is required: %w", remote.ErrInvalidRequest)
	}
	data, err := io.ReadAll(io.LimitReader(params.Content, b.maxFileSize+1))
	if err != nil {
		return model.Attachment{}, fmt.Errorf("%w: read upload: %v", remote.ErrTransient, err)
	}
	if int64(len(data)) > b.maxFileSize {
		return model.Attachment{}, fmt.Errorf("file %q exceeds %d bytes: %w", params.FileName, b.maxFileSize, remote.ErrInvalidRequest)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.requesterLocked()
	if id == nil {
		return model.Attachment{}, remote.ErrAuthenticationRequired
	}

	var postID *int64
	if params.PostID != nil {
		p, err := b.writablePostLocked(*params.PostID)
		if err != nil {
			return model.Attachment{}, err
		}
		pid := p.ID
		postID = &pid
	}

	contentType := params.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	b.fileSeq++
	meta := model.Attachment{
		ID:          b.fileSeq,
		PostID:      postID,
		FileName:    params.FileName,
		DownloadURL: fmt.Sprintf("%s%d", filesPath, b.fileSeq),
		ContentType: contentType,
		Size:        int64(len(data)),
	}
	b.files[meta.ID] = storedFile{
		meta:       meta,
		storedName: uuid.NewString() + path.Ext(params.FileName),
		data:       data,
	}
	return meta, nil
}

func (b *Board) DownloadFile(_ context.Context, fileID int64, _ remote.AuthHint) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	f, err := b.fileLocked(fileID)
	if err != nil {
		return nil, err
	}
	if f.meta.PostID != nil {
		if _, _, err := b.readablePostLocked(*f.meta.PostID); err != nil {
			return nil, err
		}
	} else if id := b.requesterLocked(); !id.IsAdmin() {
		// a file without a post has no parent to decide against
		return nil, denied(id)
	}
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

func (b *Board) DeleteFile(_ context.Context, fileID int64, _ remote.AuthHint) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.requesterLocked()
	if id == nil {
		return remote.ErrAuthenticationRequired
	}
	f, err := b.fileLocked(fileID)
	if err != nil {
		return err
	}
	if f.meta.PostID != nil {
		parent, err := b.postLocked(*f.meta.PostID)
		if err != nil {
			return err
		}
		if !access.CanWriteAttachment(id, f.meta, &parent) {
			return remote.ErrAccessDenied
		}
	} else if !id.IsAdmin() {
		return remote.ErrAccessDenied
	}

	delete(b.files, fileID)
	return nil
}

func (b *Board) fileLocked(fileID int64) (storedFile, error) {
	f, ok := b.files[fileID]
	if !ok {
		return storedFile{}, fmt.Errorf("file %d: %w", fileID, remote.ErrNotFound)
	}
	return f, nil
}

// StoredName is the generated name the content of fileID is kept under.
func (b *Board) StoredName(fileID int64) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	f, ok := b.files[fileID]
	return f.storedName, ok
}
