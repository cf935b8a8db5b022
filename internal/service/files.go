package service

import (
	"context"
	"fmt"
	"io"

	"bulletin/internal/access"
	"bulletin/internal/adapter/out/remote"
	"bulletin/internal/model"
)

type FileService struct {
	files FileRemote
}

func NewFileService(files FileRemote) *FileService {
	return &FileService{
		files: files,
	}
}

// Upload attaches one file to the opened post.
func (s *FileService) Upload(ctx context.Context, d *Detail, id *model.Identity, u FileUpload) (model.Attachment, error) {
	parent := d.parent()
	if !access.CanAttach(id, parent) {
		return model.Attachment{}, d.refuse(id)
	}
	if err := u.validate(); err != nil {
		return model.Attachment{}, err
	}

	postID := parent.ID
	a, err := s.files.UploadFile(ctx, remote.UploadParams{
		PostID:      &postID,
		FileName:    u.FileName,
		ContentType: u.ContentType,
		Content:     u.Content,
	}, remote.HintFor(id))
	if err != nil {
		return model.Attachment{}, err
	}
	if a.PostID == nil {
		a.PostID = &postID
	}

	d.addAttachment(a)
	return a, nil
}

// Download opens the content of an attachment. The caller closes it.
func (s *FileService) Download(ctx context.Context, d *Detail, id *model.Identity, fileID int64) (io.ReadCloser, error) {
	a, ok := d.attachment(fileID)
	if !ok {
		return nil, fmt.Errorf("file %d: %w", fileID, ErrNotFound)
	}
	if !access.CanReadAttachment(id, a, d.parent()) {
		return nil, d.refuse(id)
	}
	return s.files.DownloadFile(ctx, a.ID, remote.HintFor(id))
}

func (s *FileService) Delete(ctx context.Context, d *Detail, id *model.Identity, fileID int64) error {
	if id == nil {
		return ErrAuthenticationRequired
	}
	a, ok := d.attachment(fileID)
	if !ok {
		return fmt.Errorf("file %d: %w", fileID, ErrNotFound)
	}
	if !access.CanWriteAttachment(id, a, d.parent()) {
		return d.refuse(id)
	}
	if err := s.files.DeleteFile(ctx, a.ID, remote.HintFor(id)); err != nil {
		return err
	}
	d.removeAttachment(a.ID)
	return nil
}
