package model

type Attachment struct {
	ID          int64
	PostID      *int64
	FileName    string
	DownloadURL string
	ContentType string
	Size        int64
}

func (a Attachment) BelongsTo(postID int64) bool {
	return a.PostID != nil && *a.PostID == postID
}
