package httpapi

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"bulletin/internal/adapter/out/remote"
	"bulletin/internal/model"
)

const defaultContentType = "application/octet-stream"

func filePath(id int64) string {
	return "/files/" + strconv.FormatInt(id, 10)
}

// ListFiles returns the attachments of a post. The service does not echo the
// post id, so it is filled in from the request.
func (c *Client) ListFiles(ctx context.Context, postID int64, hint remote.AuthHint) ([]model.Attachment, error) {
	var out []fileDTO
	r := c.request(ctx, hint).SetResult(&out)
	if _, err := send(r, http.MethodGet, "/files/post/"+strconv.FormatInt(postID, 10)); err != nil {
		return nil, err
	}

	files := make([]model.Attachment, 0, len(out))
	for _, d := range out {
		id := postID
		files = append(files, d.model(&id))
	}
	return files, nil
}

func (c *Client) UploadFile(ctx context.Context, params remote.UploadParams, hint remote.AuthHint) (model.Attachment, error) {
	contentType := params.ContentType
	if contentType == "" {
		contentType = defaultContentType
	}

	var out fileDTO
	r := c.request(ctx, hint).
		SetMultipartField("file", params.FileName, contentType, params.Content).
		SetResult(&out)
	if params.PostID != nil {
		r.SetMultipartFormData(map[string]string{"postId": strconv.FormatInt(*params.PostID, 10)})
	}

	if _, err := send(r, http.MethodPost, "/files/upload"); err != nil {
		return model.Attachment{}, err
	}
	return out.model(params.PostID), nil
}

// DownloadFile streams the file content. The caller closes the reader.
func (c *Client) DownloadFile(ctx context.Context, fileID int64, hint remote.AuthHint) (io.ReadCloser, error) {
	path := filePath(fileID)
	r := c.request(ctx, hint).SetDoNotParseResponse(true)

	resp, err := r.Execute(http.MethodGet, path)
	if err != nil {
		return nil, transportError(r, http.MethodGet, path, err)
	}
	body := resp.RawBody()
	if resp.IsError() {
		defer body.Close()
		msg, _ := io.ReadAll(io.LimitReader(body, 512))
		return nil, statusError(http.MethodGet, path, resp.StatusCode(), string(msg))
	}
	return body, nil
}

func (c *Client) DeleteFile(ctx context.Context, fileID int64, hint remote.AuthHint) error {
	_, err := send(c.request(ctx, hint), http.MethodDelete, filePath(fileID))
	return err
}
