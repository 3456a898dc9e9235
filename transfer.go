package agentrun

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
)

// DownloadResult reports where a downloaded file was saved and its size in
// bytes.
type DownloadResult struct {
	SavedPath string
	Size      int64
}

// uploadFile posts the contents of localPath as a multipart form to the
// given data-plane path. The form carries the file under the "file" field
// plus any extra string fields (the remote target path among them). The
// boundary-bearing content type comes from the multipart writer; the
// pipeline's JSON default never reaches a multipart send.
func (dc *dataClient) uploadFile(ctx context.Context, path, localPath string, fields map[string]string) (json.RawMessage, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return nil, NewClientError(0, fmt.Sprintf("failed to open %s: %v", localPath, err))
	}
	defer f.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filepath.Base(localPath))
	if err != nil {
		return nil, NewClientError(0, fmt.Sprintf("failed to create form file: %v", err))
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, NewClientError(0, fmt.Sprintf("failed to read %s: %v", localPath, err))
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return nil, NewClientError(0, fmt.Sprintf("failed to write form field %s: %v", k, err))
		}
	}
	if err := writer.Close(); err != nil {
		return nil, NewClientError(0, fmt.Sprintf("failed to close multipart writer: %v", err))
	}

	return dc.post(ctx, path, &requestOptions{
		rawBody:     &buf,
		contentType: writer.FormDataContentType(),
	})
}

// downloadFile GETs a binary data-plane response and writes it atomically to
// localPath (temp file in the target directory, then rename). A non-2xx
// response raises a taxonomy error before any bytes touch the disk.
func (dc *dataClient) downloadFile(ctx context.Context, path string, query url.Values, localPath string) (*DownloadResult, error) {
	resp, body, err := dc.roundTrip(ctx, http.MethodGet, path, &requestOptions{query: query})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newStatusError(resp.StatusCode, string(body), resp.Header.Get(headerRequestID))
	}

	dir := filepath.Dir(localPath)
	tmp, err := os.CreateTemp(dir, ".agentrun-download-*")
	if err != nil {
		return nil, NewClientError(0, fmt.Sprintf("failed to create temp file in %s: %v", dir, err))
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return nil, NewClientError(0, fmt.Sprintf("failed to write %s: %v", tmpName, err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return nil, NewClientError(0, fmt.Sprintf("failed to close %s: %v", tmpName, err))
	}
	if err := os.Rename(tmpName, localPath); err != nil {
		os.Remove(tmpName)
		return nil, NewClientError(0, fmt.Sprintf("failed to move download to %s: %v", localPath, err))
	}

	return &DownloadResult{SavedPath: localPath, Size: int64(len(body))}, nil
}
