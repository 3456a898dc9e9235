package agentrun

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"golang.org/x/sync/errgroup"
)

// Data-plane filesystem paths.
const (
	filesAPIPath     = "/files"
	fileStatPath     = "/filesystem/stat"
	fileUploadPath   = "/filesystem/upload"
	fileDownloadPath = "/filesystem/download"
)

// Files provides data-plane filesystem operations for one sandbox.
type Files struct {
	data *dataClient
}

// newFiles creates a Files instance over the sandbox's data-plane pipeline.
func newFiles(data *dataClient) *Files {
	return &Files{data: data}
}

// EntryInfo describes a remote file or directory.
type EntryInfo struct {
	Path       string `json:"path"`
	Size       int64  `json:"size"`
	Mode       string `json:"mode,omitempty"`
	IsDir      bool   `json:"isDir"`
	ModifiedAt string `json:"modifiedAt,omitempty"`
}

// Read reads the content of a remote file.
//
// Example:
//
//	content, err := sandbox.Files.Read(ctx, "/home/user/file.txt")
func (f *Files) Read(ctx context.Context, path string) (string, error) {
	query := url.Values{}
	query.Set("path", path)

	raw, err := f.data.get(ctx, filesAPIPath, &requestOptions{query: query})
	if err != nil {
		return "", err
	}
	data, err := unwrapEnvelope(raw)
	if err != nil {
		return "", err
	}

	var out struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return "", NewClientError(0, fmt.Sprintf("failed to parse file content: %v", err))
	}
	return out.Content, nil
}

// WriteOptions refines a Write call.
type WriteOptions struct {
	// Mode is the octal file mode, e.g. "0644".
	Mode string

	// Encoding names the content encoding, e.g. "utf-8" or "base64".
	Encoding string

	// CreateDir creates missing parent directories.
	CreateDir bool
}

// Write writes content to a remote file.
//
// Example:
//
//	err := sandbox.Files.Write(ctx, "/home/user/file.txt", "hello", nil)
func (f *Files) Write(ctx context.Context, path, content string, opts *WriteOptions) error {
	if opts == nil {
		opts = &WriteOptions{}
	}

	body := map[string]any{
		"path":    path,
		"content": content,
	}
	if opts.Mode != "" {
		body["mode"] = opts.Mode
	}
	if opts.Encoding != "" {
		body["encoding"] = opts.Encoding
	}
	if opts.CreateDir {
		body["createDir"] = true
	}

	raw, err := f.data.post(ctx, filesAPIPath, &requestOptions{body: body})
	if err != nil {
		return err
	}
	_, err = unwrapEnvelope(raw)
	return err
}

// WriteEntry is one file in a WriteFiles batch.
type WriteEntry struct {
	Path    string
	Content string
	Options *WriteOptions
}

// WriteFiles writes a batch of files, fanning the writes out with bounded
// concurrency. The first failure cancels the remaining writes.
func (f *Files) WriteFiles(ctx context.Context, entries []WriteEntry) error {
	if len(entries) == 0 {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentWrites)
	for _, entry := range entries {
		entry := entry
		g.Go(func() error {
			return f.Write(ctx, entry.Path, entry.Content, entry.Options)
		})
	}
	return g.Wait()
}

// Stat returns information about a remote file or directory.
func (f *Files) Stat(ctx context.Context, path string) (*EntryInfo, error) {
	query := url.Values{}
	query.Set("path", path)

	raw, err := f.data.get(ctx, fileStatPath, &requestOptions{query: query})
	if err != nil {
		return nil, err
	}
	data, err := unwrapEnvelope(raw)
	if err != nil {
		return nil, err
	}

	var info EntryInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, NewClientError(0, fmt.Sprintf("failed to parse stat response: %v", err))
	}
	return &info, nil
}

// Upload sends a local file to the sandbox as a multipart form. The form
// carries the file content plus the remote target path.
//
// Example:
//
//	err := sandbox.Files.Upload(ctx, "./data.csv", "/home/user/data.csv")
func (f *Files) Upload(ctx context.Context, localPath, remotePath string) error {
	_, err := f.data.uploadFile(ctx, fileUploadPath, localPath, map[string]string{
		"path": remotePath,
	})
	return err
}

// Download fetches a remote file and writes it atomically to localPath.
//
// Example:
//
//	result, err := sandbox.Files.Download(ctx, "/home/user/out.png", "./out.png")
//	fmt.Println(result.SavedPath, result.Size)
func (f *Files) Download(ctx context.Context, remotePath, localPath string) (*DownloadResult, error) {
	query := url.Values{}
	query.Set("path", remotePath)
	return f.data.downloadFile(ctx, fileDownloadPath, query, localPath)
}
