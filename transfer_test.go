package agentrun

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUploadFile(t *testing.T) {
	var (
		gotContentType string
		gotFileName    string
		gotContent     string
		gotPath        string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm() error = %v", err)
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		gotPath = r.FormValue("path")

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile() error = %v", err)
			http.Error(w, "no file", http.StatusBadRequest)
			return
		}
		defer file.Close()
		gotFileName = header.Filename
		content, _ := io.ReadAll(file)
		gotContent = string(content)

		w.Write([]byte(`{"code":"SUCCESS","data":{}}`))
	}))
	defer server.Close()

	local := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(local, []byte("a,b\n1,2\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	dc := newTestDataClient(server.URL, nil)
	_, err := dc.uploadFile(context.Background(), fileUploadPath, local, map[string]string{"path": "/tmp/data.csv"})
	if err != nil {
		t.Fatalf("uploadFile() error = %v", err)
	}

	if !strings.HasPrefix(gotContentType, "multipart/form-data; boundary=") {
		t.Errorf("Content-Type = %q, want multipart with boundary", gotContentType)
	}
	if gotFileName != "data.csv" {
		t.Errorf("file name = %q, want data.csv", gotFileName)
	}
	if gotContent != "a,b\n1,2\n" {
		t.Errorf("file content = %q", gotContent)
	}
	if gotPath != "/tmp/data.csv" {
		t.Errorf("path field = %q, want /tmp/data.csv", gotPath)
	}
}

func TestUploadFileMissingLocal(t *testing.T) {
	dc := newTestDataClient("http://unused.invalid", nil)
	_, err := dc.uploadFile(context.Background(), fileUploadPath, "/does/not/exist", nil)
	if err == nil {
		t.Fatal("uploadFile() should error for a missing local file")
	}
	he := httpErrorOf(err)
	if he == nil || he.StatusCode != 0 {
		t.Errorf("error = %v, want status-0 client error", err)
	}
}

func TestDownloadFile(t *testing.T) {
	payload := []byte("binary\x00payload")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("path"); got != "/tmp/out.bin" {
			t.Errorf("path query = %q, want /tmp/out.bin", got)
		}
		w.Write(payload)
	}))
	defer server.Close()

	dir := t.TempDir()
	local := filepath.Join(dir, "out.bin")

	dc := newTestDataClient(server.URL, nil)
	query := url.Values{}
	query.Set("path", "/tmp/out.bin")
	result, err := dc.downloadFile(context.Background(), fileDownloadPath, query, local)
	if err != nil {
		t.Fatalf("downloadFile() error = %v", err)
	}

	if result.SavedPath != local {
		t.Errorf("SavedPath = %q, want %q", result.SavedPath, local)
	}
	if result.Size != int64(len(payload)) {
		t.Errorf("Size = %d, want %d", result.Size, len(payload))
	}

	got, err := os.ReadFile(local)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("downloaded content = %q, want %q", got, payload)
	}

	// No temp files may survive a successful download.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".agentrun-download-") {
			t.Errorf("temp file %s left behind", entry.Name())
		}
	}
}

func TestDownloadFileErrorWritesNothing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(headerRequestID, "req-7")
		http.Error(w, "file not found", http.StatusNotFound)
	}))
	defer server.Close()

	dir := t.TempDir()
	local := filepath.Join(dir, "out.bin")

	dc := newTestDataClient(server.URL, nil)
	_, err := dc.downloadFile(context.Background(), fileDownloadPath, nil, local)
	if err == nil {
		t.Fatal("downloadFile() should error on 404")
	}

	he := httpErrorOf(err)
	if he == nil || he.StatusCode != 404 {
		t.Errorf("error = %v, want 404", err)
	}
	if he != nil && he.RequestID != "req-7" {
		t.Errorf("RequestID = %q, want req-7", he.RequestID)
	}

	if _, statErr := os.Stat(local); !os.IsNotExist(statErr) {
		t.Errorf("local file should not exist after a failed download")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("directory should be empty, got %d entries", len(entries))
	}
}
