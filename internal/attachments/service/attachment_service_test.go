package service

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openadmissions/forms-intake-service/internal/attachments/model"
	"github.com/openadmissions/forms-intake-service/internal/system/config"
	"github.com/openadmissions/forms-intake-service/internal/system/log"
)

func setupAttachmentRuntime(t *testing.T, maxSize int64, allowed []string) string {
	t.Helper()

	dir := t.TempDir()
	_ = log.Init("debug")
	config.ResetIntakeRuntimeForTest(dir, &config.Config{
		Attachments: config.AttachmentConfig{
			Directory:           dir,
			FetchTimeoutSeconds: 5,
			MaxSizeBytes:        maxSize,
			AllowedContentTypes: allowed,
		},
	})
	return dir
}

func Test_FetchAndStore_PersistsBytesAndMetadata(t *testing.T) {

	dir := setupAttachmentRuntime(t, 1<<20, nil)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf; charset=binary")
		_, _ = w.Write([]byte("%PDF-1.4 test"))
	}))
	defer server.Close()

	svc := &AttachmentService{}
	attachment, err := svc.fetchAndStore("rec-1", model.FileReference{URL: server.URL + "/uploads/My%20Essay.pdf"})
	require.NoError(t, err)

	assert.Equal(t, "rec-1", attachment.RecordId)
	assert.Equal(t, "My Essay.pdf", attachment.FileName)
	assert.Equal(t, "application/pdf", attachment.ContentType)
	assert.Equal(t, int64(len("%PDF-1.4 test")), attachment.SizeBytes)
	assert.Contains(t, attachment.StorageName, "My Essay.pdf")
	assert.NotEqual(t, attachment.FileName, attachment.StorageName)

	stored, err := os.ReadFile(filepath.Join(dir, attachment.StorageName))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 test", string(stored))
}

func Test_FetchAndStore_DirectoryEscapeNamesNeutralized(t *testing.T) {

	dir := setupAttachmentRuntime(t, 1<<20, nil)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("content"))
	}))
	defer server.Close()

	svc := &AttachmentService{}

	// A double-encoded URL segment decodes to "x/../../escape.txt"; only the
	// final path element may survive into the storage name.
	attachment, err := svc.fetchAndStore("rec-1",
		model.FileReference{URL: server.URL + "/uploads/x%252F..%252F..%252Fescape.txt"})
	require.NoError(t, err)
	assert.Equal(t, "escape.txt", attachment.FileName)
	assert.NotContains(t, attachment.StorageName, "/")
	assert.FileExists(t, filepath.Join(dir, attachment.StorageName))
	assert.NoFileExists(t, filepath.Join(dir, "..", "escape.txt"))

	// A payload-supplied name with traversal segments is reduced the same way.
	attachment, err = svc.fetchAndStore("rec-1", model.FileReference{
		URL:  server.URL + "/uploads/report.pdf",
		Name: "../../../../tmp/owned.txt",
	})
	require.NoError(t, err)
	assert.Equal(t, "owned.txt", attachment.FileName)
	assert.NotContains(t, attachment.StorageName, "/")
	assert.FileExists(t, filepath.Join(dir, attachment.StorageName))
}

func Test_SanitizeFileName(t *testing.T) {

	assert.Equal(t, "essay.pdf", sanitizeFileName("essay.pdf"))
	assert.Equal(t, "escape.txt", sanitizeFileName("x/../../escape.txt"))
	assert.Equal(t, "owned.txt", sanitizeFileName(`..\..\owned.txt`))
	assert.Equal(t, "", sanitizeFileName(".."))
	assert.Equal(t, "", sanitizeFileName("."))
	assert.Equal(t, "", sanitizeFileName("   "))
}

func Test_FetchAndStore_SizeCapEnforced(t *testing.T) {

	setupAttachmentRuntime(t, 8, nil)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("this body is longer than eight bytes"))
	}))
	defer server.Close()

	svc := &AttachmentService{}
	_, err := svc.fetchAndStore("rec-1", model.FileReference{URL: server.URL + "/big.bin"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "byte limit")
}

func Test_FetchAndStore_ContentTypeAllowList(t *testing.T) {

	setupAttachmentRuntime(t, 1<<20, []string{"application/pdf"})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	svc := &AttachmentService{}
	_, err := svc.fetchAndStore("rec-1", model.FileReference{URL: server.URL + "/page.html"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not allowed")
}

func Test_FetchAndStore_NonOKStatusRejected(t *testing.T) {

	setupAttachmentRuntime(t, 1<<20, nil)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	svc := &AttachmentService{}
	_, err := svc.fetchAndStore("rec-1", model.FileReference{URL: server.URL + "/missing.pdf"})
	require.Error(t, err)
}

func Test_FileNameFromURL(t *testing.T) {

	assert.Equal(t, "essay.pdf", fileNameFromURL("http://host/uploads/essay.pdf"))
	assert.Equal(t, "My Essay.pdf", fileNameFromURL("http://host/uploads/My%20Essay.pdf"))
	assert.Equal(t, "", fileNameFromURL("http://host/"))
}

func Test_ClassifyContentType(t *testing.T) {

	assert.Equal(t, "application/pdf", classifyContentType("application/pdf; charset=binary"))
	assert.Equal(t, "image/jpeg", classifyContentType("IMAGE/JPEG"))
	assert.Equal(t, "application/octet-stream", classifyContentType(""))
}
