package service

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/lawfirm-api/internal/config"
	apperrors "github.com/spec-kit/lawfirm-api/pkg/util/errorutil"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func fileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	require.Len(t, form.File["image"], 1)
	return form.File["image"][0]
}

func TestUploadService_SaveImage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	svc := NewUploadService(config.UploadConfig{Dir: dir, MaxBytes: 1 << 10})

	name, err := svc.SaveImage(fileHeader(t, "Cover.PNG", "image/png", pngHeader))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".png"))

	stored, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, stored)
}

func TestUploadService_ExtensionFollowsContent(t *testing.T) {
	dir := t.TempDir()
	svc := NewUploadService(config.UploadConfig{Dir: dir, MaxBytes: 1 << 10})

	tests := []struct {
		filename string
		content  []byte
		wantExt  string
	}{
		{filename: "shell.php", content: pngHeader, wantExt: ".png"},
		{filename: "photo.jpg", content: []byte("GIF89a\x01\x00\x01\x00"), wantExt: ".gif"},
		{filename: "noext", content: pngHeader, wantExt: ".png"},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			name, err := svc.SaveImage(fileHeader(t, tt.filename, "image/png", tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.wantExt, filepath.Ext(name))
		})
	}
}

func TestUploadService_Rejects(t *testing.T) {
	svc := NewUploadService(config.UploadConfig{Dir: t.TempDir(), MaxBytes: 64})

	tests := []struct {
		name string
		file *multipart.FileHeader
	}{
		{name: "missing", file: nil},
		{name: "declared non-image", file: fileHeader(t, "notes.txt", "text/plain", []byte("hello"))},
		{name: "disguised content", file: fileHeader(t, "evil.png", "image/png", []byte("<html><script>alert(1)</script></html>"))},
		{name: "too large", file: fileHeader(t, "big.png", "image/png", append(pngHeader, make([]byte, 100)...))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SaveImage(tt.file)
			assertCode(t, err, apperrors.CodeValidation)
		})
	}
}
