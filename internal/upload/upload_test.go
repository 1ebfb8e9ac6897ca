package upload

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name     string
		filename string
		size     int64
		want     error
	}{
		{"png ok", "receipt.png", 1024, nil},
		{"jpg ok", "photo.jpg", 1024, nil},
		{"jpeg ok", "photo.jpeg", 1024, nil},
		{"gif ok", "anim.gif", 1024, nil},
		{"uppercase ext ok", "PHOTO.PNG", 1024, nil},
		{"pdf rejected", "receipt.pdf", 1024, ErrInvalidType},
		{"no ext rejected", "receipt", 1024, ErrInvalidType},
		{"exactly at limit ok", "receipt.png", 5_000_000, nil},
		{"one byte over rejected", "receipt.png", 5_000_001, ErrTooLarge},
		{"bad ext wins over size", "huge.exe", 9_000_000, ErrInvalidType},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.filename, tc.size)
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}

// multipartFile builds a real *multipart.FileHeader the way a handler
// receives one.
func multipartFile(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	fh := req.MultipartForm.File[field][0]
	return fh
}

func TestSaveStoresAndCleans(t *testing.T) {
	root := t.TempDir()
	fh := multipartFile(t, "receipt", "proof.png", []byte("fake image bytes"))

	name, cleanup, err := Save(fh, root, DirFlightReceipts)
	require.NoError(t, err)
	require.NotNil(t, cleanup)
	assert.Equal(t, ".png", filepath.Ext(name))

	stored := filepath.Join(root, DirFlightReceipts, name)
	got, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, []byte("fake image bytes"), got)

	cleanup()
	_, err = os.Stat(stored)
	assert.True(t, os.IsNotExist(err))
}

func TestSaveRejectsBadExtension(t *testing.T) {
	root := t.TempDir()
	fh := multipartFile(t, "receipt", "proof.txt", []byte("nope"))

	_, _, err := Save(fh, root, DirFlightReceipts)
	assert.ErrorIs(t, err, ErrInvalidType)

	entries, readErr := os.ReadDir(root)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestRemoveIgnoresMissingAndTraversal(t *testing.T) {
	root := t.TempDir()

	// Missing files are a no-op.
	Remove(root, DirUsers, "ghost.png")

	// Stored names are flattened, so a traversal path cannot escape the
	// category directory.
	outside := filepath.Join(root, "victim.png")
	require.NoError(t, os.WriteFile(outside, []byte("keep me"), 0o644))
	Remove(root, DirUsers, "../victim.png")
	_, err := os.Stat(outside)
	assert.NoError(t, err)
}
