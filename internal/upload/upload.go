// Package upload implements the shared image/receipt acceptance policy and
// the scoped save used by every controller that takes a file. Validation is
// by claimed filename extension only; swapping in content sniffing later
// only requires changing Validate.
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Category directories under the public root. Stored file names are
// referenced by name only; nothing enforces that a referenced file still
// exists on disk.
const (
	DirUsers          = "images-users"
	DirAirlines       = "images-airlines"
	DirHotels         = "images-hotels"
	DirFlightReceipts = "images-payment-airlines"
	DirHotelReceipts  = "images-payment-hotels"
)

// MaxBytes is the inclusive upper bound on accepted uploads; one byte more
// is rejected.
const MaxBytes = 5_000_000

// Policy violations. The messages double as HTTP response bodies, so they
// keep the exact wording clients already depend on.
var (
	ErrInvalidType = errors.New("Invalid image type")
	ErrTooLarge    = errors.New("Image must be less than 5MB")
)

var allowedExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// Validate applies the acceptance policy to a claimed filename and byte
// length. It never touches the file contents.
func Validate(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExts[ext] {
		return ErrInvalidType
	}
	if size > MaxBytes {
		return ErrTooLarge
	}
	return nil
}

// Save validates the upload, then writes it into root/category under a
// timestamp-derived name. It returns the stored name and a cleanup
// function that deletes the file; callers must invoke cleanup on every
// failure path after a successful save so no orphaned upload survives a
// downstream error.
func Save(fh *multipart.FileHeader, root, category string) (string, func(), error) {
	if err := Validate(fh.Filename, fh.Size); err != nil {
		return "", nil, err
	}

	dir := filepath.Join(root, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", nil, err
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	name := fmt.Sprintf("%d%s", time.Now().UnixMilli(), ext)
	dst := filepath.Join(dir, name)

	src, err := fh.Open()
	if err != nil {
		return "", nil, err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", nil, err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		os.Remove(dst)
		return "", nil, err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return "", nil, err
	}

	cleanup := func() { _ = os.Remove(dst) }
	return name, cleanup, nil
}

// Remove deletes a previously stored file, ignoring missing files. Used
// when an entity replaces or drops its image.
func Remove(root, category, name string) {
	if name == "" {
		return
	}
	_ = os.Remove(filepath.Join(root, category, filepath.Base(name)))
}
