// Package filex covers the few filesystem chores of the client: its data
// directory and avatar images picked from disk.
package filex

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
)

// MaxImageSize caps avatar uploads.
const MaxImageSize = 2 << 20

var (
	ErrNotImage      = errors.New("file is not a supported image")
	ErrImageTooLarge = errors.New("image is too large")
)

var imageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// EnsureSubdDir creates dirName under the working directory if needed and
// returns its absolute path.
func EnsureSubdDir(dirName string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}

	dir := filepath.Join(cwd, dirName)
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}

// ReadImage loads an avatar image and sniffs its content type.
func ReadImage(path string) ([]byte, string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, "", err
	}
	if fi.Size() > MaxImageSize {
		return nil, "", fmt.Errorf("%w: %d bytes", ErrImageTooLarge, fi.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}

	ct := http.DetectContentType(data)
	if _, ok := imageTypes[ct]; !ok {
		return nil, "", fmt.Errorf("%w: %s", ErrNotImage, ct)
	}
	return data, ct, nil
}

// ImageExt returns the file extension for a supported image content type.
func ImageExt(contentType string) (string, bool) {
	ext, ok := imageTypes[contentType]
	return ext, ok
}
