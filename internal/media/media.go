// Package media holds the gallery capacity cap, the unique-filename
// algorithm and the per-upload validation rules.
package media

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// MaxItemsPerGallery is a fixed contract, not a deployment setting.
const MaxItemsPerGallery = 10

var (
	ErrCapacityExceeded = errors.New("gallery capacity exceeded")
	ErrFormatInvalid    = errors.New("file format not allowed")
	ErrSizeExceeded     = errors.New("file size exceeds the limit")
)

// CheckCapacity rejects an upload that would push a gallery past the
// cap. existing is the current item count, incoming the number of files
// in this request.
func CheckCapacity(existing int64, incoming int) error {
	if existing+int64(incoming) > MaxItemsPerGallery {
		return ErrCapacityExceeded
	}
	return nil
}

// CheckSize compares a file's size against the deployment cap.
func CheckSize(size, maxBytes int64) error {
	if size > maxBytes {
		return ErrSizeExceeded
	}
	return nil
}

// CheckExtension validates the original filename's extension against an
// allow-list. An empty list allows everything. Matching is
// case-insensitive.
func CheckExtension(filename string, allowed []string) error {
	if len(allowed) == 0 {
		return nil
	}
	ext := strings.ToLower(filepath.Ext(filename))
	for _, a := range allowed {
		if ext == strings.ToLower(a) {
			return nil
		}
	}
	return ErrFormatInvalid
}

// NextTimestamp returns a capture of now that lands in a strictly later
// microsecond than prev. Filenames only carry microsecond resolution, so
// two clock reads in the same microsecond would otherwise collide; when
// the clock has not moved that far, the capture is stepped one
// microsecond past the previous one.
func NextTimestamp(prev, now time.Time) time.Time {
	if now.Truncate(time.Microsecond).After(prev.Truncate(time.Microsecond)) {
		return now
	}
	return prev.Add(time.Microsecond)
}

// UniqueFilename derives a collision-resistant name from the owner, the
// gallery and a UTC timestamp down to the microsecond. The caller must
// capture the timestamp per file via NextTimestamp: hoisting one capture
// outside a multi-file loop would make every file in the batch collide.
func UniqueFilename(username, galleryName, originalName string, now time.Time) string {
	ext := filepath.Ext(originalName)
	now = now.UTC()
	return fmt.Sprintf("%s-%s-%d-%d-%d-%d-%d-%d-%d%s",
		username, galleryName,
		now.Day(), int(now.Month()), now.Year(),
		now.Hour(), now.Minute(), now.Second(), now.Nanosecond()/1000,
		ext)
}
