package storage

import (
	"errors"
	"io"
)

// ErrDirectoryExists is returned when creating a gallery directory that
// is already present on disk. Directory creation is deliberately
// non-idempotent: an existing path is surfaced as a conflict instead of
// being silently reused.
var ErrDirectoryExists = errors.New("directory already exists")

// StorageDirectory manages the on-disk tree that parallels the gallery
// records: {root}/{username}/{image|video}/{gallery}/{file}. Handlers
// depend on this interface so tests can swap in a fake; ordering against
// the database write happens in the handler.
type StorageDirectory interface {
	CreateUserDir(username string) error
	RenameUserDir(oldName, newName string) error

	CreateGalleryDir(username, kind, gallery string) error
	RenameGalleryDir(username, kind, oldName, newName string) error
	// RemoveGalleryDir deletes the whole gallery tree, tolerating its
	// absence.
	RemoveGalleryDir(username, kind, gallery string) error

	SaveFile(relPath string, r io.Reader) error
	// RemoveFile tolerates a file that is already gone.
	RemoveFile(relPath string) error
}
