package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DiskStorage keeps media under a single base directory.
type DiskStorage struct {
	root string
}

// NewDiskStorage creates the media root if missing.
func NewDiskStorage(root string) (*DiskStorage, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("media root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	return &DiskStorage{root: root}, nil
}

func (d *DiskStorage) CreateUserDir(username string) error {
	return os.MkdirAll(filepath.Join(d.root, username), 0o755)
}

func (d *DiskStorage) RenameUserDir(oldName, newName string) error {
	return os.Rename(filepath.Join(d.root, oldName), filepath.Join(d.root, newName))
}

func (d *DiskStorage) CreateGalleryDir(username, kind, gallery string) error {
	path := filepath.Join(d.root, GalleryPath(username, kind, gallery))
	if _, err := os.Stat(path); err == nil {
		return ErrDirectoryExists
	}
	return os.MkdirAll(path, 0o755)
}

func (d *DiskStorage) RenameGalleryDir(username, kind, oldName, newName string) error {
	oldPath := filepath.Join(d.root, GalleryPath(username, kind, oldName))
	newPath := filepath.Join(d.root, GalleryPath(username, kind, newName))
	return os.Rename(oldPath, newPath)
}

func (d *DiskStorage) RemoveGalleryDir(username, kind, gallery string) error {
	path := filepath.Join(d.root, GalleryPath(username, kind, gallery))
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return os.RemoveAll(path)
}

func (d *DiskStorage) SaveFile(relPath string, r io.Reader) error {
	target := filepath.Join(d.root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, r); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func (d *DiskStorage) RemoveFile(relPath string) error {
	target := filepath.Join(d.root, filepath.FromSlash(relPath))
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// GalleryPath returns the gallery directory relative to the media root,
// always slash-separated.
func GalleryPath(username, kind, gallery string) string {
	return username + "/" + kind + "/" + gallery
}

// MediaPath returns the file location relative to the media root.
func MediaPath(username, kind, gallery, filename string) string {
	return GalleryPath(username, kind, gallery) + "/" + filename
}
