package afs

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	customErrors "github.com/Miraines/MoonyAndStarry/qr-service/internal/domain/errors"
	"github.com/viant/afs"
	"github.com/viant/afs/url"
)

const (
	dirMode  os.FileMode = 0o755
	fileMode os.FileMode = 0o644
)

// ImageStore keeps rendered images as flat files under one directory URL.
type ImageStore struct {
	fs      afs.Service
	baseURL string
	ext     string
}

// NewImageStore opens (creating when missing) the directory dir. Plain paths
// are resolved to file:// URLs; any other afs scheme is used as is. Only
// names ending in ext are listed.
func NewImageStore(ctx context.Context, dir, ext string) (*ImageStore, error) {
	baseURL := dir
	if !strings.Contains(dir, "://") {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, customErrors.WrapInternal(err, "resolve image dir")
		}
		baseURL = "file://" + filepath.ToSlash(abs)
	}

	s := &ImageStore{fs: afs.New(), baseURL: baseURL, ext: ext}

	ok, err := s.fs.Exists(ctx, baseURL)
	if err != nil {
		return nil, customErrors.WrapInternal(err, "stat image dir")
	}
	if !ok {
		if err := s.fs.Create(ctx, baseURL, dirMode, true); err != nil {
			return nil, customErrors.WrapInternal(err, "create image dir")
		}
	}
	return s, nil
}

func (s *ImageStore) BaseURL() string {
	return s.baseURL
}

func (s *ImageStore) objectURL(name string) string {
	return url.Join(s.baseURL, name)
}

func (s *ImageStore) Exists(ctx context.Context, name string) (bool, error) {
	ok, err := s.fs.Exists(ctx, s.objectURL(name))
	if err != nil {
		return false, customErrors.WrapInternal(err, "Exists")
	}
	return ok, nil
}

func (s *ImageStore) Save(ctx context.Context, name string, data []byte) error {
	if err := s.fs.Upload(ctx, s.objectURL(name), fileMode, bytes.NewReader(data)); err != nil {
		return customErrors.WrapGeneration(err, "write "+name)
	}
	return nil
}

// List returns the file names in the directory, sorted.
func (s *ImageStore) List(ctx context.Context) ([]string, error) {
	objects, err := s.fs.List(ctx, s.baseURL)
	if err != nil {
		return nil, customErrors.WrapInternal(err, "List")
	}
	names := make([]string, 0, len(objects))
	for _, object := range objects {
		if object.IsDir() {
			continue
		}
		name := object.Name()
		if s.ext != "" && !strings.HasSuffix(name, s.ext) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the regular file name. Directories are reported as not found
// and left untouched.
func (s *ImageStore) Delete(ctx context.Context, name string) error {
	ok, err := s.Exists(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		return customErrors.ErrNotFound
	}
	object, err := s.fs.Object(ctx, s.objectURL(name))
	if err != nil {
		return customErrors.WrapInternal(err, "Delete")
	}
	if object.IsDir() {
		return customErrors.ErrNotFound
	}
	if err := s.fs.Delete(ctx, s.objectURL(name)); err != nil {
		return customErrors.WrapInternal(err, "Delete")
	}
	return nil
}
