package storage

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/monkeymesh/monkeymesh/internal/logger"
)

// allowedExtensions is the fixed set of accepted upload suffixes.
// The match is case-insensitive on the suffix only.
var allowedExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
}

// FileStore persists uploaded files under a fixed directory and hands back
// the public path they are served from. Filenames are kept verbatim, so a
// second upload with the same name overwrites the first.
type FileStore struct {
	dir          string // Filesystem directory uploads are written to
	publicPrefix string // URL prefix the directory is served under
}

// NewFileStore creates a FileStore writing to dir and serving from publicPrefix.
func NewFileStore(dir, publicPrefix string) *FileStore {
	return &FileStore{
		dir:          dir,
		publicPrefix: strings.TrimSuffix(publicPrefix, "/"),
	}
}

// Allowed reports whether the filename carries an accepted image suffix.
func Allowed(filename string) bool {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return false
	}
	_, ok := allowedExtensions[strings.ToLower(filename[idx+1:])]
	return ok
}

// Save persists the stream under the original filename and returns the
// public reference path. A disallowed or empty filename yields an empty
// reference with no error: "no file stored" is a valid outcome, the caller
// omits the field.
func (s *FileStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	if filename == "" || r == nil || !Allowed(filename) {
		logger.Log.Infow("upload skipped", "filename", filename)
		return "", nil
	}

	dst, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		logger.Log.Errorw("failed to create upload file", "filename", filename, "error", err)
		return "", err
	}
	defer dst.Close()

	written, err := io.Copy(dst, r)
	if err != nil {
		logger.Log.Errorw("failed to write upload file", "filename", filename, "error", err)
		return "", err
	}

	ref := path.Join(s.publicPrefix, filename)
	logger.Log.Infow("upload stored", "filename", filename, "size", written, "ref", ref)
	return ref, nil
}
