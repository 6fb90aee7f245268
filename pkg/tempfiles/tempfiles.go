package tempfiles

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/arthur-debert/winregi/pkg/errors"
)

// Prefix starts every file name handed out by a Provider.
const Prefix = "winregi-"

// Provider creates and removes scratch files.
type Provider interface {
	// Create writes content to a new file ending in ext and returns its path.
	Create(ext string, content []byte) (string, error)
	// Remove deletes a file returned by Create. A missing file is not an error.
	Remove(path string) error
	Dir() string
}

// osProvider implements Provider on the OS filesystem
type osProvider struct {
	dir string
}

// NewOS returns a Provider writing into dir, or os.TempDir() when dir is empty.
func NewOS(dir string) Provider {
	if dir == "" {
		dir = os.TempDir()
	}
	return &osProvider{dir: dir}
}

func (o *osProvider) Dir() string {
	return o.dir
}

func (o *osProvider) Create(ext string, content []byte) (string, error) {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if err := os.MkdirAll(o.dir, 0700); err != nil {
		return "", errors.Wrapf(err, errors.ErrTempFileCreate, "failed to create temp directory %s", o.dir)
	}

	path := filepath.Join(o.dir, Prefix+uuid.NewString()+ext)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTempFileCreate, "failed to create temp file %s", path)
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", errors.Wrapf(err, errors.ErrTempFileCreate, "failed to write temp file %s", path)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", errors.Wrapf(err, errors.ErrTempFileCreate, "failed to close temp file %s", path)
	}
	return path, nil
}

func (o *osProvider) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrInternal, "failed to remove temp file %s", path)
	}
	return nil
}

// List returns the files in dir created by a Provider.
func List(dir string) ([]string, error) {
	return filepath.Glob(filepath.Join(dir, Prefix+"*"))
}
