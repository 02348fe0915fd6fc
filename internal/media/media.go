// Package media manages the media directory: uploads are appended to it by
// filename and served back statically. Filesystem writes need no extra
// coordination, each upload lands in its own file.
package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"littlex/internal/config"
)

type Store struct {
	Logger *slog.Logger
	Config *config.Config

	dir string
}

func (s *Store) Init(_ context.Context) error {
	s.Logger = s.Logger.With("component", "media.Store")

	s.dir = s.Config.MediaDir
	if s.dir == "" {
		s.dir = "media"
	}

	return os.MkdirAll(s.dir, 0o755)
}

func (s *Store) Dir() string {
	return s.dir
}

// Save writes one upload part under its base name and returns the stored
// filename. The base-name restriction keeps uploads inside the media dir.
func (s *Store) Save(filename string, r io.Reader) (string, error) {
	name := filepath.Base(filename)
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid filename: %q", filename)
	}

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}

	s.Logger.Debug("media saved", "filename", name)
	return name, nil
}
