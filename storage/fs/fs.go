package fs

// Common data structure for listing records. Every provider (rclone, local, S3) produces the same shape, which is
// also the shape `rclone lsjson` prints.
import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const Separator = "/"

// Entry is a single file or directory of a listing
type Entry struct {
	// Slash-separated path relative to the listed root, without leading slash
	Path     string    `json:"Path" yaml:"Path"`
	Name     string    `json:"Name,omitempty" yaml:"Name,omitempty"`
	Size     int64     `json:"Size" yaml:"Size"`
	MimeType string    `json:"MimeType,omitempty" yaml:"MimeType,omitempty"`
	ModTime  time.Time `json:"ModTime,omitzero" yaml:"ModTime,omitempty"`
	IsDir    bool      `json:"IsDir" yaml:"IsDir"`
}

// Segments splits the entry's path and drops empty segments produced by leading, trailing or doubled separators
func (e Entry) Segments() []string {
	var segments []string

	for _, segment := range strings.Split(e.Path, Separator) {
		if segment != "" {
			segments = append(segments, segment)
		}
	}

	return segments
}

// TopLevel returns the first non-empty path segment or "" for an empty path
func (e Entry) TopLevel() string {
	segments := e.Segments()

	if len(segments) == 0 {
		return ""
	}

	return segments[0]
}

// Totals counts files, directories and the summed file size of the given entries
func Totals(entries []Entry) (files uint64, dirs uint64, size int64) {
	for _, entry := range entries {
		if entry.IsDir {
			dirs++
			continue
		}

		files++
		size += entry.Size
	}

	return files, dirs, size
}

func IsFilePathValid(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// WriteFileAtomic writes data to a temporary file next to path and renames it into place
func WriteFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", path, err)
	}

	defer func() {
		// no-op after a successful rename
		_ = os.Remove(tmp.Name())
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err = tmp.Chmod(0644); err != nil {
		log.Debugf("Could not change mode of %s: %s", tmp.Name(), err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move file into %s: %w", path, err)
	}

	return nil
}
