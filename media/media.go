// Package media manages files under the media root, most notably the
// short-lived uploads written to its temp directory.
package media

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
)

const tempDirName = "temp"

// Store is rooted at the configured media directory.
type Store struct {
	Root string
}

// NewStore returns a Store for root.
func NewStore(root string) *Store {
	return &Store{Root: root}
}

// TempDir is the directory holding in-flight uploads.
func (s *Store) TempDir() string {
	return filepath.Join(s.Root, tempDirName)
}

// WithTempFile creates a uniquely named empty file under TempDir and calls fn
// with its path. The file is removed when fn returns or panics.
// ext is kept when it is a plain extension such as ".jpg".
func (s *Store) WithTempFile(ext string, fn func(path string) error) error {
	if err := os.MkdirAll(s.TempDir(), 0o755); err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}

	path := filepath.Join(s.TempDir(), uuid.NewString()+cleanExt(ext))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	_ = f.Close()

	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("media: failed to remove temp file %s: %v", path, err)
		}
	}()

	return fn(path)
}

func cleanExt(ext string) string {
	ext = strings.ToLower(ext)
	if len(ext) < 2 || len(ext) > 8 || ext[0] != '.' {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}

// SweepTemp removes regular files in TempDir last modified before now-maxAge
// and returns how many were removed. A missing TempDir is not an error.
func (s *Store) SweepTemp(now time.Time, maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.TempDir())
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	cutoff := now.Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.TempDir(), entry.Name())); err != nil && !os.IsNotExist(err) {
			log.Printf("media: failed to sweep %s: %v", entry.Name(), err)
			continue
		}
		removed++
	}
	return removed, nil
}

// StartTempSweeper schedules SweepTemp every interval. Files left behind by a
// crashed process are removed once older than maxAge.
func (s *Store) StartTempSweeper(interval, maxAge time.Duration) (*gocron.Scheduler, error) {
	scheduler := gocron.NewScheduler(time.Local)

	_, err := scheduler.Every(interval).Do(func() {
		n, err := s.SweepTemp(time.Now(), maxAge)
		if err != nil {
			log.Printf("media: temp sweep failed: %v", err)
			return
		}
		if n > 0 {
			log.Printf("media: removed %d stale temp files", n)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule temp sweeper: %w", err)
	}

	scheduler.StartAsync()
	log.Println("Temp file sweeper started")
	return scheduler, nil
}
