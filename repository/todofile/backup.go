package todofile

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/oklog/ulid/v2"

	"github.com/fastygo/homepage/domain"
)

// Backups writes copies of todo files before they are rewritten.
type Backups struct {
	dir string
	now func() time.Time
}

// NewBackups returns a writer storing backups in dir. An empty dir disables
// backups.
func NewBackups(dir string) *Backups {
	return &Backups{dir: domain.ExpandHome(dir), now: time.Now}
}

// Write stores contents as <ulid>-<content hash>.txt and returns the path.
func (b *Backups) Write(contents []byte) (string, error) {
	if b == nil || b.dir == "" {
		return "", nil
	}
	if err := os.MkdirAll(b.dir, 0o700); err != nil {
		return "", fmt.Errorf("creating backup dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s.txt", newULID(b.now()), strconv.FormatUint(xxhash.Sum64(contents), 16))
	path := filepath.Join(b.dir, name)
	if err := os.WriteFile(path, contents, 0o600); err != nil {
		return "", fmt.Errorf("writing backup: %w", err)
	}
	return path, nil
}

func newULID(now time.Time) string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(now), entropy)
	if err != nil {
		return strconv.FormatInt(now.UnixNano(), 10)
	}
	return id.String()
}
