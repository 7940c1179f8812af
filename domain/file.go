package domain

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalFile describes one file listed in the homepage meta document.
type LocalFile struct {
	Name          string        `json:"name"`
	Path          string        `json:"path"`
	Todos         bool          `json:"todos"`
	FrequencyGoal time.Duration `json:"frequency_goal"`
	AutoProject   string        `json:"auto_project,omitempty"`
}

// ReadableName returns the display name, falling back to the path.
func (f LocalFile) ReadableName() string {
	if f.Name == "" {
		return f.Path
	}
	return f.Name
}

// ExpandedPath returns Path with a leading "~" replaced by the home directory.
func (f LocalFile) ExpandedPath() string {
	return ExpandHome(f.Path)
}

// ExpandHome replaces a leading "~" with the current user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// FileState is a snapshot of a file's modification time and size.
type FileState struct {
	ModificationTime time.Time `json:"modification_time"`
	Size             int64     `json:"size"`
}

// Equal compares snapshots ignoring monotonic clock readings.
func (s FileState) Equal(other FileState) bool {
	return s.Size == other.Size && s.ModificationTime.Equal(other.ModificationTime)
}

// UpdateState tells whether a file meets its freshness goal.
type UpdateState string

const (
	UpdateNoGoal      UpdateState = "no_goal"
	UpdateOK          UpdateState = "ok"
	UpdateNeedsUpdate UpdateState = "needs_update"
)

// UpdateStateFor compares the time since the last modification with goal.
// A zero goal means the file has no freshness goal.
func UpdateStateFor(goal, sinceModified time.Duration) UpdateState {
	if goal <= 0 {
		return UpdateNoGoal
	}
	if sinceModified > goal {
		return UpdateNeedsUpdate
	}
	return UpdateOK
}

// LocalFileStatus is a LocalFile with its modification history.
type LocalFileStatus struct {
	File          LocalFile   `json:"file"`
	States        []FileState `json:"states"`
	UpdateState   UpdateState `json:"update_state"`
	LastModified  time.Time   `json:"last_modified"`
	SinceModified string      `json:"since_modified"`
}

// NeedsUpdate reports whether the file missed its freshness goal.
func (s LocalFileStatus) NeedsUpdate() bool {
	return s.UpdateState == UpdateNeedsUpdate
}
