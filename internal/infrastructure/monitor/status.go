package monitor

import "time"

// FileCheck is the result of stating one configured file.
type FileCheck struct {
	Name             string    `json:"name"`
	Path             string    `json:"path"`
	Reachable        bool      `json:"reachable"`
	Size             int64     `json:"size"`
	ModificationTime time.Time `json:"modification_time,omitempty"`
	Error            string    `json:"error,omitempty"`
}

type Status struct {
	Meta        bool        `json:"meta"`
	Files       []FileCheck `json:"files"`
	History     bool        `json:"history"`
	HistorySize int         `json:"history_size"`
	LastCheck   time.Time   `json:"last_check"`
}

// Healthy reports whether the meta document and every listed file were readable.
func (s Status) Healthy() bool {
	if !s.Meta {
		return false
	}
	for _, f := range s.Files {
		if !f.Reachable {
			return false
		}
	}
	return true
}
