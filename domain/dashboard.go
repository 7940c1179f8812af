package domain

import (
	"time"

	"github.com/fastygo/homepage/pkg/datetools"
	"github.com/fastygo/homepage/pkg/todotxt"
)

// Deadline is a calendar event shown on the dashboard.
type Deadline struct {
	Summary     string         `json:"summary"`
	Description string         `json:"description,omitempty"`
	Link        string         `json:"link,omitempty"`
	Date        todotxt.Date   `json:"date"`
	When        datetools.When `json:"when"`
	Relative    string         `json:"relative"`
}

// Dashboard is everything the start page renders.
type Dashboard struct {
	LastUpdate time.Time         `json:"last_update"`
	TodosCount int               `json:"todos_count"`
	Todos      []Todo            `json:"todos"`
	LocalFiles []LocalFileStatus `json:"local_files"`
	Deadlines  []Deadline        `json:"deadlines"`
}

// SearchParams narrows and orders the dashboard todos.
type SearchParams struct {
	Context string `json:"context"`
	Project string `json:"project"`
	Search  string `json:"search"`
	SortBy  string `json:"sort_by"`
}

// SortByCreateDate is the only supported explicit sort key.
const SortByCreateDate = "create_date"
