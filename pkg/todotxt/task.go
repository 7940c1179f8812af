// Package todotxt parses, formats and fingerprints todo.txt task lines.
//
// A task line looks like
//
//	x (A) 2015-05-01 2015-04-20 call @bob about +garage due:2015-05-02 t:2015-04-30 id:7
//
// Every operation here is a pure function of its input and is safe for
// concurrent use.
package todotxt

// NoPriority is the priority of a task without a valid "(A) " marker.
const NoPriority uint8 = 26

// Task is one parsed task line.
type Task struct {
	Subject       string            `json:"subject"`
	Priority      uint8             `json:"priority"`
	CreateDate    *Date             `json:"create_date,omitempty"`
	FinishDate    *Date             `json:"finish_date,omitempty"`
	Finished      bool              `json:"finished"`
	ThresholdDate *Date             `json:"threshold_date,omitempty"`
	DueDate       *Date             `json:"due_date,omitempty"`
	Contexts      []string          `json:"contexts"`
	Projects      []string          `json:"projects"`
	Hashtags      []string          `json:"hashtags"`
	Tags          map[string]string `json:"tags"`
}

// NewTask returns an empty unfinished task without priority.
func NewTask() Task {
	return Task{
		Priority: NoPriority,
		Contexts: []string{},
		Projects: []string{},
		Hashtags: []string{},
		Tags:     map[string]string{},
	}
}

// HasPriority reports whether the task carries a letter priority.
func (t Task) HasPriority() bool {
	return t.Priority < NoPriority
}

// PriorityLetter returns "A".."Z" or "" when the task has no priority.
func (t Task) PriorityLetter() string {
	if !t.HasPriority() {
		return ""
	}
	return string(rune('A' + t.Priority))
}

// HasContext reports whether ctx is one of the task's contexts.
func (t Task) HasContext(ctx string) bool { return contains(t.Contexts, ctx) }

// HasProject reports whether project is one of the task's projects.
func (t Task) HasProject(project string) bool { return contains(t.Projects, project) }

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
