package domain

import (
	"github.com/fastygo/homepage/pkg/todotxt"
)

// Todo is a parsed task line together with where it came from.
// DisplaySubject is the subject as shown on the dashboard.
type Todo struct {
	Task           todotxt.Task `json:"task"`
	Hash           string       `json:"hash"`
	Source         string       `json:"source"`
	Line           int          `json:"line"`
	AutoProject    string       `json:"auto_project,omitempty"`
	DisplaySubject string       `json:"display_subject"`
}

// NewTodo wraps task and computes its identity hash.
func NewTodo(task todotxt.Task, source string, line int, autoProject string) Todo {
	t := Todo{
		Task:        task,
		Hash:        todotxt.Fingerprint(task),
		Source:      source,
		Line:        line,
		AutoProject: autoProject,
	}
	t.DisplaySubject = t.SubjectWithAutoProject()
	return t
}

// ShowAutoProject reports whether the file's auto project should be shown
// next to the subject, i.e. it is set and the task does not name it itself.
func (t Todo) ShowAutoProject() bool {
	return t.AutoProject != "" && !t.Task.HasProject(t.AutoProject)
}

// SubjectWithAutoProject prefixes the subject with "+<auto project> " when
// ShowAutoProject is true.
func (t Todo) SubjectWithAutoProject() string {
	if !t.ShowAutoProject() {
		return t.Task.Subject
	}
	return "+" + t.AutoProject + " " + t.Task.Subject
}

// InProject reports whether the todo belongs to project, either through a
// +project marker or through its file's auto project.
func (t Todo) InProject(project string) bool {
	return t.Task.HasProject(project) || t.AutoProject == project
}
