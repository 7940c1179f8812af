package todotxt

import (
	"regexp"
	"testing"
	"time"
)

var hexRe = regexp.MustCompile(`^[0-9a-f]+$`)

func TestFingerprintDeterministic(t *testing.T) {
	a := MustParse("(A) 2020-01-01 call @mom +family due:2020-01-05 id:1")
	b := MustParse("(A) 2020-01-01 call @mom +family due:2020-01-05 id:1")
	if Fingerprint(a) != Fingerprint(b) {
		t.Errorf("equal tasks must share a fingerprint")
	}
	if !hexRe.MatchString(a.Hash()) {
		t.Errorf("expected lowercase hex, got %q", a.Hash())
	}
}

func TestFingerprintTogglingFinished(t *testing.T) {
	task := MustParse("(A) 2020-01-01 call mom")
	before := Fingerprint(task)
	task.Finished = true
	if Fingerprint(task) == before {
		t.Error("toggling finished must change the fingerprint")
	}
}

func TestFingerprintFieldSensitivity(t *testing.T) {
	base := MustParse("(A) 2020-01-01 call @mom +family #x due:2020-01-05 t:2020-01-02 id:1")
	seen := map[string]string{Fingerprint(base): "base"}

	mutations := map[string]func(*Task){
		"subject":   func(t *Task) { t.Subject += "!" },
		"priority":  func(t *Task) { t.Priority = 1 },
		"create":    func(t *Task) { t.CreateDate = date(2020, time.January, 2) },
		"finish":    func(t *Task) { t.FinishDate = date(2020, time.January, 3) },
		"finished":  func(t *Task) { t.Finished = true },
		"threshold": func(t *Task) { t.ThresholdDate = nil },
		"due":       func(t *Task) { t.DueDate = date(2020, time.January, 6) },
		"contexts":  func(t *Task) { t.Contexts = []string{"dad"} },
		"projects":  func(t *Task) { t.Projects = []string{} },
		"hashtags":  func(t *Task) { t.Hashtags = []string{"x", "y"} },
		"tags":      func(t *Task) { t.Tags = map[string]string{"id": "2"} },
	}

	for name, mutate := range mutations {
		task := MustParse(base.String())
		mutate(&task)
		fp := Fingerprint(task)
		if other, ok := seen[fp]; ok {
			t.Errorf("mutation %q collides with %q", name, other)
		}
		seen[fp] = name
	}
}

func TestFingerprintAdjacentFieldsDoNotBlend(t *testing.T) {
	a := NewTask()
	a.Contexts = []string{"ab"}
	b := NewTask()
	b.Contexts = []string{"a", "b"}
	if Fingerprint(a) == Fingerprint(b) {
		t.Error("list boundaries must be part of the fingerprint")
	}

	c := NewTask()
	c.Tags = map[string]string{"a": "bc"}
	d := NewTask()
	d.Tags = map[string]string{"ab": "c"}
	if Fingerprint(c) == Fingerprint(d) {
		t.Error("tag key/value boundaries must be part of the fingerprint")
	}
}
