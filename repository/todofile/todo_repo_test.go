package todofile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fastygo/homepage/domain"
	"github.com/fastygo/homepage/pkg/todotxt"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

func TestLoadSkipsBadAndEmptyLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "todo.txt")
	writeFile(t, path, "(A) call mom\n\nbad \xff line\nx 2020-01-02 2020-01-01 done thing +home\n")

	repo := NewTodoRepository(nil, nil)
	todos, err := repo.Load(context.Background(), domain.LocalFile{Path: path, Todos: true, AutoProject: "family"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(todos) != 2 {
		t.Fatalf("expected 2 todos, got %d: %+v", len(todos), todos)
	}
	if todos[0].Task.Subject != "call mom" || todos[0].Line != 1 {
		t.Errorf("unexpected first todo %+v", todos[0])
	}
	if todos[1].Line != 4 || !todos[1].Task.Finished {
		t.Errorf("unexpected second todo %+v", todos[1])
	}
	if todos[0].Hash != todotxt.Fingerprint(todos[0].Task) {
		t.Error("todo hash must be the task fingerprint")
	}
	if todos[0].AutoProject != "family" || todos[0].Source != path {
		t.Errorf("unexpected source info %+v", todos[0])
	}
}

func TestLoadMissingFile(t *testing.T) {
	repo := NewTodoRepository(nil, nil)
	_, err := repo.Load(context.Background(), domain.LocalFile{Path: filepath.Join(t.TempDir(), "nope.txt")})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestSetFinishedRewritesOnlyThatLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "todo.txt")
	original := "first  line   kept\n(A) 2020-01-01 call mom due:2020-01-05\nbad \xff line\nlast rec:1w  \n"
	writeFile(t, path, original)

	backupDir := filepath.Join(dir, "backups")
	repo := NewTodoRepository(NewBackups(backupDir), nil)
	files := []domain.LocalFile{{Path: filepath.Join(dir, "other.txt")}, {Path: path, Todos: true}}

	target := todotxt.MustParse("(A) 2020-01-01 call mom due:2020-01-05")
	newHash, err := repo.SetFinished(context.Background(), files, target.Hash(), true)
	if err != nil {
		t.Fatalf("SetFinished failed: %v", err)
	}

	want := "first  line   kept\nx (A) 2020-01-01 call mom due:2020-01-05\nbad \xff line\nlast rec:1w  \n"
	if got := readFile(t, path); got != want {
		t.Errorf("unexpected file contents:\n%q\nwant\n%q", got, want)
	}

	target.Finished = true
	if newHash != target.Hash() {
		t.Errorf("expected new hash %s, got %s", target.Hash(), newHash)
	}

	entries, err := os.ReadDir(backupDir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one backup, got %v (%v)", entries, err)
	}
	if got := readFile(t, filepath.Join(backupDir, entries[0].Name())); got != original {
		t.Errorf("backup must hold the original contents, got %q", got)
	}

	// Toggling back restores the original fingerprint.
	back, err := repo.SetFinished(context.Background(), files, newHash, false)
	if err != nil {
		t.Fatalf("SetFinished back failed: %v", err)
	}
	if back != todotxt.MustParse("(A) 2020-01-01 call mom due:2020-01-05").Hash() {
		t.Errorf("unexpected hash after untoggle %s", back)
	}
}

func TestSetFinishedNotFound(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "todo.txt")
	writeFile(t, path, "call mom\n")

	repo := NewTodoRepository(nil, nil)
	_, err := repo.SetFinished(context.Background(), []domain.LocalFile{{Path: path, Todos: true}}, "deadbeef", true)
	if !errors.Is(err, domain.ErrTodoNotFound) {
		t.Fatalf("expected ErrTodoNotFound, got %v", err)
	}
	if got := readFile(t, path); got != "call mom\n" {
		t.Errorf("file must be untouched, got %q", got)
	}
}

func TestSetFinishedKeepsCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "todo.txt")
	writeFile(t, path, "a\r\nb\r\n")

	repo := NewTodoRepository(nil, nil)
	if _, err := repo.SetFinished(context.Background(), []domain.LocalFile{{Path: path, Todos: true}}, todotxt.MustParse("b").Hash(), true); err != nil {
		t.Fatalf("SetFinished failed: %v", err)
	}
	if got := readFile(t, path); got != "a\r\nx b\r\n" {
		t.Errorf("unexpected contents %q", got)
	}
}

func TestRewriteKeepsMixedLineEndings(t *testing.T) {
	tests := []struct {
		name    string
		content string
		hash    string
		want    string
	}{
		{
			name:    "crlf line edited",
			content: "a one\r\nb two\nc three\n",
			hash:    todotxt.MustParse("a one").Hash(),
			want:    "x a one\r\nb two\nc three\n",
		},
		{
			name:    "lf line edited",
			content: "a one\r\nb two\nc three\r\n",
			hash:    todotxt.MustParse("b two").Hash(),
			want:    "a one\r\nx b two\nc three\r\n",
		},
		{
			name:    "no final newline",
			content: "a one\nb two",
			hash:    todotxt.MustParse("b two").Hash(),
			want:    "a one\nx b two",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "todo.txt")
			writeFile(t, path, tt.content)

			repo := NewTodoRepository(nil, nil)
			if _, err := repo.SetFinished(context.Background(), []domain.LocalFile{{Path: path, Todos: true}}, tt.hash, true); err != nil {
				t.Fatalf("SetFinished failed: %v", err)
			}
			if got := readFile(t, path); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestArchiveKeepsMixedLineEndings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "todo.txt")
	writeFile(t, path, "open one\r\nx done\nopen two\n")

	repo := NewTodoRepository(nil, nil)
	n, err := repo.ArchiveFinished(context.Background(), []domain.LocalFile{{Path: path, Todos: true}})
	if err != nil {
		t.Fatalf("ArchiveFinished failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 archived, got %d", n)
	}
	if got := readFile(t, path); got != "open one\r\nopen two\n" {
		t.Errorf("unexpected contents %q", got)
	}
}

func TestArchiveFinished(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "todo.txt")
	writeFile(t, path, "x 2020-01-02 2020-01-01 paid rent\nbuy milk\nx sold bike\n")
	writeFile(t, filepath.Join(dir, DoneFileName), "x old thing")

	repo := NewTodoRepository(nil, nil)
	n, err := repo.ArchiveFinished(context.Background(), []domain.LocalFile{{Path: path, Todos: true}})
	if err != nil {
		t.Fatalf("ArchiveFinished failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 archived, got %d", n)
	}
	if got := readFile(t, path); got != "buy milk\n" {
		t.Errorf("unexpected todo contents %q", got)
	}
	done := readFile(t, filepath.Join(dir, DoneFileName))
	if done != "x old thing\nx 2020-01-02 2020-01-01 paid rent\nx sold bike\n" {
		t.Errorf("unexpected done contents %q", done)
	}

	n, err = repo.ArchiveFinished(context.Background(), []domain.LocalFile{{Path: path, Todos: true}})
	if err != nil || n != 0 {
		t.Errorf("second archive: expected 0, got %d (%v)", n, err)
	}
	if !strings.HasSuffix(readFile(t, path), "buy milk\n") {
		t.Error("todo file changed on a no-op archive")
	}
}
