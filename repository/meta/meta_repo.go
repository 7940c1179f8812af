package meta

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/xhit/go-str2duration/v2"
	"gopkg.in/yaml.v3"

	"github.com/fastygo/homepage/domain"
	"github.com/fastygo/homepage/repository"
)

// Document is the homepage meta file:
//
//	local:
//	  - name: Inbox
//	    path: ~/todo/todo.txt
//	    todos: true
//	    frequency_goal: 3d
//	    auto_project: home
type Document struct {
	Local []LocalFileEntry `yaml:"local"`
}

// LocalFileEntry is one entry of the local list.
type LocalFileEntry struct {
	Name          string   `yaml:"name"`
	Path          string   `yaml:"path"`
	Todos         bool     `yaml:"todos"`
	FrequencyGoal Duration `yaml:"frequency_goal"`
	AutoProject   string   `yaml:"auto_project"`
}

// Duration accepts human durations such as "36h", "3d" or "1w2d".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		*d = 0
		return nil
	}
	parsed, err := str2duration.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("frequency_goal %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

type metaRepository struct {
	path string
}

// NewMetaRepository reads the meta document at path on every call, so edits
// show up without a restart.
func NewMetaRepository(path string) repository.MetaRepository {
	return &metaRepository{path: domain.ExpandHome(path)}
}

func (r *metaRepository) LocalFiles(ctx context.Context) ([]domain.LocalFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("reading meta %s: %w", r.path, err)
	}
	doc, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("parsing meta %s: %w", r.path, err)
	}
	return doc.LocalFiles(), nil
}

func (r *metaRepository) State(ctx context.Context, file domain.LocalFile) (domain.FileState, error) {
	if err := ctx.Err(); err != nil {
		return domain.FileState{}, err
	}
	info, err := os.Stat(file.ExpandedPath())
	if err != nil {
		return domain.FileState{}, err
	}
	return domain.FileState{ModificationTime: info.ModTime().UTC(), Size: info.Size()}, nil
}

// Parse decodes a meta document.
func Parse(b []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// LocalFiles converts the entries to domain values, dropping entries
// without a path.
func (d *Document) LocalFiles() []domain.LocalFile {
	files := make([]domain.LocalFile, 0, len(d.Local))
	for _, e := range d.Local {
		if strings.TrimSpace(e.Path) == "" {
			continue
		}
		files = append(files, domain.LocalFile{
			Name:          strings.TrimSpace(e.Name),
			Path:          strings.TrimSpace(e.Path),
			Todos:         e.Todos,
			FrequencyGoal: time.Duration(e.FrequencyGoal),
			AutoProject:   strings.TrimSpace(e.AutoProject),
		})
	}
	return files
}
