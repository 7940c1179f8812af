package todofile

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// document keeps a file's lines and each line's own terminator, so it can
// be written back unchanged apart from the lines that were edited.
type document struct {
	path  string
	raw   []byte
	lines []string
	eols  []string
	mode  fs.FileMode
}

func readDocument(path string) (*document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc := &document{path: path, raw: raw, mode: info.Mode().Perm()}
	rest := string(raw)
	for rest != "" {
		line, eol := rest, ""
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			line, eol, rest = rest[:i], "\n", rest[i+1:]
		} else {
			rest = ""
		}
		if eol != "" && strings.HasSuffix(line, "\r") {
			line, eol = line[:len(line)-1], "\r\n"
		}
		doc.lines = append(doc.lines, line)
		doc.eols = append(doc.eols, eol)
	}
	return doc, nil
}

// keep drops every line for which fn returns false.
func (d *document) keep(fn func(i int) bool) {
	lines, eols := d.lines[:0], d.eols[:0]
	for i := range d.lines {
		if fn(i) {
			lines = append(lines, d.lines[i])
			eols = append(eols, d.eols[i])
		}
	}
	d.lines, d.eols = lines, eols
}

func (d *document) bytes() []byte {
	var b strings.Builder
	for i, line := range d.lines {
		b.WriteString(line)
		b.WriteString(d.eols[i])
	}
	return []byte(b.String())
}

func (d *document) save() error {
	return atomicWriteFile(d.path, d.bytes(), d.mode)
}

func atomicWriteFile(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp := filepath.Join(dir, fmt.Sprintf(".tmp-%s-%d", filepath.Base(path), time.Now().UnixNano()))
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func appendLines(path string, lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	prefix := ""
	if existing, err := os.ReadFile(path); err == nil && len(existing) > 0 && existing[len(existing)-1] != '\n' {
		prefix = "\n"
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(prefix + strings.Join(lines, "\n") + "\n")
	return err
}
