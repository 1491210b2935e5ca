package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tally-dev/tally/internal/model"
)

// ErrMalformedEntry marks input that does not have the structure its format expects.
var ErrMalformedEntry = errors.New("malformed statement")

// MalformedEntryError describes why a statement could not be read.
type MalformedEntryError struct {
	Line   int // 0 when the problem is not tied to a line
	Reason string
}

func (e *MalformedEntryError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	return e.Reason
}

func (e *MalformedEntryError) Unwrap() error { return ErrMalformedEntry }

func malformed(line int, format string, args ...any) error {
	return &MalformedEntryError{Line: line, Reason: fmt.Sprintf(format, args...)}
}

// Options carry per-source settings a parser may need.
type Options struct {
	Account   string // overrides or supplies the account name
	Delimiter rune   // field delimiter for delimiter-configurable formats
}

// Parser converts one statement export into entries.
type Parser interface {
	Format() string
	// Order is the chronological order Parse returns entries in.
	Order() model.SortOrder
	Parse(r io.Reader, opts Options) ([]model.Entry, error)
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&SantanderParser{})
	r.Register(&NatwestParser{})
	r.Register(&HSBCParser{})
	r.Register(&MidataParser{})
	return r
}

// FileInfo describes a statement file found by Scan.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// Scan returns the regular files in dir whose extension matches ext
// (case-insensitive, with or without the leading dot), sorted by name.
func Scan(dir, ext string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading statement dir: %w", err)
	}

	suffix := "." + strings.TrimPrefix(strings.ToLower(ext), ".")
	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), suffix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// AccountFromFilename derives an account name from a statement file name.
func AccountFromFilename(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
