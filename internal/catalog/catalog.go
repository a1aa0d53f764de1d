// Package catalog manages the section files that make up the script
// catalog's documentation. Each section file is a markdown document kept
// next to the scripts; its base name (without extension) is the section's
// identifier on the rendered page.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"
)

var (
	// ErrSectionNotFound is returned when no section file matches a name.
	ErrSectionNotFound = errors.New("section not found")
	// ErrScriptNotFound is returned when no script file matches a name.
	ErrScriptNotFound = errors.New("script not found")
	// ErrInvalidName is returned for names that could escape a script path.
	ErrInvalidName = errors.New("invalid section name")
	// ErrNoScriptPaths is returned when a section must be created but no
	// script path is configured.
	ErrNoScriptPaths = errors.New("no script paths configured")
)

// Extensions are the file extensions recognized as section files. New
// sections are created with the first one.
var Extensions = []string{".md", ".markdown"}

// Section is one section file on disk.
type Section struct {
	Name string // Identifier: file name without extension.
	File string // File name including extension.
	Path string // Absolute or config-relative path to the file.
}

// Catalog finds and creates section files under a set of script paths.
type Catalog struct {
	paths   []string
	include []string
	exclude []string
}

// New creates a Catalog over the given script paths. Include and exclude
// are doublestar globs matched against file names; an empty include list
// admits every section file.
func New(paths, include, exclude []string) *Catalog {
	return &Catalog{paths: paths, include: include, exclude: exclude}
}

// Paths returns the configured script paths.
func (c *Catalog) Paths() []string { return c.paths }

// Sections lists section files across all script paths, in path order and
// then file name order. Missing script paths are skipped.
func (c *Catalog) Sections() ([]Section, error) {
	var out []Section
	for _, dir := range c.paths {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading script path %s: %w", dir, err)
		}
		for _, e := range entries {
			if e.IsDir() || !c.Admits(e.Name()) {
				continue
			}
			out = append(out, Section{
				Name: strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())),
				File: e.Name(),
				Path: filepath.Join(dir, e.Name()),
			})
		}
	}
	return out, nil
}

// Admits reports whether a file name is a section file under the
// configured filters.
func (c *Catalog) Admits(name string) bool {
	if strings.HasPrefix(name, ".") || !hasSectionExt(name) {
		return false
	}
	if len(c.include) > 0 && !matchesAny(name, c.include) {
		return false
	}
	return !matchesAny(name, c.exclude)
}

func hasSectionExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func matchesAny(name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}

// Find returns the section file for name. An exact file name match wins;
// otherwise name plus any section extension is matched without regard to
// case.
func (c *Catalog) Find(name string) (Section, error) {
	if err := ValidateName(name); err != nil {
		return Section{}, err
	}
	sections, err := c.Sections()
	if err != nil {
		return Section{}, err
	}
	for _, s := range sections {
		if s.File == name {
			return s, nil
		}
	}
	for _, s := range sections {
		for _, ext := range Extensions {
			if strings.EqualFold(s.File, name+ext) {
				return s, nil
			}
		}
	}
	return Section{}, fmt.Errorf("%w: %s", ErrSectionNotFound, name)
}

// GetOrCreate returns the section file for name, writing a new one from
// Template into the first script path when none exists. created reports
// whether a file was written.
func (c *Catalog) GetOrCreate(name string) (s Section, created bool, err error) {
	s, err = c.Find(name)
	if err == nil {
		return s, false, nil
	}
	if !errors.Is(err, ErrSectionNotFound) {
		return Section{}, false, err
	}
	if len(c.paths) == 0 {
		return Section{}, false, ErrNoScriptPaths
	}

	dir := c.paths[0]
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Section{}, false, fmt.Errorf("creating script path %s: %w", dir, err)
	}
	file := name + Extensions[0]
	path := filepath.Join(dir, file)
	if err := os.WriteFile(path, []byte(Template(name)), 0o644); err != nil {
		return Section{}, false, fmt.Errorf("writing section file %s: %w", path, err)
	}
	return Section{Name: name, File: file, Path: path}, true, nil
}

// Script returns the path of the script file called name. Scripts are the
// non-section, non-hidden files in the script paths.
func (c *Catalog) Script(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	if strings.HasPrefix(name, ".") || hasSectionExt(name) {
		return "", fmt.Errorf("%w: %s", ErrScriptNotFound, name)
	}
	for _, dir := range c.paths {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrScriptNotFound, name)
}

// Read returns the contents of the named section file.
func (c *Catalog) Read(name string) (Section, []byte, error) {
	s, err := c.Find(name)
	if err != nil {
		return Section{}, nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return Section{}, nil, fmt.Errorf("reading section file %s: %w", s.Path, err)
	}
	return s, data, nil
}

// ValidateName rejects empty names and names that are not a plain file
// name.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Label turns a section name into a display label: every "-x" becomes
// " X", other characters are kept. "getting-started" yields
// "getting Started"; a trailing dash is dropped.
func Label(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '-' {
			b.WriteRune(r)
			continue
		}
		if i+1 < len(runes) {
			b.WriteByte(' ')
			b.WriteRune(unicode.ToTitle(runes[i+1]))
			i++
		}
	}
	return b.String()
}

// Template returns the initial contents of a new section file.
func Template(name string) string {
	var b strings.Builder
	b.WriteString("# " + Label(name) + "\n")
	b.WriteString("\n")
	b.WriteString("This is the section description formatted as [Markdown](https://commonmark.org/help/).\n")
	b.WriteString("\n")
	b.WriteString("Lorem ipsum, etc...\n")
	return b.String()
}
