package bids

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// File is one file indexed by a Layout.
type File struct {
	Path     string
	Datatype string

	ent Entities
}

// Entity returns the value of one filename entity, or "" when absent.
func (f File) Entity(key string) string {
	return f.ent.Keys[key]
}

// Subject returns the sub- entity.
func (f File) Subject() string { return f.Entity("sub") }

// Desc returns the desc- entity carrying the parcellation-scheme label.
func (f File) Desc() string { return f.Entity("desc") }

// Suffix returns the filename suffix (trailing segment before the extension).
func (f File) Suffix() string { return f.ent.Suffix }

// Extension returns the filename extension including the leading dot.
func (f File) Extension() string { return f.ent.Extension }

// Query selects files from a Layout. Empty fields match anything.
type Query struct {
	Subject   string
	Datatype  string
	Model     string
	Suffix    string
	Extension string
}

// Layout indexes a BIDS-style derivatives tree once at construction and
// answers entity queries against the indexed files.
type Layout struct {
	root  string
	files []File
}

// NewLayout walks the derivatives tree rooted at root and indexes every
// regular file. Hidden files and directories are skipped.
func NewLayout(root string) (*Layout, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("bids layout (%s): %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("bids layout (%s): not a directory", root)
	}

	l := &Layout{root: root}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		l.files = append(l.files, File{
			Path:     path,
			Datatype: filepath.Base(filepath.Dir(path)),
			ent:      ParseEntities(path),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("bids layout (%s): %w", root, err)
	}

	sort.Slice(l.files, func(i, j int) bool { return l.files[i].Path < l.files[j].Path })
	return l, nil
}

// Get returns all indexed files matching the query, in path order.
func (l *Layout) Get(q Query) []File {
	matches := make([]File, 0)
	for _, f := range l.files {
		if q.Subject != "" && f.Subject() != q.Subject {
			continue
		}
		if q.Datatype != "" && f.Datatype != q.Datatype {
			continue
		}
		if q.Model != "" && f.Entity("model") != q.Model {
			continue
		}
		if q.Suffix != "" && f.Suffix() != q.Suffix {
			continue
		}
		if q.Extension != "" && f.Extension() != q.Extension {
			continue
		}
		matches = append(matches, f)
	}
	return matches
}

// Len reports how many files the layout indexed.
func (l *Layout) Len() int { return len(l.files) }
