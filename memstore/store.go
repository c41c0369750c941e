/*
Package memstore is a simple in-memory store for text resources and annotations.

It implements the collaborators package formatter needs for rendering:
text access (textlayers.TextSource), interval retrieval (textlayers.IntervalSource),
interval sources for highlight layers and a stream of selections.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package memstore

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"sync"
	"unicode/utf8"

	"github.com/npillmayer/schuko/tracing"
	tl "github.com/npillmayer/textlayers"
)

// tracer writes to trace with key 'textlayers'
func tracer() tracing.Trace {
	return tracing.Select("textlayers")
}

// ErrNotFound is flagged for unknown resources or annotations.
var ErrNotFound = errors.New("not found")

// Annotation is a labeled range over a text resource.
type Annotation struct {
	ID       string
	Resource string
	Begin    int
	End      int
	Data     map[string]string
}

// Store holds text resources and annotations on them. It is safe for concurrent use.
type Store struct {
	mx          sync.RWMutex
	resources   map[string][]rune
	order       []string // resource IDs in order of insertion
	annotations []Annotation
	byID        map[string]int // annotation ID → index
}

// New creates an empty store.
func New() *Store {
	return &Store{
		resources: make(map[string][]rune),
		byID:      make(map[string]int),
	}
}

// AddResource adds a text resource. Adding a resource with an existing ID
// replaces its text.
func (s *Store) AddResource(id, text string) error {
	if id == "" {
		return fmt.Errorf("resource without ID: %w", tl.ErrIllegalArguments)
	}
	if !utf8.ValidString(text) {
		return fmt.Errorf("resource %s is not valid UTF-8: %w", id, tl.ErrIllegalArguments)
	}
	s.mx.Lock()
	defer s.mx.Unlock()
	if _, ok := s.resources[id]; !ok {
		s.order = append(s.order, id)
	}
	s.resources[id] = []rune(text)
	return nil
}

// LoadResource reads a file, which must be a UTF-8 text file, and adds it as a
// resource.
func (s *Store) LoadResource(id, path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return err
	} else if !fi.Mode().IsRegular() {
		return fmt.Errorf("file %s is not a regular file", path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error loading text resource: %w", err)
	}
	tracer().Infof("loaded resource %s from %s (%d bytes)", id, path, len(content))
	return s.AddResource(id, string(content))
}

// Annotate adds an annotation. Offsets are rune offsets into the resource
// and must lie within it.
func (s *Store) Annotate(a Annotation) error {
	s.mx.Lock()
	defer s.mx.Unlock()
	text, ok := s.resources[a.Resource]
	if !ok {
		return fmt.Errorf("annotation %s: resource %q %w", a.ID, a.Resource, ErrNotFound)
	}
	if a.Begin < 0 || a.End < a.Begin || a.End > len(text) {
		return fmt.Errorf("annotation %s: offsets %d…%d: %w", a.ID, a.Begin, a.End,
			tl.ErrMalformedRegion)
	}
	if a.ID != "" {
		if _, dup := s.byID[a.ID]; dup {
			return fmt.Errorf("annotation %s already exists: %w", a.ID, tl.ErrIllegalArguments)
		}
		s.byID[a.ID] = len(s.annotations)
	}
	s.annotations = append(s.annotations, a)
	return nil
}

// Text returns the text of a region. It implements textlayers.TextSource.
func (s *Store) Text(r tl.Region) (string, error) {
	s.mx.RLock()
	defer s.mx.RUnlock()
	text, ok := s.resources[r.Resource]
	if !ok {
		return "", fmt.Errorf("resource %q %w", r.Resource, ErrNotFound)
	}
	if err := r.Check(); err != nil {
		return "", err
	}
	if r.End > len(text) {
		return "", fmt.Errorf("region %s exceeds resource of length %d: %w", r, len(text),
			tl.ErrMalformedRegion)
	}
	return string(text[r.Begin:r.End]), nil
}

// Intervals returns all annotations touching the region of sel, as intervals
// without a layer. It implements textlayers.IntervalSource.
func (s *Store) Intervals(sel tl.Selection) ([]tl.Interval, error) {
	return s.query(sel, func(Annotation) bool { return true }, tl.NoLayer), nil
}

// KeySource returns an interval source for a highlight layer: it selects the
// annotations having data for key. If value is non-empty, the data has to match it.
//
// If no annotation of the store has data for key, the source reports
// textlayers.ErrUnbound.
func (s *Store) KeySource(key, value string) func(tl.Selection) ([]tl.Interval, error) {
	match := func(a Annotation) bool {
		v, ok := a.Data[key]
		return ok && (value == "" || v == value)
	}
	return func(sel tl.Selection) ([]tl.Interval, error) {
		if !s.hasKey(key) {
			return nil, fmt.Errorf("key %q: %w", key, tl.ErrUnbound)
		}
		return s.query(sel, match, tl.NoLayer), nil
	}
}

func (s *Store) hasKey(key string) bool {
	s.mx.RLock()
	defer s.mx.RUnlock()
	for _, a := range s.annotations {
		if _, ok := a.Data[key]; ok {
			return true
		}
	}
	return false
}

func (s *Store) query(sel tl.Selection, match func(Annotation) bool, layer int) []tl.Interval {
	s.mx.RLock()
	defer s.mx.RUnlock()
	var ivs []tl.Interval
	for _, a := range s.annotations {
		if a.Resource != sel.Region.Resource || !match(a) {
			continue
		}
		iv := tl.Interval{ID: a.ID, Begin: a.Begin, End: a.End, Layer: layer, Data: a.Data, Payload: a}
		if iv.Intersects(sel.Region) {
			ivs = append(ivs, iv)
		}
	}
	return ivs
}

// Resources returns a selection for every resource, in order of insertion.
func (s *Store) Resources() iter.Seq[tl.Selection] {
	s.mx.RLock()
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	s.mx.RUnlock()
	return s.SelectResources(ids...)
}

// SelectResources returns a selection for every resource listed. Unknown
// resources result in selections flagged as malformed.
func (s *Store) SelectResources(ids ...string) iter.Seq[tl.Selection] {
	return func(yield func(tl.Selection) bool) {
		for _, id := range ids {
			sel := tl.Selection{ID: id, WholeResource: true, Region: tl.Region{Resource: id}}
			s.mx.RLock()
			text, ok := s.resources[id]
			s.mx.RUnlock()
			if ok {
				sel.Region.End = len(text)
			} else {
				sel.Err = tl.Malformed(sel, "no such resource", ErrNotFound)
			}
			if !yield(sel) {
				return
			}
		}
	}
}

// SelectAnnotations returns a selection for the text of every annotation listed.
// Unknown annotations result in selections flagged as malformed.
func (s *Store) SelectAnnotations(ids ...string) iter.Seq[tl.Selection] {
	return func(yield func(tl.Selection) bool) {
		for _, id := range ids {
			sel := tl.Selection{ID: id}
			s.mx.RLock()
			inx, ok := s.byID[id]
			var a Annotation
			if ok {
				a = s.annotations[inx]
			}
			s.mx.RUnlock()
			if ok {
				sel.Region = tl.Region{Resource: a.Resource, Begin: a.Begin, End: a.End}
			} else {
				sel.Err = tl.Malformed(sel, "annotation references no text", ErrNotFound)
			}
			if !yield(sel) {
				return
			}
		}
	}
}
