// Package plycolumn reads PLY point-cloud and mesh files and hands
// their per-element columnar data to callers in typed, layout-
// controlled form: resolve the property names you want, then bulk-copy
// those columns into your own buffer, packed or at a custom
// offset/stride, ready for use as a vertex attribute array.
//
// A Session walks a file's elements strictly forward:
//
//	sess, err := plycolumn.Open(path)
//	if err != nil { ... }
//	defer sess.Close()
//	for sess.NextElement() {
//		if !sess.ElementIs("vertex") {
//			continue
//		}
//		if err := sess.LoadElement(); err != nil { ... }
//		idx, err := sess.FindPropertyIndices([]string{"x", "y", "z"})
//		if err != nil { ... }
//		buf := make([]byte, sess.NumRows()*3*4)
//		if err := sess.Extract(idx, plycolumn.Float32, buf); err != nil { ... }
//	}
//
// Sessions are not safe for concurrent use; advancing and loading
// mutate the cursor and the materialized column storage in place.
package plycolumn

import (
	"fmt"

	"ply-reader/internal/plyparse"
)

// Session is a stateful reader over one open PLY file. Exactly one
// element is current at a time, or none before the first advance and
// after exhaustion. Only the current element's columns are held in
// memory; advancing discards them.
type Session struct {
	file   *plyparse.File
	cur    int // -1 before first element, len(elements) once exhausted
	loaded *plyparse.Columns
}

// Open parses the header of the PLY file at path and returns a session
// positioned before the first element. ASCII, binary little/big
// endian, and lz4-compressed inputs are accepted.
func Open(path string) (*Session, error) {
	f, err := plyparse.Open(path)
	if err != nil {
		// Already carries the path and package context.
		return nil, err
	}
	return &Session{file: f, cur: -1}, nil
}

// Close releases the session. All further calls fail with
// ErrClosedSession.
func (s *Session) Close() error {
	s.file = nil
	s.loaded = nil
	return nil
}

// Valid reports whether the session is open and usable.
func (s *Session) Valid() bool {
	return s.file != nil
}

// Comments returns the comment lines recorded in the file header.
func (s *Session) Comments() []string {
	if s.file == nil {
		return nil
	}
	return s.file.Comments
}

// HasElement reports whether an element remains to advance to. Note
// it does not report whether an element is current: while positioned
// on the last element it returns false, so pair it with NextElement
// as `for sess.NextElement() { ... }` rather than testing it after
// an advance.
func (s *Session) HasElement() bool {
	return s.file != nil && s.cur+1 < len(s.file.Elements)
}

// NextElement advances the cursor to the next element and reports
// whether one was available. The previous element's column storage is
// discarded. Calling past exhaustion is a no-op returning false.
func (s *Session) NextElement() bool {
	if !s.HasElement() {
		if s.file != nil {
			s.cur = len(s.file.Elements)
			s.loaded = nil
		}
		return false
	}
	s.cur++
	s.loaded = nil
	return true
}

func (s *Session) current() (*plyparse.Element, error) {
	if s.file == nil {
		return nil, ErrClosedSession
	}
	if s.cur < 0 || s.cur >= len(s.file.Elements) {
		return nil, ErrNoElement
	}
	return &s.file.Elements[s.cur], nil
}

// ElementIs reports whether the current element's name equals name.
// False when no element is current.
func (s *Session) ElementIs(name string) bool {
	e, err := s.current()
	return err == nil && e.Name == name
}

// Element returns a descriptor snapshot of the current element.
func (s *Session) Element() (ElementDescriptor, error) {
	e, err := s.current()
	if err != nil {
		return ElementDescriptor{}, err
	}
	desc := ElementDescriptor{
		Name:       e.Name,
		Kind:       kindOf(e.Name),
		Rows:       e.Count,
		Properties: make([]PropertyDescriptor, len(e.Properties)),
	}
	for i, p := range e.Properties {
		desc.Properties[i] = PropertyDescriptor{Name: p.Name, Type: p.Type, IsList: p.IsList}
	}
	return desc, nil
}

// NumRows returns the row count of the current element, or 0 when no
// element is current.
func (s *Session) NumRows() int {
	e, err := s.current()
	if err != nil {
		return 0
	}
	return e.Count
}

// LoadElement materializes the current element's column storage.
// Decoding is deferred until this call; elements that are skipped
// without loading are never decoded. On failure the session stays
// positioned on the same element, not loaded, and the call may be
// retried or the element skipped. Reloading an already-loaded element
// decodes the same bytes again and yields identical data.
func (s *Session) LoadElement() error {
	if _, err := s.current(); err != nil {
		return err
	}
	cols, err := s.file.LoadElement(s.cur)
	if err != nil {
		s.loaded = nil
		return fmt.Errorf("plycolumn: load element: %w", err)
	}
	s.loaded = cols
	return nil
}

// FindPropertyIndex resolves name within the current element's
// property list. Matching is by exact string comparison against the
// names declared in the file. Resolving a list-valued property fails
// with ErrListProperty.
func (s *Session) FindPropertyIndex(name string) (PropertyIndex, error) {
	e, err := s.current()
	if err != nil {
		return PropertyIndex{}, err
	}
	col := e.FindProperty(name)
	if col < 0 {
		return PropertyIndex{}, fmt.Errorf("%w: %q in element %q", ErrPropertyNotFound, name, e.Name)
	}
	if e.Properties[col].IsList {
		return PropertyIndex{}, fmt.Errorf("%w: %q", ErrListProperty, name)
	}
	return PropertyIndex{element: s.cur, column: col}, nil
}

// FindPropertyIndices resolves an ordered list of names. The call is
// all-or-nothing: if any name is absent, no indices are returned.
// Partial results would let a later extraction silently write the
// wrong columns into a fixed-layout record. The returned order
// matches names exactly.
func (s *Session) FindPropertyIndices(names []string) ([]PropertyIndex, error) {
	indices := make([]PropertyIndex, len(names))
	for i, name := range names {
		idx, err := s.FindPropertyIndex(name)
		if err != nil {
			return nil, err
		}
		indices[i] = idx
	}
	return indices, nil
}
