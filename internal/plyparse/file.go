package plyparse

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pierrec/lz4/v4"
)

// lz4 frame magic 0x184D2204, little-endian on disk.
var lz4Magic = []byte{0x04, 0x22, 0x4D, 0x18}

// File is a parsed PLY header over an in-memory payload. Element row
// data is decoded lazily: nothing past the header is touched until
// LoadElement is called, and loading element i measures (or decodes)
// only the elements up to i.
type File struct {
	Format   Format
	Version  string
	Comments []string
	ObjInfo  []string
	Elements []Element

	data   []byte // payload after end_header
	starts []int  // payload offset of each element's first row
	known  int    // starts[0..known-1] are resolved
}

// Open reads and parses the header of a PLY file. Files ending in
// .lz4 or starting with the lz4 frame magic are decompressed first
// (the whole payload is held in memory either way).
func Open(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("plyparse: read %s: %w", path, err)
	}

	if strings.HasSuffix(path, ".lz4") || bytes.HasPrefix(raw, lz4Magic) {
		raw, err = io.ReadAll(lz4.NewReader(bytes.NewReader(raw)))
		if err != nil {
			return nil, fmt.Errorf("plyparse: lz4 decompress %s: %w", path, err)
		}
	}

	f, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("plyparse: %s: %w", path, err)
	}
	return f, nil
}

// Parse parses a PLY file held in memory.
func Parse(raw []byte) (*File, error) {
	f := &File{}
	payload, err := parseHeader(f, raw)
	if err != nil {
		return nil, err
	}
	f.data = raw[payload:]
	f.starts = make([]int, len(f.Elements))
	if len(f.Elements) > 0 {
		f.known = 1 // first element starts at payload offset 0
	}
	return f, nil
}

// LoadElement decodes element i into column storage. Elements before i
// that were never loaded are skipped over without materializing them.
// Reloading an already-visited element decodes the same bytes again.
func (f *File) LoadElement(i int) (*Columns, error) {
	if i < 0 || i >= len(f.Elements) {
		return nil, fmt.Errorf("plyparse: element index %d out of range", i)
	}
	if err := f.resolveStart(i); err != nil {
		return nil, err
	}
	cols, end, err := f.decodeElement(i, f.starts[i])
	if err != nil {
		return nil, err
	}
	f.noteStart(i+1, end)
	return cols, nil
}

// resolveStart ensures starts[i] is known by measuring every
// unvisited element before i.
func (f *File) resolveStart(i int) error {
	for k := f.known; k <= i; k++ {
		end, err := f.measureElement(k-1, f.starts[k-1])
		if err != nil {
			return err
		}
		f.starts[k] = end
		f.known = k + 1
	}
	return nil
}

func (f *File) noteStart(i, off int) {
	if i < len(f.starts) && i >= f.known {
		f.starts[i] = off
		f.known = i + 1
	}
}

// checkElementFits rejects elements whose declared row count cannot
// possibly fit in the remaining payload. The check runs before any
// allocation or offset arithmetic sized from Count, so a hostile
// header cannot trigger a huge make or overflow start+Count*rowSize;
// comparing via division keeps the product itself from overflowing.
func (f *File) checkElementFits(e *Element, start int) error {
	remaining := len(f.data) - start

	var minRow int
	if f.Format == FormatASCII {
		// 1-byte tokens with single separators is the tightest
		// legal encoding of a row.
		minRow = 2*len(e.Properties) - 1
	} else {
		for i := range e.Properties {
			if e.Properties[i].IsList {
				minRow += e.Properties[i].CountType.Size()
			} else {
				minRow += e.Properties[i].Type.Size()
			}
		}
	}

	if e.Count > 0 && minRow > 0 && e.Count > remaining/minRow {
		return fmt.Errorf("plyparse: element %q declares %d rows but only %d payload bytes remain",
			e.Name, e.Count, remaining)
	}
	return nil
}

// measureElement returns the payload offset just past element i's rows
// without decoding them into columns.
func (f *File) measureElement(i, start int) (int, error) {
	e := &f.Elements[i]

	if err := f.checkElementFits(e, start); err != nil {
		return 0, err
	}

	if f.Format == FormatASCII {
		tk := &tokenizer{data: f.data, pos: start}
		for row := 0; row < e.Count; row++ {
			for p := range e.Properties {
				prop := &e.Properties[p]
				if !prop.IsList {
					if _, err := tk.next(); err != nil {
						return 0, fmt.Errorf("plyparse: element %q row %d: %w", e.Name, row, err)
					}
					continue
				}
				n, err := tk.nextInt(prop.CountType)
				if err != nil {
					return 0, fmt.Errorf("plyparse: element %q row %d list count: %w", e.Name, row, err)
				}
				for j := 0; j < n; j++ {
					if _, err := tk.next(); err != nil {
						return 0, fmt.Errorf("plyparse: element %q row %d: %w", e.Name, row, err)
					}
				}
			}
		}
		return tk.pos, nil
	}

	// Binary: list-free elements have fixed-size rows.
	if rowSize, ok := e.fixedRowSize(); ok {
		end := start + e.Count*rowSize
		if end > len(f.data) {
			return 0, fmt.Errorf("plyparse: element %q truncated", e.Name)
		}
		return end, nil
	}

	pos := start
	for row := 0; row < e.Count; row++ {
		for p := range e.Properties {
			prop := &e.Properties[p]
			if !prop.IsList {
				pos += prop.Type.Size()
				continue
			}
			n, next, err := readBinaryCount(f.data, pos, prop.CountType, f.Format)
			if err != nil {
				return 0, fmt.Errorf("plyparse: element %q row %d: %w", e.Name, row, err)
			}
			pos = next + n*prop.Type.Size()
		}
		if pos > len(f.data) {
			return 0, fmt.Errorf("plyparse: element %q truncated at row %d", e.Name, row)
		}
	}
	return pos, nil
}

// decodeElement materializes element i's scalar columns. List
// properties keep correct row framing but produce nil storage.
func (f *File) decodeElement(i, start int) (*Columns, int, error) {
	e := &f.Elements[i]

	if err := f.checkElementFits(e, start); err != nil {
		return nil, 0, err
	}

	cols := make([][]byte, len(e.Properties))
	for p := range e.Properties {
		if !e.Properties[p].IsList {
			cols[p] = make([]byte, e.Count*e.Properties[p].Type.Size())
		}
	}

	var end int
	var err error
	if f.Format == FormatASCII {
		end, err = f.decodeASCII(e, start, cols)
	} else {
		end, err = f.decodeBinary(e, start, cols)
	}
	if err != nil {
		return nil, 0, err
	}

	return &Columns{elem: e, ordinal: i, rows: e.Count, cols: cols}, end, nil
}

func (f *File) decodeASCII(e *Element, start int, cols [][]byte) (int, error) {
	tk := &tokenizer{data: f.data, pos: start}
	for row := 0; row < e.Count; row++ {
		for p := range e.Properties {
			prop := &e.Properties[p]
			if prop.IsList {
				n, err := tk.nextInt(prop.CountType)
				if err != nil {
					return 0, fmt.Errorf("plyparse: element %q row %d list count: %w", e.Name, row, err)
				}
				for j := 0; j < n; j++ {
					if _, err := tk.next(); err != nil {
						return 0, fmt.Errorf("plyparse: element %q row %d: %w", e.Name, row, err)
					}
				}
				continue
			}
			if err := tk.nextCell(prop.Type, cols[p], row); err != nil {
				return 0, fmt.Errorf("plyparse: element %q row %d property %q: %w", e.Name, row, prop.Name, err)
			}
		}
	}
	return tk.pos, nil
}

func (f *File) decodeBinary(e *Element, start int, cols [][]byte) (int, error) {
	pos := start
	for row := 0; row < e.Count; row++ {
		for p := range e.Properties {
			prop := &e.Properties[p]
			if prop.IsList {
				n, next, err := readBinaryCount(f.data, pos, prop.CountType, f.Format)
				if err != nil {
					return 0, fmt.Errorf("plyparse: element %q row %d: %w", e.Name, row, err)
				}
				pos = next + n*prop.Type.Size()
				if pos > len(f.data) {
					return 0, fmt.Errorf("plyparse: element %q truncated at row %d", e.Name, row)
				}
				continue
			}

			size := prop.Type.Size()
			if pos+size > len(f.data) {
				return 0, fmt.Errorf("plyparse: element %q truncated at row %d", e.Name, row)
			}
			// Column storage is little-endian regardless of the
			// file's declared byte order.
			dst := cols[p][row*size:]
			if f.Format == FormatBinaryLE {
				copy(dst, f.data[pos:pos+size])
			} else {
				for b := 0; b < size; b++ {
					dst[b] = f.data[pos+size-1-b]
				}
			}
			pos += size
		}
	}
	return pos, nil
}
