package plycolumn

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Extract copies NumRows rows of the named columns into dst as a
// packed record array: field i of record r comes from column
// indices[i] of row r, every field encoded as typ, little-endian.
// Field order matches indices. dst must hold at least
// NumRows*len(indices)*typ.Size() bytes; shorter buffers fail with
// ErrBufferTooSmall before anything is written.
func (s *Session) Extract(indices []PropertyIndex, typ ScalarType, dst []byte) error {
	return s.ExtractStrided(indices, typ, 0, len(indices)*typ.Size(), dst)
}

// ExtractStrided generalizes Extract to heterogeneous records: each
// row's fields start offset bytes into the row, and successive rows
// are stride bytes apart. Separate calls with different types and
// offsets can populate disjoint byte ranges of the same destination.
//
// Every failure is detected before any byte is written: stale or
// out-of-range indices, list columns, layouts where the field block
// would not fit inside one stride, and undersized destinations.
func (s *Session) ExtractStrided(indices []PropertyIndex, typ ScalarType, offset, stride int, dst []byte) error {
	if s.file == nil {
		return ErrClosedSession
	}
	if s.loaded == nil {
		if _, err := s.current(); err != nil {
			return err
		}
		return ErrNotLoaded
	}

	elem := s.loaded.Element()
	for _, idx := range indices {
		if idx.element != s.loaded.Ordinal() {
			return fmt.Errorf("%w: resolved against element %d, current is %q",
				ErrStaleIndex, idx.element, elem.Name)
		}
		if idx.column < 0 || idx.column >= len(elem.Properties) {
			return fmt.Errorf("plycolumn: column %d out of range for element %q", idx.column, elem.Name)
		}
		if elem.Properties[idx.column].IsList {
			return fmt.Errorf("%w: %q", ErrListProperty, elem.Properties[idx.column].Name)
		}
	}

	// Zero fields means zero bytes per row; nothing to validate or write.
	if len(indices) == 0 {
		return nil
	}

	size := typ.Size()
	fieldBytes := len(indices) * size
	if offset < 0 || stride <= 0 || offset+fieldBytes > stride {
		return fmt.Errorf("%w: offset=%d stride=%d fields=%d bytes", ErrBadLayout, offset, stride, fieldBytes)
	}

	rows := s.loaded.Rows()
	if rows == 0 {
		return nil
	}
	need := (rows-1)*stride + offset + fieldBytes
	if len(dst) < need {
		return fmt.Errorf("%w: need %d bytes for %d rows, have %d", ErrBufferTooSmall, need, rows, len(dst))
	}

	for i, idx := range indices {
		if err := s.loaded.CopyColumn(idx.column, typ, dst, offset+i*size, stride); err != nil {
			return fmt.Errorf("plycolumn: extract: %w", err)
		}
	}
	return nil
}

// ExtractFloat32 is a convenience wrapper for the common vertex-buffer
// case: it allocates and returns the packed rows as float32 values in
// indices order, len(indices) per row.
func (s *Session) ExtractFloat32(indices []PropertyIndex) ([]float32, error) {
	rows := s.NumRows()
	buf := make([]byte, rows*len(indices)*4)
	if err := s.Extract(indices, Float32, buf); err != nil {
		return nil, err
	}
	out := make([]float32, rows*len(indices))
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return out, nil
}

// ExtractUint8 is the counterpart of ExtractFloat32 for byte-valued
// columns such as red/green/blue vertex colors.
func (s *Session) ExtractUint8(indices []PropertyIndex) ([]uint8, error) {
	rows := s.NumRows()
	out := make([]uint8, rows*len(indices))
	if err := s.Extract(indices, UInt8, out); err != nil {
		return nil, err
	}
	return out, nil
}
