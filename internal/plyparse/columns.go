package plyparse

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Columns is the materialized storage of one element: one packed
// little-endian byte slice per scalar property, nil for lists.
type Columns struct {
	elem    *Element
	ordinal int
	rows    int
	cols    [][]byte
}

// Element returns the descriptor the columns were decoded from.
func (c *Columns) Element() *Element { return c.elem }

// Ordinal returns the position of the element within the file.
func (c *Columns) Ordinal() int { return c.ordinal }

// Rows returns the number of decoded rows.
func (c *Columns) Rows() int { return c.rows }

// CopyColumn converts column col to typ and writes one value per row
// into dst: row r lands at offset + r*stride. The caller is
// responsible for sizing dst; offsets produced by the loop must stay
// within it, which the session layer validates before calling.
func (c *Columns) CopyColumn(col int, typ ScalarType, dst []byte, offset, stride int) error {
	if col < 0 || col >= len(c.cols) {
		return fmt.Errorf("plyparse: column %d out of range for element %q", col, c.elem.Name)
	}
	if c.cols[col] == nil {
		return fmt.Errorf("plyparse: column %q is a list property", c.elem.Properties[col].Name)
	}

	src := c.cols[col]
	srcType := c.elem.Properties[col].Type

	// Same-type fast path: raw little-endian copy per row.
	if srcType == typ {
		size := typ.Size()
		for r := 0; r < c.rows; r++ {
			copy(dst[offset+r*stride:], src[r*size:(r+1)*size])
		}
		return nil
	}

	if srcType.isInteger() && typ.isInteger() {
		for r := 0; r < c.rows; r++ {
			writeIntCell(dst[offset+r*stride:], typ, readIntCell(src, srcType, r))
		}
		return nil
	}

	for r := 0; r < c.rows; r++ {
		writeFloatCell(dst[offset+r*stride:], typ, readFloatCell(src, srcType, r))
	}
	return nil
}

func (t ScalarType) isInteger() bool {
	return t != Float32 && t != Float64
}

// readIntCell decodes an integer cell, sign-extended into int64.
func readIntCell(col []byte, typ ScalarType, row int) int64 {
	at := row * typ.Size()
	switch typ {
	case Int8:
		return int64(int8(col[at]))
	case UInt8:
		return int64(col[at])
	case Int16:
		return int64(int16(binary.LittleEndian.Uint16(col[at:])))
	case UInt16:
		return int64(binary.LittleEndian.Uint16(col[at:]))
	case Int32:
		return int64(int32(binary.LittleEndian.Uint32(col[at:])))
	case UInt32:
		return int64(binary.LittleEndian.Uint32(col[at:]))
	}
	return 0
}

// readFloatCell decodes any cell as float64. Every supported integer
// type is 32-bit or narrower, so the conversion is exact.
func readFloatCell(col []byte, typ ScalarType, row int) float64 {
	switch typ {
	case Float32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(col[row*4:])))
	case Float64:
		return math.Float64frombits(binary.LittleEndian.Uint64(col[row*8:]))
	}
	return float64(readIntCell(col, typ, row))
}

func writeIntCell(dst []byte, typ ScalarType, v int64) {
	switch typ {
	case Int8, UInt8:
		dst[0] = byte(v)
	case Int16, UInt16:
		binary.LittleEndian.PutUint16(dst, uint16(v))
	case Int32, UInt32:
		binary.LittleEndian.PutUint32(dst, uint32(v))
	case Float32:
		binary.LittleEndian.PutUint32(dst, math.Float32bits(float32(v)))
	case Float64:
		binary.LittleEndian.PutUint64(dst, math.Float64bits(float64(v)))
	}
}

func writeFloatCell(dst []byte, typ ScalarType, v float64) {
	switch typ {
	case Float32:
		binary.LittleEndian.PutUint32(dst, math.Float32bits(float32(v)))
	case Float64:
		binary.LittleEndian.PutUint64(dst, math.Float64bits(v))
	default:
		// Float sources convert to integers by truncation.
		writeIntCell(dst, typ, int64(v))
	}
}
