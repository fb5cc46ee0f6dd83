package plyparse

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
)

// tokenizer walks whitespace-separated ASCII tokens. PLY readers
// traditionally treat the ASCII payload as a flat token stream, so no
// line structure is assumed.
type tokenizer struct {
	data []byte
	pos  int
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func (t *tokenizer) next() (string, error) {
	for t.pos < len(t.data) && isSpace(t.data[t.pos]) {
		t.pos++
	}
	if t.pos >= len(t.data) {
		return "", fmt.Errorf("unexpected end of data")
	}
	start := t.pos
	for t.pos < len(t.data) && !isSpace(t.data[t.pos]) {
		t.pos++
	}
	return string(t.data[start:t.pos]), nil
}

// nextInt parses the next token as a non-negative count of the given
// integer type.
func (t *tokenizer) nextInt(typ ScalarType) (int, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(tok, 10, typ.Size()*8)
	if err != nil {
		return 0, fmt.Errorf("bad count %q: %w", tok, err)
	}
	return int(n), nil
}

// nextCell parses the next token as typ and stores it at row within
// the little-endian packed column.
func (t *tokenizer) nextCell(typ ScalarType, col []byte, row int) error {
	tok, err := t.next()
	if err != nil {
		return err
	}

	at := row * typ.Size()
	switch typ {
	case Float32:
		v, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return fmt.Errorf("bad float %q: %w", tok, err)
		}
		binary.LittleEndian.PutUint32(col[at:], math.Float32bits(float32(v)))
	case Float64:
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return fmt.Errorf("bad float %q: %w", tok, err)
		}
		binary.LittleEndian.PutUint64(col[at:], math.Float64bits(v))
	case Int8, Int16, Int32:
		v, err := strconv.ParseInt(tok, 10, typ.Size()*8)
		if err != nil {
			return fmt.Errorf("bad int %q: %w", tok, err)
		}
		putIntLE(col[at:], typ.Size(), uint64(v))
	case UInt8, UInt16, UInt32:
		v, err := strconv.ParseUint(tok, 10, typ.Size()*8)
		if err != nil {
			return fmt.Errorf("bad uint %q: %w", tok, err)
		}
		putIntLE(col[at:], typ.Size(), v)
	}
	return nil
}

func putIntLE(dst []byte, size int, v uint64) {
	for b := 0; b < size; b++ {
		dst[b] = byte(v >> (8 * b))
	}
}

// readBinaryCount reads a list length prefix at pos in the given byte
// order and returns it with the offset just past it.
func readBinaryCount(data []byte, pos int, typ ScalarType, format Format) (int, int, error) {
	size := typ.Size()
	if pos+size > len(data) {
		return 0, 0, fmt.Errorf("truncated list count")
	}

	var v uint64
	switch size {
	case 1:
		v = uint64(data[pos])
	case 2:
		if format == FormatBinaryBE {
			v = uint64(binary.BigEndian.Uint16(data[pos:]))
		} else {
			v = uint64(binary.LittleEndian.Uint16(data[pos:]))
		}
	case 4:
		if format == FormatBinaryBE {
			v = uint64(binary.BigEndian.Uint32(data[pos:]))
		} else {
			v = uint64(binary.LittleEndian.Uint32(data[pos:]))
		}
	default:
		return 0, 0, fmt.Errorf("invalid list count type %s", typ)
	}

	// Signed count types with the high bit set are malformed.
	switch typ {
	case Int8:
		if int8(v) < 0 {
			return 0, 0, fmt.Errorf("negative list count")
		}
	case Int16:
		if int16(v) < 0 {
			return 0, 0, fmt.Errorf("negative list count")
		}
	case Int32:
		if int32(v) < 0 {
			return 0, 0, fmt.Errorf("negative list count")
		}
	case Float32, Float64:
		return 0, 0, fmt.Errorf("float list count type %s", typ)
	}

	return int(v), pos + size, nil
}
