package plyparse

// ScalarType identifies one of the fixed PLY scalar storage types.
type ScalarType uint8

const (
	Int8 ScalarType = iota
	UInt8
	Int16
	UInt16
	Int32
	UInt32
	Float32
	Float64
)

// Size returns the storage size of the type in bytes.
func (t ScalarType) Size() int {
	switch t {
	case Int8, UInt8:
		return 1
	case Int16, UInt16:
		return 2
	case Int32, UInt32, Float32:
		return 4
	case Float64:
		return 8
	}
	return 0
}

func (t ScalarType) String() string {
	switch t {
	case Int8:
		return "int8"
	case UInt8:
		return "uint8"
	case Int16:
		return "int16"
	case UInt16:
		return "uint16"
	case Int32:
		return "int32"
	case UInt32:
		return "uint32"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	}
	return "unknown"
}

// ParseScalarType maps a header type token to a ScalarType. Both the
// canonical names (int8, float32, ...) and the legacy names used by
// older writers (char, float, ...) are accepted.
func ParseScalarType(name string) (ScalarType, bool) {
	switch name {
	case "int8", "char":
		return Int8, true
	case "uint8", "uchar":
		return UInt8, true
	case "int16", "short":
		return Int16, true
	case "uint16", "ushort":
		return UInt16, true
	case "int32", "int":
		return Int32, true
	case "uint32", "uint":
		return UInt32, true
	case "float32", "float":
		return Float32, true
	case "float64", "double":
		return Float64, true
	}
	return 0, false
}

// Format is the on-disk encoding of the payload after the header.
type Format int

const (
	FormatASCII Format = iota
	FormatBinaryLE
	FormatBinaryBE
)

func (f Format) String() string {
	switch f {
	case FormatASCII:
		return "ascii"
	case FormatBinaryLE:
		return "binary_little_endian"
	case FormatBinaryBE:
		return "binary_big_endian"
	}
	return "unknown"
}

// Property describes one column of an element. For list properties
// CountType is the type of the per-row length prefix and Type is the
// type of the list payload values.
type Property struct {
	Name      string
	Type      ScalarType
	IsList    bool
	CountType ScalarType
}

// Element describes one named group of rows.
type Element struct {
	Name       string
	Count      int
	Properties []Property
}

// FindProperty returns the position of name within the element's
// property list, or -1. Names are matched verbatim.
func (e *Element) FindProperty(name string) int {
	for i := range e.Properties {
		if e.Properties[i].Name == name {
			return i
		}
	}
	return -1
}

// fixedRowSize returns the byte size of one binary row, or ok=false
// if any property is a list (variable-length rows).
func (e *Element) fixedRowSize() (int, bool) {
	size := 0
	for i := range e.Properties {
		if e.Properties[i].IsList {
			return 0, false
		}
		size += e.Properties[i].Type.Size()
	}
	return size, true
}
