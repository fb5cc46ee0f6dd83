package plycolumn

import "ply-reader/internal/plyparse"

// ScalarType is one of the fixed PLY scalar storage types. It also
// selects the output encoding of extraction calls.
type ScalarType = plyparse.ScalarType

const (
	Int8    = plyparse.Int8
	UInt8   = plyparse.UInt8
	Int16   = plyparse.Int16
	UInt16  = plyparse.UInt16
	Int32   = plyparse.Int32
	UInt32  = plyparse.UInt32
	Float32 = plyparse.Float32
	Float64 = plyparse.Float64
)

// ElementKind classifies an element by its exact name.
type ElementKind int

const (
	KindCustom ElementKind = iota
	KindVertex
	KindFace
)

func kindOf(name string) ElementKind {
	switch name {
	case "vertex":
		return KindVertex
	case "face":
		return KindFace
	}
	return KindCustom
}

// PropertyDescriptor describes one column of the current element.
type PropertyDescriptor struct {
	Name   string
	Type   ScalarType
	IsList bool
}

// ElementDescriptor is a snapshot of the current element's metadata.
// It stays meaningful after the session advances, but PropertyIndex
// values do not (see FindPropertyIndex).
type ElementDescriptor struct {
	Name       string
	Kind       ElementKind
	Rows       int
	Properties []PropertyDescriptor
}

// PropertyIndex is a resolved column position, valid only against the
// element it was resolved from. Extraction rejects indices from a
// different element instead of silently reading the wrong column.
type PropertyIndex struct {
	element int
	column  int
}

// Column returns the position of the property within its element's
// declaration order.
func (i PropertyIndex) Column() int { return i.column }
