package plyparse

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// parseHeader consumes the header lines from raw and fills f. It
// returns the byte offset of the first payload byte after end_header.
//
// Header lines are terminated by '\n', optionally preceded by '\r'
// (some Windows writers emit CRLF even for binary files).
func parseHeader(f *File, raw []byte) (int, error) {
	pos := 0
	line, next, ok := headerLine(raw, pos)
	if !ok || line != "ply" {
		return 0, fmt.Errorf("plyparse: missing ply magic")
	}
	pos = next

	sawFormat := false
	for {
		line, next, ok = headerLine(raw, pos)
		if !ok {
			return 0, fmt.Errorf("plyparse: header not terminated by end_header")
		}
		pos = next

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "end_header":
			if !sawFormat {
				return 0, fmt.Errorf("plyparse: end_header before format line")
			}
			return pos, nil

		case "format":
			if len(fields) != 3 {
				return 0, fmt.Errorf("plyparse: malformed format line %q", line)
			}
			switch fields[1] {
			case "ascii":
				f.Format = FormatASCII
			case "binary_little_endian":
				f.Format = FormatBinaryLE
			case "binary_big_endian":
				f.Format = FormatBinaryBE
			default:
				return 0, fmt.Errorf("plyparse: unknown format %q", fields[1])
			}
			f.Version = fields[2]
			sawFormat = true

		case "comment":
			f.Comments = append(f.Comments, strings.TrimSpace(strings.TrimPrefix(line, "comment")))

		case "obj_info":
			f.ObjInfo = append(f.ObjInfo, strings.TrimSpace(strings.TrimPrefix(line, "obj_info")))

		case "element":
			if len(fields) != 3 {
				return 0, fmt.Errorf("plyparse: malformed element line %q", line)
			}
			count, err := strconv.Atoi(fields[2])
			if err != nil || count < 0 {
				return 0, fmt.Errorf("plyparse: bad element count in %q", line)
			}
			f.Elements = append(f.Elements, Element{Name: fields[1], Count: count})

		case "property":
			if len(f.Elements) == 0 {
				return 0, fmt.Errorf("plyparse: property before any element")
			}
			elem := &f.Elements[len(f.Elements)-1]
			prop, err := parseProperty(fields)
			if err != nil {
				return 0, err
			}
			if elem.FindProperty(prop.Name) >= 0 {
				return 0, fmt.Errorf("plyparse: duplicate property %q in element %q", prop.Name, elem.Name)
			}
			elem.Properties = append(elem.Properties, prop)

		default:
			// Unknown header keywords are ignored, matching the
			// permissive behavior of common PLY readers.
		}
	}
}

func parseProperty(fields []string) (Property, error) {
	if len(fields) >= 2 && fields[1] == "list" {
		if len(fields) != 5 {
			return Property{}, fmt.Errorf("plyparse: malformed list property %v", fields)
		}
		countType, ok := ParseScalarType(fields[2])
		if !ok {
			return Property{}, fmt.Errorf("plyparse: unknown count type %q", fields[2])
		}
		valType, ok := ParseScalarType(fields[3])
		if !ok {
			return Property{}, fmt.Errorf("plyparse: unknown list value type %q", fields[3])
		}
		return Property{Name: fields[4], Type: valType, IsList: true, CountType: countType}, nil
	}

	if len(fields) != 3 {
		return Property{}, fmt.Errorf("plyparse: malformed property %v", fields)
	}
	typ, ok := ParseScalarType(fields[1])
	if !ok {
		return Property{}, fmt.Errorf("plyparse: unknown property type %q", fields[1])
	}
	return Property{Name: fields[2], Type: typ}, nil
}

// headerLine returns the next header line starting at pos, without the
// line terminator, plus the offset just past it.
func headerLine(raw []byte, pos int) (string, int, bool) {
	if pos >= len(raw) {
		return "", pos, false
	}
	nl := bytes.IndexByte(raw[pos:], '\n')
	if nl < 0 {
		return "", pos, false
	}
	line := raw[pos : pos+nl]
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}
	return string(line), pos + nl + 1, true
}
