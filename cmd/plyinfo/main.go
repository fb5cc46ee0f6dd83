// plyinfo dumps the structure of PLY files: format, comments, and
// each element with its row count and typed property list. For vertex
// elements it also loads the data and prints the bounding box.
package main

import (
	"fmt"
	"math"
	"os"

	"ply-reader/pkg/plycolumn"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: plyinfo <file.ply> [...]")
		os.Exit(1)
	}

	exit := 0
	for _, arg := range os.Args[1:] {
		if err := inspect(arg); err != nil {
			fmt.Fprintf(os.Stderr, "plyinfo: %s: %v\n", arg, err)
			exit = 1
		}
	}
	os.Exit(exit)
}

func inspect(path string) error {
	sess, err := plycolumn.Open(path)
	if err != nil {
		return err
	}
	defer sess.Close()

	fmt.Printf("\n=== %s ===\n", path)
	for _, c := range sess.Comments() {
		fmt.Printf("comment: %s\n", c)
	}

	for sess.NextElement() {
		desc, err := sess.Element()
		if err != nil {
			return err
		}

		fmt.Printf("element %s (%d rows)\n", desc.Name, desc.Rows)
		for _, p := range desc.Properties {
			if p.IsList {
				fmt.Printf("  %-16s list of %s\n", p.Name, p.Type)
			} else {
				fmt.Printf("  %-16s %s\n", p.Name, p.Type)
			}
		}

		if desc.Kind == plycolumn.KindVertex && desc.Rows > 0 {
			if err := printBounds(sess); err != nil {
				fmt.Printf("  (bounds unavailable: %v)\n", err)
			}
		}
	}
	return nil
}

func printBounds(sess *plycolumn.Session) error {
	if err := sess.LoadElement(); err != nil {
		return err
	}
	idx, err := sess.FindPropertyIndices([]string{"x", "y", "z"})
	if err != nil {
		return err
	}
	pos, err := sess.ExtractFloat32(idx)
	if err != nil {
		return err
	}

	mn := [3]float32{float32(math.Inf(1)), float32(math.Inf(1)), float32(math.Inf(1))}
	mx := [3]float32{float32(math.Inf(-1)), float32(math.Inf(-1)), float32(math.Inf(-1))}
	for i := 0; i+2 < len(pos); i += 3 {
		for k := 0; k < 3; k++ {
			if pos[i+k] < mn[k] {
				mn[k] = pos[i+k]
			}
			if pos[i+k] > mx[k] {
				mx[k] = pos[i+k]
			}
		}
	}
	fmt.Printf("  bounds min=(%g, %g, %g) max=(%g, %g, %g)\n",
		mn[0], mn[1], mn[2], mx[0], mx[1], mx[2])
	return nil
}
