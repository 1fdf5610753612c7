package main

import (
	"fmt"
	"os"

	"chopper-recorder/internal/mesh"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: inspectmesh file.vtk [file.obj ...]")
		os.Exit(1)
	}

	exit := 0
	for _, arg := range os.Args[1:] {
		m, err := mesh.Load(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Parse error %s: %v\n", arg, err)
			exit = 1
			continue
		}

		min, max := m.Bounds()
		fmt.Printf("\n=== %s ===\n", arg)
		fmt.Printf("verts=%d tris=%d uvs=%d\n", len(m.Verts), len(m.Tris), len(m.UVs))
		fmt.Printf("bounds min=(%.3f, %.3f, %.3f) max=(%.3f, %.3f, %.3f)\n",
			min[0], min[1], min[2], max[0], max[1], max[2])
		fmt.Printf("span=(%.3f, %.3f, %.3f)\n",
			max[0]-min[0], max[1]-min[1], max[2]-min[2])
		if m.TexPath != "" {
			fmt.Printf("texture=%s\n", m.TexPath)
		}
	}
	os.Exit(exit)
}
