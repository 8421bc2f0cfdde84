// objtool inspects the mesh, material and curve files used by the viewer.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/objcurve/internal/loader"
	"github.com/Faultbox/objcurve/pkg/curve"
	"github.com/Faultbox/objcurve/pkg/formats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(os.Stdout, args)
	case "material", "mtl":
		err = cmdMaterial(os.Stdout, args)
	case "curve":
		err = cmdCurve(os.Stdout, args)
	case "dump":
		err = cmdDump(os.Stdout, args)
	case "check":
		err = cmdCheck(os.Stdout, args)
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`objtool - mesh, material and curve inspector

Usage:
  objtool <command> [options]

Commands:
  info <file.obj>                 Show mesh statistics and bounds
  material <file.mtl>             Show material keys and lighting terms
  curve [-n res] [-all] <file>    Sample a control point file
  dump [-n N] <file.obj>          Print interleaved vertices
  check <file>...                 Report every malformed record

Examples:
  objtool info 3d-models/shield/Shield.obj
  objtool material cube.mtl
  objtool curve -n 12 curves.txt
  objtool check cube.obj cube.mtl curves.txt`)
}

var errUsage = errors.New("missing argument")

func cmdInfo(w io.Writer, args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool info <file.obj>")
		return errUsage
	}

	obj, err := formats.ParseOBJFile(args[0], formats.DefaultOBJOptions())
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Mesh:      %s\n", args[0])
	fmt.Fprintf(w, "Positions: %d\n", len(obj.Positions))
	fmt.Fprintf(w, "TexCoords: %d\n", len(obj.TexCoords))
	fmt.Fprintf(w, "Normals:   %d\n", len(obj.Normals))
	fmt.Fprintf(w, "Faces:     %d\n", len(obj.Faces))
	fmt.Fprintf(w, "Vertices:  %d\n", obj.VertexCount())
	fmt.Fprintf(w, "Floats:    %d\n", obj.VertexCount()*formats.OBJFloatsPerVertex)

	if len(obj.Positions) > 0 {
		lo, hi := bounds(obj.Positions)
		fmt.Fprintf(w, "Bounds:    %s .. %s\n", vec(lo), vec(hi))
	}
	return nil
}

func bounds(points [][3]float32) (lo, hi mgl32.Vec3) {
	lo, hi = points[0], points[0]
	for _, p := range points[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], p[i])
			hi[i] = max(hi[i], p[i])
		}
	}
	return lo, hi
}

func vec(v mgl32.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v[0], v[1], v[2])
}

func cmdMaterial(w io.Writer, args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool material <file.mtl>")
		return errUsage
	}

	props, err := formats.ParseMTLFile(args[0])
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(w, "Material: %s\n", args[0])
	for _, k := range keys {
		fmt.Fprintf(w, "  %-8s %s\n", k, props[k])
	}

	c, err := loader.ResolveCoefficients(props, loader.DefaultCoefficients)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Ka=%g Kd=%g Ks=%g Ns=%g\n", c.Ka, c.Kd, c.Ks, c.Q)
	if m := props.DiffuseMap(); m != "" {
		fmt.Fprintf(w, "Texture: %s\n", m)
	}
	return nil
}

func cmdCurve(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("curve", flag.ContinueOnError)
	resolution := fs.Int("n", 1200, "Number of samples")
	all := fs.Bool("all", false, "Print every sample")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool curve [-n res] [-all] <file>")
		return errUsage
	}

	raw, err := formats.ParseControlPointsFile(fs.Arg(0), nil)
	if err != nil {
		return err
	}
	points := make([]mgl32.Vec3, len(raw))
	for i, p := range raw {
		points[i] = p
	}

	var b curve.Bezier
	b.SetControlPoints(points)
	if err := b.Generate(*resolution); err != nil {
		return err
	}

	fmt.Fprintf(w, "Curve:          %s\n", fs.Arg(0))
	fmt.Fprintf(w, "Control points: %d\n", len(points))
	fmt.Fprintf(w, "Segments:       %d\n", b.SegmentCount())
	fmt.Fprintf(w, "Samples:        %d %v\n", b.NumCurvePoints(), curve.Distribute(*resolution, b.SegmentCount()))
	if unused := len(points) - (b.SegmentCount()*3 + 1); unused > 0 {
		fmt.Fprintf(w, "Unused points:  %d\n", unused)
	}

	if *all {
		for i, p := range b.Samples() {
			fmt.Fprintf(w, "%6d %s\n", i, vec(p))
		}
		return nil
	}
	fmt.Fprintf(w, "First:          %s\n", vec(b.PointOnCurve(0)))
	fmt.Fprintf(w, "Last:           %s\n", vec(b.PointOnCurve(b.NumCurvePoints()-1)))
	return nil
}

func cmdDump(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	limit := fs.Int("n", 0, "Limit output to N vertices (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool dump [-n N] <file.obj>")
		return errUsage
	}

	obj, err := formats.ParseOBJFile(fs.Arg(0), formats.DefaultOBJOptions())
	if err != nil {
		return err
	}

	buf := obj.Interleave()
	count := len(buf) / formats.OBJFloatsPerVertex
	if *limit > 0 && *limit < count {
		count = *limit
	}

	fmt.Fprintln(w, "#     position                  color               uv              normal")
	for i := 0; i < count; i++ {
		v := buf[i*formats.OBJFloatsPerVertex : (i+1)*formats.OBJFloatsPerVertex]
		fmt.Fprintf(w, "%-5d % .3f % .3f % .3f | %.2f %.2f %.2f | %.3f %.3f | % .3f % .3f % .3f\n",
			i, v[0], v[1], v[2], v[3], v[4], v[5], v[6], v[7], v[8], v[9], v[10])
	}
	return nil
}

// cmdCheck parses each file with a handler that records every bad record
// instead of stopping at the first.
func cmdCheck(w io.Writer, args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool check <file>...")
		return errUsage
	}

	total := 0
	for _, path := range args {
		var problems []*formats.ParseError
		collect := func(err *formats.ParseError) error {
			problems = append(problems, err)
			return nil
		}

		var err error
		switch formats.DetectFormat(path) {
		case formats.FormatOBJ:
			_, err = formats.ParseOBJFile(path, formats.OBJOptions{Color: formats.DefaultVertexColor, OnError: collect})
		case formats.FormatMTL:
			var props formats.MTLProperties
			if props, err = formats.ParseMTLFile(path); err == nil {
				_, err = loader.ResolveCoefficients(props, loader.DefaultCoefficients)
			}
		default:
			_, err = formats.ParseControlPointsFile(path, collect)
		}

		if err != nil {
			fmt.Fprintf(w, "%s: %v\n", path, err)
			total++
			continue
		}
		for _, p := range problems {
			fmt.Fprintln(w, p.Error())
		}
		total += len(problems)
		if len(problems) == 0 {
			fmt.Fprintf(w, "%s: ok\n", path)
		}
	}

	if total > 0 {
		return fmt.Errorf("%d problem(s) found", total)
	}
	return nil
}
