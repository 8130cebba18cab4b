// Package meshio implements the text mesh I/O grammar of spec.md §6: the
// line-oriented `v`/`t`/`l`/`#` ASCII format the engine loads from at
// startup and can emit a result in. The exact lexical rules (one-based
// triangle indices, warn-but-insert on non-positive orientation, `#` end
// sentinel) are grounded on original_source/GRIT/GRIT/include/io/
// grit_load_from_txt.h and grit_save_to_txt.h.
//
// Parsing itself follows the teacher's builder.config.go posture of a
// small line-driven scanner with no external parser-combinator library —
// none appears anywhere in the retrieval pack, so stdlib bufio/strconv is
// the justified choice here (see DESIGN.md).
package meshio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gritmesh/grit/attrs"
	"github.com/gritmesh/grit/giterr"
	"github.com/gritmesh/grit/mesh"
	"github.com/gritmesh/grit/simplex"
)

// ErrUnsupportedFormat is returned by LoadMsh: the .msh lexical surface
// is out of scope for the core per spec.md §6, so rather than silently
// mis-parsing it, the core fails explicitly and lets a collaborator
// provide a real loader.
var ErrUnsupportedFormat = errors.New("grit/meshio: .msh format not implemented by the core")

// Load parses the text mesh grammar of spec.md §6 from r into a fresh
// mesh and attribute store. Vertex indices in `t`/`l` lines are declared
// one-based, in declaration order; any line whose prefix is not
// v/t/l/#, logs a warning (via logger, defaulting to slog.Default() if
// nil) and is otherwise ignored. Reaching `#` or EOF both terminate the
// scan.
func Load(r io.Reader, logger *slog.Logger) (*mesh.Mesh, *attrs.Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	m := mesh.New()
	store := attrs.NewStore()

	importToMesh := []simplex.Simplex0{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			x, y, err := parseXY(fields)
			if err != nil {
				return nil, nil, fmt.Errorf("meshio: line %d: %w: %v", lineNo, giterr.ErrIoFailure, err)
			}
			v := m.InsertVertex()
			store.SetCurrent(v, attrs.Vec2{X: x, Y: y})
			importToMesh = append(importToMesh, v)

		case "t":
			v0, v1, v2, err := resolveTriangleIndices(fields, importToMesh)
			if err != nil {
				return nil, nil, fmt.Errorf("meshio: line %d: %w: %v", lineNo, giterr.ErrIoFailure, err)
			}
			if signedArea(store, v0, v1, v2) <= 0 {
				logger.Warn("meshio: triangle with non-positive orientation", "line", lineNo)
			}
			if _, err := m.InsertTriangle(v0, v1, v2); err != nil {
				return nil, nil, fmt.Errorf("meshio: line %d: %w: %v", lineNo, giterr.ErrIoFailure, err)
			}

		case "l":
			if len(fields) < 5 {
				return nil, nil, fmt.Errorf("meshio: line %d: %w: malformed label line", lineNo, giterr.ErrIoFailure)
			}
			v0, v1, v2, err := resolveTriangleIndices(fields[:4], importToMesh)
			if err != nil {
				return nil, nil, fmt.Errorf("meshio: line %d: %w: %v", lineNo, giterr.ErrIoFailure, err)
			}
			phase, err := strconv.ParseUint(fields[4], 10, 32)
			if err != nil {
				return nil, nil, fmt.Errorf("meshio: line %d: %w: %v", lineNo, giterr.ErrIoFailure, err)
			}
			t := simplex.NewSimplex2(int(v0), int(v1), int(v2))
			m.SetLabel(t, simplex.Label(phase))

		case "#":
			return m, store, nil

		default:
			logger.Warn("meshio: unknown line prefix, ignoring", "line", lineNo, "prefix", fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("meshio: %w: %v", giterr.ErrIoFailure, err)
	}
	return m, store, nil
}

func parseXY(fields []string) (float64, float64, error) {
	if len(fields) < 3 {
		return 0, 0, errors.New("malformed vertex line")
	}
	x, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func resolveTriangleIndices(fields []string, importToMesh []simplex.Simplex0) (simplex.Simplex0, simplex.Simplex0, simplex.Simplex0, error) {
	if len(fields) < 4 {
		return 0, 0, 0, errors.New("malformed triangle line")
	}
	idx := make([]int, 3)
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(fields[i+1])
		if err != nil {
			return 0, 0, 0, err
		}
		if n < 1 || n > len(importToMesh) {
			return 0, 0, 0, fmt.Errorf("vertex index %d out of bounds (have %d vertices)", n, len(importToMesh))
		}
		idx[i] = n
	}
	return importToMesh[idx[0]-1], importToMesh[idx[1]-1], importToMesh[idx[2]-1], nil
}

func signedArea(store *attrs.Store, v0, v1, v2 simplex.Simplex0) float64 {
	a := store.Current(v0)
	b := store.Current(v1)
	c := store.Current(v2)
	ax := c.X - b.X
	ay := c.Y - b.Y
	bx := a.X - b.X
	by := a.Y - b.Y
	return ax*by - bx*ay
}

// LoadMsh always fails: the .msh lexical surface's exact grammar is
// marked out of scope for the core by spec.md §6.
func LoadMsh(io.Reader, *slog.Logger) (*mesh.Mesh, *attrs.Store, error) {
	return nil, nil, ErrUnsupportedFormat
}

// Write emits m/store in the text grammar, vertices and triangles in a
// deterministic order: vertices in ascending id order (matching
// mesh.Mesh.AllVertices), triangles ordered by canonical Simplex2 id
// (ascending lexicographic (A, B, C)), exactly as the teacher's
// Edges()/Vertices() convention always sorts before returning.
func Write(w io.Writer, m *mesh.Mesh, store *attrs.Store) error {
	bw := bufio.NewWriter(w)

	vertices := m.AllVertices()
	index := make(map[simplex.Simplex0]int, len(vertices))
	for i, v := range vertices {
		index[v] = i + 1
		p := store.Current(v)
		if _, err := fmt.Fprintf(bw, "v %s %s\n", formatFloat(p.X), formatFloat(p.Y)); err != nil {
			return err
		}
	}

	triangles := m.AllTriangles()
	for _, t := range triangles {
		v0, v1, v2, ok := m.OrientedVertices(t)
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(bw, "t %d %d %d\n", index[v0], index[v1], index[v2]); err != nil {
			return err
		}
	}
	for _, t := range triangles {
		v0, v1, v2, ok := m.OrientedVertices(t)
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(bw, "l %d %d %d %d\n", index[v0], index[v1], index[v2], m.Label(t)); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
