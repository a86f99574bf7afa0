package assets

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/Faultbox/driftline/internal/engine/model"
)

// DiffuseSuffix is appended to a mesh name to find its texture when the
// material library names none.
const DiffuseSuffix = "_diffuse.png"

// ErrInvalidOBJ is returned for malformed Wavefront OBJ data.
var ErrInvalidOBJ = errors.New("invalid obj")

// LoadModel imports a Wavefront OBJ model and its material library.
// Material texture paths are resolved against the model's directory.
func (m *Manager) LoadModel(name string) (*model.Model, error) {
	data, err := m.Load(name)
	if err != nil {
		return nil, err
	}

	dir := path.Dir(path.Clean(name))
	mdl, libs, err := ParseOBJ(data)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", name, err)
	}
	mdl.Name = strings.TrimSuffix(path.Base(name), path.Ext(name))

	materials := make(map[string]model.Material)
	for _, lib := range libs {
		raw, err := m.Load(path.Join(dir, lib))
		if err != nil {
			// A missing library leaves the meshes on the default texture name.
			continue
		}
		for k, v := range ParseMTL(raw) {
			materials[k] = v
		}
	}

	for _, mesh := range mdl.Meshes {
		if mat, ok := materials[mesh.Material.Name]; ok {
			mesh.Material = mat
		}
		if mesh.Material.Texture == "" {
			mesh.Material.Texture = mesh.Name + DiffuseSuffix
		}
		mesh.Material.Texture = path.Join(dir, mesh.Material.Texture)
	}
	return mdl, nil
}

// objIndex is a resolved v/vt/vn triple. Missing components are -1.
type objIndex struct {
	v, vt, vn int
}

type objBuilder struct {
	positions [][3]float32
	texcoords [][2]float32
	normals   [][3]float32

	meshes   []*model.Mesh
	name     string
	material string
	vertices []model.Vertex
	indices  []uint32
	seen     map[objIndex]uint32
}

// flush closes the mesh being built, if it has any faces.
func (b *objBuilder) flush() {
	if len(b.indices) > 0 {
		mat := model.Material{Name: b.material, Diffuse: [3]float32{1, 1, 1}}
		b.meshes = append(b.meshes, model.NewMesh(b.name, b.vertices, b.indices, mat))
	}
	b.vertices = nil
	b.indices = nil
	b.seen = make(map[objIndex]uint32)
}

func (b *objBuilder) vertex(idx objIndex) uint32 {
	if i, ok := b.seen[idx]; ok {
		return i
	}
	var v model.Vertex
	v.Position = b.positions[idx.v]
	if idx.vt >= 0 {
		v.TexCoord = b.texcoords[idx.vt]
	}
	if idx.vn >= 0 {
		v.Normal = b.normals[idx.vn]
	}
	i := uint32(len(b.vertices))
	b.vertices = append(b.vertices, v)
	b.seen[idx] = i
	return i
}

// ParseOBJ decodes Wavefront OBJ text. A new mesh starts at every object,
// group or material change. Polygons are triangulated as fans. It also
// returns the material libraries the file references.
func ParseOBJ(data []byte) (*model.Model, []string, error) {
	b := &objBuilder{seen: make(map[objIndex]uint32)}
	var libs []string

	sc := bufio.NewScanner(bytes.NewReader(data))
	for line := 1; sc.Scan(); line++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		args := fields[1:]

		switch fields[0] {
		case "v":
			p, err := parseFloats(args, 3)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", line, err)
			}
			b.positions = append(b.positions, [3]float32{p[0], p[1], p[2]})
		case "vt":
			p, err := parseFloats(args, 2)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", line, err)
			}
			b.texcoords = append(b.texcoords, [2]float32{p[0], p[1]})
		case "vn":
			p, err := parseFloats(args, 3)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", line, err)
			}
			b.normals = append(b.normals, [3]float32{p[0], p[1], p[2]})
		case "f":
			if len(args) < 3 {
				return nil, nil, fmt.Errorf("line %d: face with %d vertices: %w", line, len(args), ErrInvalidOBJ)
			}
			face := make([]uint32, len(args))
			for i, a := range args {
				idx, err := b.parseIndex(a)
				if err != nil {
					return nil, nil, fmt.Errorf("line %d: %w", line, err)
				}
				face[i] = b.vertex(idx)
			}
			for i := 1; i+1 < len(face); i++ {
				b.indices = append(b.indices, face[0], face[i], face[i+1])
			}
		case "o", "g":
			b.flush()
			b.name = strings.Join(args, " ")
		case "usemtl":
			name := strings.Join(args, " ")
			if name != b.material {
				b.flush()
				b.material = name
			}
		case "mtllib":
			libs = append(libs, args...)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}
	b.flush()

	if len(b.meshes) == 0 {
		return nil, nil, fmt.Errorf("no faces: %w", ErrInvalidOBJ)
	}
	return &model.Model{Meshes: b.meshes}, libs, nil
}

// parseIndex resolves one face vertex (v, v/vt, v//vn or v/vt/vn).
// Negative references count back from the latest element.
func (b *objBuilder) parseIndex(s string) (objIndex, error) {
	parts := strings.Split(s, "/")
	idx := objIndex{v: -1, vt: -1, vn: -1}
	counts := [3]int{len(b.positions), len(b.texcoords), len(b.normals)}
	out := [3]*int{&idx.v, &idx.vt, &idx.vn}

	for i, p := range parts {
		if i > 2 {
			return idx, fmt.Errorf("face vertex %q: %w", s, ErrInvalidOBJ)
		}
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return idx, fmt.Errorf("face vertex %q: %w", s, ErrInvalidOBJ)
		}
		if n < 0 {
			n += counts[i]
		} else {
			n--
		}
		if n < 0 || n >= counts[i] {
			return idx, fmt.Errorf("face vertex %q out of range: %w", s, ErrInvalidOBJ)
		}
		*out[i] = n
	}
	if idx.v < 0 {
		return idx, fmt.Errorf("face vertex %q has no position: %w", s, ErrInvalidOBJ)
	}
	return idx, nil
}

func parseFloats(args []string, n int) ([]float32, error) {
	if len(args) < n {
		return nil, fmt.Errorf("want %d values, got %d: %w", n, len(args), ErrInvalidOBJ)
	}
	out := make([]float32, n)
	for i := range out {
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return nil, fmt.Errorf("value %q: %w", args[i], ErrInvalidOBJ)
		}
		out[i] = float32(f)
	}
	return out, nil
}

// ParseMTL decodes a Wavefront material library. Unknown statements and
// malformed values are skipped.
func ParseMTL(data []byte) map[string]model.Material {
	out := make(map[string]model.Material)
	var cur *model.Material
	commit := func() {
		if cur != nil {
			out[cur.Name] = *cur
		}
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		args := fields[1:]
		if fields[0] == "newmtl" {
			commit()
			cur = &model.Material{Name: strings.Join(args, " "), Diffuse: [3]float32{1, 1, 1}}
			continue
		}
		if cur == nil {
			continue
		}
		switch fields[0] {
		case "Kd":
			if p, err := parseFloats(args, 3); err == nil {
				cur.Diffuse = [3]float32{p[0], p[1], p[2]}
			}
		case "Ks":
			if p, err := parseFloats(args, 3); err == nil {
				cur.Specular = [3]float32{p[0], p[1], p[2]}
			}
		case "Ns":
			if p, err := parseFloats(args, 1); err == nil {
				cur.Shininess = p[0]
			}
		case "map_Kd":
			// Options such as -s precede the file name, which comes last.
			if len(args) > 0 {
				cur.Texture = args[len(args)-1]
			}
		}
	}
	commit()
	return out
}
