package models

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/lowpoly/pkg/math3d"
	"github.com/taigrr/lowpoly/pkg/palette"
)

// GLTFLoader loads GLTF/GLB files into flat-shaded Geometry.
type GLTFLoader struct {
	// Options
	ApplyNodeTransforms bool
	DefaultColor        palette.Color
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		ApplyNodeTransforms: true,
		DefaultColor:        palette.White,
	}
}

// LoadGLTF loads a .gltf or .glb file with default options.
func LoadGLTF(path string) (*Geometry, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a GLTF or GLB file and returns its meshes merged into one
// Geometry. Material base colors become per-face colors.
func (l *GLTFLoader) Load(path string) (*Geometry, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	g, err := l.Decode(doc)
	if err != nil {
		return nil, err
	}
	g.Name = filepath.Base(path)
	return g, nil
}

// Decode converts an already opened document.
func (l *GLTFLoader) Decode(doc *gltf.Document) (*Geometry, error) {
	g := NewGeometry("")

	if !l.ApplyNodeTransforms || len(doc.Nodes) == 0 {
		for _, m := range doc.Meshes {
			if err := l.processMesh(doc, m, math3d.IdentityTransform(), g); err != nil {
				return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
			}
		}
		return g, nil
	}

	for _, root := range rootNodes(doc) {
		if err := l.walkNode(doc, root, math3d.IdentityTransform(), g, 0); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// maxNodeDepth guards against cyclic node graphs in malformed files.
const maxNodeDepth = 64

// walkNode flattens a node subtree, baking accumulated transforms.
func (l *GLTFLoader) walkNode(doc *gltf.Document, idx int, parent math3d.Transform3D, g *Geometry, depth int) error {
	if depth > maxNodeDepth {
		return fmt.Errorf("node hierarchy deeper than %d", maxNodeDepth)
	}
	if idx < 0 || idx >= len(doc.Nodes) {
		return fmt.Errorf("node index %d out of range", idx)
	}

	node := doc.Nodes[idx]
	global := parent.Mul(nodeTransform(node))

	if node.Mesh != nil && *node.Mesh < len(doc.Meshes) {
		m := doc.Meshes[*node.Mesh]
		if err := l.processMesh(doc, m, global, g); err != nil {
			return fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	for _, child := range node.Children {
		if err := l.walkNode(doc, child, global, g, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// rootNodes returns the nodes of the default scene, or every parentless
// node when the document declares no scene.
func rootNodes(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	if len(doc.Scenes) > 0 {
		return doc.Scenes[0].Nodes
	}

	isChild := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c >= 0 && c < len(isChild) {
				isChild[c] = true
			}
		}
	}
	var roots []int
	for i, child := range isChild {
		if !child {
			roots = append(roots, i)
		}
	}
	return roots
}

// nodeTransform returns a node's local transform. An all-zero matrix,
// rotation or scale means the field was not set.
func nodeTransform(n *gltf.Node) math3d.Transform3D {
	m := math3d.Mat4(n.Matrix)
	if !m.IsZero() && m != math3d.Identity() {
		return m.Transform3D()
	}

	b := math3d.IdentityBasis()
	if q := n.Rotation; q != [4]float64{} {
		b = math3d.BasisFromQuat(q[0], q[1], q[2], q[3])
	}
	if s := n.Scale; s != [3]float64{} {
		b = b.Scaled(math3d.V3(s[0], s[1], s[2]))
	}
	t := n.Translation
	return math3d.NewTransform(b, math3d.V3(t[0], t[1], t[2]))
}

// processMesh extracts geometry from a GLTF mesh.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, xf math3d.Transform3D, g *Geometry) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Skip non-triangle primitives (lines, points, etc)
			continue
		}

		// Get position accessor
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		part := NewGeometry(m.Name)
		part.Vertices = positions

		// Normals are per vertex, so the vertex index doubles as the
		// normal index.
		if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			part.Normals, err = readVec3Accessor(doc, normIdx)
			if err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
		}

		if prim.Indices != nil {
			part.Indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			// No indices, assume sequential triangles
			for i := 0; i+2 < len(positions); i += 3 {
				part.Indices = append(part.Indices, i, i+1, i+2)
			}
		}
		part.Indices = part.Indices[:len(part.Indices)/3*3]

		part.SetColor(l.materialColor(doc, prim.Material))
		part.Transform(xf)
		g.Append(part)
	}

	return nil
}

// materialColor returns the base color factor of a material.
func (l *GLTFLoader) materialColor(doc *gltf.Document, idx *int) palette.Color {
	if idx == nil || *idx < 0 || *idx >= len(doc.Materials) {
		return l.DefaultColor
	}
	mat := doc.Materials[*idx]
	if mat == nil || mat.PBRMetallicRoughness == nil || mat.PBRMetallicRoughness.BaseColorFactor == nil {
		return l.DefaultColor
	}
	f := mat.PBRMetallicRoughness.BaseColorFactor
	return palette.RGB(f[0], f[1], f[2])
}

// readVec3Accessor reads Vec3 data from a GLTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}
	if accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float components, got %v", accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	result := make([]math3d.Vec3, accessor.Count)
	for i := range result {
		off := i * stride
		result[i] = math3d.V3(
			float64(readFloat32(data[off:])),
			float64(readFloat32(data[off+4:])),
			float64(readFloat32(data[off+8:])),
		)
	}
	return result, nil
}

// readIndices reads index data from a GLTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR, got %v", accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, size)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := range result {
		b := data[i*stride:]
		switch size {
		case 1:
			result[i] = int(b[0])
		case 2:
			result[i] = int(uint16(b[0]) | uint16(b[1])<<8)
		case 4:
			result[i] = int(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24)
		}
	}
	return result, nil
}

// accessorBytes returns the bytes backing an accessor, starting at its
// first element, and the stride between elements. The slice is checked to
// hold every element.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	if *accessor.BufferView >= len(doc.BufferViews) {
		return nil, 0, fmt.Errorf("buffer view %d out of range", *accessor.BufferView)
	}

	bufferView := doc.BufferViews[*accessor.BufferView]
	if bufferView.Buffer >= len(doc.Buffers) {
		return nil, 0, fmt.Errorf("buffer %d out of range", bufferView.Buffer)
	}
	bufData := doc.Buffers[bufferView.Buffer].Data
	if bufData == nil {
		return nil, 0, fmt.Errorf("buffer has no data")
	}

	start := bufferView.ByteOffset + accessor.ByteOffset
	stride := bufferView.ByteStride
	if stride == 0 {
		stride = elemSize
	}

	if accessor.Count > 0 {
		end := start + (accessor.Count-1)*stride + elemSize
		if start < 0 || end > len(bufData) {
			return nil, 0, fmt.Errorf("accessor reads past end of buffer (%d > %d)", end, len(bufData))
		}
	}
	return bufData[start:], stride, nil
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(bits)
}
