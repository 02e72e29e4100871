package models

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/lowpoly/pkg/math3d"
	"github.com/taigrr/lowpoly/pkg/palette"
)

// triangleDoc builds an in-memory document with one red triangle placed by
// a translated node.
func triangleDoc() *gltf.Document {
	positions := []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}
	data := make([]byte, 0, 36+6)
	for _, f := range positions {
		data = binary.LittleEndian.AppendUint32(data, math.Float32bits(f))
	}
	for _, i := range []uint16{0, 1, 2} {
		data = binary.LittleEndian.AppendUint16(data, i)
	}

	return &gltf.Document{
		Buffers: []*gltf.Buffer{{ByteLength: len(data), Data: data}},
		BufferViews: []*gltf.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: 36},
			{Buffer: 0, ByteOffset: 36, ByteLength: 6},
		},
		Accessors: []*gltf.Accessor{
			{BufferView: gltf.Index(0), Count: 3, Type: gltf.AccessorVec3, ComponentType: gltf.ComponentFloat},
			{BufferView: gltf.Index(1), Count: 3, Type: gltf.AccessorScalar, ComponentType: gltf.ComponentUshort},
		},
		Materials: []*gltf.Material{{
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{BaseColorFactor: &[4]float64{1, 0, 0, 1}},
		}},
		Meshes: []*gltf.Mesh{{
			Name: "tri",
			Primitives: []*gltf.Primitive{{
				Attributes: map[string]int{gltf.POSITION: 0},
				Indices:    gltf.Index(1),
				Material:   gltf.Index(0),
			}},
		}},
		Nodes:  []*gltf.Node{{Mesh: gltf.Index(0), Translation: [3]float64{0, 0, -5}}},
		Scenes: []*gltf.Scene{{Nodes: []int{0}}},
	}
}

func TestLoadGLTFInvalidPath(t *testing.T) {
	_, err := LoadGLTF("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestGLTFLoaderCreation(t *testing.T) {
	loader := NewGLTFLoader()
	if loader == nil {
		t.Error("NewGLTFLoader returned nil")
		return
	}
	if !loader.ApplyNodeTransforms {
		t.Error("ApplyNodeTransforms should default to true")
	}
	if loader.DefaultColor != palette.White {
		t.Errorf("DefaultColor = %v, want white", loader.DefaultColor)
	}
}

func TestGLTFDecode(t *testing.T) {
	g, err := NewGLTFLoader().Decode(triangleDoc())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if g.FaceCount() != 1 {
		t.Fatalf("faces = %d, want 1", g.FaceCount())
	}
	if g.Colors[0] != palette.Red {
		t.Errorf("color = %v, want red", g.Colors[0])
	}

	want := []math3d.Vec3{{X: 0, Y: 0, Z: -5}, {X: 1, Y: 0, Z: -5}, {X: 0, Y: 1, Z: -5}}
	for i, w := range want {
		if !g.Vertices[i].ApproxEqual(w, 1e-6) {
			t.Errorf("vertex %d = %v, want %v", i, g.Vertices[i], w)
		}
	}
}

func TestGLTFDecodeWithoutNodeTransforms(t *testing.T) {
	l := NewGLTFLoader()
	l.ApplyNodeTransforms = false

	g, err := l.Decode(triangleDoc())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !g.Vertices[1].ApproxEqual(math3d.V3(1, 0, 0), 1e-6) {
		t.Errorf("vertex = %v, want untransformed (1,0,0)", g.Vertices[1])
	}
}

func TestGLTFDecodeTruncatedBuffer(t *testing.T) {
	doc := triangleDoc()
	doc.Buffers[0].Data = doc.Buffers[0].Data[:20]

	if _, err := NewGLTFLoader().Decode(doc); err == nil {
		t.Error("expected error for truncated buffer")
	}
}
