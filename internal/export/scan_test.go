package export

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Faultbox/scenepack/internal/config"
	"github.com/Faultbox/scenepack/internal/scene"
	"github.com/Faultbox/scenepack/pkg/math"
)

// testMesh builds a mesh of n triangles fanned from the origin.
func testMesh(name string, n int) *scene.MeshData {
	m := scene.NewMesh(name)
	m.VertexPositions = append(m.VertexPositions, math.Vec3{})
	for i := 0; i < n; i++ {
		base := len(m.VertexPositions)
		m.VertexPositions = append(m.VertexPositions,
			math.Vec3{X: float32(i + 1)},
			math.Vec3{X: float32(i + 1), Y: 1},
		)
		m.TriangleIndices = append(m.TriangleIndices, 0, base, base+1)
	}
	return m
}

func newTestScanner() *Scanner {
	return NewScanner(config.Default().Classifier)
}

func TestScan_Counts(t *testing.T) {
	s := scene.NewMemory("counts")

	s.AddObject("meshy").AddMeshRenderer(testMesh("tri", 10), nil)
	s.AddObject("lamp").AddLight(scene.Light{Kind: scene.LightPoint})
	s.AddObject("blocker").
		AddCollider(scene.Collider{Shape: scene.ColliderBox}).
		AddCollider(scene.Collider{Shape: scene.ColliderSphere}) // same object

	result := newTestScanner().Scan(s)

	if result.Triangles != 10 {
		t.Errorf("expected 10 triangles, got %d", result.Triangles)
	}
	if result.LightCount != 1 {
		t.Errorf("expected 1 light, got %d", result.LightCount)
	}
	// Two colliders on one object still count one collider object.
	if result.ColliderObjects != 1 {
		t.Errorf("expected 1 collider object, got %d", result.ColliderObjects)
	}
	if len(result.Objects) != 2 {
		t.Errorf("expected 2 scanned objects (mesh + collider), got %d", len(result.Objects))
	}
	if len(result.Findings) != 0 {
		t.Errorf("expected no findings, got %v", result.Findings)
	}
}

func TestScan_Deterministic(t *testing.T) {
	s := scene.NewMemory("repeat")
	mesh := testMesh("shared", 4)
	s.AddObject("a").AddMeshRenderer(mesh, nil)
	s.AddObject("b").AddMeshRenderer(mesh, nil)
	s.AddObject("sun").AddLight(scene.Light{Kind: scene.LightDirectional})

	scanner := newTestScanner()
	first := scanner.Scan(s)
	second := scanner.Scan(s)

	if first.Triangles != second.Triangles ||
		first.LightCount != second.LightCount ||
		first.ColliderObjects != second.ColliderObjects ||
		len(first.Objects) != len(second.Objects) {
		t.Error("two scans of an unchanged scene must agree")
	}

	var firstNames, secondNames []string
	for _, o := range first.Objects {
		firstNames = append(firstNames, o.Object.Name())
	}
	for _, o := range second.Objects {
		secondNames = append(secondNames, o.Object.Name())
	}
	if !reflect.DeepEqual(firstNames, secondNames) {
		t.Errorf("scan order changed between passes: %v vs %v", firstNames, secondNames)
	}
}

func TestScan_UnreadableMeshCountsZero(t *testing.T) {
	s := scene.NewMemory("broken")
	mesh := testMesh("corrupt", 5)
	mesh.ReadErr = errors.New("index buffer unreadable")
	s.AddObject("meshy").AddMeshRenderer(mesh, nil)

	result := newTestScanner().Scan(s)

	if result.Triangles != 0 {
		t.Errorf("unreadable mesh must count 0 triangles, got %d", result.Triangles)
	}
	// The object is still scanned; serialization decides what to skip.
	if len(result.Objects) != 1 {
		t.Errorf("expected object to survive the scan, got %d objects", len(result.Objects))
	}
}

func TestScan_SkinnedRenderer(t *testing.T) {
	s := scene.NewMemory("skinned")
	s.AddObject("rig").AddSkinnedRenderer(testMesh("body", 8), nil)

	result := newTestScanner().Scan(s)

	if len(result.Objects) != 1 || !result.Objects[0].Skinned {
		t.Fatalf("expected one skinned object, got %+v", result.Objects)
	}
	if result.Triangles != 8 {
		t.Errorf("expected 8 triangles, got %d", result.Triangles)
	}
}

func TestScan_FindingsCollected(t *testing.T) {
	s := scene.NewMemory("flagged")
	s.AddObject("cam").AddComponent("Camera", "rendering.Camera")
	s.AddObject("fine").AddMeshRenderer(testMesh("m", 1), nil)

	result := newTestScanner().Scan(s)

	if len(result.Findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(result.Findings))
	}
	if result.Findings[0].Object.Name() != "cam" {
		t.Errorf("wrong object flagged: %s", result.Findings[0].Object.Name())
	}
}

func TestScanResult_HasRenderables(t *testing.T) {
	s := scene.NewMemory("colliders only")
	s.AddObject("blocker").AddCollider(scene.Collider{Shape: scene.ColliderBox})

	result := newTestScanner().Scan(s)
	if result.HasRenderables() {
		t.Error("collider-only scene has no renderables")
	}
}
