package scene

import (
	"errors"
	"testing"

	"github.com/Faultbox/scenepack/pkg/math"
)

func TestMemory_ObjectsInsertionOrder(t *testing.T) {
	s := NewMemory("test")
	names := []string{"a", "b", "c"}
	for _, n := range names {
		s.AddObject(n)
	}

	objs := s.Objects()
	if len(objs) != 3 {
		t.Fatalf("expected 3 objects, got %d", len(objs))
	}
	for i, n := range names {
		if objs[i].Name() != n {
			t.Errorf("object %d: expected %q, got %q", i, n, objs[i].Name())
		}
	}
}

func TestMemory_AddObjectHasTransform(t *testing.T) {
	s := NewMemory("test")
	obj := s.AddObject("thing")

	caps := obj.Capabilities()
	if len(caps) != 1 || caps[0].Kind != KindTransform {
		t.Fatalf("new object should carry exactly a transform capability, got %+v", caps)
	}

	tr := obj.Transform()
	if tr.Scale != (math.Vec3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("default scale should be unit, got %+v", tr.Scale)
	}
	if tr.Rotation != math.QuatIdentity() {
		t.Errorf("default rotation should be identity, got %+v", tr.Rotation)
	}
}

func TestMemory_DeleteObjects(t *testing.T) {
	s := NewMemory("test")
	a := s.AddObject("a")
	s.AddObject("b")
	c := s.AddObject("c")

	if err := s.DeleteObjects([]Object{a, c}); err != nil {
		t.Fatalf("DeleteObjects failed: %v", err)
	}

	objs := s.Objects()
	if len(objs) != 1 || objs[0].Name() != "b" {
		t.Errorf("expected only 'b' to remain, got %d objects", len(objs))
	}
}

func TestMemory_DeleteObjects_UnknownObjectRollsBack(t *testing.T) {
	s := NewMemory("test")
	a := s.AddObject("a")

	other := NewMemory("other").AddObject("ghost")

	err := s.DeleteObjects([]Object{a, other})
	if !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
	if len(s.Objects()) != 1 {
		t.Error("failed batch must leave the scene unchanged")
	}
}

func TestMemory_RemoveCapabilities(t *testing.T) {
	s := NewMemory("test")
	obj := s.AddObject("a").AddComponent("Camera", "rendering.Camera")

	var camera Capability
	for _, c := range obj.Capabilities() {
		if c.Kind == KindOther {
			camera = c
		}
	}

	err := s.RemoveCapabilities([]CapabilityRemoval{{Object: obj, Capability: camera}})
	if err != nil {
		t.Fatalf("RemoveCapabilities failed: %v", err)
	}

	for _, c := range obj.Capabilities() {
		if c.Kind == KindOther {
			t.Error("camera capability should have been removed")
		}
	}
	if len(s.Objects()) != 1 {
		t.Error("object itself must survive capability removal")
	}
}

func TestMemory_RemoveCapabilities_TransformRefused(t *testing.T) {
	s := NewMemory("test")
	obj := s.AddObject("a").AddComponent("Camera", "rendering.Camera")

	transform := obj.Capabilities()[0]
	camera := obj.Capabilities()[1]

	err := s.RemoveCapabilities([]CapabilityRemoval{
		{Object: obj, Capability: camera},
		{Object: obj, Capability: transform},
	})
	if !errors.Is(err, ErrTransformNotRemovable) {
		t.Fatalf("expected ErrTransformNotRemovable, got %v", err)
	}

	// Batch must not be half-applied: the camera is still attached.
	if len(obj.Capabilities()) != 2 {
		t.Error("failed batch must leave the object unchanged")
	}
}

func TestMeshData_ReadErr(t *testing.T) {
	m := NewMesh("broken")
	m.VertexPositions = []math.Vec3{{X: 1}}
	m.ReadErr = errors.New("index buffer unreadable")

	if _, err := m.Triangles(); err == nil {
		t.Error("expected Triangles to fail")
	}
	if _, err := m.Positions(); err == nil {
		t.Error("expected Positions to fail")
	}
}

func TestMaterialData_Properties(t *testing.T) {
	m := NewMaterial("mat")
	m.Colors["_BaseColor"] = math.Vec4{X: 1, Y: 0, Z: 0, W: 1}
	m.Floats["_Metallic"] = 0.5

	if c, ok := m.ColorProperty("_BaseColor"); !ok || c.X != 1 {
		t.Errorf("expected base color lookup to succeed, got %v %v", c, ok)
	}
	if _, ok := m.ColorProperty("_Color"); ok {
		t.Error("absent property lookup should report ok=false")
	}
	if !m.HasProperty("_Metallic") {
		t.Error("HasProperty should see float properties")
	}
	if m.HasProperty("_BaseMap") {
		t.Error("HasProperty should not invent texture properties")
	}
}

func TestResourceIDsAreUnique(t *testing.T) {
	seen := map[int64]bool{}
	for i := 0; i < 10; i++ {
		id := NewMesh("m").ID()
		if seen[id] {
			t.Fatalf("duplicate resource id %d", id)
		}
		seen[id] = true
	}
}
