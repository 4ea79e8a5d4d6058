package scene

import (
	"errors"
	"fmt"
	"image"
	"sync/atomic"

	"github.com/Faultbox/scenepack/pkg/math"
)

// Memory scene errors.
var (
	ErrObjectNotFound        = errors.New("object not part of this scene")
	ErrCapabilityNotFound    = errors.New("capability not present on object")
	ErrTransformNotRemovable = errors.New("transform capability cannot be removed")
)

// nextResourceID hands out stable per-process identities for objects and
// shared resources.
var nextResourceID atomic.Int64

func newID() int64 {
	return nextResourceID.Add(1)
}

// Memory is an in-memory Scene used by the CLI (via the YAML loader) and by
// tests. Enumeration order is insertion order, which keeps scans and key
// assignment deterministic.
type Memory struct {
	name    string
	objects []*MemoryObject
}

// NewMemory creates an empty scene with the given name.
func NewMemory(name string) *Memory {
	return &Memory{name: name}
}

// Name returns the scene name.
func (s *Memory) Name() string {
	return s.name
}

// Objects returns all live objects in insertion order.
func (s *Memory) Objects() []Object {
	out := make([]Object, len(s.objects))
	for i, o := range s.objects {
		out[i] = o
	}
	return out
}

// AddObject creates a new object with an identity transform and appends it
// to the scene.
func (s *Memory) AddObject(name string) *MemoryObject {
	obj := &MemoryObject{
		id:     newID(),
		name:   name,
		active: true,
		transform: Transform{
			Rotation: math.QuatIdentity(),
			Scale:    math.Vec3{X: 1, Y: 1, Z: 1},
		},
		caps: []Capability{{Kind: KindTransform, TypeName: "Transform", QualifiedName: "scene.Transform"}},
	}
	s.objects = append(s.objects, obj)
	return obj
}

func (s *Memory) indexOf(obj Object) int {
	for i, o := range s.objects {
		if o.id == obj.ID() {
			return i
		}
	}
	return -1
}

// DeleteObjects removes every object in the batch. The batch is validated
// up front so a missing object leaves the scene untouched.
func (s *Memory) DeleteObjects(objects []Object) error {
	doomed := make(map[int64]bool, len(objects))
	for _, obj := range objects {
		if s.indexOf(obj) < 0 {
			return fmt.Errorf("%w: %q", ErrObjectNotFound, obj.Name())
		}
		doomed[obj.ID()] = true
	}

	kept := s.objects[:0]
	for _, o := range s.objects {
		if !doomed[o.id] {
			kept = append(kept, o)
		}
	}
	s.objects = kept
	return nil
}

// RemoveCapabilities strips the named capabilities from their objects. The
// whole batch is validated before anything is mutated; transform
// capabilities are never removable.
func (s *Memory) RemoveCapabilities(removals []CapabilityRemoval) error {
	type target struct {
		obj *MemoryObject
		cap Capability
	}
	targets := make([]target, 0, len(removals))

	for _, r := range removals {
		if r.Capability.Kind == KindTransform {
			return fmt.Errorf("%w: on %q", ErrTransformNotRemovable, r.Object.Name())
		}
		i := s.indexOf(r.Object)
		if i < 0 {
			return fmt.Errorf("%w: %q", ErrObjectNotFound, r.Object.Name())
		}
		obj := s.objects[i]
		if !obj.hasCapability(r.Capability) {
			return fmt.Errorf("%w: %s on %q", ErrCapabilityNotFound, r.Capability.TypeName, r.Object.Name())
		}
		targets = append(targets, target{obj, r.Capability})
	}

	for _, t := range targets {
		t.obj.removeCapability(t.cap)
	}
	return nil
}

// MemoryObject is one node of a Memory scene.
type MemoryObject struct {
	id        int64
	name      string
	active    bool
	transform Transform
	caps      []Capability
}

// ID returns the object's stable per-process identity.
func (o *MemoryObject) ID() int64 { return o.id }

// Name returns the object name.
func (o *MemoryObject) Name() string { return o.name }

// Active reports whether the object is active in the scene.
func (o *MemoryObject) Active() bool { return o.active }

// Transform returns the object's world transform.
func (o *MemoryObject) Transform() Transform { return o.transform }

// Capabilities returns the attached capabilities in attachment order.
func (o *MemoryObject) Capabilities() []Capability {
	out := make([]Capability, len(o.caps))
	copy(out, o.caps)
	return out
}

// SetActive sets the active flag.
func (o *MemoryObject) SetActive(active bool) *MemoryObject {
	o.active = active
	return o
}

// SetTransform sets the world transform.
func (o *MemoryObject) SetTransform(t Transform) *MemoryObject {
	o.transform = t
	return o
}

// AddCapability attaches a raw capability.
func (o *MemoryObject) AddCapability(c Capability) *MemoryObject {
	o.caps = append(o.caps, c)
	return o
}

// AddMeshRenderer attaches a mesh renderer backed by mesh with an optional
// shared material.
func (o *MemoryObject) AddMeshRenderer(mesh Mesh, material Material) *MemoryObject {
	return o.AddCapability(Capability{
		Kind:          KindMeshRenderer,
		TypeName:      "MeshRenderer",
		QualifiedName: "rendering.MeshRenderer",
		Mesh:          mesh,
		Material:      material,
	})
}

// AddSkinnedRenderer attaches a skinned renderer backed by mesh.
func (o *MemoryObject) AddSkinnedRenderer(mesh Mesh, material Material) *MemoryObject {
	return o.AddCapability(Capability{
		Kind:          KindSkinnedRenderer,
		TypeName:      "SkinnedMeshRenderer",
		QualifiedName: "rendering.SkinnedMeshRenderer",
		Mesh:          mesh,
		Material:      material,
	})
}

// AddCollider attaches a collider capability.
func (o *MemoryObject) AddCollider(c Collider) *MemoryObject {
	typeName := "BoxCollider"
	switch c.Shape {
	case ColliderSphere:
		typeName = "SphereCollider"
	case ColliderCapsule:
		typeName = "CapsuleCollider"
	case ColliderMesh:
		typeName = "MeshCollider"
	}
	col := c
	return o.AddCapability(Capability{
		Kind:          KindCollider,
		TypeName:      typeName,
		QualifiedName: "physics." + typeName,
		Collider:      &col,
	})
}

// AddLight attaches a light capability.
func (o *MemoryObject) AddLight(l Light) *MemoryObject {
	light := l
	return o.AddCapability(Capability{
		Kind:          KindLight,
		TypeName:      "Light",
		QualifiedName: "rendering.Light",
		Light:         &light,
	})
}

// AddBehavior attaches a scripted component identified by its type names.
func (o *MemoryObject) AddBehavior(typeName, qualifiedName string) *MemoryObject {
	return o.AddCapability(Capability{
		Kind:          KindBehavior,
		TypeName:      typeName,
		QualifiedName: qualifiedName,
	})
}

// AddComponent attaches an opaque component the pipeline has no specific
// kind for (cameras, particle systems, companion data objects, ...).
func (o *MemoryObject) AddComponent(typeName, qualifiedName string) *MemoryObject {
	return o.AddCapability(Capability{
		Kind:          KindOther,
		TypeName:      typeName,
		QualifiedName: qualifiedName,
	})
}

func (o *MemoryObject) hasCapability(c Capability) bool {
	for _, have := range o.caps {
		if have == c {
			return true
		}
	}
	return false
}

func (o *MemoryObject) removeCapability(c Capability) {
	for i, have := range o.caps {
		if have == c {
			o.caps = append(o.caps[:i], o.caps[i+1:]...)
			return
		}
	}
}

// MeshData is a concrete Mesh with inline buffers. Setting ReadErr makes
// every accessor fail, which models an unreadable resource.
type MeshData struct {
	id   int64
	name string

	VertexPositions []math.Vec3
	VertexNormals   []math.Vec3
	VertexUVs       []math.Vec2
	TriangleIndices []int

	ReadErr error
}

// NewMesh creates an empty named mesh resource.
func NewMesh(name string) *MeshData {
	return &MeshData{id: newID(), name: name}
}

// ID returns the mesh resource identity.
func (m *MeshData) ID() int64 { return m.id }

// Name returns the mesh name.
func (m *MeshData) Name() string { return m.name }

// Positions returns vertex positions.
func (m *MeshData) Positions() ([]math.Vec3, error) {
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	return m.VertexPositions, nil
}

// Normals returns vertex normals.
func (m *MeshData) Normals() ([]math.Vec3, error) {
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	return m.VertexNormals, nil
}

// UVs returns texture coordinates.
func (m *MeshData) UVs() ([]math.Vec2, error) {
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	return m.VertexUVs, nil
}

// Triangles returns the flat triangle index list.
func (m *MeshData) Triangles() ([]int, error) {
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	return m.TriangleIndices, nil
}

// MaterialData is a concrete Material backed by property maps.
type MaterialData struct {
	id   int64
	name string

	Colors   map[string]math.Vec4
	Floats   map[string]float32
	Textures map[string]Texture
}

// NewMaterial creates an empty named material resource.
func NewMaterial(name string) *MaterialData {
	return &MaterialData{
		id:       newID(),
		name:     name,
		Colors:   map[string]math.Vec4{},
		Floats:   map[string]float32{},
		Textures: map[string]Texture{},
	}
}

// ID returns the material resource identity.
func (m *MaterialData) ID() int64 { return m.id }

// Name returns the material name.
func (m *MaterialData) Name() string { return m.name }

// ColorProperty looks up a named color property.
func (m *MaterialData) ColorProperty(name string) (math.Vec4, bool) {
	c, ok := m.Colors[name]
	return c, ok
}

// FloatProperty looks up a named float property.
func (m *MaterialData) FloatProperty(name string) (float32, bool) {
	f, ok := m.Floats[name]
	return f, ok
}

// TextureProperty looks up a named texture property.
func (m *MaterialData) TextureProperty(name string) (Texture, bool) {
	t, ok := m.Textures[name]
	if !ok || t == nil {
		return nil, false
	}
	return t, true
}

// HasProperty reports whether any property with the name exists.
func (m *MaterialData) HasProperty(name string) bool {
	if _, ok := m.Colors[name]; ok {
		return true
	}
	if _, ok := m.Floats[name]; ok {
		return true
	}
	_, ok := m.Textures[name]
	return ok
}

// TextureData is a concrete Texture backed by decoded pixels.
type TextureData struct {
	id     int64
	name   string
	filter FilterMode

	Pixels  *image.RGBA
	ReadErr error
}

// NewTexture creates a texture resource from decoded pixels.
func NewTexture(name string, pixels *image.RGBA, filter FilterMode) *TextureData {
	return &TextureData{id: newID(), name: name, filter: filter, Pixels: pixels}
}

// ID returns the texture resource identity.
func (t *TextureData) ID() int64 { return t.id }

// Name returns the texture name.
func (t *TextureData) Name() string { return t.name }

// Width returns the pixel width, 0 when no pixels are bound.
func (t *TextureData) Width() int {
	if t.Pixels == nil {
		return 0
	}
	return t.Pixels.Bounds().Dx()
}

// Height returns the pixel height, 0 when no pixels are bound.
func (t *TextureData) Height() int {
	if t.Pixels == nil {
		return 0
	}
	return t.Pixels.Bounds().Dy()
}

// FilterMode returns the sampling filter.
func (t *TextureData) FilterMode() FilterMode { return t.filter }

// Rasterize returns the backing pixels.
func (t *TextureData) Rasterize() (*image.RGBA, error) {
	if t.ReadErr != nil {
		return nil, t.ReadErr
	}
	if t.Pixels == nil {
		return nil, errors.New("texture has no pixel data")
	}
	return t.Pixels, nil
}
