// Package scene defines the scene-graph collaborator consumed by the export
// pipeline: object enumeration, capability inspection, and resource access.
// The pipeline never owns scene objects; it only reads them and, during
// remediation, asks the scene to apply transactional removal batches.
package scene

import (
	"image"

	"github.com/Faultbox/scenepack/pkg/math"
)

// CapabilityKind is the closed set of capability kinds the pipeline
// recognizes. Anything a scene cannot express with the specific kinds is
// reported as KindBehavior (scripted components) or KindOther (opaque,
// carrying only its declared type names).
type CapabilityKind int

const (
	KindTransform CapabilityKind = iota
	KindMeshRenderer
	KindSkinnedRenderer
	KindCollider
	KindLight
	KindBehavior
	KindOther
)

// String returns a human-readable kind name.
func (k CapabilityKind) String() string {
	switch k {
	case KindTransform:
		return "Transform"
	case KindMeshRenderer:
		return "MeshRenderer"
	case KindSkinnedRenderer:
		return "SkinnedRenderer"
	case KindCollider:
		return "Collider"
	case KindLight:
		return "Light"
	case KindBehavior:
		return "Behavior"
	default:
		return "Other"
	}
}

// Capability is one component attached to a scene object. Only the payload
// matching Kind is set; the rest are zero.
type Capability struct {
	Kind          CapabilityKind
	TypeName      string // declared type name, e.g. "Camera"
	QualifiedName string // fully-qualified name, e.g. "rendering.Camera"

	Mesh     Mesh      // renderers: backing mesh resource, nil if unbound
	Material Material  // renderers: first shared material, may be nil
	Collider *Collider // collider payload
	Light    *Light    // light payload
}

// Transform is an object's world-space placement.
type Transform struct {
	Position math.Vec3
	Rotation math.Quat // unit quaternion
	Scale    math.Vec3 // lossy world scale
}

// Object is an opaque handle to one node of the scene graph. ID is stable
// for the life of the process and is what the pipeline uses for set
// membership.
type Object interface {
	ID() int64
	Name() string
	Active() bool
	Transform() Transform
	Capabilities() []Capability
}

// CapabilityRemoval names one capability to strip from one object.
type CapabilityRemoval struct {
	Object     Object
	Capability Capability
}

// Scene enumerates live objects and applies remediation batches. Objects()
// returns only instances belonging to loaded scenes (inactive included,
// persisted asset-library instances excluded) in a deterministic order.
//
// DeleteObjects and RemoveCapabilities are transactional: either the whole
// batch applies or the scene is left unchanged.
type Scene interface {
	Name() string
	Objects() []Object
	DeleteObjects(objects []Object) error
	RemoveCapabilities(removals []CapabilityRemoval) error
}

// Mesh is a shared mesh resource. Accessors return an error when the
// underlying buffers cannot be read; callers recover with empty defaults.
type Mesh interface {
	ID() int64
	Name() string
	Positions() ([]math.Vec3, error)
	Normals() ([]math.Vec3, error)
	UVs() ([]math.Vec2, error)
	Triangles() ([]int, error)
}

// Material is a shared material resource exposing named shader properties.
type Material interface {
	ID() int64
	Name() string
	ColorProperty(name string) (math.Vec4, bool)
	FloatProperty(name string) (float32, bool)
	TextureProperty(name string) (Texture, bool)
	HasProperty(name string) bool
}

// FilterMode is a texture's sampling filter.
type FilterMode int

const (
	FilterPoint FilterMode = iota
	FilterBilinear
	FilterTrilinear
)

// String returns the manifest spelling of the filter mode.
func (f FilterMode) String() string {
	switch f {
	case FilterPoint:
		return "point"
	case FilterTrilinear:
		return "trilinear"
	default:
		return "bilinear"
	}
}

// Texture is a shared texture resource. Rasterize samples the texture into
// raw pixels; the pipeline treats it as a pure collaborator function.
type Texture interface {
	ID() int64
	Name() string
	Width() int
	Height() int
	FilterMode() FilterMode
	Rasterize() (*image.RGBA, error)
}

// ColliderShape is the closed set of supported collider shapes.
type ColliderShape int

const (
	ColliderBox ColliderShape = iota
	ColliderSphere
	ColliderCapsule
	ColliderMesh
)

// Collider carries the geometry of one collider capability. Only the fields
// relevant to Shape are meaningful.
type Collider struct {
	Shape     ColliderShape
	IsTrigger bool
	Center    math.Vec3
	Size      math.Vec3 // box
	Radius    float32   // sphere, capsule
	Height    float32   // capsule
	Direction int       // capsule axis: 0=X, 1=Y, 2=Z
	Convex    bool      // mesh
	Mesh      Mesh      // mesh collider geometry
}

// LightKind is the closed set of supported light types.
type LightKind int

const (
	LightPoint LightKind = iota
	LightSpot
	LightDirectional
	LightArea
)

// ShadowCasting is how a light casts shadows.
type ShadowCasting int

const (
	ShadowsNone ShadowCasting = iota
	ShadowsHard
	ShadowsSoft
)

// Light carries the properties of one light capability.
type Light struct {
	Kind      LightKind
	Color     math.Vec4 // linear RGBA
	Intensity float32
	Range     float32
	SpotAngle float32 // degrees, spot lights only
	Shadows   ShadowCasting
}
