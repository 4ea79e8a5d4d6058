// Package manifest defines the versioned scene package descriptor written
// alongside exported asset files, and its JSON codec.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
)

// FormatVersion is the current manifest schema version. It must be bumped on
// any breaking change to the record shapes; consumers reject versions they do
// not recognize instead of guessing field meaning.
const FormatVersion = 4

// Manifest errors.
var (
	ErrUnsupportedVersion = errors.New("unsupported manifest format version")
)

// AssetType identifies the kind of file an asset entry points at.
type AssetType string

const (
	AssetMesh    AssetType = "mesh"
	AssetTexture AssetType = "texture"
)

// Asset describes one serialized asset file inside the package.
type Asset struct {
	Type AssetType `json:"type"`
	Path string    `json:"path"` // relative to the package root
}

// AssetEntry pairs an asset with its package-unique key.
type AssetEntry struct {
	Key   string `json:"key"`
	Value Asset  `json:"value"`
}

// Material describes one material under the simplified lit model.
// Roughness is stored directly (already converted from smoothness).
type Material struct {
	Shader       string       `json:"shader"`
	Albedo       string       `json:"albedo,omitempty"`       // asset key
	AlbedoFilter string       `json:"albedoFilter,omitempty"` // point, bilinear, trilinear
	Tint         *[4]float32  `json:"tint,omitempty"`
	Metallic     float32      `json:"metallic"`
	Roughness    float32      `json:"roughness"`
}

// MaterialEntry pairs a material with its package-unique key.
type MaterialEntry struct {
	Key   string   `json:"key"`
	Value Material `json:"value"`
}

// ColliderType identifies a collider shape variant.
type ColliderType string

const (
	ColliderBox     ColliderType = "box"
	ColliderSphere  ColliderType = "sphere"
	ColliderCapsule ColliderType = "capsule"
	ColliderMesh    ColliderType = "mesh"
	ColliderNone    ColliderType = "none"
)

// Collider is a tagged union over the supported collider shapes. Only the
// fields relevant to Type are populated.
type Collider struct {
	Type      ColliderType `json:"type"`
	IsTrigger bool         `json:"isTrigger"`
	Center    [3]float32   `json:"center"`
	Size      *[3]float32  `json:"size,omitempty"`      // box
	Radius    float32      `json:"radius,omitempty"`    // sphere, capsule
	Height    float32      `json:"height,omitempty"`    // capsule
	Direction int          `json:"direction,omitempty"` // capsule axis: 0=X, 1=Y, 2=Z
	Convex    bool         `json:"convex,omitempty"`    // mesh
	Mesh      string       `json:"mesh,omitempty"`      // mesh asset key
}

// Object describes one exported scene instance.
type Object struct {
	Name     string     `json:"name"`
	Pos      [3]float32 `json:"pos"`
	Rot      [4]float32 `json:"rot"` // unit quaternion, XYZW
	Scale    [3]float32 `json:"scale"`
	Active   bool       `json:"active"`
	Mesh     string     `json:"mesh,omitempty"`     // asset key
	Material string     `json:"material,omitempty"` // material key
	Collider *Collider  `json:"collider,omitempty"`
}

// LightType identifies a light source kind.
type LightType string

const (
	LightPoint       LightType = "point"
	LightSpot        LightType = "spot"
	LightDirectional LightType = "directional"
	LightArea        LightType = "area"
)

// ShadowMode identifies how a light casts shadows.
type ShadowMode string

const (
	ShadowsNone ShadowMode = "none"
	ShadowsHard ShadowMode = "hard"
	ShadowsSoft ShadowMode = "soft"
)

// Light describes one exported light source.
type Light struct {
	Name      string     `json:"name"`
	Pos       [3]float32 `json:"pos"`
	Rot       [4]float32 `json:"rot"`
	Active    bool       `json:"active"`
	Type      LightType  `json:"type"`
	Color     [4]float32 `json:"color"` // linear RGBA
	Intensity float32    `json:"intensity"`
	Range     float32    `json:"range"`
	SpotAngle float32    `json:"spotAngle"` // zero unless Type == spot
	Shadows   ShadowMode `json:"shadows"`
}

// Bounds is an axis-aligned box enclosing all exported renderables.
type Bounds struct {
	Center [3]float32 `json:"center"`
	Size   [3]float32 `json:"size"`
}

// Manifest is the full package descriptor.
type Manifest struct {
	FormatVersion int    `json:"formatVersion"`
	Name          string `json:"name"`
	Bounds        Bounds `json:"bounds"`

	ComplexityUsed            int `json:"complexityUsed"`
	ComplexityLimit           int `json:"complexityLimit"`
	ComplexityPercent         int `json:"complexityPercent"`
	ComplexityTriangles       int `json:"complexityTriangles"`
	ComplexityLights          int `json:"complexityLights"`
	ComplexityColliderObjects int `json:"complexityColliderObjects"`

	Assets    []AssetEntry    `json:"assets"`
	Materials []MaterialEntry `json:"materials"`
	Objects   []Object        `json:"objects"`
	Lights    []Light         `json:"lights"`
}

// Encode serializes the manifest to indented JSON.
func (m *Manifest) Encode() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// Decode parses manifest JSON, rejecting unrecognized format versions.
func Decode(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if m.FormatVersion != FormatVersion {
		return nil, fmt.Errorf("%w: %d (want %d)", ErrUnsupportedVersion, m.FormatVersion, FormatVersion)
	}
	return &m, nil
}
