package scene

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/scenepack/pkg/math"
)

// fileScene is the YAML scene description consumed by the CLI. Meshes and
// materials are declared once and referenced by name from objects, which is
// also how shared-resource deduplication is exercised end to end.
type fileScene struct {
	Name      string         `yaml:"name"`
	Meshes    []fileMesh     `yaml:"meshes"`
	Materials []fileMaterial `yaml:"materials"`
	Objects   []fileObject   `yaml:"objects"`
}

type fileMesh struct {
	Name      string       `yaml:"name"`
	Positions [][3]float32 `yaml:"positions"`
	UVs       [][2]float32 `yaml:"uvs"`
	Normals   [][3]float32 `yaml:"normals"`
	Triangles []int        `yaml:"triangles"`
}

type fileMaterial struct {
	Name       string      `yaml:"name"`
	BaseColor  *[4]float32 `yaml:"base_color"`
	Metallic   *float32    `yaml:"metallic"`
	Smoothness *float32    `yaml:"smoothness"`
	Albedo     string      `yaml:"albedo"` // image path, relative to the scene file
	Filter     string      `yaml:"filter"` // point, bilinear, trilinear
}

type fileObject struct {
	Name       string          `yaml:"name"`
	Inactive   bool            `yaml:"inactive"`
	Position   [3]float32      `yaml:"position"`
	Rotation   *[4]float32     `yaml:"rotation"`
	Scale      *[3]float32     `yaml:"scale"`
	Mesh       string          `yaml:"mesh"`     // mesh name reference
	Material   string          `yaml:"material"` // material name reference
	Skinned    bool            `yaml:"skinned"`
	Collider   *fileCollider   `yaml:"collider"`
	Light      *fileLight      `yaml:"light"`
	Components []fileComponent `yaml:"components"`
}

type fileCollider struct {
	Type      string     `yaml:"type"` // box, sphere, capsule, mesh
	Trigger   bool       `yaml:"trigger"`
	Center    [3]float32 `yaml:"center"`
	Size      [3]float32 `yaml:"size"`
	Radius    float32    `yaml:"radius"`
	Height    float32    `yaml:"height"`
	Direction int        `yaml:"direction"`
	Convex    bool       `yaml:"convex"`
	Mesh      string     `yaml:"mesh"` // mesh name for mesh colliders
}

type fileLight struct {
	Type      string     `yaml:"type"` // point, spot, directional, area
	Color     [4]float32 `yaml:"color"`
	Intensity float32    `yaml:"intensity"`
	Range     float32    `yaml:"range"`
	SpotAngle float32    `yaml:"spot_angle"`
	Shadows   string     `yaml:"shadows"` // none, hard, soft
}

type fileComponent struct {
	Type      string `yaml:"type"`
	Qualified string `yaml:"qualified"`
	Script    bool   `yaml:"script"`
}

// LoadFile reads a YAML scene description and builds a Memory scene from it.
// Albedo image paths are resolved relative to the scene file's directory.
func LoadFile(path string) (*Memory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}

	var fs fileScene
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return nil, fmt.Errorf("parsing scene file %s: %w", path, err)
	}

	return buildScene(&fs, filepath.Dir(path))
}

func buildScene(fs *fileScene, baseDir string) (*Memory, error) {
	name := fs.Name
	if name == "" {
		name = "scene"
	}
	s := NewMemory(name)

	meshes := make(map[string]*MeshData, len(fs.Meshes))
	for _, fm := range fs.Meshes {
		if fm.Name == "" {
			return nil, fmt.Errorf("mesh without a name")
		}
		if _, dup := meshes[fm.Name]; dup {
			return nil, fmt.Errorf("duplicate mesh name %q", fm.Name)
		}
		meshes[fm.Name] = buildMesh(&fm)
	}

	materials := make(map[string]*MaterialData, len(fs.Materials))
	for _, fm := range fs.Materials {
		if fm.Name == "" {
			return nil, fmt.Errorf("material without a name")
		}
		if _, dup := materials[fm.Name]; dup {
			return nil, fmt.Errorf("duplicate material name %q", fm.Name)
		}
		mat, err := buildMaterial(&fm, baseDir)
		if err != nil {
			return nil, err
		}
		materials[fm.Name] = mat
	}

	for _, fo := range fs.Objects {
		if err := buildObject(s, &fo, meshes, materials); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func buildMesh(fm *fileMesh) *MeshData {
	m := NewMesh(fm.Name)
	for _, p := range fm.Positions {
		m.VertexPositions = append(m.VertexPositions, math.Vec3{X: p[0], Y: p[1], Z: p[2]})
	}
	for _, uv := range fm.UVs {
		m.VertexUVs = append(m.VertexUVs, math.Vec2{X: uv[0], Y: uv[1]})
	}
	for _, n := range fm.Normals {
		m.VertexNormals = append(m.VertexNormals, math.Vec3{X: n[0], Y: n[1], Z: n[2]})
	}
	m.TriangleIndices = fm.Triangles
	return m
}

func buildMaterial(fm *fileMaterial, baseDir string) (*MaterialData, error) {
	mat := NewMaterial(fm.Name)
	if fm.BaseColor != nil {
		c := *fm.BaseColor
		mat.Colors["_BaseColor"] = math.Vec4{X: c[0], Y: c[1], Z: c[2], W: c[3]}
	}
	if fm.Metallic != nil {
		mat.Floats["_Metallic"] = *fm.Metallic
	}
	if fm.Smoothness != nil {
		mat.Floats["_Smoothness"] = *fm.Smoothness
	}
	if fm.Albedo != "" {
		tex, err := LoadTextureFile(filepath.Join(baseDir, fm.Albedo), parseFilter(fm.Filter))
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", fm.Name, err)
		}
		mat.Textures["_BaseMap"] = tex
	}
	return mat, nil
}

func buildObject(s *Memory, fo *fileObject, meshes map[string]*MeshData, materials map[string]*MaterialData) error {
	obj := s.AddObject(fo.Name).SetActive(!fo.Inactive)

	t := Transform{
		Position: math.Vec3{X: fo.Position[0], Y: fo.Position[1], Z: fo.Position[2]},
		Rotation: math.QuatIdentity(),
		Scale:    math.Vec3{X: 1, Y: 1, Z: 1},
	}
	if fo.Rotation != nil {
		r := *fo.Rotation
		t.Rotation = math.Quat{X: r[0], Y: r[1], Z: r[2], W: r[3]}.Normalize()
	}
	if fo.Scale != nil {
		sc := *fo.Scale
		t.Scale = math.Vec3{X: sc[0], Y: sc[1], Z: sc[2]}
	}
	obj.SetTransform(t)

	var material Material
	if fo.Material != "" {
		mat, ok := materials[fo.Material]
		if !ok {
			return fmt.Errorf("object %q references unknown material %q", fo.Name, fo.Material)
		}
		material = mat
	}

	if fo.Mesh != "" {
		mesh, ok := meshes[fo.Mesh]
		if !ok {
			return fmt.Errorf("object %q references unknown mesh %q", fo.Name, fo.Mesh)
		}
		if fo.Skinned {
			obj.AddSkinnedRenderer(mesh, material)
		} else {
			obj.AddMeshRenderer(mesh, material)
		}
	}

	if fo.Collider != nil {
		col, err := buildCollider(fo.Collider, fo.Name, meshes)
		if err != nil {
			return err
		}
		obj.AddCollider(col)
	}

	if fo.Light != nil {
		obj.AddLight(buildLight(fo.Light))
	}

	for _, fc := range fo.Components {
		if fc.Script {
			obj.AddBehavior(fc.Type, fc.Qualified)
		} else {
			obj.AddComponent(fc.Type, fc.Qualified)
		}
	}

	return nil
}

func buildCollider(fc *fileCollider, objName string, meshes map[string]*MeshData) (Collider, error) {
	col := Collider{
		IsTrigger: fc.Trigger,
		Center:    math.Vec3{X: fc.Center[0], Y: fc.Center[1], Z: fc.Center[2]},
	}
	switch fc.Type {
	case "box", "":
		col.Shape = ColliderBox
		col.Size = math.Vec3{X: fc.Size[0], Y: fc.Size[1], Z: fc.Size[2]}
	case "sphere":
		col.Shape = ColliderSphere
		col.Radius = fc.Radius
	case "capsule":
		col.Shape = ColliderCapsule
		col.Radius = fc.Radius
		col.Height = fc.Height
		col.Direction = fc.Direction
	case "mesh":
		col.Shape = ColliderMesh
		col.Convex = fc.Convex
		if fc.Mesh != "" {
			mesh, ok := meshes[fc.Mesh]
			if !ok {
				return col, fmt.Errorf("object %q collider references unknown mesh %q", objName, fc.Mesh)
			}
			col.Mesh = mesh
		}
	default:
		return col, fmt.Errorf("object %q: unknown collider type %q", objName, fc.Type)
	}
	return col, nil
}

func buildLight(fl *fileLight) Light {
	l := Light{
		Color:     math.Vec4{X: fl.Color[0], Y: fl.Color[1], Z: fl.Color[2], W: fl.Color[3]},
		Intensity: fl.Intensity,
		Range:     fl.Range,
	}
	switch fl.Type {
	case "spot":
		l.Kind = LightSpot
		l.SpotAngle = fl.SpotAngle
	case "directional":
		l.Kind = LightDirectional
	case "area":
		l.Kind = LightArea
	default:
		l.Kind = LightPoint
	}
	switch fl.Shadows {
	case "hard":
		l.Shadows = ShadowsHard
	case "soft":
		l.Shadows = ShadowsSoft
	default:
		l.Shadows = ShadowsNone
	}
	return l
}

func parseFilter(s string) FilterMode {
	switch s {
	case "point":
		return FilterPoint
	case "trilinear":
		return FilterTrilinear
	default:
		return FilterBilinear
	}
}

// LoadTextureFile decodes an image file into a texture resource. Decoding on
// load is the rasterization step for file-backed textures.
func LoadTextureFile(path string, filter FilterMode) (*TextureData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding texture %s: %w", path, err)
	}

	rgba, ok := img.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(img.Bounds())
		draw.Draw(rgba, img.Bounds(), img, img.Bounds().Min, draw.Src)
	}

	name := filepath.Base(path)
	if ext := filepath.Ext(name); ext != "" {
		name = name[:len(name)-len(ext)]
	}
	return NewTexture(name, rgba, filter), nil
}
