package export

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"

	"github.com/Faultbox/scenepack/internal/logger"
	"github.com/Faultbox/scenepack/internal/scene"
	"github.com/Faultbox/scenepack/pkg/manifest"
	"github.com/Faultbox/scenepack/pkg/math"
	"github.com/Faultbox/scenepack/pkg/objfile"
)

// ShaderTag identifies the simplified lit material model every exported
// material is expressed in.
const ShaderTag = "scenepack/simple-lit"

// minTextureDim is the raster floor: smaller source textures are upsampled
// so the written image satisfies downstream container constraints.
const minTextureDim = 2

// localBounds is an axis-aligned box in mesh-local space.
type localBounds struct {
	min, max math.Vec3
}

// assetWriter serializes shared resources beneath the working directory,
// using the registry for naming and dedup. Resource read failures are
// swallowed (the referencing record simply omits the key); only disk write
// failures propagate as errors.
type assetWriter struct {
	root     string
	registry *Registry

	assets    []manifest.AssetEntry
	materials []manifest.MaterialEntry

	meshBounds map[string]localBounds // mesh key -> local AABB
	failed     map[resourceIdentity]bool
}

func newAssetWriter(root string, registry *Registry) *assetWriter {
	return &assetWriter{
		root:       root,
		registry:   registry,
		meshBounds: map[string]localBounds{},
		failed:     map[resourceIdentity]bool{},
	}
}

// sanitizeFileName replaces every character that is not portable in a file
// name with '_' and trims surrounding whitespace first; an empty result
// falls back to the resource's assigned key.
func sanitizeFileName(name, key string) string {
	name = strings.TrimSpace(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	out := b.String()
	if strings.Trim(out, "_.") == "" {
		return key
	}
	return out
}

// MeshKey serializes the mesh on first sight and returns its key. An empty
// key means the mesh could not be read and the referencing record should
// omit it; a non-nil error means a disk write failed and the export must
// abort.
func (w *assetWriter) MeshKey(m scene.Mesh) (string, error) {
	ident := resourceIdentity{ResourceMesh, m.ID()}
	if w.failed[ident] {
		return "", nil
	}

	key, created := w.registry.GetOrCreate(ResourceMesh, m.ID())
	if !created {
		return key, nil
	}

	relPath, err := w.writeMesh(m, key)
	if err != nil {
		return "", err
	}
	if relPath == "" {
		w.failed[ident] = true
		return "", nil
	}

	w.assets = append(w.assets, manifest.AssetEntry{
		Key:   key,
		Value: manifest.Asset{Type: manifest.AssetMesh, Path: relPath},
	})
	return key, nil
}

func (w *assetWriter) writeMesh(m scene.Mesh, key string) (string, error) {
	positions, err := m.Positions()
	if err != nil || len(positions) == 0 {
		logger.Log.Warn("mesh positions unreadable, skipping asset",
			zap.String("mesh", m.Name()), zap.Error(err))
		return "", nil
	}
	triangles, err := m.Triangles()
	if err != nil {
		logger.Log.Warn("mesh triangles unreadable, skipping asset",
			zap.String("mesh", m.Name()), zap.Error(err))
		return "", nil
	}
	// Optional attributes: absence is fine, the encoder guards lengths.
	normals, _ := m.Normals()
	uvs, _ := m.UVs()

	om := &objfile.Mesh{
		Name:      m.Name(),
		Positions: positions,
		UVs:       uvs,
		Normals:   normals,
		Triangles: triangles,
	}

	relPath := path.Join("meshes", fmt.Sprintf("%s_%s.obj", sanitizeFileName(m.Name(), key), key))
	f, err := os.Create(filepath.Join(w.root, filepath.FromSlash(relPath)))
	if err != nil {
		return "", fmt.Errorf("creating mesh file: %w", err)
	}

	if err := objfile.Encode(f, om); err != nil {
		f.Close()
		if errors.Is(err, objfile.ErrIndexOutOfRange) || errors.Is(err, objfile.ErrPartialTriangles) || errors.Is(err, objfile.ErrNoPositions) {
			// Malformed geometry is a per-resource failure, not a fatal one.
			logger.Log.Warn("mesh geometry invalid, skipping asset",
				zap.String("mesh", m.Name()), zap.Error(err))
			_ = os.Remove(filepath.Join(w.root, filepath.FromSlash(relPath)))
			return "", nil
		}
		return "", fmt.Errorf("writing mesh %s: %w", m.Name(), err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("writing mesh %s: %w", m.Name(), err)
	}

	bounds := localBounds{min: positions[0], max: positions[0]}
	for _, p := range positions[1:] {
		bounds.min = bounds.min.Min(p)
		bounds.max = bounds.max.Max(p)
	}
	w.meshBounds[key] = bounds

	return relPath, nil
}

// TextureKey serializes the texture on first sight and returns its key,
// with the same failure semantics as MeshKey.
func (w *assetWriter) TextureKey(t scene.Texture) (string, error) {
	ident := resourceIdentity{ResourceTexture, t.ID()}
	if w.failed[ident] {
		return "", nil
	}

	key, created := w.registry.GetOrCreate(ResourceTexture, t.ID())
	if !created {
		return key, nil
	}

	img, err := t.Rasterize()
	if err != nil {
		logger.Log.Warn("texture rasterization failed, skipping asset",
			zap.String("texture", t.Name()), zap.Error(err))
		w.failed[ident] = true
		return "", nil
	}

	img = enforceRasterFloor(img)

	relPath := path.Join("textures", fmt.Sprintf("%s_%s.png", sanitizeFileName(t.Name(), key), key))
	f, err := os.Create(filepath.Join(w.root, filepath.FromSlash(relPath)))
	if err != nil {
		return "", fmt.Errorf("creating texture file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("writing texture %s: %w", t.Name(), err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("writing texture %s: %w", t.Name(), err)
	}

	w.assets = append(w.assets, manifest.AssetEntry{
		Key:   key,
		Value: manifest.Asset{Type: manifest.AssetTexture, Path: relPath},
	})
	return key, nil
}

// enforceRasterFloor upsamples images below the minimum dimensions.
func enforceRasterFloor(img *image.RGBA) *image.RGBA {
	wpx := img.Bounds().Dx()
	hpx := img.Bounds().Dy()
	if wpx >= minTextureDim && hpx >= minTextureDim {
		return img
	}
	if wpx < minTextureDim {
		wpx = minTextureDim
	}
	if hpx < minTextureDim {
		hpx = minTextureDim
	}

	dst := image.NewRGBA(image.Rect(0, 0, wpx, hpx))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

// Material property names: the primary name is tried first, then the legacy
// fallback. Absent properties leave record fields at their defaults.
const (
	propBaseColor  = "_BaseColor"
	propLegacyTint = "_Color"
	propMetallic   = "_Metallic"
	propSmoothness = "_Smoothness"
	propGlossiness = "_Glossiness"
	propBaseMap    = "_BaseMap"
	propLegacyMap  = "_MainTex"
)

// defaultSmoothness applies when a material exposes no smoothness property,
// yielding roughness 0.5.
const defaultSmoothness = 0.5

// MaterialKey records the material on first sight and returns its key.
// Albedo texture serialization happens here; a texture that fails to
// serialize leaves the albedo fields empty.
func (w *assetWriter) MaterialKey(m scene.Material) (string, error) {
	key, created := w.registry.GetOrCreate(ResourceMaterial, m.ID())
	if !created {
		return key, nil
	}

	rec := manifest.Material{Shader: ShaderTag}

	if tint, ok := m.ColorProperty(propBaseColor); ok {
		arr := tint.Array()
		rec.Tint = &arr
	} else if tint, ok := m.ColorProperty(propLegacyTint); ok {
		arr := tint.Array()
		rec.Tint = &arr
	}

	if metallic, ok := m.FloatProperty(propMetallic); ok {
		rec.Metallic = clamp01(metallic)
	}

	smoothness := float32(defaultSmoothness)
	if s, ok := m.FloatProperty(propSmoothness); ok {
		smoothness = s
	} else if s, ok := m.FloatProperty(propGlossiness); ok {
		smoothness = s
	}
	rec.Roughness = 1 - clamp01(smoothness)

	tex, ok := m.TextureProperty(propBaseMap)
	if !ok {
		tex, ok = m.TextureProperty(propLegacyMap)
	}
	if ok {
		texKey, err := w.TextureKey(tex)
		if err != nil {
			return "", err
		}
		if texKey != "" {
			rec.Albedo = texKey
			rec.AlbedoFilter = tex.FilterMode().String()
		}
	}

	w.materials = append(w.materials, manifest.MaterialEntry{Key: key, Value: rec})
	return key, nil
}

func clamp01(f float32) float32 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
