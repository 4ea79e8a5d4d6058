package export

import (
	"github.com/Faultbox/scenepack/internal/scene"
	"github.com/Faultbox/scenepack/pkg/manifest"
	"github.com/Faultbox/scenepack/pkg/math"
)

// assembleManifest merges the scan result, the complexity report, and the
// serialized asset/material records into the versioned package descriptor.
// Serializing assets happens here as a side effect of key resolution.
func assembleManifest(result *ScanResult, report Report, w *assetWriter) (*manifest.Manifest, error) {
	objects := make([]manifest.Object, 0, len(result.Objects))
	var bounds boundsAccumulator

	for _, so := range result.Objects {
		t := so.Object.Transform()
		rec := manifest.Object{
			Name:   so.Object.Name(),
			Pos:    t.Position.Array(),
			Rot:    t.Rotation.Array(),
			Scale:  t.Scale.Array(),
			Active: so.Object.Active(),
		}

		if so.Mesh != nil {
			key, err := w.MeshKey(so.Mesh)
			if err != nil {
				return nil, err
			}
			if key != "" {
				rec.Mesh = key
				bounds.add(w.meshBounds[key], t)
			}
		}

		if so.Material != nil {
			key, err := w.MaterialKey(so.Material)
			if err != nil {
				return nil, err
			}
			rec.Material = key
		}

		if so.Collider != nil {
			col, err := colliderRecord(so.Collider, w)
			if err != nil {
				return nil, err
			}
			rec.Collider = col
		}

		objects = append(objects, rec)
	}

	lights := make([]manifest.Light, 0, len(result.Lights))
	for _, sl := range result.Lights {
		lights = append(lights, lightRecord(sl))
	}

	return &manifest.Manifest{
		FormatVersion: manifest.FormatVersion,
		Name:          result.SceneName,
		Bounds:        bounds.finish(),

		ComplexityUsed:            report.Used,
		ComplexityLimit:           report.Limit,
		ComplexityPercent:         report.Percent,
		ComplexityTriangles:       report.Triangles,
		ComplexityLights:          report.Lights,
		ComplexityColliderObjects: report.ColliderObjects,

		Assets:    w.assets,
		Materials: w.materials,
		Objects:   objects,
		Lights:    lights,
	}, nil
}

// colliderRecord converts a collider capability to its manifest descriptor.
// Mesh collider geometry goes through the same dedup registry as render
// meshes.
func colliderRecord(c *scene.Collider, w *assetWriter) (*manifest.Collider, error) {
	rec := &manifest.Collider{
		IsTrigger: c.IsTrigger,
		Center:    c.Center.Array(),
	}

	switch c.Shape {
	case scene.ColliderBox:
		rec.Type = manifest.ColliderBox
		size := c.Size.Array()
		rec.Size = &size
	case scene.ColliderSphere:
		rec.Type = manifest.ColliderSphere
		rec.Radius = c.Radius
	case scene.ColliderCapsule:
		rec.Type = manifest.ColliderCapsule
		rec.Radius = c.Radius
		rec.Height = c.Height
		rec.Direction = c.Direction
	case scene.ColliderMesh:
		rec.Type = manifest.ColliderMesh
		rec.Convex = c.Convex
		if c.Mesh != nil {
			key, err := w.MeshKey(c.Mesh)
			if err != nil {
				return nil, err
			}
			rec.Mesh = key
		}
	default:
		rec.Type = manifest.ColliderNone
	}

	return rec, nil
}

// lightRecord converts a scanned light to its manifest descriptor.
func lightRecord(sl ScannedLight) manifest.Light {
	t := sl.Object.Transform()

	kind := manifest.LightPoint
	switch sl.Light.Kind {
	case scene.LightSpot:
		kind = manifest.LightSpot
	case scene.LightDirectional:
		kind = manifest.LightDirectional
	case scene.LightArea:
		kind = manifest.LightArea
	}

	shadows := manifest.ShadowsNone
	switch sl.Light.Shadows {
	case scene.ShadowsHard:
		shadows = manifest.ShadowsHard
	case scene.ShadowsSoft:
		shadows = manifest.ShadowsSoft
	}

	spotAngle := float32(0)
	if kind == manifest.LightSpot {
		spotAngle = sl.Light.SpotAngle
	}

	return manifest.Light{
		Name:      sl.Object.Name(),
		Pos:       t.Position.Array(),
		Rot:       t.Rotation.Array(),
		Active:    sl.Object.Active(),
		Type:      kind,
		Color:     sl.Light.Color.Array(),
		Intensity: sl.Light.Intensity,
		Range:     sl.Light.Range,
		SpotAngle: spotAngle,
		Shadows:   shadows,
	}
}

// boundsAccumulator grows an axis-aligned world-space box around every
// exported renderable.
type boundsAccumulator struct {
	has      bool
	min, max math.Vec3
}

// add folds one mesh's local bounds, placed by the object transform, into
// the accumulated box.
func (b *boundsAccumulator) add(lb localBounds, t scene.Transform) {
	corners := [8]math.Vec3{
		{X: lb.min.X, Y: lb.min.Y, Z: lb.min.Z},
		{X: lb.max.X, Y: lb.min.Y, Z: lb.min.Z},
		{X: lb.min.X, Y: lb.max.Y, Z: lb.min.Z},
		{X: lb.max.X, Y: lb.max.Y, Z: lb.min.Z},
		{X: lb.min.X, Y: lb.min.Y, Z: lb.max.Z},
		{X: lb.max.X, Y: lb.min.Y, Z: lb.max.Z},
		{X: lb.min.X, Y: lb.max.Y, Z: lb.max.Z},
		{X: lb.max.X, Y: lb.max.Y, Z: lb.max.Z},
	}

	for _, corner := range corners {
		world := t.Rotation.Rotate(corner.MulElem(t.Scale)).Add(t.Position)
		if !b.has {
			b.has = true
			b.min, b.max = world, world
			continue
		}
		b.min = b.min.Min(world)
		b.max = b.max.Max(world)
	}
}

// finish returns the accumulated box, degenerating to a unit box at the
// origin when nothing rendered.
func (b *boundsAccumulator) finish() manifest.Bounds {
	if !b.has {
		return manifest.Bounds{Size: [3]float32{1, 1, 1}}
	}
	center := b.min.Add(b.max).Scale(0.5)
	size := b.max.Sub(b.min)
	return manifest.Bounds{Center: center.Array(), Size: size.Array()}
}
