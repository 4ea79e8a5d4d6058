package export

import (
	"go.uber.org/zap"

	"github.com/Faultbox/scenepack/internal/config"
	"github.com/Faultbox/scenepack/internal/logger"
	"github.com/Faultbox/scenepack/internal/scene"
)

// ScannedObject is one mesh-bearing and/or collider-bearing object found
// during a scan.
type ScannedObject struct {
	Object    scene.Object
	Mesh      scene.Mesh     // nil when the object only carries colliders
	Material  scene.Material // may be nil even with a mesh
	Skinned   bool
	Triangles int
	Collider  *scene.Collider // first collider on the object, nil when absent
}

// ScannedLight is one light-bearing object found during a scan.
type ScannedLight struct {
	Object scene.Object
	Light  scene.Light
}

// ScanResult aggregates one scan pass. It is created fresh per scan and
// read-only afterwards; the total complexity is derived by evaluating a
// Budget against the counts rather than stored here.
type ScanResult struct {
	SceneName       string
	Objects         []ScannedObject
	Lights          []ScannedLight
	Triangles       int
	LightCount      int
	ColliderObjects int
	Findings        []Finding
}

// HasRenderables reports whether any scanned object carries a mesh.
func (r *ScanResult) HasRenderables() bool {
	for _, o := range r.Objects {
		if o.Mesh != nil {
			return true
		}
	}
	return false
}

// Scanner performs a single classified pass over a scene graph.
type Scanner struct {
	classifier *Classifier
}

// NewScanner builds a scanner with the configured classifier allow-lists.
func NewScanner(cfg config.ClassifierConfig) *Scanner {
	return &Scanner{classifier: NewClassifier(cfg)}
}

// Scan visits every object the scene enumerates, in the scene's own order,
// exactly once. That order also drives dedup-map population later, so key
// assignment is deterministic for a fixed scene arrangement.
func (s *Scanner) Scan(sc scene.Scene) *ScanResult {
	result := &ScanResult{SceneName: sc.Name()}

	for _, obj := range sc.Objects() {
		scanned := ScannedObject{Object: obj}
		hasCollider := false
		hasLight := false

		for _, cp := range obj.Capabilities() {
			switch cp.Kind {
			case scene.KindMeshRenderer, scene.KindSkinnedRenderer:
				if scanned.Mesh != nil || cp.Mesh == nil {
					continue
				}
				scanned.Mesh = cp.Mesh
				scanned.Material = cp.Material
				scanned.Skinned = cp.Kind == scene.KindSkinnedRenderer
				scanned.Triangles = triangleCount(cp.Mesh)

			case scene.KindCollider:
				if scanned.Collider == nil {
					scanned.Collider = cp.Collider
				}
				// Collider-bearing objects count once toward complexity no
				// matter how many colliders they carry.
				hasCollider = true

			case scene.KindLight:
				if !hasLight && cp.Light != nil {
					hasLight = true
					result.Lights = append(result.Lights, ScannedLight{Object: obj, Light: *cp.Light})
					result.LightCount++
				}
			}
		}

		if hasCollider {
			result.ColliderObjects++
		}
		if scanned.Mesh != nil || scanned.Collider != nil {
			result.Triangles += scanned.Triangles
			result.Objects = append(result.Objects, scanned)
		}

		if finding := s.classifier.Classify(obj); finding != nil {
			result.Findings = append(result.Findings, *finding)
		}
	}

	return result
}

// triangleCount reads a mesh's triangle list length / 3. A resource read
// failure yields 0 triangles: malformed geometry must not abort an export.
func triangleCount(m scene.Mesh) int {
	indices, err := m.Triangles()
	if err != nil {
		logger.Log.Warn("mesh triangle read failed, counting 0",
			zap.String("mesh", m.Name()), zap.Error(err))
		return 0
	}
	return len(indices) / 3
}
