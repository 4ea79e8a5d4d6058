package export

import (
	"testing"

	"github.com/Faultbox/scenepack/internal/config"
	"github.com/Faultbox/scenepack/internal/scene"
	"github.com/Faultbox/scenepack/pkg/math"
)

func defaultClassifier() *Classifier {
	return NewClassifier(config.Default().Classifier)
}

func TestClassify_SupportedObjectIsClean(t *testing.T) {
	s := scene.NewMemory("test")
	mesh := scene.NewMesh("cube")
	mesh.VertexPositions = []math.Vec3{{X: 1}}

	obj := s.AddObject("ok").
		AddMeshRenderer(mesh, nil).
		AddCollider(scene.Collider{Shape: scene.ColliderBox}).
		AddLight(scene.Light{Kind: scene.LightPoint})

	if f := defaultClassifier().Classify(obj); f != nil {
		t.Errorf("fully supported object must yield no finding, got %+v", f)
	}
}

func TestClassify_AllowListedCompanionData(t *testing.T) {
	s := scene.NewMemory("test")
	obj := s.AddObject("lamp").
		AddLight(scene.Light{Kind: scene.LightPoint}).
		AddComponent("AdditionalLightData", "rendering.AdditionalLightData")

	if f := defaultClassifier().Classify(obj); f != nil {
		t.Errorf("allow-listed companion data must not be flagged, got categories %v", f.Categories)
	}
}

func TestClassify_Camera(t *testing.T) {
	s := scene.NewMemory("test")
	obj := s.AddObject("cam").AddComponent("Camera", "rendering.Camera")

	f := defaultClassifier().Classify(obj)
	if f == nil {
		t.Fatal("camera must be flagged")
	}
	if len(f.Categories) != 1 || f.Categories[0] != "Cameras" {
		t.Errorf("expected exactly [Cameras], got %v", f.Categories)
	}
}

func TestClassify_RendererWithoutMesh(t *testing.T) {
	s := scene.NewMemory("test")
	obj := s.AddObject("broken").AddMeshRenderer(nil, nil)

	f := defaultClassifier().Classify(obj)
	if f == nil {
		t.Fatal("renderer without a mesh resource must be flagged")
	}
	if f.Categories[0] != "MeshRenderer components" {
		t.Errorf("expected per-type catch-all, got %v", f.Categories)
	}
}

func TestClassify_ScriptsAndAllowList(t *testing.T) {
	cfg := config.Default().Classifier
	cfg.AllowedScripts = []string{"game.TrustedSpawner"}
	c := NewClassifier(cfg)

	s := scene.NewMemory("test")
	trusted := s.AddObject("a").AddBehavior("TrustedSpawner", "game.TrustedSpawner")
	if f := c.Classify(trusted); f != nil {
		t.Errorf("trusted script must not be flagged, got %v", f.Categories)
	}

	rogue := s.AddObject("b").AddBehavior("Spinner", "game.Spinner")
	f := c.Classify(rogue)
	if f == nil || f.Categories[0] != "Scripts" {
		t.Errorf("untrusted script must be categorized Scripts, got %+v", f)
	}
}

func TestClassify_CategoriesDeduplicatedFirstSeen(t *testing.T) {
	s := scene.NewMemory("test")
	obj := s.AddObject("kitchen sink").
		AddComponent("Camera", "rendering.Camera").
		AddComponent("AudioListener", "audio.AudioListener"). // same category as Camera
		AddBehavior("Spinner", "game.Spinner").
		AddComponent("Terrain", "terrain.Terrain")

	f := defaultClassifier().Classify(obj)
	if f == nil {
		t.Fatal("expected a finding")
	}

	want := []string{"Cameras", "Scripts", "Terrain"}
	if len(f.Categories) != len(want) {
		t.Fatalf("expected categories %v, got %v", want, f.Categories)
	}
	for i := range want {
		if f.Categories[i] != want[i] {
			t.Errorf("category %d: expected %q, got %q", i, want[i], f.Categories[i])
		}
	}
	if len(f.Unsupported) != 4 {
		t.Errorf("expected all 4 offending capabilities recorded, got %d", len(f.Unsupported))
	}
}

func TestSummaryLine(t *testing.T) {
	tests := []struct {
		name       string
		categories []string
		want       string
	}{
		{"one", []string{"Cameras"},
			"Cameras are not currently supported by exports."},
		{"two", []string{"Cameras", "Scripts"},
			"Cameras and Scripts are not currently supported by exports."},
		{"three", []string{"Cameras", "Scripts", "Terrain"},
			"Cameras, Scripts, and Terrain are not currently supported by exports."},
		{"four", []string{"Cameras", "Scripts", "Terrain", "UI"},
			"Cameras, Scripts, Terrain, and UI are not currently supported by exports."},
		{"none", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SummaryLine(tt.categories); got != tt.want {
				t.Errorf("SummaryLine(%v) = %q, want %q", tt.categories, got, tt.want)
			}
		})
	}
}

func TestCategorize_WellKnownTypes(t *testing.T) {
	tests := []struct {
		typeName string
		kind     scene.CapabilityKind
		want     string
	}{
		{"Camera", scene.KindOther, "Cameras"},
		{"Canvas", scene.KindOther, "UI"},
		{"ParticleSystem", scene.KindOther, "Particle systems"},
		{"Terrain", scene.KindOther, "Terrain"},
		{"VideoPlayer", scene.KindOther, "Video players"},
		{"Rigidbody", scene.KindOther, "Physics bodies"},
		{"Whatever", scene.KindBehavior, "Scripts"},
		{"Gizmo", scene.KindOther, "Gizmo components"},
	}

	for _, tt := range tests {
		got := categorize(scene.Capability{Kind: tt.kind, TypeName: tt.typeName})
		if got != tt.want {
			t.Errorf("categorize(%s) = %q, want %q", tt.typeName, got, tt.want)
		}
	}
}
