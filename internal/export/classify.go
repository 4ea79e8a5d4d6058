package export

import (
	"strings"

	"github.com/Faultbox/scenepack/internal/config"
	"github.com/Faultbox/scenepack/internal/scene"
)

// Finding is one scene object carrying at least one unsupported capability,
// with the de-duplicated category labels it triggered in first-seen order.
type Finding struct {
	Object     scene.Object
	Categories []string
	// Unsupported lists the offending capabilities, which is what the
	// "Clean all" remediation removes.
	Unsupported []scene.Capability
}

// Classifier partitions an object's capabilities into supported and
// unsupported and maps each unsupported one to a category label.
type Classifier struct {
	allowedComponents map[string]bool
	allowedScripts    map[string]bool
}

// NewClassifier builds a classifier from the configured allow-lists.
func NewClassifier(cfg config.ClassifierConfig) *Classifier {
	c := &Classifier{
		allowedComponents: make(map[string]bool, len(cfg.AllowedComponents)),
		allowedScripts:    make(map[string]bool, len(cfg.AllowedScripts)),
	}
	for _, name := range cfg.AllowedComponents {
		c.allowedComponents[name] = true
	}
	for _, name := range cfg.AllowedScripts {
		c.allowedScripts[name] = true
	}
	return c
}

// Classify inspects one object and returns its finding, or nil when every
// attached capability is supported. An object is reported at most once; its
// category list is de-duplicated in first-seen order.
func (c *Classifier) Classify(obj scene.Object) *Finding {
	var finding *Finding
	seen := map[string]bool{}

	for _, cp := range obj.Capabilities() {
		if c.supported(cp) {
			continue
		}
		if finding == nil {
			finding = &Finding{Object: obj}
		}
		finding.Unsupported = append(finding.Unsupported, cp)

		label := categorize(cp)
		if !seen[label] {
			seen[label] = true
			finding.Categories = append(finding.Categories, label)
		}
	}

	return finding
}

// supported reports whether a capability is inside the exportable feature
// set: transforms, renderers with a bound mesh, colliders, lights,
// allow-listed auxiliary components, and explicitly trusted scripts.
func (c *Classifier) supported(cp scene.Capability) bool {
	switch cp.Kind {
	case scene.KindTransform, scene.KindCollider, scene.KindLight:
		return true
	case scene.KindMeshRenderer, scene.KindSkinnedRenderer:
		return cp.Mesh != nil
	case scene.KindBehavior:
		return c.allowedScripts[cp.TypeName] || c.allowedScripts[cp.QualifiedName]
	default:
		return c.allowedComponents[cp.TypeName] || c.allowedComponents[cp.QualifiedName]
	}
}

// categoryRule maps a set of type names to one category label.
type categoryRule struct {
	label string
	types map[string]bool
}

// categoryRules is the ordered rule set; the first match wins. Well-known
// categories precede the Scripts catch-all for behaviors, which precedes the
// final per-type catch-all.
var categoryRules = []categoryRule{
	{"Cameras", set("Camera", "AudioListener")},
	{"UI", set("Canvas", "CanvasRenderer", "CanvasScaler", "GraphicRaycaster", "RectTransform")},
	{"Particle systems", set("ParticleSystem", "ParticleSystemRenderer")},
	{"Terrain", set("Terrain", "TerrainCollider", "Tree")},
	{"Video players", set("VideoPlayer")},
	{"Physics bodies", set("Rigidbody", "Rigidbody2D", "ConstantForce", "CharacterJoint", "HingeJoint", "FixedJoint", "SpringJoint")},
}

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// categorize maps one unsupported capability to exactly one category label.
func categorize(cp scene.Capability) string {
	for _, rule := range categoryRules {
		if rule.types[cp.TypeName] {
			return rule.label
		}
	}
	if cp.Kind == scene.KindBehavior {
		return "Scripts"
	}
	return cp.TypeName + " components"
}

// SummaryLine renders the ordered category labels as the unsupported-content
// sentence. The exact punctuation is a display contract: one category reads
// "X are not currently supported by exports.", two read "X and Y are ...",
// three or more use an oxford comma before the final "and".
func SummaryLine(categories []string) string {
	var subject string
	switch len(categories) {
	case 0:
		return ""
	case 1:
		subject = categories[0]
	case 2:
		subject = categories[0] + " and " + categories[1]
	default:
		subject = strings.Join(categories[:len(categories)-1], ", ") + ", and " + categories[len(categories)-1]
	}
	return subject + " are not currently supported by exports."
}

// findingCategories returns the de-duplicated union of category labels
// across findings, in first-seen order.
func findingCategories(findings []Finding) []string {
	seen := map[string]bool{}
	var out []string
	for _, f := range findings {
		for _, label := range f.Categories {
			if !seen[label] {
				seen[label] = true
				out = append(out, label)
			}
		}
	}
	return out
}
