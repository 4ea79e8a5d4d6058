// Package export implements the scene export pipeline: scanning and
// classification, complexity accounting, content-addressed asset
// deduplication and serialization, manifest assembly, packaging, and the
// unsupported-content remediation loop.
package export

import "fmt"

// ResourceKind partitions registry keys by the kind of shared resource.
type ResourceKind string

const (
	ResourceMesh     ResourceKind = "mesh"
	ResourceTexture  ResourceKind = "texture"
	ResourceMaterial ResourceKind = "material"
)

type resourceIdentity struct {
	kind ResourceKind
	id   int64
}

// Registry assigns stable, monotonically-numbered keys to shared resources
// within one export run, guaranteeing at most one serialized copy per
// distinct resource. Keys are never reused across kinds or revoked mid-run;
// the maps are scoped to the run and never persisted.
type Registry struct {
	counters map[ResourceKind]int
	keys     map[resourceIdentity]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		counters: map[ResourceKind]int{},
		keys:     map[resourceIdentity]string{},
	}
}

// GetOrCreate returns the key for the resource identified by (kind, id),
// allocating the next sequential key of the form <kind>_<zero-padded counter>
// on first sight. created reports whether this call allocated the key.
func (r *Registry) GetOrCreate(kind ResourceKind, id int64) (key string, created bool) {
	ident := resourceIdentity{kind, id}
	if key, ok := r.keys[ident]; ok {
		return key, false
	}

	r.counters[kind]++
	key = fmt.Sprintf("%s_%04d", kind, r.counters[kind])
	r.keys[ident] = key
	return key, true
}

// Len returns how many keys of the given kind have been allocated.
func (r *Registry) Len(kind ResourceKind) int {
	return r.counters[kind]
}
