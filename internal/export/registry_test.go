package export

import "testing"

func TestRegistry_SequentialKeys(t *testing.T) {
	r := NewRegistry()

	key1, created := r.GetOrCreate(ResourceMesh, 10)
	if !created || key1 != "mesh_0001" {
		t.Errorf("expected mesh_0001 created, got %q created=%v", key1, created)
	}

	key2, created := r.GetOrCreate(ResourceMesh, 20)
	if !created || key2 != "mesh_0002" {
		t.Errorf("expected mesh_0002 created, got %q created=%v", key2, created)
	}
}

func TestRegistry_Dedup(t *testing.T) {
	r := NewRegistry()

	key1, _ := r.GetOrCreate(ResourceTexture, 7)
	key2, created := r.GetOrCreate(ResourceTexture, 7)

	if created {
		t.Error("second call for the same identity must not allocate")
	}
	if key1 != key2 {
		t.Errorf("same identity must map to the same key: %q vs %q", key1, key2)
	}
	if r.Len(ResourceTexture) != 1 {
		t.Errorf("expected 1 texture key allocated, got %d", r.Len(ResourceTexture))
	}
}

func TestRegistry_KindsAreIndependent(t *testing.T) {
	r := NewRegistry()

	meshKey, _ := r.GetOrCreate(ResourceMesh, 1)
	texKey, _ := r.GetOrCreate(ResourceTexture, 1)
	matKey, _ := r.GetOrCreate(ResourceMaterial, 1)

	if meshKey != "mesh_0001" || texKey != "texture_0001" || matKey != "material_0001" {
		t.Errorf("same id under different kinds must get independent keys: %q %q %q",
			meshKey, texKey, matKey)
	}
}
