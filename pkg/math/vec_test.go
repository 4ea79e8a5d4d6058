package math

import (
	"math"
	"testing"
)

const epsilon = 0.0001

func almostEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < epsilon
}

func TestVec3Add(t *testing.T) {
	v := Vec3{1, 2, 3}.Add(Vec3{4, 5, 6})
	if v.X != 5 || v.Y != 7 || v.Z != 9 {
		t.Errorf("expected (5,7,9), got (%v,%v,%v)", v.X, v.Y, v.Z)
	}
}

func TestVec3Cross(t *testing.T) {
	v := Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0})
	if v.X != 0 || v.Y != 0 || v.Z != 1 {
		t.Errorf("expected (0,0,1), got (%v,%v,%v)", v.X, v.Y, v.Z)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 0, 4}.Normalize()
	if !almostEqual(v.Length(), 1) {
		t.Errorf("normalized length should be 1, got %v", v.Length())
	}

	// Zero vector stays zero instead of dividing by zero.
	z := Vec3{}.Normalize()
	if z.X != 0 || z.Y != 0 || z.Z != 0 {
		t.Errorf("normalizing zero vector should yield zero, got %+v", z)
	}
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{1, 5, -2}
	b := Vec3{3, 2, -4}

	lo := a.Min(b)
	if lo.X != 1 || lo.Y != 2 || lo.Z != -4 {
		t.Errorf("Min: expected (1,2,-4), got (%v,%v,%v)", lo.X, lo.Y, lo.Z)
	}

	hi := a.Max(b)
	if hi.X != 3 || hi.Y != 5 || hi.Z != -2 {
		t.Errorf("Max: expected (3,5,-2), got (%v,%v,%v)", hi.X, hi.Y, hi.Z)
	}
}

func TestVec3MulElem(t *testing.T) {
	v := Vec3{2, 3, 4}.MulElem(Vec3{5, 6, 7})
	if v.X != 10 || v.Y != 18 || v.Z != 28 {
		t.Errorf("expected (10,18,28), got (%v,%v,%v)", v.X, v.Y, v.Z)
	}
}
