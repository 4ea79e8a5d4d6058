package math

// Vec4 is a 4D vector, used for RGBA colors and tints.
type Vec4 struct {
	X, Y, Z, W float32
}

// Scale returns v * scalar.
func (v Vec4) Scale(s float32) Vec4 {
	return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s}
}

// Array returns the vector as a fixed-size array for serialization.
func (v Vec4) Array() [4]float32 {
	return [4]float32{v.X, v.Y, v.Z, v.W}
}
