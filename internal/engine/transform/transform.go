package transform

import "voxelforge.ai/internal/engine/voxel"

// Transform is a canonical reorientation: up to three axis flips followed
// by a quarter-turn rotation about the vertical (y) axis. Flips always
// apply before the rotation, so every reachable reorientation has a
// representative in this form and equal transforms compare equal with ==.
type Transform struct {
	Rotation int  `json:"rotation"` // quarter turns, always in [0,3]
	FlipX    bool `json:"flip_x,omitempty"`
	FlipY    bool `json:"flip_y,omitempty"`
	FlipZ    bool `json:"flip_z,omitempty"`
}

// Identity is the zero transform.
var Identity = Transform{}

// NormalizeRotation converts a client-provided rotation value into a
// stable quarter-turn count in [0,3].
//
// It accepts either quarter-turns (0..3) or degrees (multiples of 90).
func NormalizeRotation(r int) int {
	// Treat large multiples of 90 as degrees.
	if r%90 == 0 && (r > 3 || r < -3) {
		r = r / 90
	}
	r %= 4
	if r < 0 {
		r += 4
	}
	return r
}

// New builds a canonical transform from a raw rotation (degrees or
// quarter-turns) and per-axis flips.
func New(rotation int, flipX, flipY, flipZ bool) Transform {
	return Transform{
		Rotation: NormalizeRotation(rotation),
		FlipX:    flipX,
		FlipY:    flipY,
		FlipZ:    flipZ,
	}
}

func (t Transform) IsIdentity() bool {
	return t == Identity
}

// SizeOf returns the bounding-box size after the transform: odd rotations
// swap the x and z extents, flips change nothing.
func (t Transform) SizeOf(size voxel.Vec3i) voxel.Vec3i {
	if t.Rotation&1 == 1 {
		return voxel.Vec3i{X: size.Z, Y: size.Y, Z: size.X}
	}
	return size
}

// Apply maps a local offset inside a bounding box of the given size:
// flips mirror each axis within its extent, then the rotation permutes
// the horizontal axes. The result lies inside SizeOf(size). All maps are
// exact integer maps; no rounding ever occurs.
func (t Transform) Apply(size, off voxel.Vec3i) voxel.Vec3i {
	x, y, z := off.X, off.Y, off.Z
	if t.FlipX {
		x = size.X - 1 - x
	}
	if t.FlipY {
		y = size.Y - 1 - y
	}
	if t.FlipZ {
		z = size.Z - 1 - z
	}
	switch t.Rotation & 3 {
	case 0:
		return voxel.Vec3i{X: x, Y: y, Z: z}
	case 1:
		return voxel.Vec3i{X: z, Y: y, Z: size.X - 1 - x}
	case 2:
		return voxel.Vec3i{X: size.X - 1 - x, Y: y, Z: size.Z - 1 - z}
	default: // 3
		return voxel.Vec3i{X: size.Z - 1 - z, Y: y, Z: x}
	}
}

// Compose folds "apply a, then apply b" into one canonical transform.
//
// Rotations add mod 4. Carrying b's flips leftward past a's rotation
// swaps their x/z axes when that rotation is odd; flips on the same axis
// then cancel by xor. Composition is associative and exact: the result
// applied to any box reproduces the two-step application bit for bit.
func Compose(a, b Transform) Transform {
	bfx, bfz := b.FlipX, b.FlipZ
	if a.Rotation&1 == 1 {
		bfx, bfz = bfz, bfx
	}
	return Transform{
		Rotation: (a.Rotation + b.Rotation) & 3,
		FlipX:    a.FlipX != bfx,
		FlipY:    a.FlipY != b.FlipY,
		FlipZ:    a.FlipZ != bfz,
	}
}
