package transform

import (
	"testing"

	"voxelforge.ai/internal/engine/voxel"
)

func TestNormalizeRotation_AcceptsDegreesAndQuarterTurns(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{in: 0, want: 0},
		{in: 1, want: 1},
		{in: 2, want: 2},
		{in: 3, want: 3},
		{in: 4, want: 0},
		{in: -1, want: 3},
		{in: 90, want: 1},
		{in: 180, want: 2},
		{in: 270, want: 3},
		{in: 360, want: 0},
		{in: -90, want: 3},
	}
	for _, c := range cases {
		if got := NormalizeRotation(c.in); got != c.want {
			t.Fatalf("NormalizeRotation(%d)=%d want %d", c.in, got, c.want)
		}
	}
}

func allTransforms() []Transform {
	var out []Transform
	for rot := 0; rot < 4; rot++ {
		for bits := 0; bits < 8; bits++ {
			out = append(out, Transform{
				Rotation: rot,
				FlipX:    bits&1 != 0,
				FlipY:    bits&2 != 0,
				FlipZ:    bits&4 != 0,
			})
		}
	}
	return out
}

func TestCompose_IdentityLaws(t *testing.T) {
	for _, tr := range allTransforms() {
		if got := Compose(Identity, tr); got != tr {
			t.Fatalf("Compose(Identity, %+v)=%+v", tr, got)
		}
		if got := Compose(tr, Identity); got != tr {
			t.Fatalf("Compose(%+v, Identity)=%+v", tr, got)
		}
	}
}

func TestCompose_FlipsCancel(t *testing.T) {
	for _, tr := range []Transform{
		{FlipX: true},
		{FlipY: true},
		{FlipZ: true},
	} {
		if got := Compose(tr, tr); got != Identity {
			t.Fatalf("Compose(%+v, %+v)=%+v want identity", tr, tr, got)
		}
	}
}

func TestCompose_FourQuarterTurnsIsIdentity(t *testing.T) {
	q := Transform{Rotation: 1}
	acc := Identity
	for i := 0; i < 4; i++ {
		acc = Compose(acc, q)
	}
	if acc != Identity {
		t.Fatalf("four quarter turns = %+v want identity", acc)
	}
}

// Compose must reproduce sequential application exactly, for every pair of
// transforms and every cell of an asymmetric box.
func TestCompose_MatchesSequentialApply(t *testing.T) {
	size := voxel.Vec3i{X: 2, Y: 3, Z: 4}
	all := allTransforms()
	for _, a := range all {
		for _, b := range all {
			c := Compose(a, b)
			mid := a.SizeOf(size)
			if got, want := c.SizeOf(size), b.SizeOf(mid); got != want {
				t.Fatalf("SizeOf mismatch a=%+v b=%+v: %v want %v", a, b, got, want)
			}
			for x := 0; x < size.X; x++ {
				for y := 0; y < size.Y; y++ {
					for z := 0; z < size.Z; z++ {
						off := voxel.Vec3i{X: x, Y: y, Z: z}
						want := b.Apply(mid, a.Apply(size, off))
						got := c.Apply(size, off)
						if got != want {
							t.Fatalf("a=%+v b=%+v off=%v: composed=%v sequential=%v", a, b, off, got, want)
						}
					}
				}
			}
		}
	}
}

func TestApply_BoundsPreserving(t *testing.T) {
	size := voxel.Vec3i{X: 3, Y: 2, Z: 5}
	for _, tr := range allTransforms() {
		out := tr.SizeOf(size)
		seen := map[voxel.Vec3i]bool{}
		for x := 0; x < size.X; x++ {
			for y := 0; y < size.Y; y++ {
				for z := 0; z < size.Z; z++ {
					p := tr.Apply(size, voxel.Vec3i{X: x, Y: y, Z: z})
					if p.X < 0 || p.X >= out.X || p.Y < 0 || p.Y >= out.Y || p.Z < 0 || p.Z >= out.Z {
						t.Fatalf("%+v maps (%d,%d,%d) to %v outside %v", tr, x, y, z, p, out)
					}
					if seen[p] {
						t.Fatalf("%+v maps two cells onto %v", tr, p)
					}
					seen[p] = true
				}
			}
		}
	}
}

func TestApply_QuarterTurnExample(t *testing.T) {
	tr := New(90, false, false, false)
	size := voxel.Vec3i{X: 2, Y: 1, Z: 3}
	got := tr.Apply(size, voxel.Vec3i{X: 1, Y: 0, Z: 2})
	want := voxel.Vec3i{X: 2, Y: 0, Z: 0}
	if got != want {
		t.Fatalf("Apply=%v want %v", got, want)
	}
}
