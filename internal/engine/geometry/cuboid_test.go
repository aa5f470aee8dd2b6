package geometry

import (
	"testing"

	"voxelforge.ai/internal/engine/voxel"
)

func TestCuboid_CountAndNoDuplicates(t *testing.T) {
	size := voxel.Vec3i{X: 3, Y: 4, Z: 5}
	block := voxel.BlockSpec{ID: "stone"}
	out := Cuboid(size, block)
	if len(out) != 3*4*5 {
		t.Fatalf("len=%d want %d", len(out), 3*4*5)
	}
	seen := map[voxel.Vec3i]bool{}
	for _, p := range out {
		if seen[p.Pos] {
			t.Fatalf("duplicate offset %v", p.Pos)
		}
		seen[p.Pos] = true
		if p.Block.ID != "stone" {
			t.Fatalf("block=%q want stone", p.Block.ID)
		}
	}
}

func TestHollowCuboid_ShellThenInterior(t *testing.T) {
	size := voxel.Vec3i{X: 4, Y: 3, Z: 5}
	shell := voxel.BlockSpec{ID: "bricks"}
	fill := voxel.BlockSpec{ID: "water"}
	out := HollowCuboid(size, shell, fill)

	total := 4 * 3 * 5
	interior := (4 - 2) * (3 - 2) * (5 - 2)
	if len(out) != total {
		t.Fatalf("len=%d want %d", len(out), total)
	}

	// Shell first, interior after; the two sets are disjoint.
	shellSeen := map[voxel.Vec3i]bool{}
	for i, p := range out {
		if i < total-interior {
			if p.Block.ID != "bricks" {
				t.Fatalf("placement %d: block=%q want bricks", i, p.Block.ID)
			}
			if shellSeen[p.Pos] {
				t.Fatalf("duplicate shell offset %v", p.Pos)
			}
			shellSeen[p.Pos] = true
			continue
		}
		if p.Block.ID != "water" {
			t.Fatalf("placement %d: block=%q want water", i, p.Block.ID)
		}
		if shellSeen[p.Pos] {
			t.Fatalf("interior offset %v collides with shell", p.Pos)
		}
	}
}

func TestHollowCuboid_NoInteriorWhenFillUnset(t *testing.T) {
	size := voxel.Vec3i{X: 3, Y: 3, Z: 3}
	out := HollowCuboid(size, voxel.BlockSpec{ID: "bricks"}, voxel.BlockSpec{})
	if len(out) != 27-1 {
		t.Fatalf("len=%d want %d", len(out), 26)
	}
}

func TestHollowCuboid_ThinBoxIsAllShell(t *testing.T) {
	size := voxel.Vec3i{X: 1, Y: 5, Z: 2}
	out := HollowCuboid(size, voxel.BlockSpec{ID: "bricks"}, voxel.BlockSpec{ID: "water"})
	if len(out) != 1*5*2 {
		t.Fatalf("len=%d want %d", len(out), 10)
	}
	for _, p := range out {
		if p.Block.ID != "bricks" {
			t.Fatalf("thin box emitted interior block %q", p.Block.ID)
		}
	}
}
