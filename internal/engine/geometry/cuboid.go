package geometry

import "voxelforge.ai/internal/engine/voxel"

// Air carves a cell. Hollow shapes are emitted fill-then-carve; the
// consumer's last-write-wins semantics make the carve stick.
var Air = voxel.BlockSpec{ID: "air"}

// Cuboid emits every offset of [0,sx) x [0,sy) x [0,sz) mapped to block,
// layer by layer from the bottom.
func Cuboid(size voxel.Vec3i, block voxel.BlockSpec) []voxel.Placement {
	out := make([]voxel.Placement, 0, size.X*size.Y*size.Z)
	for y := 0; y < size.Y; y++ {
		for z := 0; z < size.Z; z++ {
			for x := 0; x < size.X; x++ {
				out = append(out, voxel.Placement{Pos: voxel.Vec3i{X: x, Y: y, Z: z}, Block: block})
			}
		}
	}
	return out
}

// HollowCuboid emits the boundary cells (any coordinate at 0 or extent-1)
// mapped to shell, then, when fill is non-zero, the interior cells mapped
// to fill. Shell and interior are disjoint; interior follows the shell in
// emission order.
func HollowCuboid(size voxel.Vec3i, shell, fill voxel.BlockSpec) []voxel.Placement {
	var out []voxel.Placement
	onShell := func(x, y, z int) bool {
		return x == 0 || x == size.X-1 ||
			y == 0 || y == size.Y-1 ||
			z == 0 || z == size.Z-1
	}
	for y := 0; y < size.Y; y++ {
		for z := 0; z < size.Z; z++ {
			for x := 0; x < size.X; x++ {
				if onShell(x, y, z) {
					out = append(out, voxel.Placement{Pos: voxel.Vec3i{X: x, Y: y, Z: z}, Block: shell})
				}
			}
		}
	}
	if fill.IsZero() {
		return out
	}
	for y := 1; y < size.Y-1; y++ {
		for z := 1; z < size.Z-1; z++ {
			for x := 1; x < size.X-1; x++ {
				out = append(out, voxel.Placement{Pos: voxel.Vec3i{X: x, Y: y, Z: z}, Block: fill})
			}
		}
	}
	return out
}

// translate shifts a local placement run by off, in place, and returns it.
func translate(ps []voxel.Placement, off voxel.Vec3i) []voxel.Placement {
	for i := range ps {
		ps[i].Pos = ps[i].Pos.Add(off)
	}
	return ps
}
