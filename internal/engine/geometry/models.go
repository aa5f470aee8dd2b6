package geometry

import "voxelforge.ai/internal/engine/voxel"

// Models are solid display pieces: unlike structures they have no carved
// interior to walk through.

// modelTower: solid shaft with a stepped cap and a finial block.
func modelTower(size voxel.Vec3i, pal voxel.Palette) []voxel.Placement {
	capH := 0
	if size.Y >= 3 {
		capH = min(min(size.X, size.Z)/2+1, size.Y-2)
	}
	shaftH := size.Y - capH

	out := Cuboid(voxel.Vec3i{X: size.X, Y: shaftH, Z: size.Z}, pal.Primary)
	for i := 0; i < capH; i++ {
		inset := min(i, (size.X-1)/2, (size.Z-1)/2)
		y := shaftH + i
		out = append(out, boxFill(
			voxel.Vec3i{X: inset, Y: y, Z: inset},
			voxel.Vec3i{X: size.X - 1 - inset, Y: y, Z: size.Z - 1 - inset},
			pal.Fill())...)
	}
	if size.Y >= 2 {
		out = append(out, voxel.Placement{
			Pos:   voxel.Vec3i{X: size.X / 2, Y: size.Y - 1, Z: size.Z / 2},
			Block: pal.Fill(),
		})
	}
	return out
}

// modelTree: center trunk plus a seeded-jitter foliage cluster. The
// jitter nibbles cells off the canopy edge so no two seeds grow the same
// tree, while the same seed always grows the same one.
func modelTree(size voxel.Vec3i, pal voxel.Palette, seed int64) []voxel.Placement {
	cx, cz := size.X/2, size.Z/2
	trunkH := max(1, size.Y*2/3)

	out := boxFill(
		voxel.Vec3i{X: cx, Y: 0, Z: cz},
		voxel.Vec3i{X: cx, Y: trunkH - 1, Z: cz},
		pal.Primary)

	r0 := min(size.X, size.Z) / 2
	if r0 == 0 || size.Y < 2 {
		return out
	}
	for y := max(0, trunkH-1); y < size.Y; y++ {
		r := r0 - (y-(trunkH-1))/2
		if r < 0 {
			break
		}
		for z := cz - r; z <= cz+r; z++ {
			for x := cx - r; x <= cx+r; x++ {
				if x < 0 || x >= size.X || z < 0 || z >= size.Z {
					continue
				}
				if x == cx && z == cz && y < trunkH {
					continue // trunk cell
				}
				d := max(absInt(x-cx), absInt(z-cz))
				jitter := int(hash3(seed, x, y, z) % 2)
				if d <= r-jitter {
					out = append(out, voxel.Placement{Pos: voxel.Vec3i{X: x, Y: y, Z: z}, Block: pal.Fill()})
				}
			}
		}
	}
	return out
}

// modelFountain: basin ring with a filled pool, center column and spout.
func modelFountain(size voxel.Vec3i, pal voxel.Palette) []voxel.Placement {
	pool := voxel.BlockSpec{}
	if !pal.Secondary.IsZero() {
		pool = pal.Secondary
	}
	out := HollowCuboid(voxel.Vec3i{X: size.X, Y: 1, Z: size.Z}, pal.Primary, pool)

	if size.Y >= 2 {
		cx, cz := size.X/2, size.Z/2
		out = append(out, boxFill(
			voxel.Vec3i{X: cx, Y: 0, Z: cz},
			voxel.Vec3i{X: cx, Y: size.Y - 2, Z: cz},
			pal.Primary)...)
		out = append(out, voxel.Placement{
			Pos:   voxel.Vec3i{X: cx, Y: size.Y - 1, Z: cz},
			Block: pal.Fill(),
		})
	}
	return out
}

// modelStatue: pedestal, inset body, further-inset head.
func modelStatue(size voxel.Vec3i, pal voxel.Palette) []voxel.Placement {
	pedH := max(1, size.Y/4)
	out := boxFill(
		voxel.Vec3i{X: 0, Y: 0, Z: 0},
		voxel.Vec3i{X: size.X - 1, Y: pedH - 1, Z: size.Z - 1},
		pal.Fill())

	if size.Y <= pedH {
		return out
	}
	bx := min(1, (size.X-1)/2)
	bz := min(1, (size.Z-1)/2)
	headY := pedH + max(1, (size.Y-pedH)*3/4)
	if headY > size.Y {
		headY = size.Y
	}
	out = append(out, boxFill(
		voxel.Vec3i{X: bx, Y: pedH, Z: bz},
		voxel.Vec3i{X: size.X - 1 - bx, Y: headY - 1, Z: size.Z - 1 - bz},
		pal.Primary)...)

	if headY < size.Y {
		hx := min(bx+1, (size.X-1)/2)
		hz := min(bz+1, (size.Z-1)/2)
		out = append(out, boxFill(
			voxel.Vec3i{X: hx, Y: headY, Z: hz},
			voxel.Vec3i{X: size.X - 1 - hx, Y: size.Y - 1, Z: size.Z - 1 - hz},
			pal.Primary)...)
	}
	return out
}

// modelWindmill: slender body with an X of blades on the front face.
func modelWindmill(size voxel.Vec3i, pal voxel.Palette) []voxel.Placement {
	ix := size.X / 3
	iz := size.Z / 3
	out := boxFill(
		voxel.Vec3i{X: ix, Y: 0, Z: iz},
		voxel.Vec3i{X: size.X - 1 - ix, Y: size.Y - 1, Z: size.Z - 1 - iz},
		pal.Primary)

	if size.X < 3 || size.Y < 3 {
		return out
	}
	cx := size.X / 2
	hubY := min(size.Y*2/3, size.Y-1)
	if hubY < 1 {
		hubY = 1
	}
	r := min(cx, size.X-1-cx, hubY, size.Y-1-hubY)
	out = append(out, voxel.Placement{Pos: voxel.Vec3i{X: cx, Y: hubY, Z: 0}, Block: pal.Fill()})
	for d := 1; d <= r; d++ {
		out = append(out,
			voxel.Placement{Pos: voxel.Vec3i{X: cx - d, Y: hubY - d, Z: 0}, Block: pal.Fill()},
			voxel.Placement{Pos: voxel.Vec3i{X: cx + d, Y: hubY - d, Z: 0}, Block: pal.Fill()},
			voxel.Placement{Pos: voxel.Vec3i{X: cx - d, Y: hubY + d, Z: 0}, Block: pal.Fill()},
			voxel.Placement{Pos: voxel.Vec3i{X: cx + d, Y: hubY + d, Z: 0}, Block: pal.Fill()},
		)
	}
	return out
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
