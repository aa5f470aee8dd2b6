package geometry

import "voxelforge.ai/internal/engine/voxel"

// boxFill emits a solid box with inclusive corners.
func boxFill(min, max voxel.Vec3i, block voxel.BlockSpec) []voxel.Placement {
	size := voxel.Vec3i{X: max.X - min.X + 1, Y: max.Y - min.Y + 1, Z: max.Z - min.Z + 1}
	return translate(Cuboid(size, block), min)
}

// house: hollow walled body with a floor, carved door and windows, and a
// pitched roof occupying the top of the bounding box. Decorations drop
// away as the box shrinks; size 1 degenerates to a single primary block.
func house(size voxel.Vec3i, pal voxel.Palette) []voxel.Placement {
	// Walls keep at least three layers (floor + doorway) before the roof
	// takes any of the box.
	roofH := 0
	if size.X >= 3 {
		switch {
		case size.Y >= 4:
			roofH = min((size.X+1)/2, size.Y-3)
		case size.Y == 3:
			roofH = 1
		}
	}
	wallH := size.Y - roofH

	out := HollowCuboid(voxel.Vec3i{X: size.X, Y: wallH, Z: size.Z}, pal.Primary, Air)

	// Floor overlays the bottom shell layer.
	out = append(out, boxFill(
		voxel.Vec3i{X: 0, Y: 0, Z: 0},
		voxel.Vec3i{X: size.X - 1, Y: 0, Z: size.Z - 1},
		pal.Fill())...)

	cx := size.X / 2

	// Door on the front face, two cells tall when the walls allow it.
	if wallH >= 3 && size.X >= 3 {
		out = append(out, voxel.Placement{Pos: voxel.Vec3i{X: cx, Y: 1, Z: 0}, Block: Air})
		if wallH >= 4 {
			out = append(out, voxel.Placement{Pos: voxel.Vec3i{X: cx, Y: 2, Z: 0}, Block: Air})
		}
	}

	// Window openings.
	if size.X >= 5 && wallH >= 4 {
		out = append(out,
			voxel.Placement{Pos: voxel.Vec3i{X: 1, Y: 2, Z: 0}, Block: Air},
			voxel.Placement{Pos: voxel.Vec3i{X: size.X - 2, Y: 2, Z: 0}, Block: Air},
			voxel.Placement{Pos: voxel.Vec3i{X: cx, Y: 2, Z: size.Z - 1}, Block: Air},
		)
		for z := 2; z <= size.Z-3; z += 2 {
			out = append(out,
				voxel.Placement{Pos: voxel.Vec3i{X: 0, Y: 2, Z: z}, Block: Air},
				voxel.Placement{Pos: voxel.Vec3i{X: size.X - 1, Y: 2, Z: z}, Block: Air},
			)
		}
	}

	// Pitched roof: rows climb inward from both eaves to the ridge.
	for i := 0; i < roofH; i++ {
		y := wallH + i
		left, right := i, size.X-1-i
		out = append(out, boxFill(
			voxel.Vec3i{X: left, Y: y, Z: 0},
			voxel.Vec3i{X: left, Y: y, Z: size.Z - 1},
			pal.Fill())...)
		if right != left {
			out = append(out, boxFill(
				voxel.Vec3i{X: right, Y: y, Z: 0},
				voxel.Vec3i{X: right, Y: y, Z: size.Z - 1},
				pal.Fill())...)
		}
	}
	return out
}

// tower: hollow shaft with a capped, stepped roof and a carved door.
func tower(size voxel.Vec3i, pal voxel.Palette) []voxel.Placement {
	capH := 0
	if size.Y >= 3 {
		capH = min(min(size.X, size.Z)/2+1, size.Y-2)
	}
	shaftH := size.Y - capH

	out := HollowCuboid(voxel.Vec3i{X: size.X, Y: shaftH, Z: size.Z}, pal.Primary, Air)

	// Stepped cap shrinking toward the tip.
	for i := 0; i < capH; i++ {
		inset := min(i, (size.X-1)/2, (size.Z-1)/2)
		y := shaftH + i
		out = append(out, boxFill(
			voxel.Vec3i{X: inset, Y: y, Z: inset},
			voxel.Vec3i{X: size.X - 1 - inset, Y: y, Z: size.Z - 1 - inset},
			pal.Fill())...)
	}

	cx := size.X / 2
	if shaftH >= 3 && size.X >= 3 {
		out = append(out, voxel.Placement{Pos: voxel.Vec3i{X: cx, Y: 1, Z: 0}, Block: Air})
		if shaftH >= 4 {
			out = append(out, voxel.Placement{Pos: voxel.Vec3i{X: cx, Y: 2, Z: 0}, Block: Air})
		}
	}

	// One window per face at two heights of the shaft.
	if shaftH >= 5 && size.X >= 3 && size.Z >= 3 {
		for _, wy := range []int{shaftH / 3, 2 * shaftH / 3} {
			if wy <= 2 {
				continue // keep clear of the door
			}
			out = append(out,
				voxel.Placement{Pos: voxel.Vec3i{X: cx, Y: wy, Z: 0}, Block: Air},
				voxel.Placement{Pos: voxel.Vec3i{X: cx, Y: wy, Z: size.Z - 1}, Block: Air},
				voxel.Placement{Pos: voxel.Vec3i{X: 0, Y: wy, Z: size.Z / 2}, Block: Air},
				voxel.Placement{Pos: voxel.Vec3i{X: size.X - 1, Y: wy, Z: size.Z / 2}, Block: Air},
			)
		}
	}
	return out
}

// bridge: a deck spanning the z extent with edge railings and support
// pillars dropping to the bottom of the box.
func bridge(size voxel.Vec3i, pal voxel.Palette) []voxel.Placement {
	deckY := 0
	if size.Y >= 2 {
		deckY = size.Y - 2
	}

	var out []voxel.Placement

	// Pillars under the deck, at both edges, every fourth cell.
	if deckY >= 1 && size.X >= 2 {
		for z := 0; z < size.Z; z++ {
			if z%4 != 0 && z != size.Z-1 {
				continue
			}
			out = append(out,
				boxFill(voxel.Vec3i{X: 0, Y: 0, Z: z}, voxel.Vec3i{X: 0, Y: deckY - 1, Z: z}, pal.Primary)...)
			out = append(out,
				boxFill(voxel.Vec3i{X: size.X - 1, Y: 0, Z: z}, voxel.Vec3i{X: size.X - 1, Y: deckY - 1, Z: z}, pal.Primary)...)
		}
	}

	// Deck.
	out = append(out, boxFill(
		voxel.Vec3i{X: 0, Y: deckY, Z: 0},
		voxel.Vec3i{X: size.X - 1, Y: deckY, Z: size.Z - 1},
		pal.Primary)...)

	// Railings along both edges.
	if size.Y >= 2 && size.X >= 3 {
		railY := deckY + 1
		out = append(out, boxFill(
			voxel.Vec3i{X: 0, Y: railY, Z: 0},
			voxel.Vec3i{X: 0, Y: railY, Z: size.Z - 1},
			pal.Fill())...)
		out = append(out, boxFill(
			voxel.Vec3i{X: size.X - 1, Y: railY, Z: 0},
			voxel.Vec3i{X: size.X - 1, Y: railY, Z: size.Z - 1},
			pal.Fill())...)
	}
	return out
}

// well: stone ring with a filled shaft, corner posts, and a flat roof.
// The shaft fill uses the palette's secondary block when present (the
// original hardcoded water; the palette confines us).
func well(size voxel.Vec3i, pal voxel.Palette) []voxel.Placement {
	shaft := voxel.BlockSpec{}
	if !pal.Secondary.IsZero() {
		shaft = pal.Secondary
	}
	out := HollowCuboid(voxel.Vec3i{X: size.X, Y: 1, Z: size.Z}, pal.Primary, shaft)

	// Corner posts between ring and roof.
	if size.Y >= 3 && size.X >= 2 && size.Z >= 2 {
		for _, c := range [][2]int{{0, 0}, {0, size.Z - 1}, {size.X - 1, 0}, {size.X - 1, size.Z - 1}} {
			out = append(out, boxFill(
				voxel.Vec3i{X: c[0], Y: 1, Z: c[1]},
				voxel.Vec3i{X: c[0], Y: size.Y - 2, Z: c[1]},
				pal.Primary)...)
		}
	}

	// Roof plane.
	if size.Y >= 2 {
		out = append(out, boxFill(
			voxel.Vec3i{X: 0, Y: size.Y - 1, Z: 0},
			voxel.Vec3i{X: size.X - 1, Y: size.Y - 1, Z: size.Z - 1},
			pal.Fill())...)
	}
	return out
}

// garden: fenced perimeter with a gate and seeded planting scatter.
func garden(size voxel.Vec3i, pal voxel.Palette, seed int64) []voxel.Placement {
	out := HollowCuboid(voxel.Vec3i{X: size.X, Y: 1, Z: size.Z}, pal.Primary, voxel.BlockSpec{})

	if size.X >= 3 {
		out = append(out, voxel.Placement{Pos: voxel.Vec3i{X: size.X / 2, Y: 0, Z: 0}, Block: Air})
	}

	// Seeded scatter over the interior: ~35% planted, a few grown tall.
	for z := 1; z <= size.Z-2; z++ {
		for x := 1; x <= size.X-2; x++ {
			roll := hash3(seed, x, 0, z) % 1000
			if roll >= 350 {
				continue
			}
			out = append(out, voxel.Placement{Pos: voxel.Vec3i{X: x, Y: 0, Z: z}, Block: pal.Fill()})
			if size.Y >= 2 && roll < 120 {
				out = append(out, voxel.Placement{Pos: voxel.Vec3i{X: x, Y: 1, Z: z}, Block: pal.Fill()})
			}
		}
	}
	return out
}
