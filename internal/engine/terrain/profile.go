package terrain

import (
	"errors"
	"fmt"
	"math"
)

// ErrOutOfBounds marks a profile endpoint outside the region footprint.
var ErrOutOfBounds = errors.New("profile endpoint outside region footprint")

// ProfilePoint is one sample along a terrain profile line.
type ProfilePoint struct {
	// Distance is the cumulative Euclidean distance walked from the
	// line start, in horizontal cells.
	Distance float64 `json:"distance"`
	Height   int     `json:"height"`
	// Surface is false where the column had no recorded surface; Height
	// is meaningless there.
	Surface bool `json:"surface"`
}

// ComputeProfile samples the heightmap along the discretized line from
// (x0,z0) to (x1,z1), Bresenham-stepped, one sample per step. Both
// endpoints must lie inside the footprint.
func ComputeProfile(hm *Heightmap, x0, z0, x1, z1 int) ([]ProfilePoint, error) {
	r := hm.Region()
	if !r.ContainsColumn(x0, z0) {
		return nil, fmt.Errorf("%w: start (%d,%d)", ErrOutOfBounds, x0, z0)
	}
	if !r.ContainsColumn(x1, z1) {
		return nil, fmt.Errorf("%w: end (%d,%d)", ErrOutOfBounds, x1, z1)
	}

	dx := absInt(x1 - x0)
	dz := absInt(z1 - z0)
	sx, sz := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if z0 > z1 {
		sz = -1
	}

	out := make([]ProfilePoint, 0, max(dx, dz)+1)
	x, z := x0, z0
	dist := 0.0
	e := dx - dz
	for {
		h, ok := hm.At(x, z)
		if !ok {
			h = 0
		}
		out = append(out, ProfilePoint{Distance: dist, Height: h, Surface: ok})
		if x == x1 && z == z1 {
			return out, nil
		}
		stepX, stepZ := false, false
		e2 := 2 * e
		if e2 > -dz {
			e -= dz
			x += sx
			stepX = true
		}
		if e2 < dx {
			e += dx
			z += sz
			stepZ = true
		}
		if stepX && stepZ {
			dist += math.Sqrt2
		} else {
			dist++
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
