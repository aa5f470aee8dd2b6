package terrain

import "voxelforge.ai/internal/engine/voxel"

// HeightNone marks a column with no solid surface in the scanned range.
const HeightNone = -1 << 31

// Heightmap records, per (x,z) column of a region's footprint, the y of
// the first solid, non-air, non-liquid block found scanning downward.
type Heightmap struct {
	region  voxel.Region
	heights []int
}

func (h *Heightmap) Region() voxel.Region { return h.region }

func (h *Heightmap) index(x, z int) int {
	size := h.region.Size()
	return (z-h.region.Min.Z)*size.X + (x - h.region.Min.X)
}

// At returns the recorded surface height for a column; ok is false for
// sentinel columns. Callers must stay inside the footprint.
func (h *Heightmap) At(x, z int) (height int, ok bool) {
	v := h.heights[h.index(x, z)]
	return v, v != HeightNone
}

// SampleHeightmap scans every column of the slice from the region top to
// its bottom.
func SampleHeightmap(s *Slice) *Heightmap {
	r := s.Region()
	hm := &Heightmap{
		region:  r,
		heights: make([]int, r.Columns()),
	}
	i := 0
	for z := r.Min.Z; z <= r.Max.Z; z++ {
		for x := r.Min.X; x <= r.Max.X; x++ {
			hm.heights[i] = scanColumn(s, x, z)
			i++
		}
	}
	return hm
}

func scanColumn(s *Slice, x, z int) int {
	r := s.Region()
	for y := r.Max.Y; y >= r.Min.Y; y-- {
		id := s.Block(voxel.Vec3i{X: x, Y: y, Z: z}).ID
		if IsAir(id) || IsLiquid(id) {
			continue
		}
		return y
	}
	return HeightNone
}

// SurfaceGrid records the block at each column's recorded surface height.
type SurfaceGrid struct {
	region voxel.Region
	blocks []voxel.BlockSpec
}

func (g *SurfaceGrid) Region() voxel.Region { return g.region }

// At returns the surface block for a column; ok is false for sentinel
// columns.
func (g *SurfaceGrid) At(x, z int) (voxel.BlockSpec, bool) {
	size := g.region.Size()
	b := g.blocks[(z-g.region.Min.Z)*size.X+(x-g.region.Min.X)]
	return b, b.ID != ""
}

func ClassifySurface(s *Slice, hm *Heightmap) *SurfaceGrid {
	r := s.Region()
	g := &SurfaceGrid{region: r, blocks: make([]voxel.BlockSpec, r.Columns())}
	i := 0
	for z := r.Min.Z; z <= r.Max.Z; z++ {
		for x := r.Min.X; x <= r.Max.X; x++ {
			if y, ok := hm.At(x, z); ok {
				g.blocks[i] = s.Block(voxel.Vec3i{X: x, Y: y, Z: z})
			}
			i++
		}
	}
	return g
}

// WaterMask flags columns whose surface is under liquid: either the block
// immediately above the recorded surface is a liquid, or (for sentinel
// columns) the topmost non-air block is.
type WaterMask struct {
	region voxel.Region
	mask   []bool
}

func (m *WaterMask) Region() voxel.Region { return m.region }

func (m *WaterMask) At(x, z int) bool {
	size := m.region.Size()
	return m.mask[(z-m.region.Min.Z)*size.X+(x-m.region.Min.X)]
}

func DetectWater(s *Slice, hm *Heightmap) *WaterMask {
	r := s.Region()
	m := &WaterMask{region: r, mask: make([]bool, r.Columns())}
	i := 0
	for z := r.Min.Z; z <= r.Max.Z; z++ {
		for x := r.Min.X; x <= r.Max.X; x++ {
			m.mask[i] = columnUnderLiquid(s, hm, x, z)
			i++
		}
	}
	return m
}

func columnUnderLiquid(s *Slice, hm *Heightmap, x, z int) bool {
	r := s.Region()
	if y, ok := hm.At(x, z); ok {
		return y < r.Max.Y && IsLiquid(s.Block(voxel.Vec3i{X: x, Y: y + 1, Z: z}).ID)
	}
	for y := r.Max.Y; y >= r.Min.Y; y-- {
		id := s.Block(voxel.Vec3i{X: x, Y: y, Z: z}).ID
		if IsAir(id) {
			continue
		}
		return IsLiquid(id)
	}
	return false
}
