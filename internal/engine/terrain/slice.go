package terrain

import (
	"errors"
	"fmt"
	"strings"

	"voxelforge.ai/internal/engine/voxel"
)

// ErrBadSlice marks a slice whose block data does not match its region.
var ErrBadSlice = errors.New("slice does not match region")

// Slice is a request-local copy of a world region's blocks, supplied by
// the request layer (the sampler itself never performs I/O). Blocks are
// ordered x-fastest, then z, then y from the region minimum.
type Slice struct {
	region voxel.Region
	blocks []voxel.BlockSpec
}

func NewSlice(region voxel.Region, blocks []voxel.BlockSpec) (*Slice, error) {
	if !region.Valid() {
		return nil, fmt.Errorf("%w: invalid region %v..%v", ErrBadSlice, region.Min, region.Max)
	}
	if len(blocks) != region.Volume() {
		return nil, fmt.Errorf("%w: %d blocks for volume %d", ErrBadSlice, len(blocks), region.Volume())
	}
	return &Slice{region: region, blocks: blocks}, nil
}

func (s *Slice) Region() voxel.Region { return s.region }

// Block returns the block at a world coordinate, or the zero BlockSpec
// outside the region.
func (s *Slice) Block(p voxel.Vec3i) voxel.BlockSpec {
	if !s.region.Contains(p) {
		return voxel.BlockSpec{}
	}
	size := s.region.Size()
	i := ((p.Y-s.region.Min.Y)*size.Z+(p.Z-s.region.Min.Z))*size.X + (p.X - s.region.Min.X)
	return s.blocks[i]
}

// baseName strips a namespace prefix ("minecraft:stone" -> "stone").
func baseName(id string) string {
	if i := strings.IndexByte(id, ':'); i >= 0 {
		return id[i+1:]
	}
	return id
}

func IsAir(id string) bool {
	switch baseName(id) {
	case "", "air", "cave_air", "void_air":
		return true
	}
	return false
}

func IsLiquid(id string) bool {
	switch baseName(id) {
	case "water", "flowing_water", "lava", "flowing_lava", "bubble_column":
		return true
	}
	return false
}
