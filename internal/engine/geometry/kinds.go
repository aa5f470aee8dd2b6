package geometry

import (
	"errors"
	"fmt"

	"voxelforge.ai/internal/engine/voxel"
)

// ErrUnknownKind marks a structure or model kind outside the closed set.
var ErrUnknownKind = errors.New("unknown kind")

// Structure kinds.
const (
	StructureHouse  = "house"
	StructureTower  = "tower"
	StructureBridge = "bridge"
	StructureWell   = "well"
	StructureGarden = "garden"
)

// Model kinds.
const (
	ModelTower    = "tower"
	ModelTree     = "tree"
	ModelFountain = "fountain"
	ModelStatue   = "statue"
	ModelWindmill = "windmill"
)

// Structure generates the named structure in local space. size must be
// at least 1 on every axis; generators are total over all such sizes and
// drop decorative sub-features instead of failing when the box is small.
func Structure(kind string, size voxel.Vec3i, pal voxel.Palette, seed int64) ([]voxel.Placement, error) {
	switch kind {
	case StructureHouse:
		return house(size, pal), nil
	case StructureTower:
		return tower(size, pal), nil
	case StructureBridge:
		return bridge(size, pal), nil
	case StructureWell:
		return well(size, pal), nil
	case StructureGarden:
		return garden(size, pal, seed), nil
	default:
		return nil, fmt.Errorf("%w: structure %q", ErrUnknownKind, kind)
	}
}

// Model generates the named display model in local space, under the same
// totality contract as Structure.
func Model(kind string, size voxel.Vec3i, pal voxel.Palette, seed int64) ([]voxel.Placement, error) {
	switch kind {
	case ModelTower:
		return modelTower(size, pal), nil
	case ModelTree:
		return modelTree(size, pal, seed), nil
	case ModelFountain:
		return modelFountain(size, pal), nil
	case ModelStatue:
		return modelStatue(size, pal), nil
	case ModelWindmill:
		return modelWindmill(size, pal), nil
	default:
		return nil, fmt.Errorf("%w: model %q", ErrUnknownKind, kind)
	}
}
