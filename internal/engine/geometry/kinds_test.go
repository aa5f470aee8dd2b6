package geometry

import (
	"errors"
	"reflect"
	"testing"

	"voxelforge.ai/internal/engine/voxel"
)

var testPalette = voxel.Palette{
	Primary:   voxel.BlockSpec{ID: "oak_planks"},
	Secondary: voxel.BlockSpec{ID: "stone_bricks"},
}

var structureKinds = []string{
	StructureHouse, StructureTower, StructureBridge, StructureWell, StructureGarden,
}

var modelKinds = []string{
	ModelTower, ModelTree, ModelFountain, ModelStatue, ModelWindmill,
}

func TestStructure_UnknownKind(t *testing.T) {
	_, err := Structure("castle", voxel.Vec3i{X: 3, Y: 3, Z: 3}, testPalette, 1)
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("err=%v want ErrUnknownKind", err)
	}
	_, err = Model("gazebo", voxel.Vec3i{X: 3, Y: 3, Z: 3}, testPalette, 1)
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("err=%v want ErrUnknownKind", err)
	}
}

func TestGenerators_TotalAtMinimumSize(t *testing.T) {
	one := voxel.Vec3i{X: 1, Y: 1, Z: 1}
	for _, kind := range structureKinds {
		out, err := Structure(kind, one, testPalette, 7)
		if err != nil {
			t.Fatalf("structure %s at size 1: %v", kind, err)
		}
		if len(out) == 0 {
			t.Fatalf("structure %s at size 1 emitted nothing", kind)
		}
	}
	for _, kind := range modelKinds {
		out, err := Model(kind, one, testPalette, 7)
		if err != nil {
			t.Fatalf("model %s at size 1: %v", kind, err)
		}
		if len(out) == 0 {
			t.Fatalf("model %s at size 1 emitted nothing", kind)
		}
	}
}

func TestGenerators_StayInsideBoundingBox(t *testing.T) {
	sizes := []voxel.Vec3i{
		{X: 1, Y: 1, Z: 1},
		{X: 2, Y: 5, Z: 2},
		{X: 7, Y: 6, Z: 7},
		{X: 5, Y: 12, Z: 9},
	}
	check := func(name string, size voxel.Vec3i, out []voxel.Placement) {
		t.Helper()
		for _, p := range out {
			if p.Pos.X < 0 || p.Pos.X >= size.X ||
				p.Pos.Y < 0 || p.Pos.Y >= size.Y ||
				p.Pos.Z < 0 || p.Pos.Z >= size.Z {
				t.Fatalf("%s size=%v: placement %v outside box", name, size, p.Pos)
			}
		}
	}
	for _, size := range sizes {
		for _, kind := range structureKinds {
			out, err := Structure(kind, size, testPalette, 42)
			if err != nil {
				t.Fatalf("structure %s: %v", kind, err)
			}
			check("structure/"+kind, size, out)
		}
		for _, kind := range modelKinds {
			out, err := Model(kind, size, testPalette, 42)
			if err != nil {
				t.Fatalf("model %s: %v", kind, err)
			}
			check("model/"+kind, size, out)
		}
	}
}

func TestGenerators_DeterministicUnderSeed(t *testing.T) {
	size := voxel.Vec3i{X: 9, Y: 8, Z: 9}
	for _, kind := range []string{StructureGarden} {
		a, _ := Structure(kind, size, testPalette, 1234)
		b, _ := Structure(kind, size, testPalette, 1234)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("structure %s not deterministic under fixed seed", kind)
		}
	}
	a, _ := Model(ModelTree, size, testPalette, 1234)
	b, _ := Model(ModelTree, size, testPalette, 1234)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("tree not deterministic under fixed seed")
	}
	c, _ := Model(ModelTree, size, testPalette, 99)
	if reflect.DeepEqual(a, c) {
		t.Fatalf("tree ignores its seed")
	}
}

func TestGarden_SeedChangesScatter(t *testing.T) {
	size := voxel.Vec3i{X: 12, Y: 2, Z: 12}
	a, _ := Structure(StructureGarden, size, testPalette, 1)
	b, _ := Structure(StructureGarden, size, testPalette, 2)
	if reflect.DeepEqual(a, b) {
		t.Fatalf("garden scatter identical across different seeds")
	}
}

func TestHouse_CarvesDoorway(t *testing.T) {
	size := voxel.Vec3i{X: 7, Y: 6, Z: 7}
	out, err := Structure(StructureHouse, size, testPalette, 0)
	if err != nil {
		t.Fatalf("house: %v", err)
	}
	// Last write at the door cell must be air.
	door := voxel.Vec3i{X: 3, Y: 1, Z: 0}
	last := voxel.BlockSpec{}
	for _, p := range out {
		if p.Pos == door {
			last = p.Block
		}
	}
	if last.ID != "air" {
		t.Fatalf("door cell final block=%q want air", last.ID)
	}
}
