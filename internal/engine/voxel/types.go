package voxel

import "fmt"

// Vec3i is an integer world- or structure-space coordinate.
type Vec3i struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

func (v Vec3i) Add(o Vec3i) Vec3i {
	return Vec3i{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3i) ToArray() [3]int {
	return [3]int{v.X, v.Y, v.Z}
}

func FromArray(a [3]int) Vec3i {
	return Vec3i{X: a[0], Y: a[1], Z: a[2]}
}

func (v Vec3i) String() string {
	return fmt.Sprintf("(%d,%d,%d)", v.X, v.Y, v.Z)
}

// BlockSpec identifies a block plus optional state map and opaque
// block-entity payload (SNBT string, passed through untouched).
type BlockSpec struct {
	ID     string            `json:"id"`
	States map[string]string `json:"states,omitempty"`
	Data   string            `json:"data,omitempty"`
}

func (b BlockSpec) IsZero() bool {
	return b.ID == "" && len(b.States) == 0 && b.Data == ""
}

func (b BlockSpec) Equal(o BlockSpec) bool {
	if b.ID != o.ID || b.Data != o.Data || len(b.States) != len(o.States) {
		return false
	}
	for k, v := range b.States {
		if o.States[k] != v {
			return false
		}
	}
	return true
}

// Palette is the block set a generator may emit: a primary block and an
// optional secondary/fill block (Secondary.IsZero() when absent).
type Palette struct {
	Primary   BlockSpec `json:"primary"`
	Secondary BlockSpec `json:"secondary,omitempty"`
}

// Fill returns the secondary block when set, otherwise the primary.
func (p Palette) Fill() BlockSpec {
	if p.Secondary.IsZero() {
		return p.Primary
	}
	return p.Secondary
}

// Placement binds a block to a coordinate. Generators emit placements in
// local (structure-relative) space; the driver rebinds them to world
// space. Emission order is significant: later placements at the same
// coordinate override earlier ones.
type Placement struct {
	Pos   Vec3i     `json:"pos"`
	Block BlockSpec `json:"block"`
}
