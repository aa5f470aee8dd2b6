package voxel

// Region is an axis-aligned box with inclusive corners, Min <= Max
// componentwise.
type Region struct {
	Min Vec3i `json:"min"`
	Max Vec3i `json:"max"`
}

func (r Region) Valid() bool {
	return r.Min.X <= r.Max.X && r.Min.Y <= r.Max.Y && r.Min.Z <= r.Max.Z
}

func (r Region) Size() Vec3i {
	return Vec3i{
		X: r.Max.X - r.Min.X + 1,
		Y: r.Max.Y - r.Min.Y + 1,
		Z: r.Max.Z - r.Min.Z + 1,
	}
}

// Volume counts the cells in the region. Undefined for invalid regions.
func (r Region) Volume() int {
	s := r.Size()
	return s.X * s.Y * s.Z
}

// Columns counts the (x,z) columns of the horizontal footprint.
func (r Region) Columns() int {
	s := r.Size()
	return s.X * s.Z
}

func (r Region) Contains(p Vec3i) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y &&
		p.Z >= r.Min.Z && p.Z <= r.Max.Z
}

// ContainsColumn reports whether (x,z) lies inside the horizontal
// footprint, ignoring y.
func (r Region) ContainsColumn(x, z int) bool {
	return x >= r.Min.X && x <= r.Max.X && z >= r.Min.Z && z <= r.Max.Z
}
