package terrain

import (
	"testing"

	"voxelforge.ai/internal/engine/voxel"
)

// Half the footprint is rugged, half is flat; the spot must land on the
// flat side.
func TestFindBuildSpot_PicksFlattestWindow(t *testing.T) {
	region := voxel.Region{Min: voxel.Vec3i{X: 0, Y: 0, Z: 0}, Max: voxel.Vec3i{X: 19, Y: 90, Z: 19}}
	s := makeSlice(t, region, func(x, y, z int) string {
		surface := 64
		if x >= 10 {
			surface = 60 + (x*7+z*13)%9 // rugged eastern half
		}
		if y <= surface {
			return "stone"
		}
		return "air"
	})
	hm := SampleHeightmap(s)
	water := DetectWater(s, hm)

	spot, ok := FindBuildSpot(hm, water, 5)
	if !ok {
		t.Fatalf("no spot found")
	}
	if spot.X >= 10 {
		t.Fatalf("spot %+v landed on the rugged half", spot)
	}
	if spot.Flatness != 0 || spot.Y != 64 || spot.MeanHeight != 64 {
		t.Fatalf("spot %+v want flat window at y=64", spot)
	}
}

func TestFindBuildSpot_SkipsWateredWindows(t *testing.T) {
	region := voxel.Region{Min: voxel.Vec3i{X: 0, Y: 0, Z: 0}, Max: voxel.Vec3i{X: 15, Y: 70, Z: 15}}
	s := makeSlice(t, region, func(x, y, z int) string {
		switch {
		case y <= 60:
			return "sand"
		case y <= 62 && x < 8:
			return "minecraft:water" // western half flooded
		default:
			return "air"
		}
	})
	hm := SampleHeightmap(s)
	water := DetectWater(s, hm)

	spot, ok := FindBuildSpot(hm, water, 4)
	if !ok {
		t.Fatalf("no spot found")
	}
	// A 4-wide window starting left of x=8 overlaps water.
	if spot.X-2 < 8 {
		t.Fatalf("spot %+v overlaps the flooded half", spot)
	}
}

func TestFindBuildSpot_NoQualifyingWindow(t *testing.T) {
	region := voxel.Region{Min: voxel.Vec3i{X: 0, Y: 0, Z: 0}, Max: voxel.Vec3i{X: 7, Y: 10, Z: 7}}
	s := makeSlice(t, region, func(x, y, z int) string { return "air" })
	hm := SampleHeightmap(s)
	water := DetectWater(s, hm)

	if spot, ok := FindBuildSpot(hm, water, 3); ok {
		t.Fatalf("found %+v over a pure-air region", spot)
	}
}

func TestFindBuildSpot_FootprintLargerThanRegion(t *testing.T) {
	region := voxel.Region{Min: voxel.Vec3i{X: 0, Y: 0, Z: 0}, Max: voxel.Vec3i{X: 4, Y: 10, Z: 4}}
	s := makeSlice(t, region, flatWorld(5))
	hm := SampleHeightmap(s)
	water := DetectWater(s, hm)

	if _, ok := FindBuildSpot(hm, water, 9); ok {
		t.Fatalf("9-wide footprint cannot fit a 5-wide region")
	}
}

func TestFindBuildSpot_OffsetRegionCoordinates(t *testing.T) {
	region := voxel.Region{Min: voxel.Vec3i{X: -30, Y: 0, Z: 100}, Max: voxel.Vec3i{X: -21, Y: 80, Z: 109}}
	s := makeSlice(t, region, flatWorld(64))
	hm := SampleHeightmap(s)
	water := DetectWater(s, hm)

	spot, ok := FindBuildSpot(hm, water, 3)
	if !ok {
		t.Fatalf("no spot found")
	}
	if spot.X < -30 || spot.X > -21 || spot.Z < 100 || spot.Z > 109 {
		t.Fatalf("spot %+v outside the region footprint", spot)
	}
}

func recTypes(recs []Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Type
	}
	return out
}

func hasRec(recs []Recommendation, typ string) bool {
	for _, r := range recs {
		if r.Type == typ {
			return true
		}
	}
	return false
}

func TestRecommend_ByTerrainShape(t *testing.T) {
	flat := Stats{Defined: true, MinHeight: 64, MaxHeight: 65, HeightVariance: 1}
	recs := Recommend(flat)
	if !hasRec(recs, "settlement") {
		t.Fatalf("flat stats gave %v, want settlement", recTypes(recs))
	}
	if hasRec(recs, "towers") {
		t.Fatalf("flat stats gave %v, towers unexpected", recTypes(recs))
	}

	hilly := Stats{Defined: true, MinHeight: 50, MaxHeight: 60, HeightVariance: 100}
	recs = Recommend(hilly)
	if !hasRec(recs, "multi-level") || !hasRec(recs, "towers") {
		t.Fatalf("hilly stats gave %v", recTypes(recs))
	}
}

func TestRecommend_WaterAndElevation(t *testing.T) {
	wet := Stats{Defined: true, MinHeight: 60, MaxHeight: 90, HeightVariance: 300, WaterCoverage: 0.4}
	recs := Recommend(wet)
	if !hasRec(recs, "water") {
		t.Fatalf("40%% coverage gave %v, want water", recTypes(recs))
	}
	if !hasRec(recs, "elevation") {
		t.Fatalf("30-block span gave %v, want elevation", recTypes(recs))
	}

	dry := Stats{Defined: true, MinHeight: 64, MaxHeight: 64, WaterCoverage: 0.01}
	if recs := Recommend(dry); hasRec(recs, "water") || hasRec(recs, "elevation") {
		t.Fatalf("dry flat stats gave %v", recTypes(recs))
	}
}

func TestRecommend_UndefinedStats(t *testing.T) {
	if recs := Recommend(Stats{}); recs != nil {
		t.Fatalf("undefined stats gave %v", recTypes(recs))
	}
}
