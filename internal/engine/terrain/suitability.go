package terrain

import "math"

// BuildSpot is a suggested placement for a square footprint, centered on
// the flattest qualifying window of the sampled region.
type BuildSpot struct {
	X int `json:"x"`
	Y int `json:"y"` // mean surface height of the window, rounded
	Z int `json:"z"`

	MeanHeight float64 `json:"mean_height"`
	// Flatness is the height variance inside the window; lower is flatter.
	Flatness float64 `json:"flatness"`
}

// FindBuildSpot scans footprint×footprint windows across the heightmap
// and returns the one with the lowest height variance. Windows touching a
// sentinel column or a watered column never qualify. ok is false when the
// footprint does not fit the region or no window qualifies.
func FindBuildSpot(hm *Heightmap, water *WaterMask, footprint int) (BuildSpot, bool) {
	if footprint < 1 {
		footprint = 1
	}
	r := hm.Region()
	size := r.Size()
	if footprint > size.X || footprint > size.Z {
		return BuildSpot{}, false
	}

	// Half-footprint stride keeps adjacent windows overlapping without
	// scoring every origin.
	step := footprint / 2
	if step < 1 {
		step = 1
	}

	best := BuildSpot{}
	found := false
	for z0 := r.Min.Z; z0 <= r.Max.Z-footprint+1; z0 += step {
		for x0 := r.Min.X; x0 <= r.Max.X-footprint+1; x0 += step {
			spot, ok := scoreWindow(hm, water, x0, z0, footprint)
			if !ok {
				continue
			}
			if !found || spot.Flatness < best.Flatness {
				best = spot
				found = true
			}
		}
	}
	return best, found
}

func scoreWindow(hm *Heightmap, water *WaterMask, x0, z0, footprint int) (BuildSpot, bool) {
	var sum, sumSq float64
	n := 0
	for z := z0; z < z0+footprint; z++ {
		for x := x0; x < x0+footprint; x++ {
			if water.At(x, z) {
				return BuildSpot{}, false
			}
			y, ok := hm.At(x, z)
			if !ok {
				return BuildSpot{}, false
			}
			sum += float64(y)
			sumSq += float64(y) * float64(y)
			n++
		}
	}
	mean := sum / float64(n)
	variance := sumSq/float64(n) - mean*mean
	if variance < 0 {
		variance = 0
	}
	return BuildSpot{
		X:          x0 + footprint/2,
		Y:          int(math.Round(mean)),
		Z:          z0 + footprint/2,
		MeanHeight: mean,
		Flatness:   variance,
	}, true
}

// Recommendation pairs a suggestion category with prose advice for the
// analyzed region.
type Recommendation struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Recommend derives build advice from the aggregate stats: terrain shape,
// water coverage, and the overall height span. An undefined region yields
// no recommendations.
func Recommend(st Stats) []Recommendation {
	if !st.Defined {
		return nil
	}
	var out []Recommendation

	switch st.TerrainType() {
	case "very_flat", "flat":
		out = append(out, Recommendation{
			Type:        "settlement",
			Description: "Flat terrain is ideal for village-style settlements with connected buildings.",
		})
	case "hilly", "mountainous":
		out = append(out,
			Recommendation{
				Type:        "multi-level",
				Description: "Consider multi-level structures or buildings connected by bridges and walkways.",
			},
			Recommendation{
				Type:        "towers",
				Description: "Towers and vertical structures work well in varied terrain.",
			})
	}

	switch WaterDescription(st.WaterCoverage) {
	case "moderate", "extensive":
		out = append(out, Recommendation{
			Type:        "water",
			Description: "Incorporate waterways into your design or build structures over water.",
		})
	}

	if st.MaxHeight-st.MinHeight > 20 {
		out = append(out, Recommendation{
			Type:        "elevation",
			Description: "Use the natural elevation changes to create dramatic multi-level structures.",
		})
	}
	return out
}
