package terrain

// Stats aggregates a sampled region. When no column has a recorded
// surface, Defined is false and the height aggregates are meaningless —
// callers must check Defined instead of reading NaN out of a division.
type Stats struct {
	Defined bool `json:"defined"`

	MinHeight      int     `json:"min_height"`
	MaxHeight      int     `json:"max_height"`
	MeanHeight     float64 `json:"mean_height"`
	HeightVariance float64 `json:"height_variance"`

	// WaterCoverage is the fraction of all columns flagged by the water
	// mask, in [0,1].
	WaterCoverage float64 `json:"water_coverage"`

	// SurfaceBlocks counts surface block ids across non-sentinel columns.
	SurfaceBlocks map[string]int `json:"surface_blocks"`
}

func ComputeStats(hm *Heightmap, surface *SurfaceGrid, water *WaterMask) Stats {
	r := hm.Region()
	st := Stats{SurfaceBlocks: map[string]int{}}

	columns := 0
	watered := 0
	surfaced := 0
	var sum, sumSq float64
	for z := r.Min.Z; z <= r.Max.Z; z++ {
		for x := r.Min.X; x <= r.Max.X; x++ {
			columns++
			if water.At(x, z) {
				watered++
			}
			y, ok := hm.At(x, z)
			if !ok {
				continue
			}
			if !st.Defined {
				st.Defined = true
				st.MinHeight = y
				st.MaxHeight = y
			} else {
				if y < st.MinHeight {
					st.MinHeight = y
				}
				if y > st.MaxHeight {
					st.MaxHeight = y
				}
			}
			surfaced++
			sum += float64(y)
			sumSq += float64(y) * float64(y)
			if b, ok := surface.At(x, z); ok {
				st.SurfaceBlocks[b.ID]++
			}
		}
	}

	if columns > 0 {
		st.WaterCoverage = float64(watered) / float64(columns)
	}
	if st.Defined {
		mean := sum / float64(surfaced)
		st.MeanHeight = mean
		st.HeightVariance = sumSq/float64(surfaced) - mean*mean
		if st.HeightVariance < 0 {
			st.HeightVariance = 0 // float round-off on flat terrain
		}
	}
	return st
}

// TerrainType buckets the height spread the way the original analysis
// report did.
func (st Stats) TerrainType() string {
	if !st.Defined {
		return "unknown"
	}
	dev := st.HeightVariance
	switch {
	case dev < 9: // stddev < 3
		return "very_flat"
	case dev < 49: // stddev < 7
		return "flat"
	case dev < 225: // stddev < 15
		return "hilly"
	default:
		return "mountainous"
	}
}

// WaterDescription buckets the water coverage ratio.
func WaterDescription(coverage float64) string {
	switch {
	case coverage > 0.5:
		return "extensive"
	case coverage > 0.2:
		return "moderate"
	case coverage > 0.05:
		return "light"
	default:
		return "none"
	}
}
