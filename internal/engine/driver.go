package engine

import (
	"errors"
	"log"

	"voxelforge.ai/internal/engine/geometry"
	"voxelforge.ai/internal/engine/terrain"
	"voxelforge.ai/internal/engine/transform"
	"voxelforge.ai/internal/engine/voxel"
	"voxelforge.ai/internal/protocol"
)

// Limits bounds what a single request may touch. Zero values disable the
// corresponding check.
type Limits struct {
	// MaxRegionVolume caps the cell count of a terrain query region.
	MaxRegionVolume int
	// MaxStructureSpan caps the largest bounding-box extent of a build.
	MaxStructureSpan int
}

// Engine turns validated build and terrain requests into placement lists
// and reports. It owns no I/O: world access belongs to the caller.
type Engine struct {
	limits Limits
	logger *log.Logger
}

func New(limits Limits, logger *log.Logger) *Engine {
	return &Engine{limits: limits, logger: logger}
}

func (e *Engine) Limits() Limits { return e.limits }

// BuildRequest describes one structure or model placement.
type BuildRequest struct {
	Category string // protocol.CategoryStructure | protocol.CategoryModel
	Kind     string
	Position voxel.Vec3i

	// Rotation is raw client input: degrees or quarter-turns.
	Rotation            int
	FlipX, FlipY, FlipZ bool

	Size    voxel.Vec3i
	Palette voxel.Palette
	Seed    int64
}

// Build generates the request's placements in world space. The returned
// list preserves generator emission order, so later placements at a
// coordinate still override earlier ones after the reorientation.
func (e *Engine) Build(req BuildRequest) ([]voxel.Placement, error) {
	if err := e.checkBuild(req); err != nil {
		return nil, err
	}

	var (
		locals []voxel.Placement
		err    error
	)
	switch req.Category {
	case protocol.CategoryStructure:
		locals, err = geometry.Structure(req.Kind, req.Size, req.Palette, req.Seed)
	case protocol.CategoryModel:
		locals, err = geometry.Model(req.Kind, req.Size, req.Palette, req.Seed)
	default:
		return nil, NewError(protocol.ErrProtoBadRequest, "category", nil,
			"category must be %q or %q, got %q",
			protocol.CategoryStructure, protocol.CategoryModel, req.Category)
	}
	if err != nil {
		if errors.Is(err, geometry.ErrUnknownKind) {
			return nil, NewError(protocol.ErrUnknownKind, "kind", err, "%v", err)
		}
		return nil, NewError(protocol.ErrInternal, "", err, "generate %s/%s: %v", req.Category, req.Kind, err)
	}

	t := transform.New(req.Rotation, req.FlipX, req.FlipY, req.FlipZ)
	out := make([]voxel.Placement, len(locals))
	for i, p := range locals {
		out[i] = voxel.Placement{
			Pos:   req.Position.Add(t.Apply(req.Size, p.Pos)),
			Block: p.Block,
		}
	}

	if e.logger != nil {
		e.logger.Printf("build %s/%s size=%v rot=%d placements=%d",
			req.Category, req.Kind, req.Size, t.Rotation, len(out))
	}
	return out, nil
}

func (e *Engine) checkBuild(req BuildRequest) error {
	s := req.Size
	if s.X < 1 || s.Y < 1 || s.Z < 1 {
		return NewError(protocol.ErrInvalidGeometry, "size", nil,
			"size must be at least 1 on every axis, got %v", s)
	}
	if e.limits.MaxStructureSpan > 0 {
		span := s.X
		if s.Y > span {
			span = s.Y
		}
		if s.Z > span {
			span = s.Z
		}
		if span > e.limits.MaxStructureSpan {
			return NewError(protocol.ErrRegionTooLarge, "size", nil,
				"extent %d exceeds max structure span %d", span, e.limits.MaxStructureSpan)
		}
	}
	return nil
}

// CheckRegion validates a terrain query region before any world fetch.
func (e *Engine) CheckRegion(r voxel.Region) error {
	if !r.Valid() {
		return NewError(protocol.ErrInvalidGeometry, "region", nil,
			"region min %v must not exceed max %v", r.Min, r.Max)
	}
	if e.limits.MaxRegionVolume > 0 && r.Volume() > e.limits.MaxRegionVolume {
		return NewError(protocol.ErrRegionTooLarge, "region", nil,
			"volume %d exceeds max %d", r.Volume(), e.limits.MaxRegionVolume)
	}
	return nil
}

// Line is an optional elevation-profile request; only the X and Z
// components of the endpoints are used.
type Line struct {
	Start voxel.Vec3i
	End   voxel.Vec3i
}

// TerrainReport is the full analysis of one sampled region.
type TerrainReport struct {
	Stats            terrain.Stats
	TerrainType      string
	WaterDescription string
	Recommendations  []terrain.Recommendation
	BuildSpot        *terrain.BuildSpot
	Profile          []terrain.ProfilePoint
}

// AnalyzeTerrain samples the slice and aggregates it into a report. The
// caller fetched the slice after CheckRegion passed. A positive footprint
// additionally searches for the flattest footprint×footprint build spot;
// a region with no qualifying window reports no spot rather than failing.
func (e *Engine) AnalyzeTerrain(s *terrain.Slice, line *Line, footprint int) (*TerrainReport, error) {
	hm := terrain.SampleHeightmap(s)
	surface := terrain.ClassifySurface(s, hm)
	water := terrain.DetectWater(s, hm)
	st := terrain.ComputeStats(hm, surface, water)

	rep := &TerrainReport{
		Stats:            st,
		TerrainType:      st.TerrainType(),
		WaterDescription: terrain.WaterDescription(st.WaterCoverage),
		Recommendations:  terrain.Recommend(st),
	}
	if footprint > 0 {
		if spot, ok := terrain.FindBuildSpot(hm, water, footprint); ok {
			rep.BuildSpot = &spot
		}
	}
	if line != nil {
		pts, err := terrain.ComputeProfile(hm, line.Start.X, line.Start.Z, line.End.X, line.End.Z)
		if err != nil {
			if errors.Is(err, terrain.ErrOutOfBounds) {
				return nil, NewError(protocol.ErrOutOfBounds, "line", err, "%v", err)
			}
			return nil, NewError(protocol.ErrInternal, "", err, "profile: %v", err)
		}
		rep.Profile = pts
	}

	if e.logger != nil {
		e.logger.Printf("terrain %v..%v type=%s water=%s profile=%d",
			s.Region().Min, s.Region().Max, rep.TerrainType, rep.WaterDescription, len(rep.Profile))
	}
	return rep, nil
}
