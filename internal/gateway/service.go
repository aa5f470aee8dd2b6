package gateway

import (
	"context"
	"log"
	"strings"

	"voxelforge.ai/internal/engine"
	"voxelforge.ai/internal/engine/terrain"
	"voxelforge.ai/internal/engine/voxel"
	"voxelforge.ai/internal/persistence/buildlog"
	"voxelforge.ai/internal/persistence/record"
	"voxelforge.ai/internal/protocol"
)

// World is the slice of the world interface the gateway needs.
type World interface {
	PutBlocks(ctx context.Context, placements []voxel.Placement) (placed, failed int, err error)
	FetchSlice(ctx context.Context, r voxel.Region) (*terrain.Slice, error)
	Command(ctx context.Context, cmd string) (string, error)
}

// Service executes protocol requests end to end: validate, generate,
// forward to the world, and journal the outcome.
type Service struct {
	eng       *engine.Engine
	world     World
	log       *buildlog.Log // nil disables journaling
	recordDir string        // "" disables build records
	logger    *log.Logger
}

func New(eng *engine.Engine, world World, blog *buildlog.Log, recordDir string, logger *log.Logger) *Service {
	return &Service{
		eng:       eng,
		world:     world,
		log:       blog,
		recordDir: recordDir,
		logger:    logger,
	}
}

func (s *Service) Limits() engine.Limits { return s.eng.Limits() }

// HandleBuild runs one BUILD request. Coded failures come back as
// *engine.Error.
func (s *Service) HandleBuild(ctx context.Context, msg protocol.BuildMsg) (protocol.BuildResultMsg, error) {
	size, err := parseSize(msg.Size)
	if err != nil {
		return protocol.BuildResultMsg{}, err
	}
	pal := voxel.Palette{
		Primary: voxel.BlockSpec{
			ID:     msg.Palette.Primary.ID,
			States: msg.Palette.Primary.States,
			Data:   msg.Palette.Primary.Data,
		},
	}
	if pal.Primary.ID == "" {
		return protocol.BuildResultMsg{}, engine.NewError(protocol.ErrProtoBadRequest, "palette", nil,
			"palette.primary.id is required")
	}
	if sec := msg.Palette.Secondary; sec != nil {
		pal.Secondary = voxel.BlockSpec{ID: sec.ID, States: sec.States, Data: sec.Data}
	}

	req := engine.BuildRequest{
		Category: msg.Category,
		Kind:     msg.Kind,
		Position: voxel.FromArray(msg.Position),
		Rotation: msg.Rotation,
		FlipX:    msg.FlipX,
		FlipY:    msg.FlipY,
		FlipZ:    msg.FlipZ,
		Size:     size,
		Palette:  pal,
		Seed:     msg.Seed,
	}
	placements, err := s.eng.Build(req)
	if err != nil {
		return protocol.BuildResultMsg{}, err
	}

	placed, failed := 0, 0
	if !msg.DryRun {
		placed, failed, err = s.world.PutBlocks(ctx, placements)
		if err != nil {
			return protocol.BuildResultMsg{}, engine.NewError(protocol.ErrWorldUnreachable, "", err,
				"world interface: %v", err)
		}
	}

	recordPath := ""
	if s.recordDir != "" && !msg.DryRun {
		path, err := record.Write(s.recordDir, record.BuildRecord{
			Header: record.Header{
				RequestID: msg.ID,
				Category:  msg.Category,
				Kind:      msg.Kind,
			},
			Position:   req.Position,
			Rotation:   msg.Rotation,
			FlipX:      msg.FlipX,
			FlipY:      msg.FlipY,
			FlipZ:      msg.FlipZ,
			Size:       size,
			Palette:    pal,
			Seed:       msg.Seed,
			Placements: placements,
		})
		if err != nil {
			// A failed record never fails the build.
			if s.logger != nil {
				s.logger.Printf("record write failed: %v", err)
			}
		} else {
			recordPath = path
		}
	}

	s.log.WriteBuild(buildlog.BuildEntry{
		RequestID:  msg.ID,
		Category:   msg.Category,
		Kind:       msg.Kind,
		Position:   req.Position,
		Rotation:   msg.Rotation,
		FlipX:      msg.FlipX,
		FlipY:      msg.FlipY,
		FlipZ:      msg.FlipZ,
		Size:       size,
		Seed:       msg.Seed,
		Placements: len(placements),
		Placed:     placed,
		Failed:     failed,
		DryRun:     msg.DryRun,
		RecordPath: recordPath,
	})

	return protocol.BuildResultMsg{
		Type:            protocol.TypeBuildResult,
		ProtocolVersion: protocol.Version,
		ID:              msg.ID,
		Kind:            msg.Kind,
		Placements:      len(placements),
		Placed:          placed,
		Failed:          failed,
		DryRun:          msg.DryRun,
		RecordPath:      recordPath,
	}, nil
}

// HandleTerrain runs one TERRAIN request.
func (s *Service) HandleTerrain(ctx context.Context, msg protocol.TerrainMsg) (protocol.TerrainReportMsg, error) {
	region := voxel.Region{
		Min: voxel.FromArray(msg.Region.Min),
		Max: voxel.FromArray(msg.Region.Max),
	}
	if err := s.eng.CheckRegion(region); err != nil {
		return protocol.TerrainReportMsg{}, err
	}

	slice, err := s.world.FetchSlice(ctx, region)
	if err != nil {
		return protocol.TerrainReportMsg{}, engine.NewError(protocol.ErrWorldUnreachable, "", err,
			"world interface: %v", err)
	}

	var line *engine.Line
	if msg.Line != nil {
		if msg.Line.Start == nil || msg.Line.End == nil {
			return protocol.TerrainReportMsg{}, engine.NewError(protocol.ErrProtoBadRequest, "line", nil,
				"line requires both start and end")
		}
		line = &engine.Line{
			Start: voxel.FromArray(*msg.Line.Start),
			End:   voxel.FromArray(*msg.Line.End),
		}
	}
	if msg.Footprint < 0 {
		return protocol.TerrainReportMsg{}, engine.NewError(protocol.ErrProtoBadRequest, "footprint", nil,
			"footprint must not be negative, got %d", msg.Footprint)
	}
	rep, err := s.eng.AnalyzeTerrain(slice, line, msg.Footprint)
	if err != nil {
		return protocol.TerrainReportMsg{}, err
	}

	s.log.WriteTerrain(buildlog.TerrainEntry{
		RequestID:        msg.ID,
		Region:           region,
		TerrainType:      rep.TerrainType,
		WaterDescription: rep.WaterDescription,
		ProfilePoints:    len(rep.Profile),
	})

	out := protocol.TerrainReportMsg{
		Type:            protocol.TypeTerrainReport,
		ProtocolVersion: protocol.Version,
		ID:              msg.ID,
		Stats: protocol.StatsInfo{
			Defined:        rep.Stats.Defined,
			MinHeight:      rep.Stats.MinHeight,
			MaxHeight:      rep.Stats.MaxHeight,
			MeanHeight:     rep.Stats.MeanHeight,
			HeightVariance: rep.Stats.HeightVariance,
			WaterCoverage:  rep.Stats.WaterCoverage,
			SurfaceBlocks:  rep.Stats.SurfaceBlocks,
		},
		TerrainType:      rep.TerrainType,
		WaterDescription: rep.WaterDescription,
	}
	if len(rep.Recommendations) > 0 {
		out.Recommendations = make([]protocol.RecommendationInfo, len(rep.Recommendations))
		for i, r := range rep.Recommendations {
			out.Recommendations[i] = protocol.RecommendationInfo{Type: r.Type, Description: r.Description}
		}
	}
	if rep.BuildSpot != nil {
		out.BuildPosition = &protocol.BuildPositionInfo{
			Position:   [3]int{rep.BuildSpot.X, rep.BuildSpot.Y, rep.BuildSpot.Z},
			MeanHeight: rep.BuildSpot.MeanHeight,
			Flatness:   rep.BuildSpot.Flatness,
		}
	}
	if len(rep.Profile) > 0 {
		out.Profile = make([]protocol.ProfilePointInfo, len(rep.Profile))
		for i, p := range rep.Profile {
			out.Profile[i] = protocol.ProfilePointInfo{
				Distance: p.Distance,
				Height:   p.Height,
				Surface:  p.Surface,
			}
		}
	}
	return out, nil
}

// HandleCommand forwards one console command to the world interface.
func (s *Service) HandleCommand(ctx context.Context, msg protocol.CommandMsg) (protocol.CommandResultMsg, error) {
	cmd := strings.TrimPrefix(strings.TrimSpace(msg.Command), "/")
	if cmd == "" {
		return protocol.CommandResultMsg{}, engine.NewError(protocol.ErrProtoBadRequest, "command", nil,
			"command must not be empty")
	}
	out, err := s.world.Command(ctx, cmd)
	if err != nil {
		return protocol.CommandResultMsg{}, engine.NewError(protocol.ErrWorldUnreachable, "", err,
			"world interface: %v", err)
	}
	if s.logger != nil {
		s.logger.Printf("command %q -> %d bytes", cmd, len(out))
	}
	return protocol.CommandResultMsg{
		Type:            protocol.TypeCommandResult,
		ProtocolVersion: protocol.Version,
		ID:              msg.ID,
		Output:          out,
	}, nil
}

func parseSize(raw []int) (voxel.Vec3i, error) {
	switch len(raw) {
	case 1:
		return voxel.Vec3i{X: raw[0], Y: raw[0], Z: raw[0]}, nil
	case 3:
		return voxel.Vec3i{X: raw[0], Y: raw[1], Z: raw[2]}, nil
	default:
		return voxel.Vec3i{}, engine.NewError(protocol.ErrProtoBadRequest, "size", nil,
			"size must have 1 or 3 elements, got %d", len(raw))
	}
}
