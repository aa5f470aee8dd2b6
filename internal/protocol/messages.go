package protocol

// HELLO (client -> server)
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ClientName      string `json:"client_name"`
}

// WELCOME (server -> client)
type WelcomeMsg struct {
	Type            string     `json:"type"`
	ProtocolVersion string     `json:"protocol_version"`
	SessionID       string     `json:"session_id"`
	Limits          LimitsInfo `json:"limits"`
}

type LimitsInfo struct {
	MaxRegionVolume  int `json:"max_region_volume"`
	MaxStructureSpan int `json:"max_structure_span"`
}

// BlockInfo identifies a block plus optional state map and opaque
// block-entity payload.
type BlockInfo struct {
	ID     string            `json:"id"`
	States map[string]string `json:"states,omitempty"`
	Data   string            `json:"data,omitempty"`
}

type PaletteInfo struct {
	Primary   BlockInfo  `json:"primary"`
	Secondary *BlockInfo `json:"secondary,omitempty"`
}

// BUILD (client -> server): place a named structure or model.
type BuildMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ID              string `json:"id,omitempty"` // echoed on the response

	Category string `json:"category"` // "structure" | "model"
	Kind     string `json:"kind"`
	Position [3]int `json:"position"`

	// Rotation accepts degrees (0/90/180/270) or quarter-turns (0..3).
	Rotation int  `json:"rotation,omitempty"`
	FlipX    bool `json:"flip_x,omitempty"`
	FlipY    bool `json:"flip_y,omitempty"`
	FlipZ    bool `json:"flip_z,omitempty"`

	// Size is either one scalar (cube) or three per-axis extents.
	Size    []int       `json:"size"`
	Palette PaletteInfo `json:"palette"`
	Seed    int64       `json:"seed,omitempty"`

	// DryRun computes the placement list without forwarding it to the
	// world interface.
	DryRun bool `json:"dry_run,omitempty"`
}

// BUILD_RESULT (server -> client)
type BuildResultMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ID              string `json:"id,omitempty"`

	Kind       string `json:"kind"`
	Placements int    `json:"placements"`
	Placed     int    `json:"placed"`
	Failed     int    `json:"failed"`
	DryRun     bool   `json:"dry_run,omitempty"`
	RecordPath string `json:"record_path,omitempty"`
}

type RegionInfo struct {
	Min [3]int `json:"min"`
	Max [3]int `json:"max"`
}

// LineInfo endpoints are pointers so a request that omits one is
// distinguishable from an explicit origin.
type LineInfo struct {
	Start *[3]int `json:"start"`
	End   *[3]int `json:"end"`
}

// TERRAIN (client -> server): analyze a world region.
type TerrainMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ID              string `json:"id,omitempty"`

	Region RegionInfo `json:"region"`
	// Line requests an elevation profile; both endpoints must lie inside
	// the region footprint.
	Line *LineInfo `json:"line,omitempty"`
	// Footprint > 0 requests a suggested build position for a square base
	// of that extent.
	Footprint int `json:"footprint,omitempty"`
}

type StatsInfo struct {
	Defined        bool           `json:"defined"`
	MinHeight      int            `json:"min_height"`
	MaxHeight      int            `json:"max_height"`
	MeanHeight     float64        `json:"mean_height"`
	HeightVariance float64        `json:"height_variance"`
	WaterCoverage  float64        `json:"water_coverage"`
	SurfaceBlocks  map[string]int `json:"surface_blocks"`
}

type ProfilePointInfo struct {
	Distance float64 `json:"distance"`
	Height   int     `json:"height"`
	Surface  bool    `json:"surface"`
}

type RecommendationInfo struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// BuildPositionInfo is the flattest qualifying spot for the requested
// footprint.
type BuildPositionInfo struct {
	Position   [3]int  `json:"position"`
	MeanHeight float64 `json:"mean_height"`
	Flatness   float64 `json:"flatness"`
}

// TERRAIN_REPORT (server -> client)
type TerrainReportMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ID              string `json:"id,omitempty"`

	Stats            StatsInfo            `json:"stats"`
	TerrainType      string               `json:"terrain_type"`
	WaterDescription string               `json:"water_description"`
	Recommendations  []RecommendationInfo `json:"recommendations,omitempty"`
	BuildPosition    *BuildPositionInfo   `json:"build_position,omitempty"`
	Profile          []ProfilePointInfo   `json:"profile,omitempty"`
}

// COMMAND (client -> server): run one world console command.
type CommandMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ID              string `json:"id,omitempty"`

	// Command is sent without a leading slash.
	Command string `json:"command"`
}

// COMMAND_RESULT (server -> client)
type CommandResultMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ID              string `json:"id,omitempty"`

	Output string `json:"output"`
}

// ERROR (server -> client)
type ErrorMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ID              string `json:"id,omitempty"`

	Code    string `json:"code"`
	Param   string `json:"param,omitempty"` // offending request parameter
	Message string `json:"message"`
}
