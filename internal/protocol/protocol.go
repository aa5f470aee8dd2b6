package protocol

import "encoding/json"

const Version = "1.0"

// Message types.
const (
	TypeHello         = "HELLO"
	TypeWelcome       = "WELCOME"
	TypeBuild         = "BUILD"
	TypeBuildResult   = "BUILD_RESULT"
	TypeTerrain       = "TERRAIN"
	TypeTerrainReport = "TERRAIN_REPORT"
	TypeCommand       = "COMMAND"
	TypeCommandResult = "COMMAND_RESULT"
	TypeError         = "ERROR"
)

// BUILD request categories.
const (
	CategoryStructure = "structure"
	CategoryModel     = "model"
)

// BaseMessage lets us route unknown JSON messages by type.
type BaseMessage struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version,omitempty"`
}

func DecodeBase(b []byte) (BaseMessage, error) {
	var m BaseMessage
	err := json.Unmarshal(b, &m)
	return m, err
}
