package protocol

const (
	// Protocol/transport validation.
	ErrProtoBadRequest = "E_PROTO_BAD_REQUEST"

	// Engine request validation.
	ErrInvalidGeometry = "E_INVALID_GEOMETRY"
	ErrOutOfBounds     = "E_OUT_OF_BOUNDS"
	ErrUnknownKind     = "E_UNKNOWN_KIND"
	ErrRegionTooLarge  = "E_REGION_TOO_LARGE"

	// World interface collaboration.
	ErrWorldUnreachable = "E_WORLD_UNREACHABLE"

	ErrInternal = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrProtoBadRequest:  {},
	ErrInvalidGeometry:  {},
	ErrOutOfBounds:      {},
	ErrUnknownKind:      {},
	ErrRegionTooLarge:   {},
	ErrWorldUnreachable: {},
	ErrInternal:         {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}
