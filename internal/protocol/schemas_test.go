package protocol_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

func TestSchemas_ValidateSamples(t *testing.T) {
	compile := func(name string) *jsonschema.Schema {
		t.Helper()
		p := filepath.Join("..", "..", "schemas", name)
		s, err := jsonschema.Compile(p)
		if err != nil {
			t.Fatalf("compile %s: %v", name, err)
		}
		return s
	}

	validate := func(s *jsonschema.Schema, v any) {
		t.Helper()
		if err := s.Validate(v); err != nil {
			t.Fatalf("validate: %v", err)
		}
	}

	helloSchema := compile("hello.schema.json")
	buildSchema := compile("build.schema.json")
	terrainSchema := compile("terrain.schema.json")
	commandSchema := compile("command.schema.json")
	errorSchema := compile("error.schema.json")

	var hello any
	_ = json.Unmarshal([]byte(`{
	  "type":"HELLO",
	  "protocol_version":"1.0",
	  "client_name":"bridge1"
	}`), &hello)
	validate(helloSchema, hello)

	var build any
	_ = json.Unmarshal([]byte(`{
	  "type":"BUILD",
	  "protocol_version":"1.0",
	  "id":"b-1",
	  "category":"structure",
	  "kind":"house",
	  "position":[10,65,-4],
	  "rotation":90,
	  "flip_x":true,
	  "size":[7,6,7],
	  "palette":{
	    "primary":{"id":"oak_planks"},
	    "secondary":{"id":"cobblestone","states":{"variant":"mossy"}}
	  },
	  "seed":1337,
	  "dry_run":true
	}`), &build)
	validate(buildSchema, build)

	var buildCube any
	_ = json.Unmarshal([]byte(`{
	  "type":"BUILD",
	  "protocol_version":"1.0",
	  "category":"model",
	  "kind":"tree",
	  "position":[0,64,0],
	  "size":[9],
	  "palette":{"primary":{"id":"oak_log"}}
	}`), &buildCube)
	validate(buildSchema, buildCube)

	var terrain any
	_ = json.Unmarshal([]byte(`{
	  "type":"TERRAIN",
	  "protocol_version":"1.0",
	  "id":"t-1",
	  "region":{"min":[0,60,0],"max":[15,80,15]},
	  "line":{"start":[0,0,0],"end":[15,0,15]},
	  "footprint":7
	}`), &terrain)
	validate(terrainSchema, terrain)

	var command any
	_ = json.Unmarshal([]byte(`{
	  "type":"COMMAND",
	  "protocol_version":"1.0",
	  "id":"c-1",
	  "command":"time set day"
	}`), &command)
	validate(commandSchema, command)

	var errMsg any
	_ = json.Unmarshal([]byte(`{
	  "type":"ERROR",
	  "protocol_version":"1.0",
	  "id":"b-1",
	  "code":"E_UNKNOWN_KIND",
	  "param":"kind",
	  "message":"unknown structure kind"
	}`), &errMsg)
	validate(errorSchema, errMsg)

	// Two-element size is not a legal shape.
	var badSize any
	_ = json.Unmarshal([]byte(`{
	  "type":"BUILD",
	  "protocol_version":"1.0",
	  "category":"structure",
	  "kind":"house",
	  "position":[0,0,0],
	  "size":[7,6],
	  "palette":{"primary":{"id":"stone"}}
	}`), &badSize)
	if err := buildSchema.Validate(badSize); err == nil {
		t.Fatalf("expected two-element size rejected")
	}

	// A profile line needs both endpoints.
	var badLine any
	_ = json.Unmarshal([]byte(`{
	  "type":"TERRAIN",
	  "protocol_version":"1.0",
	  "region":{"min":[0,60,0],"max":[15,80,15]},
	  "line":{"start":[0,0,0]}
	}`), &badLine)
	if err := terrainSchema.Validate(badLine); err == nil {
		t.Fatalf("expected line without end rejected")
	}
}
