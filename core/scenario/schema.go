package scenario

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON Schema of a scenario file.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		// Scenario files are YAML, so properties follow the yaml tags.
		FieldNameTag: "yaml",
	}

	schema := r.Reflect(&Scenario{})
	schema.Title = "Astra Scenario"
	schema.Description = "Scripted recognition, search and proactive task used by the assistant session."
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return json.MarshalIndent(schema, "", "  ")
}
