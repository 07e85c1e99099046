package llm

import (
	"encoding/json"
	"sync"

	"github.com/invopop/jsonschema"
)

// GroupsPayload is the structured-output shape for grouping requests,
// used when the CLI is asked for schema-constrained output.
type GroupsPayload struct {
	Groups [][]string `json:"groups" jsonschema:"description=Partition of the staged file paths into commit groups"`
}

// GroupSchema returns the JSON schema for GroupsPayload as a string,
// suitable for the --json-schema flag. The schema is reflected once and
// cached.
func GroupSchema() string {
	groupSchemaOnce.Do(func() {
		reflector := jsonschema.Reflector{DoNotReference: true}
		schema := reflector.Reflect(&GroupsPayload{})
		data, err := json.Marshal(schema)
		if err != nil {
			// Reflection of a static type cannot fail at runtime; an empty
			// schema simply disables the constrained-output path.
			groupSchema = ""
			return
		}
		groupSchema = string(data)
	})
	return groupSchema
}

var (
	groupSchema     string
	groupSchemaOnce sync.Once
)
