package agent

import (
	"encoding/json"

	"StockScout/internal/domain/models"

	"github.com/invopop/jsonschema"
)

// OutputSchema is the JSON schema the schema-mode agent must satisfy,
// derived from the same record type the pipeline produces so the two paths
// can never drift apart.
func OutputSchema() map[string]any {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	s := r.Reflect(&models.StockInfo{})

	b, err := json.Marshal(s)
	if err != nil {
		// Reflecting a static struct; failure is an implementation bug.
		panic(err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		panic(err)
	}
	delete(m, "$schema")
	delete(m, "$id")
	return m
}
