package schemas_test

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/career-matcher/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, name := range schemas.Names() {
		t.Run(name, func(t *testing.T) {
			data, err := schemas.Read(name)
			require.NoError(t, err, "should be able to read schema file")

			var v map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &v), "schema file should be valid JSON: %s", name)

			_, hasType := v["type"]
			_, hasSchema := v["$schema"]
			assert.True(t, hasType && hasSchema, "schema should declare $schema and type")
		})
	}
}

func TestRead_Unknown(t *testing.T) {
	_, err := schemas.Read("missing.schema.json")
	assert.Error(t, err)
}
