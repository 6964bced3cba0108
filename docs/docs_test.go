package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/jhoicas/Catalogo-api/docs"
)

func TestSwaggerRegistrado(t *testing.T) {
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Paths map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	for _, p := range []string{"/api/products", "/api/products/{codigo}", "/api/products/update-prices", "/api/categories/{id}", "/api/subcategories"} {
		assert.Contains(t, doc.Paths, p)
	}
}
