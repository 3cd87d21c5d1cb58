package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestSwaggerDocMatchesRoutes(t *testing.T) {
	doc := SwaggerInfo.ReadDoc()
	require.True(t, gjson.Valid(doc))

	parsed := gjson.Parse(doc)
	assert.Equal(t, "/api/v1", parsed.Get("basePath").String())
	assert.Equal(t, "Todo List API", parsed.Get("info.title").String())

	paths := parsed.Get("paths").Map()
	for _, path := range []string{"/sign_up", "/sign_in", "/sign_out", "/todos", "/todos/{id}"} {
		assert.Contains(t, paths, path)
	}
	assert.True(t, paths["/sign_up"].Get("delete").Exists())

	member := paths["/todos/{id}"].Map()
	for _, method := range []string{"get", "put", "patch", "delete"} {
		assert.Contains(t, member, method)
	}
}
