// Package graphql serves the single aggregation endpoint: it parses and
// validates the incoming query document, hands the requested top-level
// fields to the dispatcher, and shapes the always-200 {data, errors}
// response.
package graphql

import (
	_ "embed"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

//go:embed schema.graphql
var schemaSDL string

// Schema is the gateway's query surface, loaded once at startup.
func Schema() *ast.Schema {
	return gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphql", Input: schemaSDL})
}
