package http

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openapiYAML []byte

// APIDocument is the OpenAPI description of the routes mounted by Register.
type APIDocument struct {
	spec *openapi3.T
	json string
}

// LoadAPIDocument parses and validates the embedded document and makes it
// available to the swagger UI.
func LoadAPIDocument(ctx context.Context) (*APIDocument, error) {
	loader := openapi3.NewLoader()
	spec, err := loader.LoadFromData(openapiYAML)
	if err != nil {
		return nil, fmt.Errorf("load api document: %w", err)
	}
	if err = spec.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate api document: %w", err)
	}
	raw, err := spec.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode api document: %w", err)
	}

	doc := &APIDocument{spec: spec, json: string(raw)}
	registerSwagger(doc)
	return doc, nil
}

func (d *APIDocument) Version() string { return d.spec.Info.Version }

// BasePath is the prefix the documented paths are relative to.
func (d *APIDocument) BasePath() string {
	if len(d.spec.Servers) == 0 {
		return ""
	}
	return d.spec.Servers[0].URL
}

// Documents reports whether method and path (in OpenAPI template form,
// relative to BasePath) are described.
func (d *APIDocument) Documents(method, path string) bool {
	item := d.spec.Paths.Value(path)
	return item != nil && item.GetOperation(method) != nil
}

// ReadDoc implements swag.Swagger.
func (d *APIDocument) ReadDoc() string { return d.json }

func (d *APIDocument) serveYAML(c echo.Context) error {
	return c.Blob(http.StatusOK, "application/yaml", openapiYAML)
}

var swaggerOnce sync.Once

// swag keeps a process-wide registry that panics on a second registration.
func registerSwagger(doc *APIDocument) {
	swaggerOnce.Do(func() {
		swag.Register(swag.Name, doc)
	})
}
