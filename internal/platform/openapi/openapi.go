package openapi

import (
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/klinik/klinik/pkg/caldate"
)

// Resource describes one CRUD collection served under the API prefix.
type Resource struct {
	Name    string   // schema and tag name, e.g. "Patient"
	Path    string   // collection path, e.g. "/patients"
	Filters []string // accepted list query parameters
	Model   any      // zero value of the row type
}

// Generator builds an OpenAPI 3.0 document for a fixed set of resources.
type Generator struct {
	resources []Resource
	version   string
	prefix    string
}

func NewGenerator(version, prefix string, resources ...Resource) *Generator {
	return &Generator{resources: resources, version: version, prefix: prefix}
}

func idParam() map[string]interface{} {
	return map[string]interface{}{
		"name": "id", "in": "path", "required": true,
		"schema": map[string]string{"type": "string", "format": "uuid"},
	}
}

func queryParam(name string, schema map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{"name": name, "in": "query", "required": false, "schema": schema}
}

func jsonContent(ref string) map[string]interface{} {
	return map[string]interface{}{
		"application/json": map[string]interface{}{
			"schema": map[string]interface{}{"$ref": ref},
		},
	}
}

func response(description, ref string) map[string]interface{} {
	return map[string]interface{}{"description": description, "content": jsonContent(ref)}
}

// GenerateSpec produces the OpenAPI document as a map.
func (g *Generator) GenerateSpec() map[string]interface{} {
	paths := make(map[string]interface{})
	schemas := map[string]interface{}{
		"Error": map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{"message": map[string]string{"type": "string"}},
		},
	}
	errResp := response("Error", "#/components/schemas/Error")

	for _, res := range g.resources {
		ref := "#/components/schemas/" + res.Name
		schemas[res.Name] = schemaOf(reflect.TypeOf(res.Model))
		schemas[res.Name+"Page"] = pageSchema(ref)

		listParams := []map[string]interface{}{
			queryParam("limit", map[string]interface{}{"type": "integer", "default": 20, "maximum": 100}),
			queryParam("offset", map[string]interface{}{"type": "integer", "default": 0}),
		}
		for _, f := range res.Filters {
			listParams = append(listParams, queryParam(f, map[string]interface{}{"type": "string"}))
		}

		paths[g.prefix+res.Path] = map[string]interface{}{
			"get": map[string]interface{}{
				"summary":     "List " + res.Name,
				"operationId": "list" + res.Name,
				"tags":        []string{res.Name},
				"parameters":  listParams,
				"responses": map[string]interface{}{
					"200": response("Page of results", ref+"Page"),
					"400": errResp,
				},
			},
			"post": map[string]interface{}{
				"summary":     "Create " + res.Name,
				"operationId": "create" + res.Name,
				"tags":        []string{res.Name},
				"requestBody": map[string]interface{}{"required": true, "content": jsonContent(ref)},
				"responses": map[string]interface{}{
					"201": response("Created", ref),
					"400": errResp,
				},
			},
		}

		paths[g.prefix+res.Path+"/{id}"] = map[string]interface{}{
			"get": map[string]interface{}{
				"summary":     "Read " + res.Name,
				"operationId": "read" + res.Name,
				"tags":        []string{res.Name},
				"parameters":  []map[string]interface{}{idParam()},
				"responses": map[string]interface{}{
					"200": response("Success", ref),
					"404": errResp,
				},
			},
			"patch": map[string]interface{}{
				"summary":     "Update " + res.Name,
				"description": "Fields missing from the body keep their stored values.",
				"operationId": "update" + res.Name,
				"tags":        []string{res.Name},
				"parameters":  []map[string]interface{}{idParam()},
				"requestBody": map[string]interface{}{"required": true, "content": jsonContent(ref)},
				"responses": map[string]interface{}{
					"200": response("Updated", ref),
					"400": errResp,
					"404": errResp,
				},
			},
			"delete": map[string]interface{}{
				"summary":     "Delete " + res.Name,
				"operationId": "delete" + res.Name,
				"tags":        []string{res.Name},
				"parameters":  []map[string]interface{}{idParam()},
				"responses": map[string]interface{}{
					"204": map[string]interface{}{"description": "Deleted"},
					"404": errResp,
				},
			},
		}
	}

	return map[string]interface{}{
		"openapi": "3.0.3",
		"info": map[string]interface{}{
			"title":       "Klinik API",
			"version":     g.version,
			"description": "Clinic records: patients, staff, appointments, IGD, lab, examinations and Rikkes",
		},
		"paths": paths,
		"components": map[string]interface{}{
			"schemas": schemas,
		},
	}
}

func pageSchema(itemRef string) map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"data":     map[string]interface{}{"type": "array", "items": map[string]interface{}{"$ref": itemRef}},
			"total":    map[string]string{"type": "integer"},
			"limit":    map[string]string{"type": "integer"},
			"offset":   map[string]string{"type": "integer"},
			"has_more": map[string]string{"type": "boolean"},
		},
	}
}

var (
	timeType = reflect.TypeOf(time.Time{})
	uuidType = reflect.TypeOf(uuid.UUID{})
	dateType = reflect.TypeOf(caldate.Date{})
)

// schemaOf derives a JSON schema from the json tags of t. Pointer fields
// are nullable.
func schemaOf(t reflect.Type) map[string]interface{} {
	if t == nil {
		return map[string]interface{}{"type": "object"}
	}
	if t.Kind() == reflect.Pointer {
		s := schemaOf(t.Elem())
		s["nullable"] = true
		return s
	}

	switch t {
	case timeType:
		return map[string]interface{}{"type": "string", "format": "date-time"}
	case uuidType:
		return map[string]interface{}{"type": "string", "format": "uuid"}
	case dateType:
		return map[string]interface{}{"type": "string", "format": "date"}
	}

	switch t.Kind() {
	case reflect.String:
		return map[string]interface{}{"type": "string"}
	case reflect.Bool:
		return map[string]interface{}{"type": "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return map[string]interface{}{"type": "integer"}
	case reflect.Float32, reflect.Float64:
		return map[string]interface{}{"type": "number"}
	case reflect.Slice, reflect.Array:
		return map[string]interface{}{"type": "array", "items": schemaOf(t.Elem())}
	case reflect.Map:
		return map[string]interface{}{"type": "object"}
	case reflect.Struct:
		props := make(map[string]interface{})
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				continue
			}
			if name == "" {
				name = f.Name
			}
			props[name] = schemaOf(f.Type)
		}
		return map[string]interface{}{"type": "object", "properties": props}
	}
	return map[string]interface{}{}
}

const swaggerUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Klinik API - Swagger UI</title>
  <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" >
  <style>
    html { box-sizing: border-box; overflow-y: scroll; }
    *, *:before, *:after { box-sizing: inherit; }
    body { margin: 0; background: #fafafa; }
  </style>
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: "/api/v1/openapi.json",
      dom_id: '#swagger-ui',
      deepLinking: true,
      presets: [
        SwaggerUIBundle.presets.apis,
        SwaggerUIBundle.SwaggerUIStandalonePreset
      ],
      layout: "BaseLayout"
    })
  </script>
</body>
</html>`

// RegisterRoutes registers the OpenAPI endpoints.
func (g *Generator) RegisterRoutes(apiGroup *echo.Group) {
	apiGroup.GET("/openapi.json", func(c echo.Context) error {
		return c.JSON(http.StatusOK, g.GenerateSpec())
	})
	apiGroup.GET("/docs", func(c echo.Context) error {
		return c.HTML(http.StatusOK, swaggerUIHTML)
	})
}
