package http_test

import (
	"context"
	"strings"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/samirrijal/placescout/api"
)

func loadOpenAPI(t *testing.T) *openapi3.T {
	t.Helper()
	loader := &openapi3.Loader{IsExternalRefsAllowed: false}
	spec, err := loader.LoadFromData(api.OpenAPI)
	if err != nil {
		t.Fatalf("failed to parse OpenAPI spec: %v", err)
	}
	return spec
}

// TestOpenAPISpec validates the OpenAPI specification is valid.
func TestOpenAPISpec(t *testing.T) {
	spec := loadOpenAPI(t)

	// Validate the spec
	if err := spec.Validate(context.Background()); err != nil {
		t.Fatalf("OpenAPI spec validation failed: %v", err)
	}

	expectedPaths := []string{
		"/",
		"/v1/health",
		"/v1/ready",
		"/v1/search",
		"/api/search",
		"/v1/search/jobs",
		"/v1/search/jobs/{id}",
		"/v1/searches",
		"/graphql",
	}

	for _, path := range expectedPaths {
		if item := spec.Paths.Find(path); item == nil {
			t.Errorf("expected path %s not found in spec", path)
		}
	}

	if item := spec.Paths.Find("/api/search"); item == nil || item.Post == nil || !item.Post.Deprecated {
		t.Error("expected /api/search to be marked deprecated")
	}

	expectedSchemas := []string{
		"SearchRequest",
		"SearchResponse",
		"SearchResult",
		"Place",
		"SearchJob",
		"SearchRun",
		"Pagination",
		"APIError",
	}

	for _, schema := range expectedSchemas {
		if spec.Components.Schemas[schema] == nil {
			t.Errorf("expected schema %s not found", schema)
		}
	}

	t.Logf("OpenAPI spec valid: %d paths, %d schemas", len(spec.Paths.Map()), len(spec.Components.Schemas))
}

// TestOpenAPIInfo verifies spec metadata.
func TestOpenAPIInfo(t *testing.T) {
	spec := loadOpenAPI(t)

	if spec.Info.Title != "placescout API" {
		t.Errorf("expected title 'placescout API', got %q", spec.Info.Title)
	}

	if spec.Info.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %q", spec.Info.Version)
	}

	if spec.Info.Description == "" {
		t.Error("expected non-empty description")
	}

	if len(spec.Servers) == 0 {
		t.Error("expected at least one server")
	}

	t.Logf("OpenAPI Info: %s v%s @ %s", spec.Info.Title, spec.Info.Version, spec.Servers[0].URL)
}

// TestOpenAPIPlaceFieldsAreStrings documents that numeric fields are sent as
// strings that may hold "N/A".
func TestOpenAPIPlaceFieldsAreStrings(t *testing.T) {
	place := loadOpenAPI(t).Components.Schemas["Place"]
	if place == nil || place.Value == nil {
		t.Fatal("Place schema missing")
	}
	for _, field := range []string{"rating", "total_ratings"} {
		prop := place.Value.Properties[field]
		if prop == nil || prop.Value == nil {
			t.Fatalf("Place.%s missing", field)
		}
		if !prop.Value.Type.Is("string") {
			t.Errorf("Place.%s should be a string, got %v", field, prop.Value.Type)
		}
		if !strings.Contains(prop.Value.Description, `"N/A"`) {
			t.Errorf("Place.%s description should mention \"N/A\"", field)
		}
	}
}
