package docs

import (
	"encoding/json"
	"testing"

	"github.com/swaggo/swag"
)

func TestSwaggerDocRegistered(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		t.Fatalf("read doc: %v", err)
	}
	var spec struct {
		BasePath string                     `json:"basePath"`
		Paths    map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal([]byte(doc), &spec); err != nil {
		t.Fatalf("doc is not valid JSON: %v", err)
	}
	if spec.BasePath != "/api" {
		t.Fatalf("unexpected basePath %q", spec.BasePath)
	}
	for _, p := range []string{"/clients", "/products", "/orders", "/orders/{id}/confirm", "/orders-by-client"} {
		if _, ok := spec.Paths[p]; !ok {
			t.Fatalf("path %s missing", p)
		}
	}
}
