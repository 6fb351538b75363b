package docs

import (
	"strings"
	"testing"

	"github.com/swaggo/swag"
)

func TestSwaggerInfoBasic(t *testing.T) {
	if SwaggerInfo == nil {
		t.Fatalf("SwaggerInfo unexpectedly nil")
	}
	if SwaggerInfo.Title != "HealthAssist API" {
		t.Fatalf("unexpected Title %q", SwaggerInfo.Title)
	}
	if !strings.Contains(SwaggerInfo.SwaggerTemplate, "paths") {
		t.Fatalf("expected SwaggerTemplate to contain 'paths'")
	}
}

func TestSwaggerDocRendersRoutes(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		t.Fatalf("ReadDoc: %v", err)
	}
	for _, route := range []string{`"/bot"`, `"/skin"`, `"/register"`, `"/records"`} {
		if !strings.Contains(doc, route) {
			t.Errorf("rendered doc missing %s", route)
		}
	}
}
