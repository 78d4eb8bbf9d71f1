package respond

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/objx"

	"github.com/goliatone/go-respond/pkg/renderer"
)

func TestNewRegistryWithExtras(t *testing.T) {
	reg, err := NewRegistryWithExtras()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	want := []string{"html", "js", "json", "update", "xml", "yaml"}
	if diff := cmp.Diff(want, reg.List()); diff != "" {
		t.Fatalf("catalog mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadControllers_RendersThroughChild(t *testing.T) {
	path := filepath.Join(t.TempDir(), "renderers.json")
	doc := `{"controllers":[{"name":"app","renderers":["json"]},{"name":"feed","parent":"app","renderers":["yaml"]}]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	reg, err := NewRegistryWithExtras()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	controllers, err := LoadControllers(reg, path)
	if err != nil {
		t.Fatalf("load controllers: %v", err)
	}

	feed := controllers["feed"]
	if diff := cmp.Diff([]string{"json", "yaml"}, feed.Renderers().Names()); diff != "" {
		t.Fatalf("feed renderers mismatch (-want +got):\n%s", diff)
	}

	res := renderer.NewResponse(nil)
	if err := feed.Render(res, objx.Map{"yaml": map[string]int{"n": 1}}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(res.Body) != "n: 1\n" {
		t.Fatalf("unexpected body %q", res.Body)
	}
}
