package web

import (
	"io/fs"
	"testing"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	if err != nil {
		t.Fatalf("Templates: %v", err)
	}
	for _, name := range []string{"index.html", "login.html"} {
		if tmpl.Lookup(name) == nil {
			t.Fatalf("template %s missing", name)
		}
	}
}

func TestStaticAssets(t *testing.T) {
	for _, name := range []string{"manifest.json", "logo.svg", "climate.html"} {
		if _, err := fs.Stat(Static(), name); err != nil {
			t.Fatalf("asset %s: %v", name, err)
		}
	}
}
