package gotemplate

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestNewRequiresSource(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatalf("expected error when no template source is configured")
	}
}

func TestRenderTemplateFromFS(t *testing.T) {
	files := fstest.MapFS{
		"form.tmpl": &fstest.MapFile{Data: []byte("<h1>{{ title }}</h1>")},
	}
	engine, err := New(WithFS(files))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	out, err := engine.RenderTemplate("form", map[string]any{"title": "Registration"})
	if err != nil {
		t.Fatalf("RenderTemplate: %v", err)
	}
	if out != "<h1>Registration</h1>" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestRenderDetectsInlineContent(t *testing.T) {
	engine, err := New(WithFS(fstest.MapFS{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	out, err := engine.Render("{{ name|trim }}", map[string]any{"name": "  Siti  "})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out != "Siti" {
		t.Fatalf("trim filter not applied: %q", out)
	}
}

func TestHasAnswerFilter(t *testing.T) {
	engine, err := New(WithFS(fstest.MapFS{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tmpl := `{% if picked|has_answer:"beasiswa" %}yes{% else %}no{% endif %}`

	out, err := engine.RenderString(tmpl, map[string]any{"picked": []string{"reguler", "beasiswa"}})
	if err != nil {
		t.Fatalf("RenderString: %v", err)
	}
	if out != "yes" {
		t.Fatalf("expected list membership hit, got %q", out)
	}

	out, err = engine.RenderString(tmpl, map[string]any{"picked": "reguler"})
	if err != nil {
		t.Fatalf("RenderString: %v", err)
	}
	if out != "no" {
		t.Fatalf("expected scalar miss, got %q", out)
	}
}

func TestGlobalContext(t *testing.T) {
	engine, err := New(
		WithFS(fstest.MapFS{}),
		WithGlobalData(map[string]any{"brand": "formbuilder"}),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	out, err := engine.RenderString("{{ brand }}", nil)
	if err != nil {
		t.Fatalf("RenderString: %v", err)
	}
	if out != "formbuilder" {
		t.Fatalf("global data missing: %q", out)
	}
}

func TestRegisterFilterValidation(t *testing.T) {
	engine, err := New(WithFS(fstest.MapFS{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := engine.RegisterFilter("  ", nil); err == nil {
		t.Fatalf("blank filter registration must fail")
	}
	if err := engine.RegisterFilter("trim", func(in any, _ any) (any, error) {
		return in, nil
	}); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("duplicate filter must be rejected, got %v", err)
	}
}
