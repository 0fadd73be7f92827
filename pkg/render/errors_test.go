package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/schema"
)

func TestMapErrorPayload(t *testing.T) {
	form := schema.Form{Fields: []schema.Field{
		{Key: "email", Label: "Email", Type: schema.FieldTypeEmail},
		{Key: "kontak", Label: "Kontak", Type: schema.FieldTypeHeader},
		{Key: "hp", Label: "HP", Type: schema.FieldTypePhone},
	}}

	mapping := MapErrorPayload(form, map[string][]string{
		"email":        {" already registered ", "already registered"},
		"/fields/hp":   {"too short"},
		"kontak":       {"headers are not inputs"},
		"_":            {"quota exceeded"},
		"nonsense.key": {"lost cause"},
		"blank":        {"   "},
	})

	wantFields := map[string][]string{
		"email": {"already registered"},
		"hp":    {"too short"},
	}
	if diff := cmp.Diff(wantFields, mapping.Fields); diff != "" {
		t.Fatalf("field mapping mismatch (-want +got):\n%s", diff)
	}

	// header keys, unknown keys and the underscore bucket all demote to
	// form level, deduplicated
	if len(mapping.Form) != 3 {
		t.Fatalf("expected 3 form-level messages, got %v", mapping.Form)
	}
}

func TestMergeFormErrors(t *testing.T) {
	got := MergeFormErrors([]string{"a", " b "}, "b", "", "c")
	want := []string{"a", "b", "c"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestHiddenFieldHelpers(t *testing.T) {
	merged := MergeHiddenFields(
		map[string]string{"version": "3", " ": "dropped"},
		CSRFToken("_csrf", "tok"),
		MethodOverride("put"),
		Hidden("", "ignored"),
	)

	sorted := SortedHiddenFields(merged)
	want := []HiddenField{
		{Name: "_csrf", Value: "tok"},
		{Name: "_method", Value: "PUT"},
		{Name: "version", Value: "3"},
	}
	if diff := cmp.Diff(want, sorted); diff != "" {
		t.Fatalf("hidden fields mismatch (-want +got):\n%s", diff)
	}
}
