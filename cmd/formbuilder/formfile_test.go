package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-formbuilder/pkg/schema"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

const legacyOrderedForm = `{
  "name": "Pendaftaran",
  "status": "active",
  "visibility": "public",
  "fields": [
    {"key": "hp", "label": "HP", "type": "phone", "order": 2},
    {"key": "nama", "label": "Nama", "type": "text", "order": 1}
  ]
}`

func TestReadFormFileAppliesLegacyOrder(t *testing.T) {
	path := writeTemp(t, "form.json", legacyOrderedForm)

	form, err := readFormFile(path)
	if err != nil {
		t.Fatalf("expected form, got error: %v", err)
	}
	if len(form.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %+v", form.Fields)
	}
	if form.Fields[0].Key != "nama" || form.Fields[1].Key != "hp" {
		t.Fatalf("explicit order hints not applied: %+v", form.Fields)
	}
	for _, field := range form.Fields {
		if field.Order != 0 {
			t.Fatalf("order hint not cleared on %q", field.Key)
		}
	}
}

func TestReadFormFileYAML(t *testing.T) {
	path := writeTemp(t, "form.yaml", `
name: Pendaftaran
status: active
visibility: public
fields:
  - key: hp
    label: HP
    type: phone
    order: 2
  - key: nama
    label: Nama
    type: text
    order: 1
`)

	form, err := readFormFile(path)
	if err != nil {
		t.Fatalf("expected form, got error: %v", err)
	}
	if form.Name != "Pendaftaran" || form.Fields[0].Type != schema.FieldTypeText {
		t.Fatalf("yaml form not decoded with order applied: %+v", form)
	}
}

func TestReadFormFileMissingPath(t *testing.T) {
	if _, err := readFormFile(""); err == nil {
		t.Fatal("expected an error for a missing -form flag")
	}
}
