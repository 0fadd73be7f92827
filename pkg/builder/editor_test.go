package builder

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/draft"
	"github.com/goliatone/go-formbuilder/pkg/schema"
)

func strptr(s string) *string { return &s }

func typeptr(t schema.FieldType) *schema.FieldType { return &t }

func TestNewSeedsDefaultDocument(t *testing.T) {
	e := New()

	sections := e.Sections()
	if len(sections) != 1 {
		t.Fatalf("expected one default section, got %d", len(sections))
	}
	if len(sections[0].Fields) != 1 {
		t.Fatalf("expected one seeded field, got %d", len(sections[0].Fields))
	}
	if sections[0].Fields[0].Type != schema.FieldTypeText {
		t.Fatalf("seeded field should be text, got %q", sections[0].Fields[0].Type)
	}
	if e.Dirty() {
		t.Fatalf("fresh editor should not be dirty")
	}
}

func TestLoadUnflattensPersistedForm(t *testing.T) {
	form := schema.Form{
		ID:     "f1",
		Name:   "Registration",
		Status: schema.StatusActive,
		Fields: []schema.Field{
			{Key: "nama", Label: "Nama", Type: schema.FieldTypeText},
			{Key: "kontak", Label: "Kontak", Type: schema.FieldTypeHeader},
			{Key: "hp", Label: "HP", Type: schema.FieldTypePhone},
		},
	}

	e := Load(form)
	sections := e.Sections()
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[1].Label != "Kontak" || sections[1].Fields[0].Key != "hp" {
		t.Fatalf("unexpected second section: %+v", sections[1])
	}
	for _, section := range sections {
		if section.ID == "" {
			t.Fatalf("loaded section missing drag identity")
		}
		for _, field := range section.Fields {
			if field.ID == "" {
				t.Fatalf("loaded field missing drag identity")
			}
		}
	}
}

func TestStructuralEdits(t *testing.T) {
	e := New()

	id := e.AddSection(0)
	if id == "" {
		t.Fatalf("AddSection returned no id")
	}
	if got := len(e.Sections()); got != 2 {
		t.Fatalf("expected 2 sections, got %d", got)
	}

	if fid := e.AddField(1); fid == "" {
		t.Fatalf("AddField returned no id")
	}
	if got := len(e.Sections()[1].Fields); got != 1 {
		t.Fatalf("expected field in second section, got %d", got)
	}

	e.RemoveField(1, 0)
	if got := len(e.Sections()[1].Fields); got != 0 {
		t.Fatalf("field not removed")
	}

	// removing a section removes its fields with it, no orphaning
	e.RemoveSection(0)
	sections := e.Sections()
	if len(sections) != 1 || sections[0].ID != id {
		t.Fatalf("expected only the added section to remain")
	}

	// removing the last section re-seeds an empty one
	e.RemoveSection(0)
	if got := len(e.Sections()); got != 1 {
		t.Fatalf("editor must always hold at least one section, got %d", got)
	}

	// out of range indices are ignored
	e.RemoveSection(9)
	e.RemoveField(0, 9)
	e.RemoveField(9, 0)
	if got := len(e.Sections()); got != 1 {
		t.Fatalf("out-of-range edits must be no-ops")
	}
}

func TestUpdateFieldRecomputesKeyFromLabel(t *testing.T) {
	e := New()

	e.UpdateField(0, 0, FieldPatch{Label: strptr("Nama Lengkap")})
	if got := e.Sections()[0].Fields[0].Key; got != "nama_lengkap" {
		t.Fatalf("key not derived from label: %q", got)
	}

	// manual override detaches the key from the label
	e.UpdateField(0, 0, FieldPatch{Key: strptr("full_name")})
	e.UpdateField(0, 0, FieldPatch{Label: strptr("Nama Siswa")})
	if got := e.Sections()[0].Fields[0].Key; got != "full_name" {
		t.Fatalf("overridden key must survive label edits, got %q", got)
	}

	// clearing the override reattaches derivation
	e.UpdateField(0, 0, FieldPatch{Key: strptr("")})
	if got := e.Sections()[0].Fields[0].Key; got != "nama_siswa" {
		t.Fatalf("cleared override should re-derive, got %q", got)
	}
}

func TestUpdateSectionKey(t *testing.T) {
	e := New()
	e.UpdateSection(0, SectionPatch{Label: strptr("Data Pribadi")})
	if got := e.Sections()[0].Key; got != "data_pribadi" {
		t.Fatalf("section key not derived: %q", got)
	}
}

func TestLoadPreservesManualKeys(t *testing.T) {
	form := schema.Form{
		Fields: []schema.Field{
			{Key: "custom_key", Label: "Nama", Type: schema.FieldTypeText},
		},
	}
	e := Load(form)
	e.UpdateField(0, 0, FieldPatch{Label: strptr("Nama Lengkap")})
	if got := e.Sections()[0].Fields[0].Key; got != "custom_key" {
		t.Fatalf("key that never matched its label must be treated as manual, got %q", got)
	}
}

func TestUpdateFieldOptionsAndFlags(t *testing.T) {
	e := New()
	e.UpdateField(0, 0, FieldPatch{
		Label: strptr("Jalur"),
		Type:  typeptr(schema.FieldTypeSelect),
		Options: []schema.Option{
			{Label: "Reguler", Value: "reguler"},
			{Label: "Beasiswa", Value: "beasiswa"},
		},
		Required: func() *bool { b := true; return &b }(),
	})

	field := e.Sections()[0].Fields[0]
	if field.Type != schema.FieldTypeSelect || !field.Required || len(field.Options) != 2 {
		t.Fatalf("patch not applied: %+v", field)
	}

	// invalid type values are dropped
	e.UpdateField(0, 0, FieldPatch{Type: typeptr(schema.FieldType("color"))})
	if got := e.Sections()[0].Fields[0].Type; got != schema.FieldTypeSelect {
		t.Fatalf("invalid type must be ignored, got %q", got)
	}
}

func TestSnapshotFlattens(t *testing.T) {
	e := New()
	e.SetDetails("Registration", "PPDB", schema.StatusActive, schema.VisibilityPublic)
	e.UpdateSection(0, SectionPatch{Label: strptr("Bio")})
	e.UpdateField(0, 0, FieldPatch{Label: strptr("Nama")})
	e.AddSection(0)
	e.UpdateSection(1, SectionPatch{Label: strptr("Kontak")})
	e.AddField(1)
	e.UpdateField(1, 0, FieldPatch{Label: strptr("HP"), Type: typeptr(schema.FieldTypePhone)})

	form := e.Snapshot()
	if form.Name != "Registration" || form.Status != schema.StatusActive {
		t.Fatalf("details missing from snapshot: %+v", form)
	}

	want := []schema.Field{
		{Key: "bio", Label: "Bio", Type: schema.FieldTypeHeader},
		{Key: "nama", Label: "Nama", Type: schema.FieldTypeText},
		{Key: "kontak", Label: "Kontak", Type: schema.FieldTypeHeader},
		{Key: "hp", Label: "HP", Type: schema.FieldTypePhone},
	}
	if diff := cmp.Diff(want, form.Fields); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestDraftMirrorAndResume(t *testing.T) {
	sink := draft.NewMemory()

	e := New(WithSink(sink, "new"))
	e.UpdateField(0, 0, FieldPatch{Label: strptr("Nama")})
	e.AddSection(0)
	e.UpdateSection(1, SectionPatch{Label: strptr("Kontak")})

	// a second editor over the same sink resumes the interrupted session
	resumed := New(WithSink(sink, "new"))
	got := resumed.Sections()
	if len(got) != 2 || got[1].Label != "Kontak" {
		t.Fatalf("draft not resumed: %+v", got)
	}
	if got[0].Fields[0].Label != "Nama" {
		t.Fatalf("field edits lost in draft: %+v", got[0].Fields)
	}

	// a successful create clears the slot
	resumed.MarkSaved(schema.Form{ID: "f1", Slug: "registration"})
	if _, err := sink.Get(context.Background(), "new"); err == nil {
		t.Fatalf("draft slot should be cleared after create")
	}
	if resumed.Dirty() {
		t.Fatalf("editor should be clean after MarkSaved")
	}

	fresh := New(WithSink(sink, "new"))
	if len(fresh.Sections()) != 1 {
		t.Fatalf("cleared draft must not resume")
	}
}

func TestValidateSurfacesDuplicates(t *testing.T) {
	e := New()
	e.UpdateField(0, 0, FieldPatch{Label: strptr("Nama")})
	e.AddField(0)
	e.UpdateField(0, 1, FieldPatch{Label: strptr("Nama")})

	if got := e.Validate(); len(got) == 0 {
		t.Fatalf("duplicate keys must be reported")
	}

	e.UpdateField(0, 1, FieldPatch{Label: strptr("Nama Wali")})
	if got := e.Validate(); len(got) != 0 {
		t.Fatalf("expected clean after rename, got %+v", got)
	}
}
