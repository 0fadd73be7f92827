package builder

import (
	"testing"

	"github.com/goliatone/go-formbuilder/pkg/schema"
)

// loadFourFields returns an editor with one section holding fields a, b, c, d.
func loadFourFields(t *testing.T) (*Editor, []string) {
	t.Helper()
	e := Load(schema.Form{Fields: []schema.Field{
		{Key: "a", Label: "A", Type: schema.FieldTypeText},
		{Key: "b", Label: "B", Type: schema.FieldTypeText},
		{Key: "c", Label: "C", Type: schema.FieldTypeText},
		{Key: "d", Label: "D", Type: schema.FieldTypeText},
	}})
	var ids []string
	for _, f := range e.Sections()[0].Fields {
		ids = append(ids, f.ID)
	}
	return e, ids
}

func fieldKeys(section schema.Section) []string {
	keys := make([]string, len(section.Fields))
	for i, f := range section.Fields {
		keys[i] = f.Key
	}
	return keys
}

func equalKeys(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestDragFieldWithinSection(t *testing.T) {
	e, ids := loadFourFields(t)

	e.DragStart(ids[2])
	if _, ok := e.Dragging(); !ok {
		t.Fatalf("DragStart must record the active drag")
	}
	e.DragEnd(ids[0])

	if got := fieldKeys(e.Sections()[0]); !equalKeys(got, []string{"c", "a", "b", "d"}) {
		t.Fatalf("expected [c a b d], got %v", got)
	}
	if _, ok := e.Dragging(); ok {
		t.Fatalf("DragEnd must clear drag state")
	}
	if !e.Dirty() {
		t.Fatalf("reorder must dirty the editor")
	}
}

func TestDragOnlyFieldAcrossSections(t *testing.T) {
	e := Load(schema.Form{Fields: []schema.Field{
		{Key: "pribadi", Label: "Pribadi", Type: schema.FieldTypeHeader},
		{Key: "nama", Label: "Nama", Type: schema.FieldTypeText},
		{Key: "kontak", Label: "Kontak", Type: schema.FieldTypeHeader},
		{Key: "hp", Label: "HP", Type: schema.FieldTypePhone},
	}})

	namaID := e.Sections()[0].Fields[0].ID
	hpID := e.Sections()[1].Fields[0].ID

	// after DragOver relocates the field, the pointer hovers the dragged
	// item's own preview, so DragEnd sees the item itself as the target
	e.DragStart(namaID)
	e.DragOver(hpID, PlaceAfter)
	e.DragEnd(namaID)

	sections := e.Sections()
	if len(sections[0].Fields) != 0 {
		t.Fatalf("source section should be empty, got %v", fieldKeys(sections[0]))
	}
	if sections[0].Label != "Pribadi" {
		t.Fatalf("source section must keep its identity")
	}
	if got := fieldKeys(sections[1]); !equalKeys(got, []string{"hp", "nama"}) {
		t.Fatalf("expected [hp nama] in target section, got %v", got)
	}
}

func TestDragFieldOverSectionBody(t *testing.T) {
	e := Load(schema.Form{Fields: []schema.Field{
		{Key: "pribadi", Label: "Pribadi", Type: schema.FieldTypeHeader},
		{Key: "nama", Label: "Nama", Type: schema.FieldTypeText},
		{Key: "kontak", Label: "Kontak", Type: schema.FieldTypeHeader},
		{Key: "hp", Label: "HP", Type: schema.FieldTypePhone},
	}})

	namaID := e.Sections()[0].Fields[0].ID
	targetSection := e.Sections()[1].ID

	// hovering a section rather than a field drops at the end of its list
	e.DragStart(namaID)
	e.DragOver(targetSection, PlaceAfter)
	e.DragEnd(targetSection)

	if got := fieldKeys(e.Sections()[1]); !equalKeys(got, []string{"hp", "nama"}) {
		t.Fatalf("expected drop at end of target, got %v", got)
	}
}

func TestDragSectionReorder(t *testing.T) {
	e := Load(schema.Form{Fields: []schema.Field{
		{Key: "pribadi", Label: "Pribadi", Type: schema.FieldTypeHeader},
		{Key: "nama", Label: "Nama", Type: schema.FieldTypeText},
		{Key: "kontak", Label: "Kontak", Type: schema.FieldTypeHeader},
		{Key: "hp", Label: "HP", Type: schema.FieldTypePhone},
		{Key: "berkas", Label: "Berkas", Type: schema.FieldTypeHeader},
	}})

	sections := e.Sections()
	e.DragStart(sections[2].ID)
	e.DragEnd(sections[0].ID)

	got := e.Sections()
	if got[0].Label != "Berkas" || got[1].Label != "Pribadi" || got[2].Label != "Kontak" {
		t.Fatalf("section order wrong: %s %s %s", got[0].Label, got[1].Label, got[2].Label)
	}
	// fields travel with their section
	if keys := fieldKeys(got[1]); !equalKeys(keys, []string{"nama"}) {
		t.Fatalf("fields must move with their section, got %v", keys)
	}
}

func TestDragSectionOverFieldIsIgnored(t *testing.T) {
	e := Load(schema.Form{Fields: []schema.Field{
		{Key: "pribadi", Label: "Pribadi", Type: schema.FieldTypeHeader},
		{Key: "nama", Label: "Nama", Type: schema.FieldTypeText},
		{Key: "kontak", Label: "Kontak", Type: schema.FieldTypeHeader},
	}})

	sections := e.Sections()
	fieldID := sections[0].Fields[0].ID

	e.DragStart(sections[1].ID)
	e.DragEnd(fieldID)

	got := e.Sections()
	if got[0].Label != "Pribadi" || got[1].Label != "Kontak" {
		t.Fatalf("section drop on a field must leave order unchanged")
	}
}

func TestDragCrossSectionPlacementSticks(t *testing.T) {
	// DragOver already relocated the field; a dropless end keeps the
	// document exactly as the last DragOver left it
	e := Load(schema.Form{Fields: []schema.Field{
		{Key: "pribadi", Label: "Pribadi", Type: schema.FieldTypeHeader},
		{Key: "nama", Label: "Nama", Type: schema.FieldTypeText},
		{Key: "email", Label: "Email", Type: schema.FieldTypeEmail},
		{Key: "kontak", Label: "Kontak", Type: schema.FieldTypeHeader},
		{Key: "hp", Label: "HP", Type: schema.FieldTypePhone},
		{Key: "wa", Label: "WA", Type: schema.FieldTypePhone},
	}})

	namaID := e.Sections()[0].Fields[0].ID
	hpID := e.Sections()[1].Fields[0].ID

	e.DragStart(namaID)
	e.DragOver(hpID, PlaceBefore)

	if got := fieldKeys(e.Sections()[1]); !equalKeys(got, []string{"nama", "hp", "wa"}) {
		t.Fatalf("DragOver should relocate speculatively, got %v", got)
	}

	e.DragEnd("")
	if got := fieldKeys(e.Sections()[1]); !equalKeys(got, []string{"nama", "hp", "wa"}) {
		t.Fatalf("a dropless end must keep the speculative placement, got %v", got)
	}
	if got := fieldKeys(e.Sections()[0]); !equalKeys(got, []string{"email"}) {
		t.Fatalf("source section should only keep email, got %v", got)
	}
	if _, ok := e.Dragging(); ok {
		t.Fatalf("drag state must clear on a dropless end")
	}
}

func TestDragUnknownTargets(t *testing.T) {
	e, ids := loadFourFields(t)

	e.DragStart("nope")
	if _, ok := e.Dragging(); ok {
		t.Fatalf("unknown drag source must not start a drag")
	}

	e.DragStart(ids[1])
	e.DragEnd("gone")
	if got := fieldKeys(e.Sections()[0]); !equalKeys(got, []string{"a", "b", "c", "d"}) {
		t.Fatalf("drop on unknown target must leave order as is, got %v", got)
	}
	if _, ok := e.Dragging(); ok {
		t.Fatalf("drag state must clear even on a dropless end")
	}
}
