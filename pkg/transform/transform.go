// Package transform converts between the nested editing representation
// (sections containing fields) and the flat persisted representation (a single
// ordered field list where header-typed entries mark section boundaries).
//
// Both directions are pure and total. The transform is kept apart from the
// builder's mutation logic so the round-trip contract can be tested on its
// own: Nest(Flatten(Nest(flat))) equals Nest(flat) for any valid flat list.
package transform

import "github.com/goliatone/go-formbuilder/pkg/schema"

// Flatten serialises sections into the flat persisted field list. Every
// named section contributes a synthetic header field carrying its label and
// key; an unnamed first section is emitted without a marker so schemas with
// no section structure stay a plain field list. Editor identity and legacy
// order hints never reach the flat form.
func Flatten(sections []schema.Section) []schema.Field {
	var flat []schema.Field
	for i, section := range sections {
		if i > 0 || section.Key != "" || section.Label != "" {
			flat = append(flat, schema.Field{
				Key:   section.Key,
				Label: section.Label,
				Type:  schema.FieldTypeHeader,
			})
		}
		for _, field := range section.Fields {
			field.ID = ""
			field.Order = 0
			flat = append(flat, field)
		}
	}
	return flat
}

// Nest regroups a flat field list into sections for editing or display. A
// leading run of non-header fields belongs to an implicit unnamed first
// section; that section is discarded only when a header arrives while it is
// still empty. Nest always yields at least one section, and empty sections
// survive the trip.
func Nest(flat []schema.Field) []schema.Section {
	var sections []schema.Section
	current := schema.Section{}
	opened := false // current came from a header marker

	for _, field := range flat {
		if field.Type.IsHeader() {
			if opened || len(current.Fields) > 0 {
				sections = append(sections, current)
			}
			current = schema.Section{Key: field.Key, Label: field.Label}
			opened = true
			continue
		}
		field.Order = 0
		current.Fields = append(current.Fields, field)
	}
	sections = append(sections, current)
	return sections
}
