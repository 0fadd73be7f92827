package builder

import "github.com/goliatone/go-formbuilder/pkg/schema"

// FieldPatch describes a partial update to one field. Nil pointers leave the
// property untouched; a nil Options slice leaves options untouched.
type FieldPatch struct {
	Label       *string
	Key         *string
	Type        *schema.FieldType
	Required    *bool
	Placeholder *string
	HelpText    *string
	Options     []schema.Option
}

// SectionPatch describes a partial update to one section.
type SectionPatch struct {
	Label *string
	Key   *string
}

// UpdateField applies a patch. Setting Key detaches it from the label; from
// then on label edits leave the key alone. Setting Key to the empty string
// reattaches it, re-deriving from the current label. A label edit on an
// attached key recomputes the key immediately.
func (e *Editor) UpdateField(sectionIndex, fieldIndex int, patch FieldPatch) {
	if sectionIndex < 0 || sectionIndex >= len(e.sections) {
		return
	}
	section := &e.sections[sectionIndex]
	if fieldIndex < 0 || fieldIndex >= len(section.Fields) {
		return
	}
	field := &section.Fields[fieldIndex]

	if patch.Label != nil {
		field.Label = *patch.Label
	}
	if patch.Type != nil && patch.Type.Valid() {
		field.Type = *patch.Type
	}
	if patch.Required != nil {
		field.Required = *patch.Required
	}
	if patch.Placeholder != nil {
		field.Placeholder = *patch.Placeholder
	}
	if patch.HelpText != nil {
		field.HelpText = *patch.HelpText
	}
	if patch.Options != nil {
		field.Options = append([]schema.Option(nil), patch.Options...)
	}

	e.applyKeyPatch(&field.Key, field.Label, field.ID, patch.Key, patch.Label != nil)
	e.touch()
}

// UpdateSection applies a patch to a section heading, with the same key
// attachment rules as UpdateField.
func (e *Editor) UpdateSection(index int, patch SectionPatch) {
	if index < 0 || index >= len(e.sections) {
		return
	}
	section := &e.sections[index]
	if patch.Label != nil {
		section.Label = *patch.Label
	}
	e.applyKeyPatch(&section.Key, section.Label, section.ID, patch.Key, patch.Label != nil)
	e.touch()
}

func (e *Editor) applyKeyPatch(key *string, label, itemID string, patched *string, labelChanged bool) {
	switch {
	case patched != nil && *patched != "":
		*key = *patched
		e.keyEdited[itemID] = struct{}{}
	case patched != nil:
		// explicit empty key reattaches derivation to the label
		delete(e.keyEdited, itemID)
		*key = schema.DeriveKey(label)
	case labelChanged:
		if _, detached := e.keyEdited[itemID]; !detached {
			*key = schema.DeriveKey(label)
		}
	}
}
