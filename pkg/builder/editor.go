// Package builder implements the form authoring state machine. An Editor owns
// the live nested document (ordered sections, each an ordered field list) and
// exposes the fine-grained structural edits plus the drag reorder protocol the
// visual composer drives.
//
// Editor operations are synchronous and cannot fail structurally: indices and
// containers are re-derived from current state on every call, never cached.
// The only user-reachable failures are semantic (duplicate keys, missing
// labels), surfaced by Validate at save or preview time; editing itself is
// never blocked.
package builder

import (
	"context"

	"github.com/google/uuid"

	"github.com/goliatone/go-formbuilder/pkg/draft"
	"github.com/goliatone/go-formbuilder/pkg/schema"
	"github.com/goliatone/go-formbuilder/pkg/transform"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

// Editor is the authoring state machine. Each editing session owns an
// independent Editor; there is no shared state across sessions.
type Editor struct {
	meta     schema.Form
	sections []schema.Section
	dirty    bool
	drag     dragState

	// item IDs whose key was manually detached from the label
	keyEdited map[string]struct{}

	sink     draft.Sink
	draftKey string
}

// Option configures an Editor at construction time.
type Option func(*Editor)

// WithSink injects the autosave destination used to mirror the in-progress
// document after every edit. Editors without a sink (the default, and the
// right choice for already-persisted forms) skip mirroring entirely.
func WithSink(sink draft.Sink, draftKey string) Option {
	return func(e *Editor) {
		if sink != nil {
			e.sink = sink
		}
		if draftKey != "" {
			e.draftKey = draftKey
		}
	}
}

// New creates an editor for a not-yet-persisted form: one default section
// holding one seeded text field. When a sink is injected and already holds a
// draft, the draft is resumed instead of seeding.
func New(options ...Option) *Editor {
	e := &Editor{
		sink:      draft.Noop{},
		draftKey:  "new",
		keyEdited: make(map[string]struct{}),
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}

	if doc, err := e.sink.Get(context.Background(), e.draftKey); err == nil {
		if sections, err := schema.DecodeSections(doc); err == nil && len(sections) > 0 {
			e.sections = sections
			e.normalize()
			return e
		}
	}

	e.sections = []schema.Section{{
		ID:     uuid.NewString(),
		Fields: []schema.Field{{ID: uuid.NewString(), Type: schema.FieldTypeText}},
	}}
	return e
}

// Load creates an editor over a persisted form. The flat field list is
// un-flattened into sections immediately; legacy explicit order hints are
// applied once here. Loaded editors default to the no-op sink: existing forms
// do not mirror drafts.
func Load(form schema.Form, options ...Option) *Editor {
	e := &Editor{
		sink:      draft.Noop{},
		draftKey:  form.ID,
		keyEdited: make(map[string]struct{}),
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}

	e.meta = form
	e.meta.Fields = nil
	e.sections = transform.Nest(schema.ApplyExplicitOrder(form.Fields))
	e.normalize()
	return e
}

// normalize assigns drag identity to items missing one and records which keys
// no longer match their label derivation, so later label edits leave manually
// chosen keys alone.
func (e *Editor) normalize() {
	for si := range e.sections {
		section := &e.sections[si]
		if section.ID == "" {
			section.ID = uuid.NewString()
		}
		if section.Key != "" && section.Key != schema.DeriveKey(section.Label) {
			e.keyEdited[section.ID] = struct{}{}
		}
		for fi := range section.Fields {
			field := &section.Fields[fi]
			if field.ID == "" {
				field.ID = uuid.NewString()
			}
			if field.Key != "" && field.Key != schema.DeriveKey(field.Label) {
				e.keyEdited[field.ID] = struct{}{}
			}
		}
	}
}

// Sections returns a copy of the live nested document.
func (e *Editor) Sections() []schema.Section {
	out := make([]schema.Section, len(e.sections))
	for i, section := range e.sections {
		section.Fields = append([]schema.Field(nil), section.Fields...)
		out[i] = section
	}
	return out
}

// Dirty reports whether the document changed since construction or the last
// MarkSaved.
func (e *Editor) Dirty() bool { return e.dirty }

// SetDetails updates the form's own descriptive properties.
func (e *Editor) SetDetails(name, description string, status schema.Status, visibility schema.Visibility) {
	e.meta.Name = name
	e.meta.Description = description
	e.meta.Status = status
	e.meta.Visibility = visibility
	e.touch()
}

// AddSection inserts an empty section after afterIndex and returns its id.
// Pass -1 (or any out-of-range index) to append at the end.
func (e *Editor) AddSection(afterIndex int) string {
	section := schema.Section{ID: uuid.NewString()}
	at := afterIndex + 1
	if at < 0 || at > len(e.sections) {
		at = len(e.sections)
	}
	e.sections = append(e.sections[:at], append([]schema.Section{section}, e.sections[at:]...)...)
	e.touch()
	return section.ID
}

// RemoveSection deletes a section and every field in it. Removing the last
// remaining section resets the editor to a single fresh empty section, so the
// document always has somewhere to put fields.
func (e *Editor) RemoveSection(index int) {
	if index < 0 || index >= len(e.sections) {
		return
	}
	e.sections = append(e.sections[:index], e.sections[index+1:]...)
	if len(e.sections) == 0 {
		e.sections = []schema.Section{{ID: uuid.NewString()}}
	}
	e.touch()
}

// AddField appends a seeded text field to the section and returns its id.
func (e *Editor) AddField(sectionIndex int) string {
	if sectionIndex < 0 || sectionIndex >= len(e.sections) {
		return ""
	}
	field := schema.Field{ID: uuid.NewString(), Type: schema.FieldTypeText}
	section := &e.sections[sectionIndex]
	section.Fields = append(section.Fields, field)
	e.touch()
	return field.ID
}

// RemoveField deletes one field.
func (e *Editor) RemoveField(sectionIndex, fieldIndex int) {
	if sectionIndex < 0 || sectionIndex >= len(e.sections) {
		return
	}
	section := &e.sections[sectionIndex]
	if fieldIndex < 0 || fieldIndex >= len(section.Fields) {
		return
	}
	section.Fields = append(section.Fields[:fieldIndex], section.Fields[fieldIndex+1:]...)
	e.touch()
}

// Validate runs the semantic checks over the live document.
func (e *Editor) Validate() []validation.Violation {
	return validation.ValidateSections(e.sections)
}

// Snapshot flattens the live document into the persistable form. Save
// semantics are full-replace: the returned field list supersedes whatever the
// store holds.
func (e *Editor) Snapshot() schema.Form {
	form := e.meta
	form.Fields = transform.Flatten(e.sections)
	return form
}

// MarkSaved records a successful persist: the editor adopts the identity the
// store assigned, the draft slot is cleared, and the document is clean again.
func (e *Editor) MarkSaved(saved schema.Form) {
	e.meta.ID = saved.ID
	e.meta.Slug = saved.Slug
	e.dirty = false
	_ = e.sink.Clear(context.Background(), e.draftKey)
}

// touch marks the document dirty and mirrors it to the draft sink. The mirror
// is fire-and-forget: a failing sink never disturbs editing.
func (e *Editor) touch() {
	e.dirty = true
	doc, err := schema.EncodeSections(e.sections)
	if err != nil {
		return
	}
	_ = e.sink.Put(context.Background(), e.draftKey, doc)
}
