// Package render turns persisted form definitions into fillable instances
// and defines the renderer contract the output backends implement.
//
// Instantiate is the single gate between authoring and filling: it refuses
// inactive forms, regroups the flat field list into sections, and binds one
// typed control per input field. Renderers consume the resulting Instance so
// every backend agrees on grouping and control selection.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/schema"
	"github.com/goliatone/go-formbuilder/pkg/transform"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

// ErrFormNotAvailable is returned by Instantiate for forms whose status is
// not active. Callers typically map it to a "form closed" page rather than an
// error page.
var ErrFormNotAvailable = errors.New("render: form is not available")

// Control is the input widget class a field binds to.
type Control string

const (
	ControlText     Control = "text"
	ControlTextarea Control = "textarea"
	ControlNumber   Control = "number"
	ControlSelect   Control = "select"
	ControlRadio    Control = "radio"
	ControlCheckbox Control = "checkbox"
	ControlDate     Control = "date"
	ControlEmail    Control = "email"
	ControlPhone    Control = "phone"
)

// controlFor maps every input field type to its control. Header is not an
// input and never reaches this switch.
func controlFor(ft schema.FieldType) (Control, error) {
	switch ft {
	case schema.FieldTypeText:
		return ControlText, nil
	case schema.FieldTypeTextarea:
		return ControlTextarea, nil
	case schema.FieldTypeNumber:
		return ControlNumber, nil
	case schema.FieldTypeSelect:
		return ControlSelect, nil
	case schema.FieldTypeRadio:
		return ControlRadio, nil
	case schema.FieldTypeCheckbox:
		return ControlCheckbox, nil
	case schema.FieldTypeDate:
		return ControlDate, nil
	case schema.FieldTypeEmail:
		return ControlEmail, nil
	case schema.FieldTypePhone:
		return ControlPhone, nil
	default:
		return "", fmt.Errorf("render: field type %q has no control", ft)
	}
}

// Multiple reports whether the control collects a list of answers rather
// than a single value.
func (c Control) Multiple() bool { return c == ControlCheckbox }

// BoundInput is one fillable control of an instantiated form.
type BoundInput struct {
	Key         string          `json:"key"`
	Label       string          `json:"label"`
	Control     Control         `json:"control"`
	Required    bool            `json:"required"`
	Placeholder string          `json:"placeholder,omitempty"`
	HelpText    string          `json:"helpText,omitempty"`
	Options     []schema.Option `json:"options,omitempty"`
}

// SectionView is one visual group of an instantiated form.
type SectionView struct {
	Key    string       `json:"key"`
	Label  string       `json:"label"`
	Inputs []BoundInput `json:"inputs"`
}

// Instance is a form prepared for filling: metadata plus grouped, typed
// controls. It is immutable once built.
type Instance struct {
	ID       string        `json:"id,omitempty"`
	Slug     string        `json:"slug,omitempty"`
	Name     string        `json:"name"`
	Desc     string        `json:"description,omitempty"`
	Sections []SectionView `json:"sections"`

	fields []schema.Field
}

// Instantiate prepares a persisted form for filling. Inactive forms return
// ErrFormNotAvailable. Fields with types outside the closed set fail loudly
// rather than rendering a broken control.
func Instantiate(form schema.Form) (*Instance, error) {
	if !form.Active() {
		return nil, fmt.Errorf("render: form %q: %w", form.Slug, ErrFormNotAvailable)
	}

	instance := &Instance{
		ID:     form.ID,
		Slug:   form.Slug,
		Name:   form.Name,
		Desc:   form.Description,
		fields: append([]schema.Field(nil), form.Fields...),
	}

	for _, section := range transform.Nest(form.Fields) {
		view := SectionView{Key: section.Key, Label: section.Label}
		for _, field := range section.Fields {
			control, err := controlFor(field.Type)
			if err != nil {
				return nil, err
			}
			view.Inputs = append(view.Inputs, BoundInput{
				Key:         field.Key,
				Label:       field.Label,
				Control:     control,
				Required:    field.Required,
				Placeholder: field.Placeholder,
				HelpText:    field.HelpText,
				Options:     append([]schema.Option(nil), field.Options...),
			})
		}
		instance.Sections = append(instance.Sections, view)
	}

	return instance, nil
}

// SubmissionError carries the per-field violations of a rejected submission.
type SubmissionError struct {
	Violations []validation.Violation
}

func (e *SubmissionError) Error() string {
	if len(e.Violations) == 0 {
		return "render: submission rejected"
	}
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Path + ": " + v.Message
	}
	return "render: submission rejected: " + strings.Join(parts, "; ")
}

// Submit checks the provided answers against the form's requiredness rules.
// On success it returns the clean payload: answers keyed by field key, with
// keys the form does not define dropped. On failure it returns a
// *SubmissionError listing every violation.
func (i *Instance) Submit(values map[string]any) (map[string]any, error) {
	if violations := validation.ValidateSubmission(i.fields, values); len(violations) > 0 {
		return nil, &SubmissionError{Violations: violations}
	}

	payload := make(map[string]any, len(values))
	for _, field := range i.fields {
		if field.Type.IsHeader() {
			continue
		}
		if value, ok := values[field.Key]; ok {
			payload[field.Key] = value
		}
	}
	return payload, nil
}

// Keys returns the input field keys of the instance in document order.
func (i *Instance) Keys() []string {
	keys := make([]string, 0, len(i.fields))
	for _, field := range i.fields {
		if field.Type.IsHeader() {
			continue
		}
		keys = append(keys, field.Key)
	}
	return keys
}
