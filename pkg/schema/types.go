package schema

// FieldType enumerates the input kinds an operator can place on a form.
// Renderers and the builder switch exhaustively over this set; adding a new
// type is a single-point change here plus the switch arms the compiler flags.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeNumber   FieldType = "number"
	FieldTypeSelect   FieldType = "select"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeDate     FieldType = "date"
	FieldTypeEmail    FieldType = "email"
	FieldTypePhone    FieldType = "phone"
	// FieldTypeHeader collects no answer; in the flat persisted list it marks
	// the start of a new section.
	FieldTypeHeader FieldType = "header"
)

// FieldTypes returns every valid field type in declaration order.
func FieldTypes() []FieldType {
	return []FieldType{
		FieldTypeText, FieldTypeTextarea, FieldTypeNumber, FieldTypeSelect,
		FieldTypeRadio, FieldTypeCheckbox, FieldTypeDate, FieldTypeEmail,
		FieldTypePhone, FieldTypeHeader,
	}
}

// Valid reports whether t is one of the declared field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeTextarea, FieldTypeNumber, FieldTypeSelect,
		FieldTypeRadio, FieldTypeCheckbox, FieldTypeDate, FieldTypeEmail,
		FieldTypePhone, FieldTypeHeader:
		return true
	}
	return false
}

// IsChoice reports whether the type requires a non-empty Options list.
func (t FieldType) IsChoice() bool {
	return t == FieldTypeSelect || t == FieldTypeRadio || t == FieldTypeCheckbox
}

// IsHeader reports whether the type is the section boundary marker.
func (t FieldType) IsHeader() bool { return t == FieldTypeHeader }

// Status gates whether end users may be served a form at all.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Visibility gates who may submit a form.
type Visibility string

const (
	VisibilityPublic        Visibility = "public"
	VisibilityAuthenticated Visibility = "authenticated"
)

// Option is one selectable entry of a choice-type field.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Field is one answerable unit of a form, or a header marker. Key is the
// machine-safe identifier; it shares a single namespace with section keys.
type Field struct {
	// ID is volatile editor identity used for drag addressing. It is never
	// part of the persisted flat schema; the builder assigns it on load.
	ID          string    `json:"id,omitempty"`
	Key         string    `json:"key"`
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	Required    bool      `json:"required"`
	Placeholder string    `json:"placeholder,omitempty"`
	HelpText    string    `json:"helpText,omitempty"`
	// Options is required and non-empty for choice types, ignored otherwise.
	Options []Option `json:"options,omitempty"`
	// Order is a legacy read-path hint. Position in the containing list is
	// authoritative; when persisted documents carry explicit order values they
	// are applied once at load time and zeroed afterwards.
	Order int `json:"order,omitempty"`
}

// Section is an editor-only grouping of fields under one label. Sections are
// never persisted as their own entity; the flat schema encodes them as header
// fields. A section's fields never contain a header-typed entry.
type Section struct {
	ID     string  `json:"id,omitempty"`
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Fields []Field `json:"fields"`
}

// Form is the top-level persisted document. Fields is the single flat ordered
// list that actually gets stored; save semantics replace it in full.
type Form struct {
	ID          string     `json:"id,omitempty"`
	Slug        string     `json:"slug,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	Visibility  Visibility `json:"visibility"`
	Fields      []Field    `json:"fields"`
}

// Active reports whether end users may be served this form.
func (f Form) Active() bool { return f.Status == StatusActive }
