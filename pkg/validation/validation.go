// Package validation holds the on-demand semantic checks for form schemas and
// the requiredness check applied to end-user submissions. Violations are
// collected into a list rather than returned as errors; editing is never
// blocked, only saving and submitting are.
package validation

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/schema"
)

// Violation pairs a dotted document location with a human-readable message.
// Authoring-time locations look like "sections.1" or "sections.1.fields.0";
// submission-time locations are the field key the answer belongs to.
type Violation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (v Violation) String() string { return v.Path + ": " + v.Message }

// ValidateSections walks the nested editing document in order and reports
// every semantic problem: missing labels, missing or duplicate keys (sections
// and fields share one namespace; the second occurrence is the one flagged),
// and empty option lists on choice-type fields.
func ValidateSections(sections []schema.Section) []Violation {
	var out []Violation
	seen := make(map[string]struct{})

	claim := func(key, path string) {
		if key == "" {
			out = append(out, Violation{Path: path, Message: "key is required"})
			return
		}
		if _, dup := seen[key]; dup {
			out = append(out, Violation{Path: path, Message: fmt.Sprintf("duplicate key %q", key)})
			return
		}
		seen[key] = struct{}{}
	}

	for si, section := range sections {
		sectionPath := fmt.Sprintf("sections.%d", si)
		// the unnamed implicit first section never persists as a header, so
		// it claims no key; every other section needs one
		if si > 0 || section.Key != "" || strings.TrimSpace(section.Label) != "" {
			claim(section.Key, sectionPath)
		}

		for fi, field := range section.Fields {
			fieldPath := fmt.Sprintf("%s.fields.%d", sectionPath, fi)
			if strings.TrimSpace(field.Label) == "" {
				out = append(out, Violation{Path: fieldPath, Message: "label is required"})
			}
			claim(field.Key, fieldPath)
			if field.Type.IsChoice() && len(field.Options) == 0 {
				out = append(out, Violation{Path: fieldPath, Message: "at least one option is required"})
			}
		}
	}
	return out
}

// ValidateSubmission checks one answer set against a flat field list: every
// required non-header field must have a present, non-empty answer. It is a
// single pass keyed by field key and is independent of the authoring-time
// duplicate-key check.
func ValidateSubmission(fields []schema.Field, values map[string]any) []Violation {
	var out []Violation
	for _, field := range fields {
		if field.Type.IsHeader() || !field.Required {
			continue
		}
		if !answered(values[field.Key]) {
			out = append(out, Violation{Path: field.Key, Message: "this field is required"})
		}
	}
	return out
}

func answered(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(v) != ""
	case []string:
		return len(v) > 0
	case []any:
		return len(v) > 0
	default:
		return true
	}
}
