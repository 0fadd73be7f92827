package render

import (
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/schema"
)

// ErrorMapping splits a server error payload into field-level and form-level
// messages. Field messages are keyed by the field keys the form defines.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MapErrorPayload normalises a server error payload against a form. Messages
// keyed by a field the form defines stay field-level; everything else is
// demoted to form-level so no message is lost. JSON-pointer style paths
// ("/fields/email", "fields.email") resolve to their final segment.
func MapErrorPayload(form schema.Form, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{}
	if len(payload) == 0 {
		return mapping
	}

	known := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		if !field.Type.IsHeader() && field.Key != "" {
			known[field.Key] = struct{}{}
		}
	}

	for rawKey, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}

		key := resolveFieldKey(rawKey, known)
		if key == "" {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[string][]string)
		}
		mapping.Fields[key] = append(mapping.Fields[key], normalized...)
	}

	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// MergeFormErrors concatenates form-level error slices, trimming whitespace
// and dropping duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

func resolveFieldKey(raw string, known map[string]struct{}) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "_" || strings.EqualFold(trimmed, "form") {
		return ""
	}
	if _, ok := known[trimmed]; ok {
		return trimmed
	}

	// pointer or dotted path: the last segment is the candidate key
	segments := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == '/' || r == '.'
	})
	if len(segments) == 0 {
		return ""
	}
	last := segments[len(segments)-1]
	if _, ok := known[last]; ok {
		return last
	}
	return ""
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
