package schema

import (
	"fmt"
	"sort"

	json "github.com/goccy/go-json"
)

// EncodeForm serialises a form to its wire representation.
func EncodeForm(form Form) ([]byte, error) {
	data, err := json.Marshal(form)
	if err != nil {
		return nil, fmt.Errorf("schema: encode form: %w", err)
	}
	return data, nil
}

// DecodeForm parses a persisted form document. Legacy documents may carry an
// explicit numeric order on each field; when any field declares one, the flat
// list is stably re-sorted by it here, once, and the hints are cleared so that
// list position stays the single source of ordering from then on.
func DecodeForm(data []byte) (Form, error) {
	var form Form
	if err := json.Unmarshal(data, &form); err != nil {
		return Form{}, fmt.Errorf("schema: decode form: %w", err)
	}
	form.Fields = ApplyExplicitOrder(form.Fields)
	return form, nil
}

// ApplyExplicitOrder resolves legacy order hints on a flat field list. The
// sort is stable, so fields without hints keep their relative positions.
func ApplyExplicitOrder(fields []Field) []Field {
	ordered := false
	for _, f := range fields {
		if f.Order != 0 {
			ordered = true
			break
		}
	}
	if !ordered {
		return fields
	}
	out := append([]Field(nil), fields...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	for i := range out {
		out[i].Order = 0
	}
	return out
}

// EncodeSections serialises the nested editing document, used by the draft
// mirror so an interrupted session can resume.
func EncodeSections(sections []Section) ([]byte, error) {
	data, err := json.Marshal(sections)
	if err != nil {
		return nil, fmt.Errorf("schema: encode sections: %w", err)
	}
	return data, nil
}

// DecodeSections parses a draft document produced by EncodeSections.
func DecodeSections(data []byte) ([]Section, error) {
	var sections []Section
	if err := json.Unmarshal(data, &sections); err != nil {
		return nil, fmt.Errorf("schema: decode sections: %w", err)
	}
	return sections, nil
}
