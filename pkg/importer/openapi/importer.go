// Package openapi seeds form definitions from OpenAPI documents. The request
// schema of an operation becomes a draft field list operators then refine in
// the builder; it is a starting point, not a faithful schema translation.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/schema"
)

// ErrOperationNotFound is returned when the document defines no operation
// with the requested id.
var ErrOperationNotFound = errors.New("openapi importer: operation not found")

// Option configures an Importer.
type Option func(*Importer)

// WithExternalRefs allows the loader to follow external $ref pointers.
func WithExternalRefs(allowed bool) Option {
	return func(i *Importer) {
		i.externalRefs = allowed
	}
}

// Importer converts OpenAPI operations into draft form definitions.
type Importer struct {
	externalRefs bool
}

// New constructs an Importer.
func New(options ...Option) *Importer {
	i := &Importer{}
	for _, opt := range options {
		if opt != nil {
			opt(i)
		}
	}
	return i
}

// Operations lists the ids of operations carrying a JSON request body, the
// ones Import can work with. Sorted for stable CLI output.
func (i *Importer) Operations(ctx context.Context, document []byte) ([]string, error) {
	spec, err := i.load(ctx, document)
	if err != nil {
		return nil, err
	}

	var ids []string
	forEachOperation(spec, func(id string, operation *openapi3.Operation) {
		if requestSchema(operation) != nil {
			ids = append(ids, id)
		}
	})
	sort.Strings(ids)
	return ids, nil
}

// Import builds a draft form from one operation's request schema. Object
// properties become fields; everything lands in a single implicit section.
// The draft comes back inactive so it cannot be filled before an operator
// reviews it.
func (i *Importer) Import(ctx context.Context, document []byte, operationID string) (schema.Form, error) {
	var form schema.Form

	spec, err := i.load(ctx, document)
	if err != nil {
		return form, err
	}

	var found *openapi3.Operation
	forEachOperation(spec, func(id string, operation *openapi3.Operation) {
		if id == operationID {
			found = operation
		}
	})
	if found == nil {
		return form, fmt.Errorf("openapi importer: %q: %w", operationID, ErrOperationNotFound)
	}

	body := requestSchema(found)
	if body == nil || body.Value == nil {
		return form, fmt.Errorf("openapi importer: operation %q has no JSON request schema", operationID)
	}
	if !body.Value.Type.Is(openapi3.TypeObject) {
		return form, fmt.Errorf("openapi importer: operation %q request schema is not an object", operationID)
	}

	form.Name = strings.TrimSpace(found.Summary)
	if form.Name == "" {
		form.Name = operationID
	}
	form.Description = strings.TrimSpace(found.Description)
	form.Status = schema.StatusInactive
	form.Visibility = schema.VisibilityPublic

	required := make(map[string]struct{}, len(body.Value.Required))
	for _, name := range body.Value.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(body.Value.Properties))
	for name := range body.Value.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		property := body.Value.Properties[name]
		if property == nil || property.Value == nil {
			continue
		}
		field := fieldFromProperty(name, property.Value)
		_, field.Required = required[name]
		form.Fields = append(form.Fields, field)
	}

	if len(form.Fields) == 0 {
		return schema.Form{}, fmt.Errorf("openapi importer: operation %q request schema has no usable properties", operationID)
	}
	return form, nil
}

func (i *Importer) load(ctx context.Context, document []byte) (*openapi3.T, error) {
	if len(document) == 0 {
		return nil, errors.New("openapi importer: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: i.externalRefs,
	}
	spec, err := loader.LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("openapi importer: load document: %w", err)
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi importer: validate document: %w", err)
	}
	return spec, nil
}

func forEachOperation(spec *openapi3.T, visit func(id string, operation *openapi3.Operation)) {
	if spec.Paths == nil {
		return
	}
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, operation := range item.Operations() {
			if operation == nil {
				continue
			}
			id := operation.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			visit(id, operation)
		}
	}
}

func requestSchema(operation *openapi3.Operation) *openapi3.SchemaRef {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil
	}
	media, ok := operation.RequestBody.Value.Content["application/json"]
	if !ok || media.Schema == nil {
		return nil
	}
	return media.Schema
}

// fieldFromProperty maps one JSON schema property onto the closest field
// type. Anything without a better match falls back to text.
func fieldFromProperty(name string, property *openapi3.Schema) schema.Field {
	label := strings.TrimSpace(property.Title)
	if label == "" {
		label = humanize(name)
	}

	field := schema.Field{
		Key:      schema.DeriveKey(name),
		Label:    label,
		Type:     schema.FieldTypeText,
		HelpText: strings.TrimSpace(property.Description),
	}

	switch {
	case len(property.Enum) > 0:
		field.Type = schema.FieldTypeSelect
		field.Options = optionsFromEnum(property.Enum)
	case property.Type.Is(openapi3.TypeArray):
		field.Type = schema.FieldTypeCheckbox
		if property.Items != nil && property.Items.Value != nil {
			field.Options = optionsFromEnum(property.Items.Value.Enum)
		}
	case property.Type.Is(openapi3.TypeInteger), property.Type.Is(openapi3.TypeNumber):
		field.Type = schema.FieldTypeNumber
	case property.Type.Is(openapi3.TypeBoolean):
		field.Type = schema.FieldTypeRadio
		field.Options = []schema.Option{
			{Label: "Yes", Value: "true"},
			{Label: "No", Value: "false"},
		}
	case property.Type.Is(openapi3.TypeString):
		switch property.Format {
		case "email":
			field.Type = schema.FieldTypeEmail
		case "date", "date-time":
			field.Type = schema.FieldTypeDate
		default:
			if property.MaxLength != nil && *property.MaxLength > 255 {
				field.Type = schema.FieldTypeTextarea
			}
		}
	}
	return field
}

func optionsFromEnum(values []any) []schema.Option {
	options := make([]schema.Option, 0, len(values))
	for _, value := range values {
		text := fmt.Sprint(value)
		options = append(options, schema.Option{
			Label: humanize(text),
			Value: text,
		})
	}
	return options
}

// humanize turns snake_case or kebab-case identifiers into a title-ish label.
func humanize(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}
