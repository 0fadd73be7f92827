// Package formbuilder ties the form definition model, the builder editor, and
// the renderers together behind a small convenience surface. Most callers
// work with the sub-packages directly; the root package re-exports the types
// needed for the common load-render-submit path.
package formbuilder

import (
	"context"

	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla"
	"github.com/goliatone/go-formbuilder/pkg/schema"
)

// Form is the persisted form definition; aliased at the root for callers that
// only need the document types.
type Form = schema.Form

// Field is one answerable unit of a form definition.
type Field = schema.Field

// RenderOptions carries per-request renderer overrides such as prefilled
// values and server-side validation errors.
type RenderOptions = render.Options

// NewRegistry returns a renderer registry with the built-in renderers
// already registered: "vanilla" for HTML and "tui" for terminal prompts.
func NewRegistry() (*render.Registry, error) {
	registry := render.NewRegistry()

	html, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	if err := registry.Register(html); err != nil {
		return nil, err
	}

	terminal := tui.New()
	if err := registry.Register(terminal); err != nil {
		return nil, err
	}
	return registry, nil
}

// RenderHTML renders form with the default HTML renderer. It is the simplest
// entry point for callers that just want markup.
func RenderHTML(ctx context.Context, form schema.Form, options render.Options) ([]byte, error) {
	renderer, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, form, options)
}
