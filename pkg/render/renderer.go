package render

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbuilder/pkg/schema"
)

// Renderer converts a form definition into a byte representation (HTML, a
// terminal transcript, etc.). Renderers are expected to instantiate the form
// themselves so the availability gate applies uniformly.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form schema.Form, options Options) ([]byte, error)
}

// Options carry per-request data renderers can use without mutating the form
// definition.
type Options struct {
	// Method overrides the HTTP method the rendered form submits with.
	// Renderers translate non-browser verbs into POST plus a hidden _method
	// input when needed.
	Method string
	// Action is the submit URL of the rendered form.
	Action string
	// Values pre-populates controls, keyed by field key. Checkbox values may
	// be []string.
	Values map[string]any
	// Errors surfaces server-side validation feedback keyed by field key.
	// Messages under keys the form does not define are shown form-level.
	Errors map[string][]string
	// Hidden adds hidden inputs (CSRF tokens, version stamps) to the
	// rendered form.
	Hidden map[string]string
	// Theme selects chrome classes and design tokens for renderers that
	// support theming.
	Theme *theme.RendererConfig
}
