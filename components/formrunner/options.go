package formrunner

import (
	"context"
	"net/http"

	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/schema"
)

// FormSource resolves a slug (or id) into a persisted form definition.
// Return client.ErrNotFound-compatible errors for unknown slugs; the handler
// maps them to 404.
type FormSource func(ctx context.Context, slug string) (schema.Form, error)

// SubmitFunc receives the validated flat payload of an accepted submission.
type SubmitFunc func(ctx context.Context, form schema.Form, payload map[string]any) error

// GuardFunc runs before forms whose visibility requires an authenticated
// requester. Returning an error denies the request; wrap a StatusError to
// pick the response code.
type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath string
	Source    FormSource
	Submit    SubmitFunc
	Renderer  render.Renderer
	Render    render.Options
	Guard     GuardFunc

	// RedirectTo, when set, is where accepted HTML submissions are sent with
	// a 303. Empty means a minimal confirmation page.
	RedirectTo string
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath: "/forms/",
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/forms/"
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithSource(source FormSource) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Source = source
	}
}

func WithSubmit(submit SubmitFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Submit = submit
	}
}

func WithRenderer(renderer render.Renderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderer = renderer
	}
}

func WithRenderOptions(options render.Options) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Render = options
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithRedirectTo(target string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RedirectTo = target
	}
}
