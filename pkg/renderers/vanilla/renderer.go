// Package vanilla renders form instances as dependency-free HTML. The markup
// uses semantic chrome classes so themes can restyle it; behaviour stays in
// the templates.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formbuilder/pkg/render"
	rendertemplate "github.com/goliatone/go-formbuilder/pkg/render/template"
	gotemplate "github.com/goliatone/go-formbuilder/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formbuilder/pkg/schema"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	sanitizer        *bluemonday.Policy
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithSanitizer overrides the policy applied to operator-authored help text.
// The default allows basic inline markup (links, emphasis) and nothing else.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.sanitizer = policy
		}
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
	sanitizer *bluemonday.Policy
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.sanitizer == nil {
		cfg.sanitizer = helpTextPolicy()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, sanitizer: cfg.sanitizer}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render instantiates the form and executes the template bundle over it.
// Inactive forms surface render.ErrFormNotAvailable untouched so callers can
// branch on it.
func (r *Renderer) Render(_ context.Context, form schema.Form, options render.Options) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	instance, err := render.Instantiate(form)
	if err != nil {
		return nil, err
	}

	result, err := r.templates.RenderTemplate("templates/form.tmpl", r.viewModel(instance, options))
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) viewModel(instance *render.Instance, options render.Options) map[string]any {
	mapping := render.ErrorMapping{Fields: options.Errors}
	if general, ok := options.Errors["_"]; ok {
		mapping.Form = general
	}

	method := strings.ToUpper(strings.TrimSpace(options.Method))
	if method == "" {
		method = "POST"
	}
	hidden := options.Hidden
	if method != "GET" && method != "POST" {
		hidden = render.MergeHiddenFields(hidden, render.MethodOverride(method))
		method = "POST"
	}

	sections := make([]map[string]any, 0, len(instance.Sections))
	for _, section := range instance.Sections {
		inputs := make([]map[string]any, 0, len(section.Inputs))
		for _, input := range section.Inputs {
			inputs = append(inputs, map[string]any{
				"key":         input.Key,
				"label":       input.Label,
				"control":     string(input.Control),
				"html_type":   htmlInputType(input.Control),
				"required":    input.Required,
				"placeholder": input.Placeholder,
				"help":        r.sanitizer.Sanitize(input.HelpText),
				"options":     optionMaps(input.Options),
				"multiple":    input.Control.Multiple(),
				"value":       options.Values[input.Key],
				"errors":      mapping.Fields[input.Key],
			})
		}
		sections = append(sections, map[string]any{
			"key":    section.Key,
			"label":  section.Label,
			"inputs": inputs,
		})
	}

	return map[string]any{
		"form": map[string]any{
			"slug":        instance.Slug,
			"name":        instance.Name,
			"description": instance.Desc,
			"method":      method,
			"action":      options.Action,
			"sections":    sections,
			"hidden":      render.SortedHiddenFields(hidden),
			"errors":      mapping.Form,
		},
		"theme": buildThemeContext(options.Theme),
	}
}

func optionMaps(options []schema.Option) []map[string]any {
	out := make([]map[string]any, 0, len(options))
	for _, option := range options {
		out = append(out, map[string]any{
			"label": option.Label,
			"value": option.Value,
		})
	}
	return out
}

// htmlInputType maps single-line controls to the <input> type attribute.
// Multi-line and choice controls render dedicated elements instead.
func htmlInputType(control render.Control) string {
	switch control {
	case render.ControlEmail:
		return "email"
	case render.ControlPhone:
		return "tel"
	case render.ControlNumber:
		return "number"
	case render.ControlDate:
		return "date"
	default:
		return "text"
	}
}

func helpTextPolicy() *bluemonday.Policy {
	policy := bluemonday.NewPolicy()
	policy.AllowElements("a", "b", "strong", "i", "em", "br", "code")
	policy.AllowAttrs("href").OnElements("a")
	policy.AllowURLSchemes("http", "https", "mailto")
	policy.RequireNoFollowOnLinks(true)
	return policy
}
