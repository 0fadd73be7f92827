// Package tui drives an interactive terminal fill-in session for a form
// definition. Each input field maps to a survey prompt; requiredness is
// enforced by re-prompting, and the collected answers come out as the same
// flat payload an HTML submission would produce.
package tui

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/schema"
)

const skipChoice = "(leave blank)"

type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
}

// New constructs the TUI renderer. Without options it prompts through survey
// on the current terminal and serializes answers as JSON.
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return "tui"
}

func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatPrettyText {
		return "text/plain; charset=utf-8"
	}
	return "application/json; charset=utf-8"
}

// Render runs the interactive session and serializes the collected payload.
func (r *Renderer) Render(ctx context.Context, form schema.Form, options render.Options) ([]byte, error) {
	instance, err := render.Instantiate(form)
	if err != nil {
		return nil, err
	}

	payload, err := r.fill(ctx, instance, options)
	if err != nil {
		return nil, err
	}

	if r.outputFormat == OutputFormatPrettyText {
		return r.prettyPayload(instance, payload), nil
	}
	return json.MarshalIndent(payload, "", "  ")
}

// Fill runs the interactive session and returns the raw payload without
// serializing it, for callers that post the answers elsewhere.
func (r *Renderer) Fill(ctx context.Context, form schema.Form, options render.Options) (map[string]any, error) {
	instance, err := render.Instantiate(form)
	if err != nil {
		return nil, err
	}
	return r.fill(ctx, instance, options)
}

func (r *Renderer) fill(ctx context.Context, instance *render.Instance, options render.Options) (map[string]any, error) {
	if instance.Name != "" {
		if err := r.driver.Info(ctx, instance.Name); err != nil {
			return nil, err
		}
	}

	values := make(map[string]any)
	for _, section := range instance.Sections {
		if section.Label != "" {
			if err := r.driver.Info(ctx, "== "+section.Label+" =="); err != nil {
				return nil, err
			}
		}
		for _, input := range section.Inputs {
			answer, answered, err := r.ask(ctx, input, options.Values[input.Key])
			if err != nil {
				return nil, err
			}
			if answered {
				values[input.Key] = answer
			}
		}
	}

	if r.submitTransformer != nil {
		transformed, err := r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: transform values: %w", err)
		}
		values = transformed
	}

	payload, err := instance.Submit(values)
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// ask prompts for one input, re-prompting while a required answer is missing.
func (r *Renderer) ask(ctx context.Context, input render.BoundInput, current any) (any, bool, error) {
	for {
		answer, answered, err := r.askOnce(ctx, input, current)
		if err != nil {
			return nil, false, err
		}
		if answered || !input.Required {
			return answer, answered, nil
		}
		if err := r.driver.Info(ctx, fmt.Sprintf("%s is required", input.Label)); err != nil {
			return nil, false, err
		}
	}
}

func (r *Renderer) askOnce(ctx context.Context, input render.BoundInput, current any) (any, bool, error) {
	message := input.Label
	if message == "" {
		message = input.Key
	}
	if input.Required {
		message += " *"
	}

	switch input.Control {
	case render.ControlSelect, render.ControlRadio:
		labels := make([]string, 0, len(input.Options)+1)
		if !input.Required {
			labels = append(labels, skipChoice)
		}
		for _, option := range input.Options {
			labels = append(labels, option.Label)
		}

		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      labels,
			DefaultIndex: defaultSelectIndex(labels, input, current),
			Help:         input.HelpText,
		})
		if err != nil {
			return nil, false, err
		}
		if idx < 0 || idx >= len(labels) {
			return nil, false, nil
		}
		if !input.Required && idx == 0 {
			return nil, false, nil
		}
		if !input.Required {
			idx--
		}
		return input.Options[idx].Value, true, nil

	case render.ControlCheckbox:
		labels := make([]string, len(input.Options))
		for i, option := range input.Options {
			labels[i] = option.Label
		}
		indices, err := r.driver.MultiSelect(ctx, SelectConfig{
			Message:  message,
			Options:  labels,
			Defaults: checkedIndices(input, current),
			Help:     input.HelpText,
		})
		if err != nil {
			return nil, false, err
		}
		sort.Ints(indices)
		picked := make([]string, 0, len(indices))
		for _, idx := range indices {
			if idx >= 0 && idx < len(input.Options) {
				picked = append(picked, input.Options[idx].Value)
			}
		}
		if len(picked) == 0 {
			return nil, false, nil
		}
		return picked, true, nil

	case render.ControlTextarea:
		text, err := r.driver.TextArea(ctx, TextAreaConfig{
			Message: message,
			Default: stringValue(current),
			Help:    input.HelpText,
		})
		if err != nil {
			return nil, false, err
		}
		if strings.TrimSpace(text) == "" {
			return nil, false, nil
		}
		return text, true, nil

	default:
		// invalid typed input re-prompts regardless of requiredness; only a
		// blank answer falls through to the caller
		for {
			text, err := r.driver.Input(ctx, InputConfig{
				Message:     message,
				Default:     stringValue(current),
				Help:        input.HelpText,
				Placeholder: input.Placeholder,
				Validator:   inputValidator(input),
			})
			if err != nil {
				return nil, false, err
			}
			text = strings.TrimSpace(text)
			if text == "" {
				return nil, false, nil
			}
			if err := validateTyped(input, text); err != nil {
				if infoErr := r.driver.Info(ctx, err.Error()); infoErr != nil {
					return nil, false, infoErr
				}
				continue
			}
			return text, true, nil
		}
	}
}

// inputValidator is applied by drivers that support inline validation; the
// typed check still runs afterwards for drivers that do not.
func inputValidator(input render.BoundInput) func(string) error {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return nil
		}
		return validateTyped(input, value)
	}
}

func validateTyped(input render.BoundInput, value string) error {
	switch input.Control {
	case render.ControlNumber:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Errorf("%s must be a number", input.Label)
		}
	case render.ControlEmail:
		if !strings.Contains(value, "@") {
			return fmt.Errorf("%s must be an email address", input.Label)
		}
	}
	return nil
}

func defaultSelectIndex(labels []string, input render.BoundInput, current any) int {
	want := stringValue(current)
	if want == "" {
		return 0
	}
	offset := 0
	if !input.Required {
		offset = 1
	}
	for i, option := range input.Options {
		if option.Value == want {
			return i + offset
		}
	}
	return 0
}

func checkedIndices(input render.BoundInput, current any) []int {
	var picked []string
	switch v := current.(type) {
	case []string:
		picked = v
	case []any:
		for _, item := range v {
			picked = append(picked, fmt.Sprint(item))
		}
	case string:
		if v != "" {
			picked = []string{v}
		}
	}
	if len(picked) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(picked))
	for _, value := range picked {
		seen[value] = struct{}{}
	}
	var out []int
	for i, option := range input.Options {
		if _, ok := seen[option.Value]; ok {
			out = append(out, i)
		}
	}
	return out
}

func stringValue(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	default:
		return fmt.Sprint(value)
	}
}

func (r *Renderer) prettyPayload(instance *render.Instance, payload map[string]any) []byte {
	var builder strings.Builder
	for _, section := range instance.Sections {
		for _, input := range section.Inputs {
			value, ok := payload[input.Key]
			if !ok {
				continue
			}
			builder.WriteString(input.Label)
			builder.WriteString(": ")
			switch v := value.(type) {
			case []string:
				builder.WriteString(strings.Join(v, ", "))
			default:
				builder.WriteString(fmt.Sprint(v))
			}
			builder.WriteString("\n")
		}
	}
	return []byte(builder.String())
}
