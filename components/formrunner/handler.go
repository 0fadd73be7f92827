package formrunner

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formbuilder/pkg/client"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla"
	"github.com/goliatone/go-formbuilder/pkg/schema"
)

// HTTPError lets guards and sources pick the response status of a failure.
type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type violationsResponse struct {
	Errors map[string][]string `json:"errors"`
}

type receiptResponse struct {
	OK bool `json:"ok"`
}

// Handler builds a net/http handler with default options plus any overrides.
// It is an alias of NewHandler to match the recommended component API surface.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds a net/http handler from a pre-constructed Options
// value. GET renders the form (HTML, or the instance as JSON when requested);
// POST validates the answers and forwards accepted payloads to the SubmitFunc.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		slug := slugFromPath(r.URL.Path)
		if slug == "" {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}

		form, ok := resolveForm(w, r, opts, slug)
		if !ok {
			return
		}

		switch r.Method {
		case http.MethodGet, http.MethodHead:
			serveForm(w, r, opts, form)
		case http.MethodPost:
			serveSubmit(w, r, opts, form)
		default:
			w.Header().Set("Allow", strings.Join([]string{http.MethodGet, http.MethodHead, http.MethodPost}, ", "))
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		}
	})
}

func resolveForm(w http.ResponseWriter, r *http.Request, opts Options, slug string) (schema.Form, bool) {
	if opts.Source == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return schema.Form{}, false
	}

	form, err := opts.Source(r.Context(), slug)
	if err != nil {
		writeSourceError(w, err)
		return schema.Form{}, false
	}

	if form.Visibility == schema.VisibilityAuthenticated {
		if opts.Guard == nil {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return schema.Form{}, false
		}
		if err := opts.Guard(r); err != nil {
			writeGuardError(w, err)
			return schema.Form{}, false
		}
	}
	return form, true
}

func serveForm(w http.ResponseWriter, r *http.Request, opts Options, form schema.Form) {
	if wantsJSON(r) {
		instance, err := render.Instantiate(form)
		if err != nil {
			writeInstantiateError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, r.Method == http.MethodHead, instance)
		return
	}

	renderer, err := pickRenderer(opts)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	renderOptions := opts.Render
	if renderOptions.Action == "" {
		renderOptions.Action = r.URL.Path
	}

	body, err := renderer.Render(r.Context(), form, renderOptions)
	if err != nil {
		writeInstantiateError(w, err)
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

func serveSubmit(w http.ResponseWriter, r *http.Request, opts Options, form schema.Form) {
	instance, err := render.Instantiate(form)
	if err != nil {
		writeInstantiateError(w, err)
		return
	}

	values, err := parseAnswers(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	payload, err := instance.Submit(values)
	if err != nil {
		var subErr *render.SubmissionError
		if !errors.As(err, &subErr) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		writeViolations(w, r, opts, form, values, subErr)
		return
	}

	if opts.Submit != nil {
		if err := opts.Submit(r.Context(), form, payload); err != nil {
			writeSubmitError(w, err)
			return
		}
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, false, receiptResponse{OK: true})
		return
	}
	if opts.RedirectTo != "" {
		http.Redirect(w, r, opts.RedirectTo, http.StatusSeeOther)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "<p>Thank you. Your response to %q was recorded.</p>", form.Name)
}

func writeViolations(w http.ResponseWriter, r *http.Request, opts Options, form schema.Form, values map[string]any, subErr *render.SubmissionError) {
	fieldErrors := make(map[string][]string, len(subErr.Violations))
	for _, violation := range subErr.Violations {
		fieldErrors[violation.Path] = append(fieldErrors[violation.Path], violation.Message)
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusUnprocessableEntity, false, violationsResponse{Errors: fieldErrors})
		return
	}

	renderer, err := pickRenderer(opts)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	renderOptions := opts.Render
	if renderOptions.Action == "" {
		renderOptions.Action = r.URL.Path
	}
	renderOptions.Values = values
	renderOptions.Errors = fieldErrors

	body, err := renderer.Render(r.Context(), form, renderOptions)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(http.StatusUnprocessableEntity)
	_, _ = w.Write(body)
}

// parseAnswers flattens the request body into the key to answer map the
// submission gate expects. Repeated url-encoded keys become []string.
func parseAnswers(r *http.Request) (map[string]any, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		values := make(map[string]any)
		if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
			return nil, err
		}
		return values, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	values := make(map[string]any, len(r.PostForm))
	for key, list := range r.PostForm {
		if strings.HasPrefix(key, "_") {
			continue
		}
		if len(list) > 1 {
			values[key] = []string(list)
			continue
		}
		values[key] = list[0]
	}
	return values, nil
}

func pickRenderer(opts Options) (render.Renderer, error) {
	if opts.Renderer != nil {
		return opts.Renderer, nil
	}
	return vanilla.New()
}

func wantsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json")
}

func writeJSON(w http.ResponseWriter, status int, headOnly bool, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if headOnly {
		return
	}
	enc := json.NewEncoder(w)
	_ = enc.Encode(body)
}

func writeSourceError(w http.ResponseWriter, err error) {
	if errors.Is(err, client.ErrNotFound) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code := httpErr.StatusCode()
		http.Error(w, http.StatusText(code), code)
		return
	}
	http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
}

func writeInstantiateError(w http.ResponseWriter, err error) {
	// closed forms are indistinguishable from missing ones on purpose
	if errors.Is(err, render.ErrFormNotAvailable) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func writeSubmitError(w http.ResponseWriter, err error) {
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code := httpErr.StatusCode()
		http.Error(w, http.StatusText(code), code)
		return
	}
	http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}

func slugFromPath(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return ""
	}
	segments := strings.Split(trimmed, "/")
	return segments[len(segments)-1]
}
