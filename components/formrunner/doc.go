// Package formrunner serves published form definitions over net/http.
//
// A single handler covers the respondent flow: GET renders the form using a
// pluggable renderer (HTML by default, the bound instance as JSON when the
// client asks for it), and POST validates the submitted answers against the
// definition before handing the accepted payload to a SubmitFunc. Required
// field violations come back as a 422 with the form re-rendered in place, or
// as a JSON error map for API clients.
//
// Forms with authenticated visibility are only served when a GuardFunc
// approves the request.
package formrunner
