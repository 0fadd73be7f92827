package vanilla

// ChromeClass is a typed identifier for the semantic CSS classes the built-in
// templates emit. Themes restyle these hooks without touching markup.
type ChromeClass string

const (
	ClassForm    ChromeClass = "formbuilder-form"
	ClassHeader  ChromeClass = "formbuilder-header"
	ClassSection ChromeClass = "formbuilder-section"
	ClassField   ChromeClass = "formbuilder-field"
	ClassHelp    ChromeClass = "formbuilder-help"
	ClassActions ChromeClass = "formbuilder-actions"
	ClassErrors  ChromeClass = "formbuilder-errors"
)
