package model

// Item is a single labelled value of a tool result, such as "SHA-256" and
// its digest, or "camelCase" and the converted text.
type Item struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Result is the output of one tool invocation. Report writers render it as
// plain text, JSON or Markdown.
type Result struct {
	// Tool is the registry name of the tool, e.g. "hash-generator".
	Tool string `json:"tool"`

	// Title is a short heading for the output.
	Title string `json:"title,omitempty"`

	// Items are labelled values shown as a table.
	Items []Item `json:"items,omitempty"`

	// Body is free-form output such as converted JSON or generated text.
	Body string `json:"body,omitempty"`

	// Language names the syntax of Body ("json", "html", "markdown", ...).
	// It drives code fences and highlighting.
	Language string `json:"language,omitempty"`
}

// NewResult creates a Result for the named tool.
func NewResult(tool string) *Result {
	return &Result{Tool: tool}
}

// Add appends a labelled value and returns the result for chaining.
func (r *Result) Add(label, value string) *Result {
	r.Items = append(r.Items, Item{Label: label, Value: value})
	return r
}

// WithBody sets the body and its language and returns the result.
func (r *Result) WithBody(body, language string) *Result {
	r.Body = body
	r.Language = language
	return r
}
