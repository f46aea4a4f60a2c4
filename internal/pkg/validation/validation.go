package validation

import "strings"

// FieldError describes one failing constraint on one input field. Value
// carries the offending input back to the client so a form can re-render it.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value"`
}

// Errors collects every failing field of a request. It is an error so
// usecases can return it through the normal error path; handlers unwrap it
// into a 400 response with the full list.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e Errors) HasErrors() bool {
	return len(e) > 0
}

func (e *Errors) Add(field, message string, value any) {
	*e = append(*e, FieldError{Field: field, Message: message, Value: value})
}
