package invoices

// Kind tells the form layer how an action ended.
type Kind int

const (
	Done Kind = iota
	Invalid
	StorageFailed
)

func (k Kind) String() string {
	switch k {
	case Done:
		return "done"
	case Invalid:
		return "invalid"
	case StorageFailed:
		return "storage_failed"
	}
	return "unknown"
}

// Result is the state handed back to the form after an action. Redirect is
// set when the caller must navigate away instead of rendering the form.
type Result struct {
	Kind     Kind        `json:"-"`
	Errors   FieldErrors `json:"errors,omitempty"`
	Message  string      `json:"message,omitempty"`
	Redirect string      `json:"-"`
}
