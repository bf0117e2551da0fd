package validate

// Invalid is the error returned by lifecycle operations whose input failed
// validation. It carries the field-level messages for the 400 response.
type Invalid struct {
	Errors Errors
}

func (e *Invalid) Error() string {
	if len(e.Errors) == 1 {
		return "validation failed: " + e.Errors[0].Field
	}
	return "validation failed"
}

// AsError wraps non-empty Errors into an *Invalid, or returns nil.
func (e Errors) AsError() error {
	if len(e) == 0 {
		return nil
	}
	return &Invalid{Errors: e}
}
