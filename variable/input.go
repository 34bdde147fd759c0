package variable

// InputVariable is a Variable whose value an engine writes from a crisp
// caller-supplied input before each inference pass (spec section 3: "An
// InputVariable is a Variable").
type InputVariable struct {
	Variable
}

// NewInput constructs an input variable over [min, max].
func NewInput(name string, min, max float64) (*InputVariable, error) {
	v, err := New(name, min, max)
	if err != nil {
		return nil, err
	}
	return &InputVariable{Variable: *v}, nil
}
