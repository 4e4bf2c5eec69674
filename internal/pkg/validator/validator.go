package validator

// Validator validates structs against their declared rules.
type Validator interface {
	// Validate returns nil when data passes all rules, or an error carrying
	// per-field messages when it does not.
	Validate(data any) error
}
