// Package uid provides identifier generation.
//
// StringID is used for opaque identifiers such as correlation ids and object
// storage keys. NumberID produces sortable numeric primary keys.
package uid

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}

// NumberID generates numeric identifiers.
type NumberID interface {
	Generate() int64
}
