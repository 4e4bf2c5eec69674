// Package validator abstracts struct validation for requests and domain
// inputs.
//
// Business code depends on the Validator interface only; the concrete
// go-playground/validator v10 implementation lives alongside it.
package validator
