// Package errs provides standardized error types for the dispatch service.
//
// The package includes:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value breaks a business rule
//   - ValueIsOutOfRangeError: a value lies outside its inclusive bounds
//   - ObjectNotFoundError: nothing is registered under an identifier
//
// Each type wraps a sentinel (ErrValueIsRequired, ErrValueIsInvalid, ...) so callers
// classify failures with errors.Is and inspect details with errors.As. Constructors come
// in two flavours, with and without an underlying cause.
package errs
