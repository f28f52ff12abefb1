// Package errs provides the typed errors shared by the pizzeria services.
//
// Every error type follows the same pattern:
//   - a sentinel error variable (e.g. ErrValueIsRequired) that errors.Is matches
//   - a struct type carrying the offending parameter and an optional cause
//   - constructors with and without cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// Domain constructors return these errors; transport adapters use errors.Is and
// errors.As to choose a status code (ObjectNotFound becomes 404, the value errors 400).
package errs
