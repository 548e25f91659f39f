// Package errors defines the domain error taxonomy shared by the ledger,
// transfer and user services. Handlers translate these into HTTP statuses.
package errors

// DomainError is a business-rule failure. Code identifies the error kind;
// Message is the client-facing text.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string { return e.Message }

// Is matches two domain errors by code, so a constructed error (for example
// an insufficient-funds error carrying a specific amount) still matches its
// sentinel under errors.Is.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}
