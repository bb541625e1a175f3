// Package app implements the primary port services: validation,
// attribution stamping, and the glue between HTTP requests and the
// repositories.
package app

// ValidationError marks missing, empty, or malformed input. The web
// adapter maps it to HTTP 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError marks an unknown id. The web adapter maps it to 404.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func validationErr(msg string) error {
	return &ValidationError{Message: msg}
}

func notFoundErr(msg string) error {
	return &NotFoundError{Message: msg}
}
