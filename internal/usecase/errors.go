package usecase

import "fmt"

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// DataAccessError wraps a persistence failure. It aborts the request; the
// caller may retry the whole computation, which is idempotent.
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("data access failed during %s: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

func IsDataAccessError(err error) bool {
	_, ok := err.(*DataAccessError)
	return ok
}
