package service

import "errors"

// SaveError reports that a mutation was applied in memory but the result
// could not be written to storage.
type SaveError struct {
	Op  string // mutation that triggered the save
	Err error
}

func (e *SaveError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *SaveError) Unwrap() error { return e.Err }

// IsSaveError reports whether err carries a SaveError.
func IsSaveError(err error) bool {
	var se *SaveError
	return errors.As(err, &se)
}
