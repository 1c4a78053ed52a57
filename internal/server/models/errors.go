package models

import "github.com/dmitrijs2005/hrconsole/internal/common"

// ValidationError is a rejected request body. It matches
// common.ErrorValidation under errors.Is.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == common.ErrorValidation }

func validationError(msg string) error {
	return &ValidationError{Msg: msg}
}
